package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompatible(t *testing.T) {
	tests := []struct {
		name string
		a, b ActionSignature
		want bool
	}{
		{"card ids may differ", ChooseFromCardIDs(PlayCardAction, []int{1, 2}), ChooseFromCardIDs(PlayCardAction, []int{3}), true},
		{"equal bounds", ChooseFromRange(ChooseTargetAction, 3), ChooseFromRange(ChooseTargetAction, 3), true},
		{"different bounds", ChooseFromRange(ChooseTargetAction, 3), ChooseFromRange(ChooseTargetAction, 2), false},
		{"different action types", ChooseFromRange(ChooseTargetAction, 1), ChooseFromRange(EndAction, 1), false},
		{"different kinds", ChooseFromCardIDs(PlayCardAction, []int{0}), ChooseFromRange(PlayCardAction, 1), false},
		{"both undetermined", ActionSignature{Type: PlayCardAction}, ActionSignature{Type: PlayCardAction}, false},
		{"terminal", TerminalSignature(), TerminalSignature(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.a.Compatible(tt.b))
			require.Equal(t, tt.want, tt.b.Compatible(tt.a), "compatibility should be symmetric")
		})
	}
}

func TestActionSignature(t *testing.T) {
	t.Run("undetermined is not valid", func(t *testing.T) {
		require.False(t, ActionSignature{}.IsValid())
		require.False(t, ActionSignature{Type: PlayCardAction}.IsValid())
		require.True(t, TerminalSignature().IsValid())
	})

	t.Run("choices of a range", func(t *testing.T) {
		require.Equal(t, []int{0, 1, 2}, ChooseFromRange(ChooseTargetAction, 3).Choices())
		require.Empty(t, TerminalSignature().Choices())
	})

	t.Run("card ids are copied", func(t *testing.T) {
		ids := []int{4, 5}
		sig := ChooseFromCardIDs(PlayCardAction, ids)
		ids[0] = 7
		require.Equal(t, []int{4, 5}, sig.Choices())

		clone := sig.Clone()
		clone.IDs[0] = 9
		require.Equal(t, 4, sig.IDs[0])
	})
}
