package searcher

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoardNodeMap(t *testing.T) {
	t.Run("returns the existing node", func(t *testing.T) {
		var m BoardNodeMap
		first, created := m.GetOrCreate(7, func() *TreeNode { return newTreeNode("player1", 1, 7) })
		require.True(t, created)

		second, created := m.GetOrCreate(7, func() *TreeNode {
			require.Fail(t, "factory should not run for an existing entry")
			return nil
		})
		require.False(t, created)
		require.Same(t, first, second)
		require.Equal(t, 1, m.Len())
	})

	t.Run("different fingerprints get different nodes", func(t *testing.T) {
		var m BoardNodeMap
		a, _ := m.GetOrCreate(1, func() *TreeNode { return newTreeNode("player1", 1, 1) })
		b, _ := m.GetOrCreate(2, func() *TreeNode { return newTreeNode("player1", 1, 2) })
		require.NotSame(t, a, b)
		require.Equal(t, 2, m.Len())

		got, ok := m.Get(2)
		require.True(t, ok)
		require.Same(t, b, got)
		_, ok = m.Get(3)
		require.False(t, ok)
	})

	t.Run("exactly one winner under contention", func(t *testing.T) {
		const goroutines = 64
		for round := 0; round < 20; round++ {
			var m BoardNodeMap
			var factoryCalls, winners atomic.Int32
			nodes := make([]*TreeNode, goroutines)

			var start, wg sync.WaitGroup
			start.Add(1)
			for i := 0; i < goroutines; i++ {
				i := i
				wg.Add(1)
				go func() {
					defer wg.Done()
					start.Wait()
					node, created := m.GetOrCreate(42, func() *TreeNode {
						factoryCalls.Add(1)
						return newTreeNode("player1", 1, 42)
					})
					if created {
						winners.Add(1)
					}
					nodes[i] = node
				}()
			}
			start.Done()
			wg.Wait()

			require.Equal(t, int32(1), winners.Load(), "Exactly one caller should create the node")
			require.Equal(t, int32(1), factoryCalls.Load(), "Losers should never build a node")
			for _, node := range nodes {
				require.Same(t, nodes[0], node, "Every caller should get the winner's node")
			}
			require.Equal(t, 1, m.Len())
		}
	})
}
