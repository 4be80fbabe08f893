package game

type CardType int

const (
	Strike CardType = iota // damage an enemy minion or hero
	Heal                   // restore health to a friendly minion or hero
	Summon                 // put a minion on the board
)

type Card struct {
	ID     int
	Name   string
	Type   CardType
	Power  int // damage, healing or minion attack
	Health int // minion health, Summon only
}

// Catalog lists every card by ID.
var Catalog = []Card{
	{ID: 0, Name: "Spark", Type: Strike, Power: 1},
	{ID: 1, Name: "Firebolt", Type: Strike, Power: 3},
	{ID: 2, Name: "Lightning", Type: Strike, Power: 2},
	{ID: 3, Name: "Mend", Type: Heal, Power: 2},
	{ID: 4, Name: "Renew", Type: Heal, Power: 4},
	{ID: 5, Name: "Squire", Type: Summon, Power: 1, Health: 2},
	{ID: 6, Name: "Knight", Type: Summon, Power: 2, Health: 3},
	{ID: 7, Name: "Ogre", Type: Summon, Power: 3, Health: 4},
}

// StandardDeck holds every catalog card twice.
func StandardDeck() []int {
	deck := make([]int, 0, 2*len(Catalog))
	for copies := 0; copies < 2; copies++ {
		for _, card := range Catalog {
			deck = append(deck, card.ID)
		}
	}
	return deck
}

// Minion is a summoned card on the board.
type Minion struct {
	Card   int
	Attack int
	Health int
	Max    int
}

func newMinion(card Card) Minion {
	return Minion{Card: card.ID, Attack: card.Power, Health: card.Health, Max: card.Health}
}
