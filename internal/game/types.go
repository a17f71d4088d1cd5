package game

import "strconv"

type Suit uint8

// Suit order matches github.com/paulhankin/poker.
const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

var suitSymbols = [...]string{"♣", "♦", "♥", "♠"}

func (s Suit) String() string {
	if int(s) < len(suitSymbols) {
		return suitSymbols[s]
	}
	return "?"
}

func (s Suit) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Rank runs 2..14 with the ace high.
type Rank uint8

const (
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	return strconv.Itoa(int(r))
}

func (r Rank) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) String() string { return c.Rank.String() + c.Suit.String() }

type Stage string

const (
	StageWaiting  Stage = "waiting"
	StagePreFlop  Stage = "pre-flop"
	StageFlop     Stage = "flop"
	StageTurn     Stage = "turn"
	StageRiver    Stage = "river"
	StageShowdown Stage = "showdown"
)

type Action string

const (
	ActionFold  Action = "fold"
	ActionCheck Action = "check"
	ActionCall  Action = "call"
	ActionRaise Action = "raise"
)

// Player is one seat. The transport connection is tracked by the Table, not here.
type Player struct {
	ID       string
	Name     string
	Chips    int
	Hole     []Card
	Folded   bool
	RoundBet int
	AllIn    bool
	IsBot    bool
}

// CanAct reports whether the seat may still receive the turn this hand.
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn
}

// GameResult is emitted once per resolved hand and never stored.
type GameResult struct {
	WinnerID    string `json:"winnerId"`
	WinnerName  string `json:"winnerName"`
	Pot         int    `json:"pot"`
	WinningHand string `json:"winningHand"`
}

const winByFold = "Win by fold"
