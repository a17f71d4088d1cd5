package game

import (
	"errors"
	"fmt"

	"github.com/paulhankin/poker"
)

var ErrIncompleteHand = errors.New("hand evaluation needs 7 cards")

// Ranking is a totally ordered hand strength. Higher Score wins.
type Ranking struct {
	Score       int16
	Description string
}

// Evaluator ranks hole cards plus board and picks the winners among several rankings.
type Evaluator interface {
	Evaluate(cards []Card) (Ranking, error)
	// Winners returns the indices of the best rankings, in input order.
	Winners(rankings []Ranking) []int
}

// PokerEvaluator ranks seven-card hands with github.com/paulhankin/poker.
type PokerEvaluator struct{}

func (PokerEvaluator) Evaluate(cards []Card) (Ranking, error) {
	if len(cards) != 7 {
		return Ranking{}, fmt.Errorf("%w: got %d", ErrIncompleteHand, len(cards))
	}
	var hand [7]poker.Card
	for i, c := range cards {
		pc, err := toPokerCard(c)
		if err != nil {
			return Ranking{}, err
		}
		hand[i] = pc
	}
	desc, err := poker.Describe(hand[:])
	if err != nil {
		return Ranking{}, fmt.Errorf("describe hand: %w", err)
	}
	return Ranking{Score: poker.Eval7(&hand), Description: desc}, nil
}

func (PokerEvaluator) Winners(rankings []Ranking) []int {
	var best []int
	for i, r := range rankings {
		switch {
		case len(best) == 0 || r.Score > rankings[best[0]].Score:
			best = []int{i}
		case r.Score == rankings[best[0]].Score:
			best = append(best, i)
		}
	}
	return best
}

// The evaluator counts the ace as rank 1.
func toPokerCard(c Card) (poker.Card, error) {
	r := int(c.Rank)
	if c.Rank == Ace {
		r = 1
	}
	pc, err := poker.MakeCard(poker.Suit(c.Suit), poker.Rank(r))
	if err != nil {
		return pc, fmt.Errorf("invalid card %s: %w", c, err)
	}
	return pc, nil
}
