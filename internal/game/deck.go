package game

import (
	"errors"
	"math/rand"
)

var ErrDeckExhausted = errors.New("deck exhausted")

type Deck struct {
	cards []Card
}

// NewDeck returns the 52 cards in suit-major order.
func NewDeck() *Deck {
	cards := make([]Card, 0, 52)
	for s := Clubs; s <= Spades; s++ {
		for r := Rank(2); r <= Ace; r++ {
			cards = append(cards, Card{Rank: r, Suit: s})
		}
	}
	return &Deck{cards: cards}
}

func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes n cards from the top of the deck.
func (d *Deck) Draw(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, ErrDeckExhausted
	}
	top := len(d.cards) - n
	drawn := make([]Card, n)
	copy(drawn, d.cards[top:])
	d.cards = d.cards[:top]
	return drawn, nil
}

func (d *Deck) Len() int { return len(d.cards) }
