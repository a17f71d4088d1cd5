package game

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestTable(id string, opts ...Option) *Table {
	opts = append([]Option{WithRand(rand.New(rand.NewSource(7)))}, opts...)
	return NewTable(id, opts...)
}

func connOf(id string) string { return "conn-" + id }

func seat(t *testing.T, tbl *Table, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, _, err := tbl.Join(id, connOf(id), strings.ToUpper(id))
		require.NoError(t, err)
	}
}

// committed is the sum of chips every seat has put in since the hand began.
func committed(tbl *Table, starting int) int {
	sum := 0
	for _, p := range tbl.Players {
		sum += starting - p.Chips
	}
	return sum
}

type stubEvaluator struct {
	rankings []Ranking
	err      error
	winners  []int
	calls    int
}

func (s *stubEvaluator) Evaluate([]Card) (Ranking, error) {
	if s.err != nil {
		return Ranking{}, s.err
	}
	r := s.rankings[s.calls]
	s.calls++
	return r, nil
}

func (s *stubEvaluator) Winners(rankings []Ranking) []int {
	if s.winners != nil {
		return s.winners
	}
	return PokerEvaluator{}.Winners(rankings)
}
