package game

import "fmt"

// showdown ranks every non-folded hand. Only the first winner in seating
// order takes the pot; tied hands are not split.
func (t *Table) showdown() (*GameResult, error) {
	var (
		contenders []*Player
		rankings   []Ranking
	)
	for _, p := range t.Players {
		if p.Folded {
			continue
		}
		cards := make([]Card, 0, len(p.Hole)+len(t.Board))
		cards = append(cards, p.Hole...)
		cards = append(cards, t.Board...)
		r, err := t.eval.Evaluate(cards)
		if err != nil {
			t.Stage = StageWaiting
			return nil, fmt.Errorf("evaluate %s: %w", p.ID, err)
		}
		contenders = append(contenders, p)
		rankings = append(rankings, r)
	}

	winners := t.eval.Winners(rankings)
	if len(winners) == 0 {
		t.Stage = StageWaiting
		return nil, ErrNoWinner
	}
	w := winners[0]
	return t.award(contenders[w], rankings[w].Description), nil
}
