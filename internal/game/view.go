package game

type PlayerView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Chips      int    `json:"chips"`
	CurrentBet int    `json:"currentBet"`
	Folded     bool   `json:"folded"`
	AllIn      bool   `json:"isAllIn"`
	IsBot      bool   `json:"isBot"`
	CardCount  int    `json:"cardCount"`
	Cards      []Card `json:"cards,omitempty"`
}

// View is the public snapshot broadcast as roomData. Hole cards are only
// included for hands still live at showdown.
type View struct {
	ID                 string       `json:"id"`
	HostID             string       `json:"hostId"`
	Players            []PlayerView `json:"players"`
	Board              []Card       `json:"board"`
	Stage              Stage        `json:"round"`
	Pot                int          `json:"pot"`
	CurrentBet         int          `json:"currentBet"`
	CurrentPlayerIndex int          `json:"currentPlayerIndex"`
	CurrentPlayerID    string       `json:"currentPlayerId,omitempty"`
	Hand               uint64       `json:"hand"`
}

func (t *Table) Snapshot() View {
	v := View{
		ID:                 t.ID,
		HostID:             t.HostID,
		Players:            make([]PlayerView, 0, len(t.Players)),
		Board:              append([]Card{}, t.Board...),
		Stage:              t.Stage,
		Pot:                t.Pot,
		CurrentBet:         t.TableBet,
		CurrentPlayerIndex: t.Turn,
		Hand:               t.Hand,
	}
	if cur := t.Current(); cur != nil {
		v.CurrentPlayerID = cur.ID
	}
	for _, p := range t.Players {
		pv := PlayerView{
			ID:         p.ID,
			Name:       p.Name,
			Chips:      p.Chips,
			CurrentBet: p.RoundBet,
			Folded:     p.Folded,
			AllIn:      p.AllIn,
			IsBot:      p.IsBot,
			CardCount:  len(p.Hole),
		}
		if t.Stage == StageShowdown && !p.Folded {
			pv.Cards = append([]Card{}, p.Hole...)
		}
		v.Players = append(v.Players, pv)
	}
	return v
}
