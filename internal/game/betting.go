package game

// Act applies one betting action from playerID. Rejections leave the table
// untouched. A non-nil result means the action ended the hand by fold-out;
// otherwise the turn has already moved on.
func (t *Table) Act(playerID string, a Action, amount int) (*GameResult, error) {
	switch t.Stage {
	case StageWaiting:
		return nil, ErrHandNotRunning
	case StageShowdown:
		return nil, ErrBettingClosed
	}
	p := t.Current()
	if p == nil || p.ID != playerID {
		return nil, ErrNotYourTurn
	}
	if err := validateAction(t, p, a, amount); err != nil {
		return nil, err
	}
	applyAction(t, p, a, amount)

	if res := t.foldOut(); res != nil {
		return res, nil
	}
	t.AdvanceTurn()
	return nil, nil
}

func validateAction(t *Table, p *Player, a Action, amount int) error {
	switch a {
	case ActionFold, ActionCall:
		return nil
	case ActionCheck:
		if p.RoundBet != t.TableBet {
			return ErrMustCallOrRaise
		}
		return nil
	case ActionRaise:
		if amount <= t.TableBet {
			return ErrRaiseTooSmall
		}
		if amount-p.RoundBet > p.Chips {
			return ErrInsufficientChips
		}
		return nil
	}
	return ErrUnknownAction
}

// applyAction assumes validateAction accepted the action.
func applyAction(t *Table, p *Player, a Action, amount int) {
	switch a {
	case ActionFold:
		// Chips already committed stay in the pot.
		p.Folded = true
		p.RoundBet = 0
	case ActionCall:
		need := t.TableBet - p.RoundBet
		if need > p.Chips {
			// Short call: the whole stack goes in.
			need = p.Chips
			p.AllIn = true
		}
		commit(t, p, need)
	case ActionRaise:
		commit(t, p, amount-p.RoundBet)
		t.TableBet = amount
	}
}

func commit(t *Table, p *Player, chips int) {
	p.Chips -= chips
	p.RoundBet += chips
	t.Pot += chips
	if p.Chips == 0 && chips > 0 {
		p.AllIn = true
	}
}
