package game

import "fmt"

const DefaultBotRaiseStep = 50

type BotDecision struct {
	Action Action
	Amount int
	Notice string
}

func isStrong(r Rank) bool { return r >= 10 }

// DecideBot folds unless a hole card is ten or better. With a strong card it
// calls when short-stacked, otherwise flips a coin between calling and raising
// the table bet by raiseStep, capped at what the bot can put in.
func DecideBot(t *Table, bot *Player, raiseStep int) BotDecision {
	strong := false
	for _, c := range bot.Hole {
		if isStrong(c.Rank) {
			strong = true
			break
		}
	}
	if !strong {
		return BotDecision{Action: ActionFold, Notice: bot.Name + " folds"}
	}

	need := t.TableBet - bot.RoundBet
	if need > bot.Chips {
		return BotDecision{Action: ActionCall, Notice: bot.Name + " calls all-in"}
	}
	call := BotDecision{Action: ActionCall, Notice: bot.Name + " calls"}
	if t.rng.Float64() < 0.5 {
		return call
	}

	target := t.TableBet + raiseStep
	if limit := bot.Chips + bot.RoundBet; target > limit {
		target = limit
	}
	if target <= t.TableBet {
		return call
	}
	return BotDecision{
		Action: ActionRaise,
		Amount: target,
		Notice: fmt.Sprintf("%s raises to %d", bot.Name, target),
	}
}
