package room

import (
	"time"

	"holdem-rooms/internal/game"
	"holdem-rooms/internal/shared"
)

// scheduleBot arms the bot's decision for the current turn. The decision is
// tagged with the hand and turn it was scheduled for and dropped if either
// has moved on by the time it fires.
func (r *Room) scheduleBot(bot *game.Player) {
	r.stopBot()
	hand, seq, id := r.table.Hand, r.table.TurnSeq, bot.ID
	r.botTimer = time.AfterFunc(r.botDelay, func() {
		r.post(func() { r.botTurn(hand, seq, id) })
	})
}

func (r *Room) stopBot() {
	if r.botTimer != nil {
		r.botTimer.Stop()
		r.botTimer = nil
	}
}

func (r *Room) botTurn(hand, seq uint64, botID string) {
	t := r.table
	if r.closed || t.Hand != hand || t.TurnSeq != seq {
		r.log.Debug().Str("player", botID).Msg("stale bot decision dropped")
		return
	}
	r.botTimer = nil
	bot := t.Current()
	if bot == nil || bot.ID != botID || !bot.CanAct() || t.Stage == game.StageShowdown {
		return
	}

	d := game.DecideBot(t, bot, r.botRaise)
	res, err := t.Act(bot.ID, d.Action, d.Amount)
	if err != nil {
		r.log.Error().Err(err).Str("action", string(d.Action)).Msg("bot action rejected")
		return
	}
	r.log.Info().Str("player", bot.ID).Str("action", string(d.Action)).Int("amount", d.Amount).Msg(d.Notice)
	r.out.Broadcast(r.id, shared.EventChatMessage, shared.ChatMessage{Sender: bot.Name, Message: d.Notice})

	if res != nil {
		r.finishHand(res)
		return
	}
	r.promptTurn()
	r.broadcastRoom()
}
