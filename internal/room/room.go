package room

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"holdem-rooms/internal/game"
	"holdem-rooms/internal/shared"
)

var (
	ErrRoomClosed   = errors.New("room closed")
	ErrRoomNotFound = errors.New("room not found")
	ErrNotHost      = errors.New("not the host")
	ErrNotSeated    = errors.New("connection has no seat in this room")
)

// Room is the single mutation point for one table. Every operation runs on
// the room's own goroutine, in arrival order.
type Room struct {
	id       string
	table    *game.Table
	out      Transport
	log      zerolog.Logger
	botDelay time.Duration
	botRaise int
	botID    func() string

	inbox chan func()
	done  chan struct{}

	// Owned by the loop goroutine.
	closed   bool
	botTimer *time.Timer
}

type Summary struct {
	ID      string     `json:"id"`
	Players int        `json:"players"`
	Humans  int        `json:"humans"`
	Stage   game.Stage `json:"round"`
	Hand    uint64     `json:"hand"`
}

func (r *Room) ID() string { return r.id }

func (r *Room) loop() {
	for fn := range r.inbox {
		fn()
		if r.closed {
			return
		}
	}
}

// call runs fn on the room goroutine and waits for it.
func (r *Room) call(fn func() error) error {
	errc := make(chan error, 1)
	select {
	case r.inbox <- func() { errc <- fn() }:
	case <-r.done:
		return ErrRoomClosed
	}
	return <-errc
}

// post queues fn without waiting. It blocks the calling goroutine until the
// room accepts it or closes, so it must not be used from the room goroutine.
func (r *Room) post(fn func()) {
	select {
	case r.inbox <- fn:
	case <-r.done:
	}
}

func (r *Room) close() {
	r.stopBot()
	r.closed = true
	close(r.done)
}

func (r *Room) Join(connID string, p shared.JoinParams) error {
	return r.call(func() error {
		t := r.table
		player, rejoined, err := t.Join(p.PlayerID, connID, p.PlayerName)
		if err != nil {
			r.reject(connID, err)
			return err
		}

		if rejoined {
			r.log.Info().Str("player", player.ID).Str("name", player.Name).Msg("player reconnected")
			if len(player.Hole) > 0 {
				r.out.Send(connID, shared.EventDealCards, player.Hole)
			}
			if t.Current() == player {
				r.out.Send(connID, shared.EventYourTurn, nil)
			}
		} else {
			r.log.Info().Str("player", player.ID).Str("name", player.Name).Msg("new player joined")
		}
		if t.HostID == player.ID && !rejoined {
			r.log.Info().Str("player", player.ID).Msg("host assigned")
		}

		if t.NeedsBot() {
			bot := t.SeatBot(r.botID())
			r.log.Info().Str("player", bot.ID).Msg("bot seated")
		}
		r.broadcastRoom()
		return nil
	})
}

func (r *Room) Start(connID string) error {
	return r.call(func() error {
		t := r.table
		if !t.IsHost(connID) {
			return ErrNotHost
		}
		if err := t.StartHand(); err != nil {
			r.reject(connID, err)
			return err
		}
		r.stopBot()
		r.log.Info().Uint64("hand", t.Hand).Int("players", len(t.Players)).Msg("hand started")

		for _, p := range t.Players {
			if !p.IsBot {
				r.out.Send(t.ConnOf(p.ID), shared.EventDealCards, p.Hole)
			}
		}
		r.out.Broadcast(r.id, shared.EventRoundStage, t.Stage)
		r.out.Broadcast(r.id, shared.EventBoardCards, t.Board)
		r.broadcastRoom()
		r.promptTurn()
		return nil
	})
}

func (r *Room) Act(connID string, action game.Action, amount int) error {
	return r.call(func() error {
		t := r.table
		p := t.PlayerByConn(connID)
		if p == nil {
			return ErrNotSeated
		}
		res, err := t.Act(p.ID, action, amount)
		if err != nil {
			r.reject(connID, err)
			return err
		}
		r.log.Debug().Str("player", p.ID).Str("action", string(action)).Int("pot", t.Pot).Msg("action applied")

		if res != nil {
			r.finishHand(res)
			return nil
		}
		r.out.Send(connID, shared.EventTurnEnded, nil)
		r.promptTurn()
		r.broadcastRoom()
		return nil
	})
}

func (r *Room) NextStage(connID string) error {
	return r.call(func() error {
		t := r.table
		if !t.IsHost(connID) {
			return ErrNotHost
		}
		res, err := t.NextStage()
		switch {
		case errors.Is(err, game.ErrHandNotRunning):
			r.reject(connID, err)
			return err
		case err != nil:
			r.log.Warn().Err(err).Msg("stage advance failed, back to waiting")
			r.stopBot()
			r.out.Broadcast(r.id, shared.EventRoundStage, t.Stage)
			r.broadcastRoom()
			return err
		}

		if res != nil {
			r.log.Info().Str("winner", res.WinnerID).Int("pot", res.Pot).Str("hand", res.WinningHand).Msg("showdown")
			r.out.Broadcast(r.id, shared.EventGameResult, res)
		}
		if t.Stage == game.StageShowdown || t.Stage == game.StageWaiting {
			r.stopBot()
		}
		r.out.Broadcast(r.id, shared.EventRoundStage, t.Stage)
		r.out.Broadcast(r.id, shared.EventBoardCards, t.Board)
		r.broadcastRoom()
		return nil
	})
}

func (r *Room) Reset(connID string) error {
	return r.call(func() error {
		if !r.table.IsHost(connID) {
			return ErrNotHost
		}
		r.table.Reset()
		r.stopBot()
		r.log.Info().Msg("game reset")
		r.broadcastRoom()
		r.out.Broadcast(r.id, shared.EventRoundStage, r.table.Stage)
		r.out.Broadcast(r.id, shared.EventBoardCards, r.table.Board)
		return nil
	})
}

// Leave unseats the player bound to connID and reports whether the room is
// now empty. An empty room closes itself.
func (r *Room) Leave(connID string) (empty bool, err error) {
	err = r.call(func() error {
		res, ok := r.table.Leave(connID)
		if !ok {
			return nil
		}
		r.log.Info().Str("player", res.Player.ID).Msg("player left")
		if res.Empty {
			empty = true
			r.close()
			return nil
		}
		if res.Result != nil {
			r.finishHand(res.Result)
			return nil
		}
		if res.TurnMoved {
			r.promptTurn()
		}
		r.broadcastRoom()
		return nil
	})
	return empty, err
}

func (r *Room) Snapshot() (game.View, error) {
	var v game.View
	err := r.call(func() error {
		v = r.table.Snapshot()
		return nil
	})
	return v, err
}

func (r *Room) Summary() (Summary, error) {
	var s Summary
	err := r.call(func() error {
		t := r.table
		s = Summary{ID: r.id, Players: len(t.Players), Humans: t.Humans(), Stage: t.Stage, Hand: t.Hand}
		return nil
	})
	return s, err
}

func (r *Room) shutdown() {
	_ = r.call(func() error {
		r.close()
		return nil
	})
}

// promptTurn notifies the expected actor: a bot gets a scheduled decision, a
// human gets yourTurn on their connection only.
func (r *Room) promptTurn() {
	cur := r.table.Current()
	if cur == nil || !cur.CanAct() {
		return
	}
	if cur.IsBot {
		r.scheduleBot(cur)
		return
	}
	r.out.Send(r.table.ConnOf(cur.ID), shared.EventYourTurn, nil)
}

func (r *Room) finishHand(res *game.GameResult) {
	r.stopBot()
	r.log.Info().Str("winner", res.WinnerID).Int("pot", res.Pot).Msg("hand won by fold")
	r.out.Broadcast(r.id, shared.EventGameResult, res)
	r.out.Broadcast(r.id, shared.EventRoundStage, r.table.Stage)
	r.broadcastRoom()
}

func (r *Room) reject(connID string, err error) {
	r.out.Send(connID, shared.EventInvalidAction, err.Error())
}

func (r *Room) broadcastRoom() {
	r.out.Broadcast(r.id, shared.EventRoomData, r.table.Snapshot())
}
