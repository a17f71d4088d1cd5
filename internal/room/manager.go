package room

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"holdem-rooms/internal/config"
	"holdem-rooms/internal/game"
	"holdem-rooms/internal/shared"
)

var ErrMissingRoomID = errors.New("missing room id")

// Store is the process-wide room registry. Implementations guard it with
// their own lock, separate from any room's state.
type Store interface {
	GetRoom(id string) (*Room, bool)
	// GetOrCreate returns the room under id, calling create under the registry
	// lock when there is none. The bool reports whether create ran.
	GetOrCreate(id string, create func() *Room) (*Room, bool)
	// DeleteRoom removes id only while it still maps to r.
	DeleteRoom(id string, r *Room) bool
	Rooms() []*Room
}

type ManagerOption func(*Manager)

func WithEvaluator(e game.Evaluator) ManagerOption {
	return func(m *Manager) { m.eval = e }
}

// WithSeed makes every new table's shuffles and bot coin flips reproducible.
func WithSeed(seed int64) ManagerOption {
	return func(m *Manager) {
		m.newRand = func() *rand.Rand { return rand.New(rand.NewSource(seed)) }
	}
}

func WithBotIDGen(gen func() string) ManagerOption {
	return func(m *Manager) { m.botID = gen }
}

// Manager resolves inbound events to rooms, creating a room on the first
// join and dropping it once its last player is gone.
type Manager struct {
	store   Store
	cfg     config.Table
	out     Transport
	log     zerolog.Logger
	eval    game.Evaluator
	newRand func() *rand.Rand
	botID   func() string
}

func NewManager(s Store, cfg config.Table, log zerolog.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{
		store: s,
		cfg:   cfg,
		out:   nopTransport{},
		log:   log,
		eval:  game.PokerEvaluator{},
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		botID: func() string { return "bot-" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetTransport wires the outbound side once the hub exists.
func (m *Manager) SetTransport(out Transport) {
	m.log.Debug().Msg("transport attached")
	m.out = out
}

func (m *Manager) Config() config.Table { return m.cfg }

func (m *Manager) newRoom(id string) *Room {
	r := &Room{
		id: id,
		table: game.NewTable(id,
			game.WithRand(m.newRand()),
			game.WithEvaluator(m.eval),
			game.WithStartingChips(m.cfg.StartingChips),
		),
		out:      m.out,
		log:      m.log.With().Str("room", id).Logger(),
		botDelay: m.cfg.BotDelay,
		botRaise: m.cfg.BotRaiseStep,
		botID:    m.botID,
		inbox:    make(chan func()),
		done:     make(chan struct{}),
	}
	go r.loop()
	return r
}

func (m *Manager) Join(connID string, p shared.JoinParams) error {
	if p.RoomID == "" {
		m.out.Send(connID, shared.EventInvalidAction, ErrMissingRoomID.Error())
		return ErrMissingRoomID
	}
	if p.PlayerID == "" {
		// Checked before the registry so a bad join never creates a room.
		m.out.Send(connID, shared.EventInvalidAction, game.ErrMissingPlayerID.Error())
		return game.ErrMissingPlayerID
	}
	for {
		r, created := m.store.GetOrCreate(p.RoomID, func() *Room { return m.newRoom(p.RoomID) })
		if created {
			m.log.Info().Str("room", p.RoomID).Msg("room created")
		}
		err := r.Join(connID, p)
		if !errors.Is(err, ErrRoomClosed) {
			return err
		}
		// Lost a race with the last player leaving; start over with a fresh room.
		m.store.DeleteRoom(p.RoomID, r)
	}
}

func (m *Manager) lookup(roomID string) (*Room, error) {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRoomNotFound, roomID)
	}
	return r, nil
}

// Host-only operations fail silently for unknown rooms and non-hosts.

func (m *Manager) StartGame(connID, roomID string) error {
	return m.hostOp(roomID, func(r *Room) error { return r.Start(connID) })
}

func (m *Manager) NextStage(connID, roomID string) error {
	return m.hostOp(roomID, func(r *Room) error { return r.NextStage(connID) })
}

func (m *Manager) ResetGame(connID, roomID string) error {
	return m.hostOp(roomID, func(r *Room) error { return r.Reset(connID) })
}

func (m *Manager) hostOp(roomID string, op func(*Room) error) error {
	r, err := m.lookup(roomID)
	if err != nil {
		return err
	}
	if err := op(r); err != nil {
		if errors.Is(err, ErrRoomClosed) {
			return fmt.Errorf("%w: %q", ErrRoomNotFound, roomID)
		}
		return err
	}
	return nil
}

func (m *Manager) PlayerAction(connID string, p shared.ActionParams) error {
	r, err := m.lookup(p.RoomID)
	if err == nil {
		err = r.Act(connID, game.Action(p.Action), p.RaiseAmount)
		if errors.Is(err, ErrRoomClosed) {
			err = fmt.Errorf("%w: %q", ErrRoomNotFound, p.RoomID)
		}
	}
	if errors.Is(err, ErrRoomNotFound) {
		m.out.Send(connID, shared.EventInvalidAction, ErrRoomNotFound.Error())
	}
	return err
}

// Chat relays a message to everyone in the room without touching game state.
func (m *Manager) Chat(msg shared.ChatMessage) {
	m.out.Broadcast(msg.RoomID, shared.EventChatMessage, shared.ChatMessage{
		Message: msg.Message,
		Sender:  msg.Sender,
	})
}

// Disconnect unseats connID from every room it was in.
func (m *Manager) Disconnect(connID string, roomIDs []string) {
	for _, id := range roomIDs {
		r, ok := m.store.GetRoom(id)
		if !ok {
			continue
		}
		empty, err := r.Leave(connID)
		if err != nil && !errors.Is(err, ErrRoomClosed) {
			m.log.Warn().Err(err).Str("room", id).Msg("leave failed")
			continue
		}
		if empty || errors.Is(err, ErrRoomClosed) {
			if m.store.DeleteRoom(id, r) {
				m.log.Info().Str("room", id).Msg("deleted empty room")
			}
		}
	}
}

func (m *Manager) Snapshot(roomID string) (game.View, error) {
	r, err := m.lookup(roomID)
	if err != nil {
		return game.View{}, err
	}
	v, err := r.Snapshot()
	if errors.Is(err, ErrRoomClosed) {
		return game.View{}, fmt.Errorf("%w: %q", ErrRoomNotFound, roomID)
	}
	return v, err
}

func (m *Manager) Summaries() []Summary {
	rooms := m.store.Rooms()
	out := make([]Summary, 0, len(rooms))
	for _, r := range rooms {
		s, err := r.Summary()
		if err != nil {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Close stops every room goroutine and its pending bot timer.
func (m *Manager) Close() {
	for _, r := range m.store.Rooms() {
		r.shutdown()
		m.store.DeleteRoom(r.ID(), r)
	}
}
