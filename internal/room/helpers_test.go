package room

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"holdem-rooms/internal/config"
	"holdem-rooms/internal/shared"
)

type message struct {
	To    string // connection id, empty for broadcasts
	Room  string // room id, empty for unicasts
	Event string
	Data  any
}

type recorder struct {
	mu   sync.Mutex
	msgs []message
}

func (r *recorder) Send(connID, event string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, message{To: connID, Event: event, Data: data})
}

func (r *recorder) Broadcast(roomID, event string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, message{Room: roomID, Event: event, Data: data})
}

func (r *recorder) sentTo(connID, event string) []message {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []message
	for _, m := range r.msgs {
		if m.To == connID && m.Event == event {
			out = append(out, m)
		}
	}
	return out
}

func (r *recorder) broadcasts(roomID, event string) []message {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []message
	for _, m := range r.msgs {
		if m.Room == roomID && m.Event == event {
			out = append(out, m)
		}
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = nil
}

type mapStore struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

func newMapStore() *mapStore { return &mapStore{rooms: map[string]*Room{}} }

func (s *mapStore) GetRoom(id string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	return r, ok
}

func (s *mapStore) GetOrCreate(id string, create func() *Room) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[id]; ok {
		return r, false
	}
	r := create()
	s.rooms[id] = r
	return r, true
}

func (s *mapStore) DeleteRoom(id string, r *Room) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rooms[id] != r {
		return false
	}
	delete(s.rooms, id)
	return true
}

func (s *mapStore) Rooms() []*Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func testTableConfig(delay time.Duration) config.Table {
	return config.Table{StartingChips: 1000, BotDelay: delay, BotRaiseStep: 50}
}

func newTestManager(t *testing.T, delay time.Duration) (*Manager, *mapStore, *recorder) {
	t.Helper()
	s := newMapStore()
	out := &recorder{}
	m := NewManager(s, testTableConfig(delay), zerolog.Nop(),
		WithSeed(7),
		WithBotIDGen(func() string { return "bot-1" }),
	)
	m.SetTransport(out)
	t.Cleanup(m.Close)
	return m, s, out
}

func join(t *testing.T, m *Manager, roomID, connID, playerID string) {
	t.Helper()
	require.NoError(t, m.Join(connID, shared.JoinParams{RoomID: roomID, PlayerName: playerID, PlayerID: playerID}))
}
