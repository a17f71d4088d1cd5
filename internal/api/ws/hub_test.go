package ws

import (
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdem-rooms/internal/shared"
)

type fakeManager struct {
	mu          sync.Mutex
	joins       []shared.JoinParams
	joinConn    string
	actions     []shared.ActionParams
	starts      []string
	chats       []shared.ChatMessage
	disconnects map[string][]string
	rejectJoin  map[string]error // by player id
}

func newFakeManager() *fakeManager {
	return &fakeManager{disconnects: map[string][]string{}}
}

func (f *fakeManager) Join(connID string, p shared.JoinParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.joins = append(f.joins, p)
	if err := f.rejectJoin[p.PlayerID]; err != nil {
		return err
	}
	f.joinConn = connID
	return nil
}

func (f *fakeManager) StartGame(_, roomID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts = append(f.starts, roomID)
	return nil
}

func (f *fakeManager) PlayerAction(_ string, p shared.ActionParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, p)
	return nil
}

func (f *fakeManager) NextStage(string, string) error { return nil }
func (f *fakeManager) ResetGame(string, string) error { return nil }

func (f *fakeManager) Chat(msg shared.ChatMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chats = append(f.chats, msg)
}

func (f *fakeManager) Disconnect(connID string, roomIDs []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnects[connID] = roomIDs
}

func (f *fakeManager) snapshot(fn func(f *fakeManager)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func TestDecode_AcceptsLooselyTypedPayloads(t *testing.T) {
	var p shared.ActionParams
	err := decode(map[string]any{"roomId": "r1", "action": "raise", "raiseAmount": "50"}, &p)
	require.NoError(t, err)
	assert.Equal(t, shared.ActionParams{RoomID: "r1", Action: "raise", RaiseAmount: 50}, p)

	p = shared.ActionParams{}
	require.NoError(t, decode(map[string]any{"roomId": "r1", "action": "call", "raiseAmount": float64(20)}, &p))
	assert.Equal(t, 20, p.RaiseAmount)

	var j shared.JoinParams
	require.NoError(t, decode(map[string]any{"roomId": "abc123", "playerName": "Ann", "playerId": "p1"}, &j))
	assert.Equal(t, shared.JoinParams{RoomID: "abc123", PlayerName: "Ann", PlayerID: "p1"}, j)
}

func TestDecode_RejectsWrongShape(t *testing.T) {
	var p shared.RoomParams
	require.Error(t, decode("not an object", &p))
}

func startHub(t *testing.T, mgr RoomManager) (*Hub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := NewHub(mgr, zerolog.Nop(), "*")
	r := gin.New()
	r.GET("/ws", hub.HandleWS)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestHub_RoutesEventsAndTracksMembership(t *testing.T) {
	mgr := newFakeManager()
	hub, url := startHub(t, mgr)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(shared.Envelope{Event: shared.EventJoinRoom, Data: shared.JoinParams{RoomID: "r1", PlayerName: "Ann", PlayerID: "p1"}}))
	require.NoError(t, conn.WriteJSON(shared.Envelope{Event: shared.EventPlayerAction, Data: map[string]any{"roomId": "r1", "action": "raise", "raiseAmount": "75"}}))
	require.NoError(t, conn.WriteJSON(shared.Envelope{Event: shared.EventStartGame, Data: shared.RoomParams{RoomID: "r1"}}))
	require.NoError(t, conn.WriteJSON(shared.Envelope{Event: shared.EventChatMessage, Data: shared.ChatMessage{RoomID: "r1", Message: "hi", Sender: "Ann"}}))

	require.Eventually(t, func() bool {
		var done bool
		mgr.snapshot(func(f *fakeManager) { done = len(f.chats) == 1 })
		return done
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, hub.Members("r1"))

	var connID string
	mgr.snapshot(func(f *fakeManager) {
		connID = f.joinConn
		assert.Equal(t, []shared.JoinParams{{RoomID: "r1", PlayerName: "Ann", PlayerID: "p1"}}, f.joins)
		assert.Equal(t, []shared.ActionParams{{RoomID: "r1", Action: "raise", RaiseAmount: 75}}, f.actions)
		assert.Equal(t, []string{"r1"}, f.starts)
	})
	require.NotEmpty(t, connID)

	hub.Broadcast("r1", shared.EventRoundStage, "flop")
	hub.Send(connID, shared.EventYourTurn, nil)
	hub.Broadcast("elsewhere", shared.EventRoundStage, "river")

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg shared.Envelope
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, shared.Envelope{Event: shared.EventRoundStage, Data: "flop"}, msg)
	msg = shared.Envelope{}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, shared.EventYourTurn, msg.Event)
	assert.Nil(t, msg.Data)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool {
		var rooms []string
		var ok bool
		mgr.snapshot(func(f *fakeManager) { rooms, ok = f.disconnects[connID] })
		return ok && len(rooms) == 1 && rooms[0] == "r1"
	}, 2*time.Second, 10*time.Millisecond)
	assert.Zero(t, hub.Members("r1"))
}

func TestHub_RejectedJoinLeavesNoSubscription(t *testing.T) {
	mgr := newFakeManager()
	mgr.rejectJoin = map[string]error{"bot-1": errors.New("player id is reserved")}
	hub, url := startHub(t, mgr)
	conn := dial(t, url)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(shared.Envelope{Event: shared.EventJoinRoom, Data: shared.JoinParams{RoomID: "r1", PlayerID: "p1"}}))
	require.NoError(t, conn.WriteJSON(shared.Envelope{Event: shared.EventJoinRoom, Data: shared.JoinParams{RoomID: "r2", PlayerID: "bot-1"}}))
	// A failed second join to a room already joined keeps the first membership.
	require.NoError(t, conn.WriteJSON(shared.Envelope{Event: shared.EventJoinRoom, Data: shared.JoinParams{RoomID: "r1", PlayerID: "bot-1"}}))
	require.NoError(t, conn.WriteJSON(shared.Envelope{Event: shared.EventChatMessage, Data: shared.ChatMessage{RoomID: "r1", Message: "done"}}))

	require.Eventually(t, func() bool {
		var n int
		mgr.snapshot(func(f *fakeManager) { n = len(f.chats) })
		return n == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, hub.Members("r1"))
	assert.Zero(t, hub.Members("r2"))

	hub.Broadcast("r2", shared.EventRoundStage, "flop")
	hub.Broadcast("r1", shared.EventRoundStage, "turn")
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg shared.Envelope
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, shared.Envelope{Event: shared.EventRoundStage, Data: "turn"}, msg)
}

func TestHub_SurvivesMalformedFrames(t *testing.T) {
	mgr := newFakeManager()
	_, url := startHub(t, mgr)
	conn := dial(t, url)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, conn.WriteJSON(shared.Envelope{Event: "mystery"}))
	require.NoError(t, conn.WriteJSON(shared.Envelope{Event: shared.EventJoinRoom, Data: shared.JoinParams{RoomID: "r1", PlayerID: "p1"}}))

	require.Eventually(t, func() bool {
		var n int
		mgr.snapshot(func(f *fakeManager) { n = len(f.joins) })
		return n == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHub_SendToUnknownConnectionIsDropped(t *testing.T) {
	hub := NewHub(newFakeManager(), zerolog.Nop(), "*")
	assert.NotPanics(t, func() {
		hub.Send("nobody", shared.EventYourTurn, nil)
		hub.Broadcast("nowhere", shared.EventRoomData, nil)
	})
}
