package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"

	"holdem-rooms/internal/room"
	"holdem-rooms/internal/shared"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Hub is the transport: it names every socket with a connection id, tracks
// room membership and delivers unicast and room-wide events.
type Hub struct {
	mu          sync.RWMutex
	clients     map[string]*client
	rooms       map[string]map[string]*client
	roomManager RoomManager
	upgrader    websocket.Upgrader
	log         zerolog.Logger
}

type client struct {
	id    string
	conn  *websocket.Conn
	send  chan []byte
	rooms map[string]struct{} // guarded by Hub.mu
}

// NewHub accepts websocket upgrades from allowedOrigin, or from anywhere when it is "*" or empty.
func NewHub(roomManager RoomManager, log zerolog.Logger, allowedOrigin string) *Hub {
	h := &Hub{
		clients:     make(map[string]*client),
		rooms:       make(map[string]map[string]*client),
		roomManager: roomManager,
		log:         log.With().Str("component", "ws").Logger(),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" || allowedOrigin == "*" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}
	return h
}

func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("upgrade failed")
		return
	}
	cl := &client{
		id:    uuid.NewString(),
		conn:  conn,
		send:  make(chan []byte, sendBuffer),
		rooms: make(map[string]struct{}),
	}
	h.register(cl)
	h.log.Info().Str("conn", cl.id).Str("remote", conn.RemoteAddr().String()).Msg("user connected")

	go h.writePump(cl)
	h.readPump(cl)

	roomIDs := h.unregister(cl)
	h.roomManager.Disconnect(cl.id, roomIDs)
	h.log.Info().Str("conn", cl.id).Msg("user disconnected")
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[cl.id] = cl
}

// unregister drops the client and returns the rooms it had joined.
func (h *Hub) unregister(cl *client) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	roomIDs := make([]string, 0, len(cl.rooms))
	for id := range cl.rooms {
		roomIDs = append(roomIDs, id)
		delete(h.rooms[id], cl.id)
		if len(h.rooms[id]) == 0 {
			delete(h.rooms, id)
		}
	}
	sort.Strings(roomIDs)
	delete(h.clients, cl.id)
	close(cl.send)
	return roomIDs
}

// join subscribes before the room runs the join so the joiner sees its first
// roomData, and drops a fresh subscription again when the join is rejected.
func (h *Hub) join(cl *client, p shared.JoinParams) error {
	fresh := p.RoomID != "" && h.subscribe(cl, p.RoomID)
	err := h.roomManager.Join(cl.id, p)
	if err != nil && fresh {
		h.unsubscribe(cl, p.RoomID)
	}
	return err
}

// subscribe reports whether cl was not yet in roomID.
func (h *Hub) subscribe(cl *client, roomID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := cl.rooms[roomID]; ok {
		return false
	}
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[string]*client)
	}
	h.rooms[roomID][cl.id] = cl
	cl.rooms[roomID] = struct{}{}
	return true
}

func (h *Hub) unsubscribe(cl *client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(cl.rooms, roomID)
	delete(h.rooms[roomID], cl.id)
	if len(h.rooms[roomID]) == 0 {
		delete(h.rooms, roomID)
	}
}

// Members reports how many connections are subscribed to roomID.
func (h *Hub) Members(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

func (h *Hub) Send(connID string, event string, data any) {
	b, err := encode(event, data)
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("encode failed")
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if cl, ok := h.clients[connID]; ok {
		h.deliver(cl, b)
	}
}

func (h *Hub) Broadcast(roomID string, event string, data any) {
	b, err := encode(event, data)
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("encode failed")
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, cl := range h.rooms[roomID] {
		h.deliver(cl, b)
	}
}

// deliver must be called with h.mu held.
func (h *Hub) deliver(cl *client, b []byte) {
	select {
	case cl.send <- b:
	default:
		h.log.Warn().Str("conn", cl.id).Msg("send buffer full, dropping message")
	}
}

func encode(event string, data any) ([]byte, error) {
	return json.Marshal(shared.Envelope{Event: event, Data: data})
}

func (h *Hub) readPump(cl *client) {
	defer cl.conn.Close()
	cl.conn.SetReadLimit(maxMessageSize)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg shared.Envelope
		if err := cl.conn.ReadJSON(&msg); err != nil {
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				h.log.Warn().Err(err).Str("conn", cl.id).Msg("invalid json")
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Warn().Err(err).Str("conn", cl.id).Msg("read error")
			}
			return
		}
		h.handle(cl, msg)
	}
}

func (h *Hub) writePump(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = cl.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) handle(cl *client, msg shared.Envelope) {
	var err error
	switch msg.Event {
	case shared.EventJoinRoom:
		var p shared.JoinParams
		if err = decode(msg.Data, &p); err == nil {
			if p.RoomID != "" {
				h.subscribe(cl, p.RoomID)
			}
			err = h.roomManager.Join(cl.id, p)
		}
	case shared.EventStartGame:
		var p shared.RoomParams
		if err = decode(msg.Data, &p); err == nil {
			err = h.roomManager.StartGame(cl.id, p.RoomID)
		}
	case shared.EventPlayerAction:
		var p shared.ActionParams
		if err = decode(msg.Data, &p); err == nil {
			err = h.roomManager.PlayerAction(cl.id, p)
		}
	case shared.EventNextStage:
		var p shared.RoomParams
		if err = decode(msg.Data, &p); err == nil {
			err = h.roomManager.NextStage(cl.id, p.RoomID)
		}
	case shared.EventResetGame:
		var p shared.RoomParams
		if err = decode(msg.Data, &p); err == nil {
			err = h.roomManager.ResetGame(cl.id, p.RoomID)
		}
	case shared.EventChatMessage:
		var p shared.ChatMessage
		if err = decode(msg.Data, &p); err == nil {
			h.roomManager.Chat(p)
		}
	default:
		h.log.Warn().Str("conn", cl.id).Str("event", msg.Event).Msg("unknown event")
		return
	}

	switch {
	case err == nil:
	case errors.Is(err, room.ErrNotHost), errors.Is(err, room.ErrNotSeated):
		h.log.Debug().Err(err).Str("conn", cl.id).Str("event", msg.Event).Msg("ignored")
	default:
		h.log.Debug().Err(err).Str("conn", cl.id).Str("event", msg.Event).Msg("rejected")
	}
}

// decode maps a loosely typed payload onto a params struct by its json tags.
func decode(in any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}
