package shared

// Inbound events.
const (
	EventJoinRoom     = "joinRoom"
	EventStartGame    = "startGame"
	EventPlayerAction = "playerAction"
	EventNextStage    = "nextStage"
	EventResetGame    = "resetGame"
)

// Outbound events.
const (
	EventRoomData      = "roomData"
	EventRoundStage    = "roundStage"
	EventBoardCards    = "boardCards"
	EventDealCards     = "dealCards"
	EventYourTurn      = "yourTurn"
	EventTurnEnded     = "turnEnded"
	EventInvalidAction = "invalidAction"
	EventGameResult    = "gameResult"
)

// EventChatMessage travels both ways.
const EventChatMessage = "chatMessage"

// Envelope is the frame shape on the websocket in both directions.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type JoinParams struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
	PlayerID   string `json:"playerId"`
}

type RoomParams struct {
	RoomID string `json:"roomId"`
}

type ActionParams struct {
	RoomID      string `json:"roomId"`
	Action      string `json:"action"`
	RaiseAmount int    `json:"raiseAmount"`
}

type ChatMessage struct {
	RoomID  string `json:"roomId,omitempty"`
	Message string `json:"message"`
	Sender  string `json:"sender"`
}
