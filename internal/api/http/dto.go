package http

import "holdem-rooms/internal/room"

// RoomListResponse is the payload of GET /api/rooms.
type RoomListResponse struct {
	Rooms []room.Summary `json:"rooms"`
}

// ConfigResponse mirrors the table settings every new room is created with.
type ConfigResponse struct {
	StartingChips int    `json:"startingChips"`
	BotDelay      string `json:"botDelay"`
	BotDelayMS    int64  `json:"botDelayMs"`
	BotRaiseStep  int    `json:"botRaiseStep"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
