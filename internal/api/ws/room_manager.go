package ws

import "holdem-rooms/internal/shared"

type RoomManager interface {
	Join(connID string, p shared.JoinParams) error
	StartGame(connID, roomID string) error
	PlayerAction(connID string, p shared.ActionParams) error
	NextStage(connID, roomID string) error
	ResetGame(connID, roomID string) error
	Chat(msg shared.ChatMessage)
	Disconnect(connID string, roomIDs []string)
}
