package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"holdem-rooms/internal/config"
	"holdem-rooms/internal/game"
	"holdem-rooms/internal/room"
)

// Rooms is the read side of the room manager used by the HTTP API.
type Rooms interface {
	Summaries() []room.Summary
	Snapshot(roomID string) (game.View, error)
	Config() config.Table
}

// @Summary Health check
// @Tags System
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func HealthHandler(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// @Summary List rooms
// @Description Lists every live room with its player count, round and hand number
// @Tags Room
// @Produce json
// @Success 200 {object} RoomListResponse
// @Router /api/rooms [get]
func ListRoomsHandler(rooms Rooms) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, RoomListResponse{Rooms: rooms.Summaries()})
	}
}

// @Summary Get room
// @Description Public view of a room. Hole cards are only shown at showdown.
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} game.View
// @Failure 404 {object} ErrorResponse
// @Router /api/rooms/{id} [get]
func GetRoomHandler(rooms Rooms) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := rooms.Snapshot(c.Param("id"))
		if errors.Is(err, room.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, v)
	}
}
