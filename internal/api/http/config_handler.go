package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetConfigHandler returns the table settings
// @Summary Get table settings
// @Description Starting stack, bot think time and bot raise step applied to new rooms
// @Tags Config
// @Produce json
// @Success 200 {object} ConfigResponse
// @Router /api/config [get]
func GetConfigHandler(rooms Rooms) gin.HandlerFunc {
	return func(c *gin.Context) {
		t := rooms.Config()
		c.JSON(http.StatusOK, ConfigResponse{
			StartingChips: t.StartingChips,
			BotDelay:      t.BotDelay.String(),
			BotDelayMS:    t.BotDelay.Milliseconds(),
			BotRaiseStep:  t.BotRaiseStep,
		})
	}
}
