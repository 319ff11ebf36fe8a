package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetConfig exposes the client-relevant game settings so the frontend renders
// the same countdown the server enforces.
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"turn_timeout_seconds": h.TurnTimeoutSeconds,
		"bot_username":         h.BotUsername,
		"allow_guests":         h.AllowGuests,
	})
}
