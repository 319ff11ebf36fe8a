package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStats reports aggregate numbers for the landing screen.
func (h *Handler) GetStats(c *gin.Context) {
	total, err := h.Stats.TotalPlayers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_players": total,
	})
}
