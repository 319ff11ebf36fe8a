package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const leaderboardMaxLimit = 100

// GetLeaderboard returns the top players ordered by wins. The same snapshot
// is pushed over websocket after every recorded outcome; this endpoint serves
// the initial page load.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		if n > leaderboardMaxLimit {
			n = leaderboardMaxLimit
		}
		limit = n
	}

	entries, err := h.Stats.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
