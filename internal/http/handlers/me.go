package handlers

import (
	"net/http"

	"tictactoe_arena/internal/repository"

	"github.com/gin-gonic/gin"
)

// Me returns the authenticated player's profile with their standing.
func (h *Handler) Me(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	repo := repository.NewPlayerRepository(h.DB)
	ctx := c.Request.Context()
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	resp := gin.H{
		"id":         user.ID,
		"name":       user.DisplayName,
		"first_seen": user.FirstSeen,
		"last_seen":  user.LastSeen,
	}

	// include live match id when the user is mid-game, so a reloaded client
	// knows to wait for the room snapshot
	if h.Manager != nil {
		if matchID, busy := h.Manager.ActiveMatch(userID); busy {
			resp["active_match_id"] = matchID
		}
	}

	c.JSON(http.StatusOK, resp)
}
