package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tictactoe_arena/internal/repository"
	"tictactoe_arena/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthRequest struct {
	InitData  string `json:"init_data"`
	GuestName string `json:"guest_name"`
}

// Auth exchanges Telegram WebApp init_data for a session token. When guest
// access is enabled, a request without init_data gets a throwaway guest
// identity instead.
func (h *Handler) Auth(c *gin.Context) {
	var req AuthRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if req.InitData == "" {
		if !h.AllowGuests {
			c.JSON(http.StatusBadRequest, gin.H{"error": "init_data required"})
			return
		}
		h.authGuest(c, req.GuestName)
		return
	}

	if len(req.InitData) > 4096 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "init_data too long"})
		return
	}

	values, ok := service.ValidateTelegramInitData(req.InitData, h.BotToken)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or stale telegram data"})
		return
	}

	userRaw := values.Get("user")
	if userRaw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user not found"})
		return
	}

	var tgUser struct {
		ID        int64  `json:"id"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
	}
	if err := json.Unmarshal([]byte(userRaw), &tgUser); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user json"})
		return
	}

	userID := "tg:" + strconv.FormatInt(tgUser.ID, 10)
	displayName := service.SafeDisplayName(tgUser.Username, tgUser.FirstName, strconv.FormatInt(tgUser.ID, 10))

	h.issueToken(c, userID, displayName)
}

func (h *Handler) authGuest(c *gin.Context, guestName string) {
	userID := "guest:" + uuid.NewString()
	if guestName == "" {
		guestName = "Guest"
	}
	if len(guestName) > 32 {
		guestName = guestName[:32]
	}
	h.issueToken(c, userID, guestName)
}

func (h *Handler) issueToken(c *gin.Context, userID, displayName string) {
	ctx := c.Request.Context()
	players := repository.NewPlayerRepository(h.DB)
	if err := players.UpsertSeen(ctx, userID, displayName); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	token, err := service.GenerateJWT(userID, displayName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	if h.OnPlayerSeen != nil {
		go h.OnPlayerSeen()
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":   userID,
			"name": displayName,
		},
	})
}
