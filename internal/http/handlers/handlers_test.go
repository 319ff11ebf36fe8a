package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestGetConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := &Handler{
		BotUsername:        "ArenaBot",
		AllowGuests:        true,
		TurnTimeoutSeconds: 30,
	}

	r := gin.New()
	r.GET("/api/config", h.GetConfig)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/config", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		TurnTimeoutSeconds int    `json:"turn_timeout_seconds"`
		BotUsername        string `json:"bot_username"`
		AllowGuests        bool   `json:"allow_guests"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.TurnTimeoutSeconds != 30 || resp.BotUsername != "ArenaBot" || !resp.AllowGuests {
		t.Errorf("unexpected config response: %+v", resp)
	}
}

func TestGetLeaderboardRejectsBadLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := &Handler{}
	r := gin.New()
	r.GET("/api/leaderboard", h.GetLeaderboard)

	for _, limit := range []string{"abc", "0", "-5"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/api/leaderboard?limit="+limit, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("limit %q: status = %d, want 400", limit, w.Code)
		}
	}
}

func TestAuthRejectsGuestsWhenDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := &Handler{AllowGuests: false}
	r := gin.New()
	r.POST("/api/auth/telegram", h.Auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/telegram", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty body: status = %d, want 400", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/auth/telegram", strings.NewReader(`{"init_data":""}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty init_data: status = %d, want 400", w.Code)
	}
}
