package handlers

import (
	"tictactoe_arena/internal/match"
	"tictactoe_arena/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Handler carries the shared dependencies of the REST endpoints.
type Handler struct {
	DB          *pgxpool.Pool
	BotToken    string
	BotUsername string
	AllowGuests bool

	Stats   *service.StatsService
	Manager *match.Manager

	TurnTimeoutSeconds int

	// OnPlayerSeen fires after a successful auth upsert; wired to the
	// global stats push so totals refresh when someone new signs in.
	OnPlayerSeen func()
}

func NewHandler(db *pgxpool.Pool, botToken string, stats *service.StatsService, manager *match.Manager) *Handler {
	return &Handler{
		DB:       db,
		BotToken: botToken,
		Stats:    stats,
		Manager:  manager,
	}
}

// identity reads what the JWT middleware stored on the request context.
func identity(c interface{ Get(string) (any, bool) }) (userID, displayName string, ok bool) {
	uidVal, exists := c.Get("user_id")
	if !exists {
		return "", "", false
	}
	uid, ok := uidVal.(string)
	if !ok || uid == "" {
		return "", "", false
	}
	if nameVal, exists := c.Get("display_name"); exists {
		displayName, _ = nameVal.(string)
	}
	return uid, displayName, true
}
