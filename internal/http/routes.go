package http

import (
	"context"
	"time"

	"tictactoe_arena/internal/config"
	"tictactoe_arena/internal/http/handlers"
	"tictactoe_arena/internal/http/middleware"
	"tictactoe_arena/internal/match"
	"tictactoe_arena/internal/service"
	"tictactoe_arena/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes wires the REST surface, the metrics endpoint and the
// websocket entry point onto the engine.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, stats *service.StatsService, manager *match.Manager, hub *ws.Hub, version string) {
	h := handlers.NewHandler(db, cfg.BotToken, stats, manager)
	h.BotUsername = cfg.BotUsername
	h.AllowGuests = cfg.AllowGuests
	h.TurnTimeoutSeconds = int(cfg.TurnTimeout.Seconds())
	h.OnPlayerSeen = func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if total, err := stats.TotalPlayers(ctx); err == nil {
			hub.BroadcastAll(ws.MsgStatsUpdated, gin.H{"total_players": total})
		}
	}

	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks and metrics (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	// auth stays limited even without Redis: the in-memory limiter backs up
	// the fail-open Redis one
	api.POST("/auth/telegram",
		middleware.RedisRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow),
		middleware.SimpleRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow),
		h.Auth)

	api.GET("/me", middleware.JWT(), h.Me)
	api.GET("/leaderboard", h.GetLeaderboard)
	api.GET("/stats", h.GetStats)
	api.GET("/config", h.GetConfig)

	// WebSocket for matches; auth happens in the handler via ?token=
	r.GET("/ws", ws.HandleWS(hub, manager))
}
