package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tictactoe_arena/internal/config"
	"tictactoe_arena/internal/db"
	"tictactoe_arena/internal/domain"
	httpServer "tictactoe_arena/internal/http"
	"tictactoe_arena/internal/http/middleware"
	"tictactoe_arena/internal/logger"
	"tictactoe_arena/internal/match"
	"tictactoe_arena/internal/repository"
	"tictactoe_arena/internal/service"
	"tictactoe_arena/internal/ws"

	"github.com/gin-gonic/gin"
)

var version = "dev"

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT") == "json")

	cfg := config.Load()
	service.InitJWT()

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	players := repository.NewPlayerRepository(dbPool)
	leaderboard := repository.NewLeaderboardRepository(dbPool)
	stats := service.NewStatsService(players, leaderboard)

	manager := match.NewManager(cfg.TurnTimeout, stats)
	hub := ws.NewHub()

	// leaderboard pushes: every recorded outcome refreshes all clients,
	// and fresh connections get the current standings immediately
	manager.OnOutcome = func(outcome domain.MatchOutcome) {
		pushLeaderboard(hub, stats)
	}
	hub.OnConnect = func(c *ws.Client) {
		go pushSnapshots(c, stats)
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	sweeper := match.NewSweeper(manager, cfg.SweepInterval)
	go sweeper.Run(sweepCtx)

	r := gin.Default()

	// CORS for production (frontend on different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	httpServer.RegisterRoutes(r, dbPool, cfg, stats, manager, hub, version)

	srv := &http.Server{
		Addr:    cfg.AppHost + ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

func pushLeaderboard(hub *ws.Hub, stats *service.StatsService) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entries, err := stats.Leaderboard(ctx, 10)
	if err != nil {
		logger.Error("leaderboard refresh failed", "error", err)
		return
	}
	hub.BroadcastAll(ws.MsgLeaderboardUpdated, gin.H{"leaderboard": entries})

	if total, err := stats.TotalPlayers(ctx); err == nil {
		hub.BroadcastAll(ws.MsgStatsUpdated, gin.H{"total_players": total})
	}
}

func pushSnapshots(c *ws.Client, stats *service.StatsService) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if entries, err := stats.Leaderboard(ctx, 10); err == nil {
		c.Send(ws.MsgLeaderboardUpdated, gin.H{"leaderboard": entries})
	}
	if total, err := stats.TotalPlayers(ctx); err == nil {
		c.Send(ws.MsgStatsUpdated, gin.H{"total_players": total})
	}
}
