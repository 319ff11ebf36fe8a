package config

import (
	"os"
	"strconv"
	"time"

	"tictactoe_arena/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	AppHost     string
	DatabaseURL string
	BotToken    string
	BotUsername string
	JWTSecret   string
	AllowGuests bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Match engine timings
	TurnTimeout   time.Duration
	SweepInterval time.Duration

	// API limits
	APIRateLimit   int
	APIRateWindow  time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration
}

// Load reads configuration from the environment (.env is honored when present).
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		logger.Fatal("BOT_TOKEN is not set")
	}

	botUsername := os.Getenv("BOT_USERNAME")

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	allowGuests := os.Getenv("ALLOW_GUESTS") == "true"

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	// Turn deadline for the player to move; forfeits the turn when it elapses
	turnTimeout := 30 * time.Second
	if v := os.Getenv("TURN_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			turnTimeout = time.Duration(n) * time.Second
		}
	}

	// Cadence of the background deadline sweep
	sweepInterval := 1500 * time.Millisecond
	if v := os.Getenv("SWEEP_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			sweepInterval = time.Duration(n) * time.Millisecond
		}
	}

	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}

	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	authRateLimit := 5
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			authRateLimit = n
		}
	}

	authRateWindow := time.Minute
	if v := os.Getenv("AUTH_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			authRateWindow = time.Duration(n) * time.Second
		}
	}

	return &Config{
		AppPort:     port,
		AppHost:     os.Getenv("APP_HOST"),
		DatabaseURL: dbURL,
		BotToken:    botToken,
		BotUsername: botUsername,
		JWTSecret:   jwtSecret,
		AllowGuests: allowGuests,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		TurnTimeout:   turnTimeout,
		SweepInterval: sweepInterval,

		APIRateLimit:   apiRateLimit,
		APIRateWindow:  apiRateWindow,
		AuthRateLimit:  authRateLimit,
		AuthRateWindow: authRateWindow,
	}
}
