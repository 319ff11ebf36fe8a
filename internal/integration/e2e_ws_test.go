package integration

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"

	"tictactoe_arena/internal/config"
	httpserver "tictactoe_arena/internal/http"
	"tictactoe_arena/internal/match"
	"tictactoe_arena/internal/repository"
	"tictactoe_arena/internal/service"
	"tictactoe_arena/internal/ws"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func send(t *testing.T, conn *websocket.Conn, msgType string, payload any) {
	t.Helper()
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		raw = b
	}
	msg, err := json.Marshal(envelope{Type: msgType, Payload: raw})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}

// waitFor skips unrelated frames (leaderboard and stats pushes) until the
// wanted event arrives.
func waitFor(t *testing.T, conn *websocket.Conn, msgType string) json.RawMessage {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for {
		conn.SetReadDeadline(deadline)
		_, raw, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for %s: %v", msgType, err)
		}
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("bad frame %q: %v", raw, err)
		}
		if env.Type == msgType {
			return env.Payload
		}
	}
}

func TestE2E_WS_QuickMatchToWin(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	t.Setenv("JWT_SECRET", "e2e-test-secret")
	service.InitJWT()

	dbp, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	defer dbp.Close()

	applyMigrations(t, dbp)

	players := repository.NewPlayerRepository(dbp)
	leaderboard := repository.NewLeaderboardRepository(dbp)
	stats := service.NewStatsService(players, leaderboard)

	manager := match.NewManager(30*time.Second, stats)
	hub := ws.NewHub()

	cfg := &config.Config{
		TurnTimeout:    30 * time.Second,
		APIRateLimit:   1000,
		APIRateWindow:  time.Minute,
		AuthRateLimit:  1000,
		AuthRateWindow: time.Minute,
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	httpserver.RegisterRoutes(r, dbp, cfg, stats, manager, hub, "test")

	srv := httptest.NewServer(r)
	defer srv.Close()
	wsBase := "ws" + strings.TrimPrefix(srv.URL, "http")

	tokenA, err := service.GenerateJWT("e2e:a", "E2E-A")
	if err != nil {
		t.Fatalf("token A: %v", err)
	}
	tokenB, err := service.GenerateJWT("e2e:b", "E2E-B")
	if err != nil {
		t.Fatalf("token B: %v", err)
	}

	connA, _, err := websocket.DefaultDialer.Dial(wsBase+"/ws?token="+tokenA, nil)
	if err != nil {
		t.Fatalf("dial A: %v", err)
	}
	defer connA.Close()

	connB, _, err := websocket.DefaultDialer.Dial(wsBase+"/ws?token="+tokenB, nil)
	if err != nil {
		t.Fatalf("dial B: %v", err)
	}
	defer connB.Close()

	send(t, connA, "findMatch", nil)
	send(t, connB, "findMatch", nil)

	var found struct {
		Match match.Snapshot `json:"match"`
	}
	if err := json.Unmarshal(waitFor(t, connA, "matchFound"), &found); err != nil {
		t.Fatalf("unmarshal matchFound: %v", err)
	}
	waitFor(t, connB, "matchFound")

	if len(found.Match.Players) != 2 || found.Match.Players[0].Mark != match.MarkX {
		t.Fatalf("unexpected opening snapshot: %+v", found.Match)
	}

	// connections pair in order but concurrent delivery means either user
	// can be X; route moves by the snapshot
	xConn, oConn := connA, connB
	xID := found.Match.Players[0].ID
	if xID == "e2e:b" {
		xConn, oConn = connB, connA
	}

	for _, mv := range []struct {
		conn *websocket.Conn
		cell string
	}{
		{xConn, "1"}, {oConn, "4"}, {xConn, "2"}, {oConn, "5"}, {xConn, "3"},
	} {
		send(t, mv.conn, "submitMove", map[string]string{"cellId": mv.cell})
		waitFor(t, connA, "matchUpdated")
		waitFor(t, connB, "matchUpdated")
	}

	send(t, xConn, "declareOutcome", map[string]string{"result": "win", "winningMark": "X"})

	var ended struct {
		Result string `json:"result"`
		Winner string `json:"winner"`
	}
	if err := json.Unmarshal(waitFor(t, oConn, "matchEnded"), &ended); err != nil {
		t.Fatalf("unmarshal matchEnded: %v", err)
	}
	if ended.Result != "win" {
		t.Errorf("result = %q, want win", ended.Result)
	}

	// outcome persistence is asynchronous
	deadline := time.Now().Add(5 * time.Second)
	for {
		entries, err := leaderboard.Snapshot(context.Background(), 100)
		if err != nil {
			t.Fatalf("leaderboard snapshot: %v", err)
		}
		won := false
		for _, e := range entries {
			if e.UserID == xID && e.Wins >= 1 {
				won = true
			}
		}
		if won {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("winner never appeared on the leaderboard")
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func TestE2E_WS_DisconnectAborts(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	t.Setenv("JWT_SECRET", "e2e-test-secret")
	service.InitJWT()

	dbp, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	defer dbp.Close()

	applyMigrations(t, dbp)

	players := repository.NewPlayerRepository(dbp)
	leaderboard := repository.NewLeaderboardRepository(dbp)
	stats := service.NewStatsService(players, leaderboard)
	manager := match.NewManager(30*time.Second, stats)
	hub := ws.NewHub()

	cfg := &config.Config{
		TurnTimeout:    30 * time.Second,
		APIRateLimit:   1000,
		APIRateWindow:  time.Minute,
		AuthRateLimit:  1000,
		AuthRateWindow: time.Minute,
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	httpserver.RegisterRoutes(r, dbp, cfg, stats, manager, hub, "test")

	srv := httptest.NewServer(r)
	defer srv.Close()
	wsBase := "ws" + strings.TrimPrefix(srv.URL, "http")

	tokenA, _ := service.GenerateJWT("e2e:drop-a", "DropA")
	tokenB, _ := service.GenerateJWT("e2e:drop-b", "DropB")

	connA, _, err := websocket.DefaultDialer.Dial(wsBase+"/ws?token="+tokenA, nil)
	if err != nil {
		t.Fatalf("dial A: %v", err)
	}
	defer connA.Close()
	connB, _, err := websocket.DefaultDialer.Dial(wsBase+"/ws?token="+tokenB, nil)
	if err != nil {
		t.Fatalf("dial B: %v", err)
	}
	defer connB.Close()

	send(t, connA, "findMatch", nil)
	send(t, connB, "findMatch", nil)
	waitFor(t, connA, "matchFound")
	waitFor(t, connB, "matchFound")

	connA.Close()

	var aborted struct {
		Reason             string `json:"reason"`
		DisconnectedUserID string `json:"disconnectedUserId"`
	}
	if err := json.Unmarshal(waitFor(t, connB, "matchAborted"), &aborted); err != nil {
		t.Fatalf("unmarshal matchAborted: %v", err)
	}
	if aborted.Reason != "disconnect" || aborted.DisconnectedUserID != "e2e:drop-a" {
		t.Errorf("aborted = %+v, want disconnect by e2e:drop-a", aborted)
	}
}
