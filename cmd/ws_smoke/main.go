package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"tictactoe_arena/internal/service"
)

// ws_smoke drives one full quick-find match against a running server:
// two clients pair, X takes the top row, X declares the win.

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func main() {
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET not set")
	}
	service.InitJWT()

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	tokenA, err := service.GenerateJWT("smoke:a", "SmokeA")
	if err != nil {
		log.Fatalf("gen token A: %v", err)
	}
	tokenB, err := service.GenerateJWT("smoke:b", "SmokeB")
	if err != nil {
		log.Fatalf("gen token B: %v", err)
	}

	dialer := websocket.DefaultDialer

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	connA, _, err := dialer.Dial(fmt.Sprintf("ws://127.0.0.1:%s/ws?token=%s", port, tokenA), nil)
	if err != nil {
		log.Fatalf("dial A: %v", err)
	}
	defer connA.Close()

	connB, _, err := dialer.Dial(fmt.Sprintf("ws://127.0.0.1:%s/ws?token=%s", port, tokenB), nil)
	if err != nil {
		log.Fatalf("dial B: %v", err)
	}
	defer connB.Close()

	send(connA, "findMatch", nil)
	send(connB, "findMatch", nil)

	waitFor(connA, "matchFound")
	waitFor(connB, "matchFound")
	fmt.Println("matched")

	// X takes the top row; O fills the middle row behind it
	moves := []struct {
		conn *websocket.Conn
		cell string
	}{
		{connA, "1"}, {connB, "4"}, {connA, "2"}, {connB, "5"}, {connA, "3"},
	}
	for _, mv := range moves {
		send(mv.conn, "submitMove", map[string]string{"cellId": mv.cell})
		waitFor(connA, "matchUpdated")
		waitFor(connB, "matchUpdated")
	}

	send(connA, "declareOutcome", map[string]string{"result": "win", "winningMark": "X"})
	raw := waitFor(connB, "matchEnded")
	fmt.Printf("match ended: %s\n", raw)
}

func send(conn *websocket.Conn, msgType string, payload any) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			log.Fatalf("marshal payload: %v", err)
		}
		raw = b
	}
	msg, err := json.Marshal(envelope{Type: msgType, Payload: raw})
	if err != nil {
		log.Fatalf("marshal envelope: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		log.Fatalf("write %s: %v", msgType, err)
	}
}

// waitFor reads frames until one of the wanted type arrives, skipping
// leaderboard and stats pushes.
func waitFor(conn *websocket.Conn, msgType string) string {
	deadline := time.Now().Add(10 * time.Second)
	for {
		conn.SetReadDeadline(deadline)
		_, raw, err := conn.ReadMessage()
		if err != nil {
			log.Fatalf("waiting for %s: %v", msgType, err)
		}
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			log.Fatalf("bad frame: %v", err)
		}
		if env.Type == msgType {
			return string(env.Payload)
		}
	}
}
