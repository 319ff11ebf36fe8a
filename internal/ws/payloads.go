package ws

import "encoding/json"

// Envelope frames every message in both directions.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type outEnvelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// client → server. Token is optional on every message; when present it is
// re-validated and replaces the connection's identity, supporting refresh.
type authedPayload struct {
	Token string `json:"token,omitempty"`
}

type joinInvitePayload struct {
	Token string `json:"token,omitempty"`
	Code  string `json:"code"`
}

type submitMovePayload struct {
	Token  string `json:"token,omitempty"`
	CellID string `json:"cellId"`
}

type declareOutcomePayload struct {
	Token       string `json:"token,omitempty"`
	Result      string `json:"result"`      // "win" | "draw"
	WinningMark string `json:"winningMark"` // "X" | "O", win only
}

// server → client
type unauthorizedPayload struct {
	Message string `json:"message"`
}
