package ws

import (
	"encoding/json"

	"tictactoe_arena/internal/logger"
	"tictactoe_arena/internal/match"
	"tictactoe_arena/internal/service"
)

// handleMessage routes one inbound frame. A panic in a handler takes down
// this message only, never the connection's read loop or other sessions.
func (c *Client) handleMessage(raw []byte) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("message handler panicked", "user_id", c.identity.UserID, "panic", r)
		}
	}()

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logger.Debug("bad frame", "user_id", c.identity.UserID, "error", err)
		return
	}

	switch env.Type {
	case MsgFindMatch:
		var p authedPayload
		if !c.decode(env.Payload, &p) || !c.refresh(p.Token) {
			return
		}
		c.manager.FindMatch(c, c.identity.UserID, c.identity.DisplayName)

	case MsgCreateInvite:
		var p authedPayload
		if !c.decode(env.Payload, &p) || !c.refresh(p.Token) {
			return
		}
		c.manager.CreateInvite(c, c.identity.UserID, c.identity.DisplayName)

	case MsgJoinInvite:
		var p joinInvitePayload
		if !c.decode(env.Payload, &p) || !c.refresh(p.Token) {
			return
		}
		c.manager.JoinInvite(c, c.identity.UserID, c.identity.DisplayName, p.Code)

	case MsgSubmitMove:
		var p submitMovePayload
		if !c.decode(env.Payload, &p) || !c.refresh(p.Token) {
			return
		}
		c.manager.SubmitMove(c, c.identity.UserID, p.CellID)

	case MsgDeclareOutcome:
		var p declareOutcomePayload
		if !c.decode(env.Payload, &p) || !c.refresh(p.Token) {
			return
		}
		c.manager.DeclareOutcome(c, c.identity.UserID, p.Result, match.Mark(p.WinningMark))

	default:
		logger.Debug("unknown message type", "user_id", c.identity.UserID, "type", env.Type)
	}
}

// decode unmarshals a payload; an empty payload decodes to zero values so
// token-only intents can omit the object entirely.
func (c *Client) decode(raw json.RawMessage, dst any) bool {
	if len(raw) == 0 {
		return true
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		logger.Debug("bad payload", "user_id", c.identity.UserID, "error", err)
		return false
	}
	return true
}

// refresh re-validates a per-message token when one is supplied. An invalid
// token gets an unauthorized push and drops the message; an absent token
// keeps the identity established at upgrade time.
func (c *Client) refresh(token string) bool {
	if token == "" {
		return true
	}
	identity, err := service.ParseJWT(token)
	if err != nil {
		c.Send(MsgUnauthorized, unauthorizedPayload{Message: "invalid token"})
		return false
	}
	c.identity = identity
	c.manager.Bind(c, identity.UserID)
	return true
}
