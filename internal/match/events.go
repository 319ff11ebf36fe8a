package match

// Outbound event names. The Manager owns fan-out: every state-mutating
// operation is followed by exactly one outward event, either to the match's
// room or to the originating connection only.
const (
	EventMatchFound    = "matchFound"
	EventMatchUpdated  = "matchUpdated"
	EventMatchEnded    = "matchEnded"
	EventMatchAborted  = "matchAborted"
	EventInvalidMove   = "invalidMove"
	EventInviteCreated = "inviteCreated"
	EventInviteError   = "inviteError"
	EventMatchError    = "matchError"
)

type MatchFoundPayload struct {
	Match Snapshot `json:"match"`
}

type MatchUpdatedPayload struct {
	Match   Snapshot `json:"match"`
	Timeout bool     `json:"timeout"`
}

type MatchEndedPayload struct {
	Players   []string `json:"players"`
	PlayerIDs []string `json:"playerIds"`
	Result    string   `json:"result"`
	Winner    string   `json:"winner,omitempty"`
}

type MatchAbortedPayload struct {
	Reason             string   `json:"reason"`
	DisconnectedUserID string   `json:"disconnectedUserId,omitempty"`
	Players            []string `json:"players"`
	PlayerIDs          []string `json:"playerIds"`
}

type InvalidMovePayload struct {
	Reason string `json:"reason"`
}

type InviteCreatedPayload struct {
	Code string `json:"code"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
