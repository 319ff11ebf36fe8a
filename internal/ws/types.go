package ws

const (
	// client - server
	MsgFindMatch      = "findMatch"
	MsgCreateInvite   = "createInvite"
	MsgJoinInvite     = "joinInvite"
	MsgSubmitMove     = "submitMove"
	MsgDeclareOutcome = "declareOutcome"

	// server - client (match events are emitted by the engine itself)
	MsgUnauthorized       = "unauthorized"
	MsgLeaderboardUpdated = "leaderboardUpdated"
	MsgStatsUpdated       = "statsUpdated"
)
