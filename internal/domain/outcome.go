package domain

// MatchResult - how a finished match ended
type MatchResult string

const (
	MatchResultWin  MatchResult = "win"
	MatchResultDraw MatchResult = "draw"
)

// MatchOutcome is the record handed to the stats collaborator when a match
// finishes normally. Aborted matches are never recorded.
type MatchOutcome struct {
	MatchID     string      `json:"match_id"`
	Result      MatchResult `json:"result"`
	WinnerID    string      `json:"winner_id,omitempty"`
	WinnerName  string      `json:"winner_name,omitempty"`
	LoserID     string      `json:"loser_id,omitempty"`
	LoserName   string      `json:"loser_name,omitempty"`
	PlayerIDs   []string    `json:"player_ids"`
	PlayerNames []string    `json:"player_names"`
}
