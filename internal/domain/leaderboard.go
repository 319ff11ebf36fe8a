package domain

import "time"

// LeaderboardEntry - one player's all-time record.
// Ordering: wins desc, then draws desc, then losses asc.
type LeaderboardEntry struct {
	UserID      string    `json:"id"`
	DisplayName string    `json:"name"`
	Wins        int       `json:"wins"`
	Losses      int       `json:"losses"`
	Draws       int       `json:"draws"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}
