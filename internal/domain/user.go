package domain

import "time"

// User is the resolved identity behind a bearer token. The match engine only
// ever references it; it never owns or mutates identity data.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	FirstSeen   time.Time `json:"first_seen,omitempty"`
	LastSeen    time.Time `json:"last_seen,omitempty"`
}
