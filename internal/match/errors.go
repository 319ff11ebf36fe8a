package match

import "errors"

var (
	ErrAlreadyInMatch = errors.New("already in an active match")
	ErrInviteNotFound = errors.New("invite not found or already used")
	ErrSelfJoin       = errors.New("cannot join your own invite")
	ErrHostOffline    = errors.New("invite host is offline")
	ErrHostBusy       = errors.New("invite host is already in a match")
	ErrNotParticipant = errors.New("user is not a participant of this match")
	ErrBadOutcome     = errors.New("reported outcome does not match the board")
)

// Move rejection reasons surfaced to the acting connection only.
const (
	ReasonNotYourTurn = "notYourTurn"
	ReasonOccupied    = "occupied"
)

// InvalidMoveError rejects a move without touching match state.
type InvalidMoveError struct {
	Reason string
}

func (e *InvalidMoveError) Error() string {
	return "invalid move: " + e.Reason
}
