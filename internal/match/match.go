package match

import "time"

type Mark string

const (
	MarkX Mark = "X"
	MarkO Mark = "O"
)

func (m Mark) other() Mark {
	if m == MarkX {
		return MarkO
	}
	return MarkX
}

type Status string

const (
	StatusInProgress Status = "inProgress"
	StatusFinished   Status = "finished"
	StatusAborted    Status = "aborted"
)

// PlayerSlot binds one participant to a mark for the duration of a match.
type PlayerSlot struct {
	UserID      string
	DisplayName string
	Mark        Mark
	CellClaimed string // last cell claimed by this player, "" before their first move
}

// TimeoutNotice is transient turn-forfeit info, cleared on the next accepted move.
type TimeoutNotice struct {
	PlayerName string
	Mark       Mark
}

// Match is the authoritative state of a single game. All transitions run
// under the Manager's lock; Match itself does no locking and no I/O.
type Match struct {
	ID string
	X  PlayerSlot
	O  PlayerSlot

	Board map[string]Mark

	// MoveCount parity owns the turn: odd means X moves, even means O.
	// It increases by exactly 1 per accepted move or forced timeout.
	MoveCount    int
	TurnDeadline time.Time
	Status       Status
	LastTimeout  *TimeoutNotice
}

func newMatch(id string, x, o PlayerSlot, now time.Time, turnTimeout time.Duration) *Match {
	x.Mark = MarkX
	o.Mark = MarkO
	return &Match{
		ID:           id,
		X:            x,
		O:            o,
		Board:        make(map[string]Mark, len(cells)),
		MoveCount:    1,
		TurnDeadline: now.Add(turnTimeout),
		Status:       StatusInProgress,
	}
}

// CurrentTurn derives the mark to move from MoveCount parity. Empty once the
// match has left InProgress.
func (m *Match) CurrentTurn() Mark {
	if m.Status != StatusInProgress {
		return ""
	}
	if m.MoveCount%2 != 0 {
		return MarkX
	}
	return MarkO
}

func (m *Match) slotOf(userID string) (*PlayerSlot, bool) {
	switch userID {
	case m.X.UserID:
		return &m.X, true
	case m.O.UserID:
		return &m.O, true
	}
	return nil, false
}

func (m *Match) slotByMark(mark Mark) *PlayerSlot {
	if mark == MarkX {
		return &m.X
	}
	return &m.O
}

// applyMove claims a cell for the acting player. Rejections leave the match
// untouched; the error carries the wire reason for the caller only.
func (m *Match) applyMove(userID, cellID string, now time.Time, turnTimeout time.Duration) error {
	if m.Status != StatusInProgress {
		return ErrNotParticipant
	}

	slot, ok := m.slotOf(userID)
	if !ok {
		return ErrNotParticipant
	}

	if slot.Mark != m.CurrentTurn() {
		return &InvalidMoveError{Reason: ReasonNotYourTurn}
	}

	if !validCell(cellID) {
		return &InvalidMoveError{Reason: ReasonOccupied}
	}
	if _, taken := m.Board[cellID]; taken {
		return &InvalidMoveError{Reason: ReasonOccupied}
	}

	m.Board[cellID] = slot.Mark
	slot.CellClaimed = cellID
	m.MoveCount++
	m.TurnDeadline = now.Add(turnTimeout)
	m.LastTimeout = nil
	return nil
}

// forceTimeout passes an expired turn. No cell is claimed; the expired player
// forfeits only the turn. Repeated timeouts can extend a match indefinitely,
// which is accepted behavior.
func (m *Match) forceTimeout(now time.Time, turnTimeout time.Duration) {
	expired := m.CurrentTurn()
	m.LastTimeout = &TimeoutNotice{
		PlayerName: m.slotByMark(expired).DisplayName,
		Mark:       expired,
	}
	m.MoveCount++
	m.TurnDeadline = now.Add(turnTimeout)
}

// verifyOutcome checks a client-reported result against the board before it
// is honored: a win needs a completed line for the claimed mark, a draw needs
// a full board with no line.
func (m *Match) verifyOutcome(result string, winningMark Mark) bool {
	lineMark, hasLine := winnerOnBoard(m.Board)
	switch result {
	case "win":
		return hasLine && lineMark == winningMark
	case "draw":
		return !hasLine && boardFull(m.Board)
	}
	return false
}

// markTerminal moves the match to a terminal status and clears turn state.
// Terminal matches are immediately dropped from the live index by the caller.
func (m *Match) markTerminal(status Status) {
	m.Status = status
	m.TurnDeadline = time.Time{}
	m.LastTimeout = nil
}
