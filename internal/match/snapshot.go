package match

import "time"

// PlayerSnapshot is one slot as sent to clients.
type PlayerSnapshot struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Mark        Mark   `json:"mark"`
	CellClaimed string `json:"cellClaimed,omitempty"`
}

type TimeoutSnapshot struct {
	Player string `json:"player"`
	Mark   Mark   `json:"mark"`
}

// Snapshot is the full outward view of a match, sent to every connection in
// the match's room after each state change.
type Snapshot struct {
	MatchID      string           `json:"matchId"`
	Players      []PlayerSnapshot `json:"players"`
	Board        map[string]Mark  `json:"board"`
	CurrentTurn  Mark             `json:"currentTurn,omitempty"`
	TurnDeadline int64            `json:"turnDeadline,omitempty"` // unix ms, 0 when finished
	RemainingMS  int64            `json:"remainingMs,omitempty"`
	LastTimeout  *TimeoutSnapshot `json:"lastTimeout,omitempty"`
	Status       Status           `json:"status"`
	MoveCount    int              `json:"moveCount"`
}

func (m *Match) snapshot(now time.Time) Snapshot {
	board := make(map[string]Mark, len(m.Board))
	for k, v := range m.Board {
		board[k] = v
	}

	s := Snapshot{
		MatchID: m.ID,
		Players: []PlayerSnapshot{
			{ID: m.X.UserID, Name: m.X.DisplayName, Mark: MarkX, CellClaimed: m.X.CellClaimed},
			{ID: m.O.UserID, Name: m.O.DisplayName, Mark: MarkO, CellClaimed: m.O.CellClaimed},
		},
		Board:       board,
		CurrentTurn: m.CurrentTurn(),
		Status:      m.Status,
		MoveCount:   m.MoveCount,
	}

	if !m.TurnDeadline.IsZero() {
		s.TurnDeadline = m.TurnDeadline.UnixMilli()
		if remaining := m.TurnDeadline.Sub(now); remaining > 0 {
			s.RemainingMS = remaining.Milliseconds()
		}
	}

	if m.LastTimeout != nil {
		s.LastTimeout = &TimeoutSnapshot{
			Player: m.LastTimeout.PlayerName,
			Mark:   m.LastTimeout.Mark,
		}
	}

	return s
}
