package match

import (
	"context"
	"sync"
	"time"

	"tictactoe_arena/internal/domain"
	"tictactoe_arena/internal/logger"

	"github.com/google/uuid"
)

// Stats is the external persistence collaborator. Calls are fire-and-forget
// relative to the in-memory transition; they never delay or fail a broadcast.
type Stats interface {
	RecordOutcome(ctx context.Context, outcome domain.MatchOutcome) error
}

// Manager owns all live matchmaking and match state: the FIFO queue, the
// invite registry, the session registry and the live match set. One mutex
// serializes every mutation; per-match operations never block on I/O, so the
// lock is adequate for the expected tens to low thousands of matches.
type Manager struct {
	mu sync.Mutex

	queue    *Queue
	invites  *InviteRegistry
	registry *SessionRegistry
	matches  map[string]*Match

	turnTimeout time.Duration
	now         func() time.Time
	newID       func() string

	stats Stats

	// OnOutcome runs after an outcome is persisted, off the engine lock.
	// Wired to the leaderboard push in cmd/app.
	OnOutcome func(outcome domain.MatchOutcome)
}

func NewManager(turnTimeout time.Duration, stats Stats) *Manager {
	return &Manager{
		queue:       NewQueue(),
		invites:     NewInviteRegistry(),
		registry:    NewSessionRegistry(),
		matches:     make(map[string]*Match),
		turnTimeout: turnTimeout,
		now:         time.Now,
		newID:       uuid.NewString,
		stats:       stats,
	}
}

// Bind registers a connection as a live endpoint of the user. Called on every
// authenticated intent, so a reconnecting client is picked up immediately.
func (m *Manager) Bind(c Conn, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registry.Bind(c, userID)
}

// FindMatch queues the user for a random opponent and pairs the two oldest
// waiting users when possible.
func (m *Manager) FindMatch(c Conn, userID, displayName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.registry.Bind(c, userID)

	if _, busy := m.registry.MatchOf(userID); busy {
		c.Send(EventMatchError, ErrorPayload{Message: ErrAlreadyInMatch.Error()})
		return
	}

	if !m.queue.Contains(userID) {
		m.queue.Push(&queueEntry{UserID: userID, DisplayName: displayName, Conn: c})
		QueueDepth.Set(float64(m.queue.Len()))
	}

	m.tryPairNext()
}

// tryPairNext pops the two oldest waiting entries and re-validates both
// before constructing a match; a still-valid entry whose counterpart failed
// validation goes back to the FRONT of the queue, keeping its wait priority.
// Caller holds the lock.
func (m *Manager) tryPairNext() {
	for m.queue.Len() >= 2 {
		first := m.queue.Pop()
		second := m.queue.Pop()

		firstOK := m.entryValid(first)
		secondOK := m.entryValid(second)

		switch {
		case firstOK && secondOK:
			QueueDepth.Set(float64(m.queue.Len()))
			m.createMatch(first.UserID, first.DisplayName, second.UserID, second.DisplayName)
			return
		case firstOK:
			m.queue.PushFront(first)
		case secondOK:
			m.queue.PushFront(second)
		default:
			// both stale, keep draining
			QueueDepth.Set(float64(m.queue.Len()))
			continue
		}
		QueueDepth.Set(float64(m.queue.Len()))
		return
	}
}

func (m *Manager) entryValid(e *queueEntry) bool {
	if !m.registry.Live(e.Conn) {
		return false
	}
	_, busy := m.registry.MatchOf(e.UserID)
	return !busy
}

// createMatch constructs a live match (first user = X), claims both users'
// active-match slots and announces it to the room. Caller holds the lock and
// has verified neither user is busy.
func (m *Manager) createMatch(xID, xName, oID, oName string) *Match {
	mt := newMatch(
		m.newID(),
		PlayerSlot{UserID: xID, DisplayName: xName},
		PlayerSlot{UserID: oID, DisplayName: oName},
		m.now(),
		m.turnTimeout,
	)

	m.registry.SetMatch(xID, mt.ID)
	m.registry.SetMatch(oID, mt.ID)
	m.matches[mt.ID] = mt

	MatchesStarted.Inc()
	LiveMatches.Set(float64(len(m.matches)))

	m.roomSend(mt, EventMatchFound, MatchFoundPayload{Match: mt.snapshot(m.now())})
	return mt
}

// CreateInvite issues a shareable code for a direct match. One invite per
// host; a new code replaces the previous one.
func (m *Manager) CreateInvite(c Conn, userID, displayName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.registry.Bind(c, userID)

	if _, busy := m.registry.MatchOf(userID); busy {
		c.Send(EventMatchError, ErrorPayload{Message: ErrAlreadyInMatch.Error()})
		return
	}

	code := m.invites.Create(userID, displayName, c)
	c.Send(EventInviteCreated, InviteCreatedPayload{Code: code})
}

// JoinInvite consumes an invite code and starts a match with its host as X.
func (m *Manager) JoinInvite(c Conn, userID, displayName, code string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.registry.Bind(c, userID)

	if _, busy := m.registry.MatchOf(userID); busy {
		c.Send(EventMatchError, ErrorPayload{Message: ErrAlreadyInMatch.Error()})
		return
	}

	inv, ok := m.invites.Get(code)
	if !ok {
		c.Send(EventInviteError, ErrorPayload{Message: ErrInviteNotFound.Error()})
		return
	}

	if inv.HostUserID == userID {
		c.Send(EventInviteError, ErrorPayload{Message: ErrSelfJoin.Error()})
		return
	}

	if !m.registry.Live(inv.Conn) {
		m.invites.Delete(code)
		c.Send(EventInviteError, ErrorPayload{Message: ErrHostOffline.Error()})
		return
	}

	if _, hostBusy := m.registry.MatchOf(inv.HostUserID); hostBusy {
		c.Send(EventInviteError, ErrorPayload{Message: ErrHostBusy.Error()})
		return
	}

	m.invites.Delete(code)
	m.createMatch(inv.HostUserID, inv.HostDisplayName, userID, displayName)
}

// SubmitMove applies a move to the caller's active match. Rejections go to
// the acting connection only; the match is untouched.
func (m *Manager) SubmitMove(c Conn, userID, cellID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.registry.Bind(c, userID)

	mt := m.matchOf(userID)
	if mt == nil {
		return
	}

	if err := mt.applyMove(userID, cellID, m.now(), m.turnTimeout); err != nil {
		if invalid, ok := err.(*InvalidMoveError); ok {
			InvalidMoves.WithLabelValues(invalid.Reason).Inc()
			c.Send(EventInvalidMove, InvalidMovePayload{Reason: invalid.Reason})
		}
		return
	}

	m.roomSend(mt, EventMatchUpdated, MatchUpdatedPayload{Match: mt.snapshot(m.now())})
}

// DeclareOutcome finishes the caller's match with a client-reported result.
// The claim is verified against the board before it is honored; an
// unsupported claim is rejected to the caller and the match stays live.
func (m *Manager) DeclareOutcome(c Conn, userID, result string, winningMark Mark) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.registry.Bind(c, userID)

	mt := m.matchOf(userID)
	if mt == nil {
		return
	}

	if !mt.verifyOutcome(result, winningMark) {
		c.Send(EventMatchError, ErrorPayload{Message: ErrBadOutcome.Error()})
		return
	}

	m.finishLocked(mt, result, winningMark)
}

// ConnectionClosed cleans up after a dropped endpoint: queue and invite
// entries owned by the connection go away, and when the owning user has no
// other live connection their active match is aborted.
func (m *Manager) ConnectionClosed(c Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.queue.RemoveByConn(c)
	QueueDepth.Set(float64(m.queue.Len()))
	m.invites.RemoveByConn(c)

	userID, remaining := m.registry.Drop(c)
	if userID == "" || remaining > 0 {
		return
	}

	if matchID, ok := m.registry.MatchOf(userID); ok {
		if mt, live := m.matches[matchID]; live {
			m.abortLocked(mt, "disconnect", userID)
		}
	}
}

// SweepExpired drives the timeout transition for every live match whose turn
// deadline has passed. Called by the Sweeper on its own cadence.
func (m *Manager) SweepExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for _, mt := range m.matches {
		if mt.Status != StatusInProgress || now.Before(mt.TurnDeadline) {
			continue
		}
		mt.forceTimeout(now, m.turnTimeout)
		TurnTimeouts.Inc()
		m.roomSend(mt, EventMatchUpdated, MatchUpdatedPayload{Match: mt.snapshot(now), Timeout: true})
	}
}

// ActiveMatch reports the match a user currently occupies, if any.
func (m *Manager) ActiveMatch(userID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registry.MatchOf(userID)
}

// matchOf resolves a user's active match through the O(1) side index.
// Caller holds the lock.
func (m *Manager) matchOf(userID string) *Match {
	matchID, ok := m.registry.MatchOf(userID)
	if !ok {
		return nil
	}
	return m.matches[matchID]
}

// finishLocked retires a match normally, releases both users and relays the
// outcome to the stats collaborator off the lock.
func (m *Manager) finishLocked(mt *Match, result string, winningMark Mark) {
	mt.markTerminal(StatusFinished)
	m.dropLocked(mt)
	MatchesFinished.WithLabelValues(result).Inc()

	winnerName := ""
	outcome := domain.MatchOutcome{
		MatchID:     mt.ID,
		Result:      domain.MatchResult(result),
		PlayerIDs:   []string{mt.X.UserID, mt.O.UserID},
		PlayerNames: []string{mt.X.DisplayName, mt.O.DisplayName},
	}
	if result == "win" {
		winner := mt.slotByMark(winningMark)
		loser := mt.slotByMark(winningMark.other())
		winnerName = winner.DisplayName
		outcome.WinnerID = winner.UserID
		outcome.WinnerName = winner.DisplayName
		outcome.LoserID = loser.UserID
		outcome.LoserName = loser.DisplayName
	}

	m.roomSend(mt, EventMatchEnded, MatchEndedPayload{
		Players:   outcome.PlayerNames,
		PlayerIDs: outcome.PlayerIDs,
		Result:    result,
		Winner:    winnerName,
	})

	go m.persistOutcome(outcome)
}

// abortLocked retires a match on disconnect. No outcome is recorded.
func (m *Manager) abortLocked(mt *Match, reason, disconnectedUserID string) {
	mt.markTerminal(StatusAborted)
	m.dropLocked(mt)
	MatchesAborted.Inc()

	m.roomSend(mt, EventMatchAborted, MatchAbortedPayload{
		Reason:             reason,
		DisconnectedUserID: disconnectedUserID,
		Players:            []string{mt.X.DisplayName, mt.O.DisplayName},
		PlayerIDs:          []string{mt.X.UserID, mt.O.UserID},
	})
}

// dropLocked removes a terminal match from the live index and frees both
// participants' active-match slots.
func (m *Manager) dropLocked(mt *Match) {
	delete(m.matches, mt.ID)
	m.registry.ClearMatch(mt.X.UserID)
	m.registry.ClearMatch(mt.O.UserID)
	LiveMatches.Set(float64(len(m.matches)))
}

func (m *Manager) persistOutcome(outcome domain.MatchOutcome) {
	if m.stats != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.stats.RecordOutcome(ctx, outcome); err != nil {
			logger.Error("record outcome failed", "match_id", outcome.MatchID, "error", err)
		}
	}
	if m.OnOutcome != nil {
		m.OnOutcome(outcome)
	}
}

// roomSend fans an event out to every live connection of both participants.
// Conn.Send never blocks, so emitting under the lock is safe.
func (m *Manager) roomSend(mt *Match, event string, payload any) {
	for _, userID := range []string{mt.X.UserID, mt.O.UserID} {
		for _, c := range m.registry.Conns(userID) {
			c.Send(event, payload)
		}
	}
}
