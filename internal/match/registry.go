package match

// Conn is one live client endpoint. Implementations must make Send
// non-blocking; a slow or dead peer must never stall the engine.
type Conn interface {
	Send(event string, payload any)
}

// SessionRegistry tracks which connections are live per user and which match
// (if any) a user currently occupies. The active-match index is the
// concurrency-control anchor: it is checked-then-set under the Manager's lock
// whenever a user enqueues, creates or joins an invite, or gets paired.
//
// Not safe for concurrent use on its own; every method runs under the
// Manager's mutex.
type SessionRegistry struct {
	conns       map[string]map[Conn]struct{}
	connUser    map[Conn]string
	activeMatch map[string]string
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		conns:       make(map[string]map[Conn]struct{}),
		connUser:    make(map[Conn]string),
		activeMatch: make(map[string]string),
	}
}

// Bind associates a connection with a user. Users may hold several
// simultaneous connections; binding is idempotent.
func (r *SessionRegistry) Bind(c Conn, userID string) {
	if c == nil || userID == "" {
		return
	}
	set, ok := r.conns[userID]
	if !ok {
		set = make(map[Conn]struct{})
		r.conns[userID] = set
	}
	set[c] = struct{}{}
	r.connUser[c] = userID
}

// Drop removes a closed connection and reports the owning user plus how many
// of their connections remain live.
func (r *SessionRegistry) Drop(c Conn) (userID string, remaining int) {
	userID, ok := r.connUser[c]
	if !ok {
		return "", 0
	}
	delete(r.connUser, c)

	set := r.conns[userID]
	delete(set, c)
	if len(set) == 0 {
		delete(r.conns, userID)
		return userID, 0
	}
	return userID, len(set)
}

// Live reports whether a connection is still bound.
func (r *SessionRegistry) Live(c Conn) bool {
	_, ok := r.connUser[c]
	return ok
}

// Conns returns the live connections of a user (the user's share of a room).
func (r *SessionRegistry) Conns(userID string) []Conn {
	set := r.conns[userID]
	if len(set) == 0 {
		return nil
	}
	out := make([]Conn, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}

// MatchOf returns the user's active match, if any.
func (r *SessionRegistry) MatchOf(userID string) (string, bool) {
	id, ok := r.activeMatch[userID]
	return id, ok
}

// SetMatch claims the active-match slot for a user. It fails when the user
// already occupies a match, which is what keeps a user out of two matches.
func (r *SessionRegistry) SetMatch(userID, matchID string) bool {
	if _, busy := r.activeMatch[userID]; busy {
		return false
	}
	r.activeMatch[userID] = matchID
	return true
}

// ClearMatch releases a user's active-match slot.
func (r *SessionRegistry) ClearMatch(userID string) {
	delete(r.activeMatch, userID)
}
