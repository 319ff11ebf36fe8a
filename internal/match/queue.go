package match

// queueEntry is one user waiting for a random opponent.
type queueEntry struct {
	UserID      string
	DisplayName string
	Conn        Conn
}

// Queue is the FIFO matchmaking queue. Pairing is first-come-first-served,
// never skill-based. Guarded by the Manager's mutex.
type Queue struct {
	entries []*queueEntry
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Len() int {
	return len(q.entries)
}

// Contains reports whether a user is already waiting.
func (q *Queue) Contains(userID string) bool {
	for _, e := range q.entries {
		if e.UserID == userID {
			return true
		}
	}
	return false
}

// Push appends a new waiting entry.
func (q *Queue) Push(e *queueEntry) {
	q.entries = append(q.entries, e)
}

// PushFront re-queues an entry at the head, preserving its wait priority
// after a failed pairing attempt.
func (q *Queue) PushFront(e *queueEntry) {
	q.entries = append([]*queueEntry{e}, q.entries...)
}

// Pop removes and returns the oldest entry.
func (q *Queue) Pop() *queueEntry {
	if len(q.entries) == 0 {
		return nil
	}
	e := q.entries[0]
	q.entries = q.entries[1:]
	return e
}

// RemoveByConn drops every entry owned by a closed connection. Idempotent.
func (q *Queue) RemoveByConn(c Conn) {
	kept := q.entries[:0]
	for _, e := range q.entries {
		if e.Conn != c {
			kept = append(kept, e)
		}
	}
	q.entries = kept
}
