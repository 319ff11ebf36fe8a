package match

import (
	"crypto/rand"
	"encoding/hex"
)

// Invite is a waiting host, reachable by a short shareable code.
type Invite struct {
	Code            string
	HostUserID      string
	HostDisplayName string
	Conn            Conn
}

// InviteRegistry maps live codes to waiting hosts. At most one invite per
// host; creating another replaces the previous one. Guarded by the Manager's
// mutex.
type InviteRegistry struct {
	byCode map[string]*Invite
}

func NewInviteRegistry() *InviteRegistry {
	return &InviteRegistry{byCode: make(map[string]*Invite)}
}

// Create stores a new invite for the host, replacing any prior one, and
// returns the generated code.
func (r *InviteRegistry) Create(hostUserID, hostDisplayName string, c Conn) string {
	for code, inv := range r.byCode {
		if inv.HostUserID == hostUserID {
			delete(r.byCode, code)
			break
		}
	}

	code := r.newCode()
	r.byCode[code] = &Invite{
		Code:            code,
		HostUserID:      hostUserID,
		HostDisplayName: hostDisplayName,
		Conn:            c,
	}
	return code
}

// Get looks an invite up without consuming it. Callers Delete the code once
// the join is committed, so a used code cannot be joined twice.
func (r *InviteRegistry) Get(code string) (*Invite, bool) {
	inv, ok := r.byCode[code]
	return inv, ok
}

// Delete removes a stale invite. Idempotent.
func (r *InviteRegistry) Delete(code string) {
	delete(r.byCode, code)
}

// RemoveByConn drops every invite hosted on a closed connection.
func (r *InviteRegistry) RemoveByConn(c Conn) {
	for code, inv := range r.byCode {
		if inv.Conn == c {
			delete(r.byCode, code)
		}
	}
}

// newCode generates a cryptographically random code, retrying on the
// (unlikely) collision with a live code.
func (r *InviteRegistry) newCode() string {
	for {
		buf := make([]byte, 6)
		if _, err := rand.Read(buf); err != nil {
			panic("invite code entropy unavailable: " + err.Error())
		}
		code := hex.EncodeToString(buf)
		if _, taken := r.byCode[code]; !taken {
			return code
		}
	}
}
