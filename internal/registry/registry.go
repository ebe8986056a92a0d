package registry

import "github.com/trixieverse/coach-backend/internal/types"

// Client is the non-owning handle the registry keeps for one live
// connection: the transport-assigned connection ID plus the channel the
// writer goroutine drains.
type Client struct {
	ConnID string
	Outbox chan<- types.ServerMessage
}

// Registry maps an authenticated user ID to its single active connection.
// No locking: one hub goroutine owns it, the same way the hub owns the
// session tracker.
type Registry struct {
	clients map[string]Client
}

func New() *Registry {
	return &Registry{clients: make(map[string]Client)}
}

// Register associates userID with c, replacing any prior association. A
// second authenticate for the same user (say, a reconnect before the old
// socket times out) simply takes over the slot.
func (r *Registry) Register(userID string, c Client) {
	r.clients[userID] = c
}

// Unregister removes whichever user currently maps to connID. If the
// connection on record is a different one, this is a no-op: a stale
// disconnect arriving after a replacement must not evict the live socket.
func (r *Registry) Unregister(connID string) (userID string, removed bool) {
	for id, c := range r.clients {
		if c.ConnID == connID {
			delete(r.clients, id)
			return id, true
		}
	}
	return "", false
}

// Lookup returns the client for userID, if connected.
func (r *Registry) Lookup(userID string) (Client, bool) {
	c, ok := r.clients[userID]
	return c, ok
}

func (r *Registry) Count() int { return len(r.clients) }

// Each visits every registered client. Callers must not mutate the
// registry from inside fn.
func (r *Registry) Each(fn func(userID string, c Client)) {
	for id, c := range r.clients {
		fn(id, c)
	}
}
