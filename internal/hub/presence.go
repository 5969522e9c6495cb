package hub

import (
	"sync"

	"github.com/samber/lo"
)

// Presence is the in-memory registry of who is reachable for real-time
// delivery. It holds a non-owning binding from user identity to the client
// currently associated with it.
type Presence struct {
	mu     sync.RWMutex
	online map[string]*Client
}

// NewPresence creates an empty registry.
func NewPresence() *Presence {
	return &Presence{online: make(map[string]*Client)}
}

// Register binds an identity to a client. A later registration for the same
// identity silently overwrites the earlier binding; the displaced client is
// not closed, it just stops receiving.
func (p *Presence) Register(userID string, client *Client) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.online[userID] = client
}

// Lookup returns the client currently bound to an identity.
func (p *Presence) Lookup(userID string) (*Client, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	client, ok := p.online[userID]
	return client, ok
}

// RemoveByHandle unbinds whichever identity points at the given client and
// returns it. At most one entry is removed; an unknown handle is a no-op.
func (p *Presence) RemoveByHandle(client *Client) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for userID, c := range p.online {
		if c == client {
			delete(p.online, userID)
			return userID, true
		}
	}
	return "", false
}

// OnlineUsers returns a snapshot of the registered identities.
func (p *Presence) OnlineUsers() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return lo.Keys(p.online)
}
