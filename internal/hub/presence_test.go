package hub

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPresence_RegisterThenLookup(t *testing.T) {
	req := require.New(t)
	p := NewPresence()
	c := &Client{ID: "h1"}

	p.Register("u1", c)

	got, ok := p.Lookup("u1")
	req.True(ok)
	req.Same(c, got)
}

func TestPresence_LastRegistrationWins(t *testing.T) {
	req := require.New(t)
	p := NewPresence()
	first := &Client{ID: "h1"}
	second := &Client{ID: "h2"}

	p.Register("u1", first)
	p.Register("u1", second)

	got, ok := p.Lookup("u1")
	req.True(ok)
	req.Same(second, got)
}

func TestPresence_RemoveByHandle(t *testing.T) {
	req := require.New(t)
	p := NewPresence()
	c := &Client{ID: "h1"}
	p.Register("u1", c)

	userID, removed := p.RemoveByHandle(c)
	req.True(removed)
	req.Equal("u1", userID)

	_, ok := p.Lookup("u1")
	req.False(ok)
}

func TestPresence_RemoveUnknownHandleIsNoOp(t *testing.T) {
	req := require.New(t)
	p := NewPresence()
	p.Register("u1", &Client{ID: "h1"})

	_, removed := p.RemoveByHandle(&Client{ID: "h2"})
	req.False(removed)

	_, ok := p.Lookup("u1")
	req.True(ok)
}

func TestPresence_RemoveDoesNotTouchOtherUsers(t *testing.T) {
	req := require.New(t)
	p := NewPresence()
	c1 := &Client{ID: "h1"}
	c2 := &Client{ID: "h2"}
	p.Register("u1", c1)
	p.Register("u2", c2)

	_, removed := p.RemoveByHandle(c1)
	req.True(removed)

	got, ok := p.Lookup("u2")
	req.True(ok)
	req.Same(c2, got)
}

func TestPresence_OnlineUsers(t *testing.T) {
	req := require.New(t)
	p := NewPresence()
	req.Empty(p.OnlineUsers())

	p.Register("u1", &Client{ID: "h1"})
	p.Register("u2", &Client{ID: "h2"})

	req.ElementsMatch([]string{"u1", "u2"}, p.OnlineUsers())
}
