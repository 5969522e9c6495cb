package hub

import (
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"relay-server/internal/domain"
	"relay-server/internal/service/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestHub(t *testing.T) (*Hub, *mocks.MockIMessageRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockIMessageRepository(ctrl)
	return NewHub(NewPresence(), repo, slog.Default(), time.Second), repo
}

func newTestClient(id string) *Client {
	return &Client{ID: id, Send: make(chan []byte, 8)}
}

func sendEvent(h *Hub, c *Client, eventType string, payload interface{}) {
	h.handleMessage(&ClientRequest{
		Client:  c,
		Message: domain.WebSocketMessage{Type: eventType, Payload: payload},
	})
}

func decodeEnvelope(t *testing.T, raw []byte) domain.WebSocketMessage {
	t.Helper()
	var env domain.WebSocketMessage
	require.NoError(t, json.Unmarshal(raw, &env))
	return env
}

func TestHandleSend_OnlineRecipientGetsVerbatimPayload(t *testing.T) {
	req := require.New(t)
	h, repo := newTestHub(t)

	recipient := newTestClient("conn-b")
	h.presence.Register("b", recipient)

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.EXPECT().SaveMessage(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	sender := newTestClient("conn-a")
	sendEvent(h, sender, domain.EventSendMessage, domain.ChatMessage{
		Sender: "a", Recipient: "b", Body: "hi", Timestamp: ts,
	})

	req.Len(recipient.Send, 1)
	env := decodeEnvelope(t, <-recipient.Send)
	req.Equal(domain.EventReceiveMessage, env.Type)

	var forwarded domain.ChatMessage
	req.NoError(parsePayload(env.Payload, &forwarded))
	req.Equal("a", forwarded.Sender)
	req.Equal("b", forwarded.Recipient)
	req.Equal("hi", forwarded.Body)
	req.True(ts.Equal(forwarded.Timestamp))

	// No error event back to the sender.
	req.Empty(sender.Send)
}

func TestHandleSend_OfflineRecipientStillPersists(t *testing.T) {
	req := require.New(t)
	h, repo := newTestHub(t)

	repo.EXPECT().SaveMessage(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	sender := newTestClient("conn-a")
	sendEvent(h, sender, domain.EventSendMessage, domain.ChatMessage{
		Sender: "a", Recipient: "nobody", Body: "hi", Timestamp: time.Now(),
	})

	// No failure surfaced, nothing forwarded anywhere.
	req.Empty(sender.Send)
}

func TestHandleSend_MissingFieldNeverReachesTheStore(t *testing.T) {
	req := require.New(t)
	h, repo := newTestHub(t)
	repo.EXPECT().SaveMessage(gomock.Any(), gomock.Any()).Times(0)

	sender := newTestClient("conn-a")
	sendEvent(h, sender, domain.EventSendMessage, domain.ChatMessage{
		Sender: "a", Recipient: "b", Timestamp: time.Now(), // no body
	})

	req.Len(sender.Send, 1)
	env := decodeEnvelope(t, <-sender.Send)
	req.Equal(domain.EventError, env.Type)
}

func TestHandleSend_PersistenceFailureGatesDelivery(t *testing.T) {
	req := require.New(t)
	h, repo := newTestHub(t)

	recipient := newTestClient("conn-b")
	h.presence.Register("b", recipient)

	repo.EXPECT().SaveMessage(gomock.Any(), gomock.Any()).Return(errors.New("store down")).Times(1)

	sender := newTestClient("conn-a")
	sendEvent(h, sender, domain.EventSendMessage, domain.ChatMessage{
		Sender: "a", Recipient: "b", Body: "hi", Timestamp: time.Now(),
	})

	req.Empty(recipient.Send)
	req.Len(sender.Send, 1)
	env := decodeEnvelope(t, <-sender.Send)
	req.Equal(domain.EventError, env.Type)
}

func TestHandleRegister_BindsIdentityAndBroadcastsUserList(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHub(t)

	c1 := newTestClient("conn-1")
	c2 := newTestClient("conn-2")
	h.connections[c1] = true
	h.connections[c2] = true

	sendEvent(h, c1, domain.EventRegister, "u1")

	req.Equal("u1", c1.UserID)
	got, ok := h.presence.Lookup("u1")
	req.True(ok)
	req.Same(c1, got)

	// Everyone connected sees the updated user list.
	for _, c := range []*Client{c1, c2} {
		req.Len(c.Send, 1)
		env := decodeEnvelope(t, <-c.Send)
		req.Equal(domain.EventUserList, env.Type)

		var payload domain.UserListPayload
		req.NoError(parsePayload(env.Payload, &payload))
		req.Equal([]string{"u1"}, payload.Users)
	}
}

func TestHandleRegister_NewIdentityRebindsConnection(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHub(t)

	c := newTestClient("conn-1")
	h.connections[c] = true

	sendEvent(h, c, domain.EventRegister, "u1")
	sendEvent(h, c, domain.EventRegister, "u2")

	req.Equal("u2", c.UserID)
	_, ok := h.presence.Lookup("u1")
	req.False(ok)
	got, ok := h.presence.Lookup("u2")
	req.True(ok)
	req.Same(c, got)
	req.ElementsMatch([]string{"u2"}, h.presence.OnlineUsers())
}

func TestHandleSend_AfterReRegisterAndDisconnect(t *testing.T) {
	req := require.New(t)
	h, repo := newTestHub(t)

	// One connection walks through both identities and disconnects. No
	// binding may survive it.
	c := newTestClient("conn-1")
	h.connections[c] = true
	sendEvent(h, c, domain.EventRegister, "u1")
	sendEvent(h, c, domain.EventRegister, "u2")
	h.dropClient(c)

	req.Empty(h.presence.OnlineUsers())

	// Sends to either identity must take the offline path: persisted, no
	// forward onto the closed channel, no error back to the sender.
	repo.EXPECT().SaveMessage(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	sender := newTestClient("conn-2")
	h.connections[sender] = true
	for _, recipient := range []string{"u1", "u2"} {
		sendEvent(h, sender, domain.EventSendMessage, domain.ChatMessage{
			Sender: "a", Recipient: recipient, Body: "hi", Timestamp: time.Now(),
		})
	}
	req.Empty(sender.Send)
}

func TestHandleSend_ForwardsExtraPayloadFields(t *testing.T) {
	req := require.New(t)
	h, repo := newTestHub(t)

	recipient := newTestClient("conn-b")
	h.presence.Register("b", recipient)
	repo.EXPECT().SaveMessage(gomock.Any(), gomock.Any()).Return(nil)

	payload := map[string]interface{}{
		"sender":    "a",
		"recipient": "b",
		"message":   "hi",
		"timestamp": "2025-06-01T12:00:00Z",
		"clientTag": "xyz", // not part of the schema, still relayed
	}
	sender := newTestClient("conn-a")
	sendEvent(h, sender, domain.EventSendMessage, payload)

	req.Len(recipient.Send, 1)
	env := decodeEnvelope(t, <-recipient.Send)
	req.Equal(domain.EventReceiveMessage, env.Type)

	forwarded, ok := env.Payload.(map[string]interface{})
	req.True(ok)
	req.Equal("hi", forwarded["message"])
	req.Equal("xyz", forwarded["clientTag"])
}

func TestHandleRegister_RejectsEmptyIdentity(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHub(t)

	c := newTestClient("conn-1")
	sendEvent(h, c, domain.EventRegister, "")

	req.Len(c.Send, 1)
	env := decodeEnvelope(t, <-c.Send)
	req.Equal(domain.EventError, env.Type)
	req.Empty(h.presence.OnlineUsers())
}

func TestHandleMessage_UnknownEventType(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHub(t)

	c := newTestClient("conn-1")
	sendEvent(h, c, "shout", nil)

	req.Len(c.Send, 1)
	env := decodeEnvelope(t, <-c.Send)
	req.Equal(domain.EventError, env.Type)
}

func TestHub_RegisterSendDisconnectScenario(t *testing.T) {
	req := require.New(t)
	h, repo := newTestHub(t)

	c1 := newTestClient("h1")
	c2 := newTestClient("h2")
	h.connections[c1] = true
	h.connections[c2] = true

	sendEvent(h, c1, domain.EventRegister, "u1")
	sendEvent(h, c2, domain.EventRegister, "u2")
	drain(c1)
	drain(c2)

	repo.EXPECT().SaveMessage(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	sendEvent(h, c1, domain.EventSendMessage, domain.ChatMessage{
		Sender: "u1", Recipient: "u2", Body: "hello", Timestamp: time.Now(),
	})

	req.Len(c2.Send, 1)
	env := decodeEnvelope(t, <-c2.Send)
	req.Equal(domain.EventReceiveMessage, env.Type)

	h.dropClient(c1)

	_, ok := h.presence.Lookup("u1")
	req.False(ok)
	got, ok := h.presence.Lookup("u2")
	req.True(ok)
	req.Same(c2, got)

	// c1's channel is closed, c2 got the post-disconnect user list.
	_, open := <-c1.Send
	req.False(open)
}

func drain(c *Client) {
	for {
		select {
		case <-c.Send:
		default:
			return
		}
	}
}
