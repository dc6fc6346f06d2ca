package websocket

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient records sent messages for assertions
type fakeClient struct {
	id     string
	userID uuid.UUID

	mu       sync.Mutex
	messages [][]byte
	received chan struct{}
	sendErr  error
}

func newFakeClient(userID uuid.UUID) *fakeClient {
	return &fakeClient{
		id:       uuid.New().String(),
		userID:   userID,
		received: make(chan struct{}, 16),
	}
}

func (f *fakeClient) ID() string        { return f.id }
func (f *fakeClient) UserID() uuid.UUID { return f.userID }
func (f *fakeClient) Close() error      { return nil }

func (f *fakeClient) Send(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.messages = append(f.messages, data)
	f.received <- struct{}{}
	return nil
}

func (f *fakeClient) waitForMessage(t *testing.T) []byte {
	t.Helper()
	select {
	case <-f.received:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages[len(f.messages)-1]
}

func (f *fakeClient) messageCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func TestRegisterAndUnregister(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	first := newFakeClient(userID)
	second := newFakeClient(userID)

	hub.Register(first)
	hub.Register(second)
	assert.Equal(t, 2, hub.ClientCount(userID))
	assert.Equal(t, 2, hub.TotalClientCount())

	hub.Unregister(first)
	assert.Equal(t, 1, hub.ClientCount(userID))

	hub.Unregister(second)
	assert.Equal(t, 0, hub.ClientCount(userID))
	assert.Equal(t, 0, hub.TotalClientCount())
}

func TestUnregisterUnknownClient(t *testing.T) {
	hub := NewHub()
	client := newFakeClient(uuid.New())

	// Must not panic for a client that was never registered
	hub.Unregister(client)
	assert.Equal(t, 0, hub.TotalClientCount())
}

func TestBroadcastReachesOwnerOnly(t *testing.T) {
	hub := NewHub()

	owner := uuid.New()
	other := uuid.New()

	ownerClient := newFakeClient(owner)
	otherClient := newFakeClient(other)
	hub.Register(ownerClient)
	hub.Register(otherClient)

	event := NewEvent(EventTypeCreated, EntityTypeTransaction, map[string]string{"id": "t1"})
	hub.Broadcast(owner, event)

	data := ownerClient.waitForMessage(t)

	var decoded Event
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "transaction.created", decoded.Type)
	assert.Equal(t, EntityTypeTransaction, decoded.Entity)

	// Give any stray goroutine a moment before asserting isolation
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, otherClient.messageCount())
}

func TestBroadcastFansOutToAllUserClients(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	first := newFakeClient(userID)
	second := newFakeClient(userID)
	hub.Register(first)
	hub.Register(second)

	hub.Broadcast(userID, NewEvent(EventTypeUpdated, EntityTypeGoal, nil))

	first.waitForMessage(t)
	second.waitForMessage(t)
}

func TestBroadcastNoClients(t *testing.T) {
	hub := NewHub()

	// Should be a no-op, not a panic
	hub.Broadcast(uuid.New(), NewEvent(EventTypeDeleted, EntityTypeCategory, nil))
}
