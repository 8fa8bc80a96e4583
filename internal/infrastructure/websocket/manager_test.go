package websocket

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(connID, userID string) *Client {
	return &Client{
		ID:     connID,
		UserID: userID,
		Send:   make(chan []byte, 4),
	}
}

func TestRegisterLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	client := newTestClient("conn-1", "a3")
	m.Register <- client

	require.Eventually(t, func() bool {
		m.mutex.RLock()
		defer m.mutex.RUnlock()
		_, ok := m.clients["conn-1"]
		return ok
	}, time.Second, 5*time.Millisecond)

	m.Unregister <- client

	require.Eventually(t, func() bool {
		m.mutex.RLock()
		defer m.mutex.RUnlock()
		_, ok := m.clients["conn-1"]
		return !ok
	}, time.Second, 5*time.Millisecond)

	// Send is closed on unregister so WritePump terminates.
	_, open := <-client.Send
	assert.False(t, open)
}

func TestBroadcastToChat(t *testing.T) {
	m := NewManager()

	sender := newTestClient("conn-1", "a3")
	receiver := newTestClient("conn-2", "b4")
	outsider := newTestClient("conn-3", "c5")
	m.addClient(sender)
	m.addClient(receiver)
	m.addClient(outsider)

	m.AddToChat(5, "conn-1")
	m.AddToChat(5, "conn-2")

	m.BroadcastToChat(5, []byte("hello"))

	assert.Equal(t, []byte("hello"), <-sender.Send)
	assert.Equal(t, []byte("hello"), <-receiver.Send)
	assert.Empty(t, outsider.Send)
}

func TestBroadcastToChatExcept(t *testing.T) {
	m := NewManager()

	sender := newTestClient("conn-1", "a3")
	senderTab := newTestClient("conn-2", "a3")
	receiver := newTestClient("conn-3", "b4")
	m.addClient(sender)
	m.addClient(senderTab)
	m.addClient(receiver)

	m.AddToChat(5, "conn-1")
	m.AddToChat(5, "conn-2")
	m.AddToChat(5, "conn-3")

	m.BroadcastToChatExcept(5, []byte("hello"), "a3")

	// Every connection of the excluded user is skipped.
	assert.Empty(t, sender.Send)
	assert.Empty(t, senderTab.Send)
	assert.Equal(t, []byte("hello"), <-receiver.Send)
}

func TestAddToChatUnknownConnection(t *testing.T) {
	m := NewManager()

	m.AddToChat(5, "never-registered")

	m.mutex.RLock()
	defer m.mutex.RUnlock()
	assert.Empty(t, m.chatClients[5])
}

func TestRemoveFromChat(t *testing.T) {
	m := NewManager()

	client := newTestClient("conn-1", "a3")
	m.addClient(client)
	m.AddToChat(5, "conn-1")

	m.RemoveFromChat(5, "conn-1")

	m.BroadcastToChat(5, []byte("hello"))
	assert.Empty(t, client.Send)

	m.mutex.RLock()
	_, ok := m.chatClients[5]
	m.mutex.RUnlock()
	assert.False(t, ok)
}

func TestDisconnectLeavesAllChats(t *testing.T) {
	m := NewManager()

	client := newTestClient("conn-1", "a3")
	m.addClient(client)
	m.AddToChat(5, "conn-1")
	m.AddToChat(6, "conn-1")

	m.removeClient(client)

	m.mutex.RLock()
	defer m.mutex.RUnlock()
	assert.Empty(t, m.chatClients)
	assert.Empty(t, m.userClients)
}

func TestBroadcastSkipsSlowConnection(t *testing.T) {
	m := NewManager()

	slow := &Client{ID: "conn-1", UserID: "a3", Send: make(chan []byte, 1)}
	fast := newTestClient("conn-2", "b4")
	m.addClient(slow)
	m.addClient(fast)
	m.AddToChat(5, "conn-1")
	m.AddToChat(5, "conn-2")

	slow.Send <- []byte("backlog")

	// Must not block even though the slow buffer is full.
	done := make(chan struct{})
	go func() {
		m.BroadcastToChat(5, []byte("hello"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full send buffer")
	}

	assert.Equal(t, []byte("hello"), <-fast.Send)
	assert.Equal(t, []byte("backlog"), <-slow.Send)
	assert.Empty(t, slow.Send)
}

func TestTrySendAfterDisconnect(t *testing.T) {
	m := NewManager()

	client := newTestClient("conn-1", "a3")
	m.addClient(client)
	m.removeClient(client)

	assert.False(t, client.TrySend([]byte("late")))
}

func TestBroadcastDuringDisconnect(t *testing.T) {
	m := NewManager()

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				m.BroadcastToChat(1, []byte("x"))
				m.SendToUser("a3", []byte("x"))
			}
		}
	}()

	// Churn a connection through join and disconnect while the broadcast
	// loop runs. A teardown between snapshot and send must degrade to a
	// dropped delivery, never a send on a closed channel.
	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		client := newTestClient("conn-1", "a3")
		m.addClient(client)
		m.AddToChat(1, "conn-1")
		go func() {
			for range client.Send {
			}
		}()
		m.removeClient(client)
	}

	close(stop)
	wg.Wait()
}

func TestSendToUser(t *testing.T) {
	m := NewManager()

	tab1 := newTestClient("conn-1", "a3")
	tab2 := newTestClient("conn-2", "a3")
	other := newTestClient("conn-3", "b4")
	m.addClient(tab1)
	m.addClient(tab2)
	m.addClient(other)

	m.SendToUser("a3", []byte("ping"))

	assert.Equal(t, []byte("ping"), <-tab1.Send)
	assert.Equal(t, []byte("ping"), <-tab2.Send)
	assert.Empty(t, other.Send)
}
