package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"shophop/pkg/logger"
)

// Client represents a WebSocket connection client
type Client struct {
	ID     string // connection id, assigned at upgrade
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte

	mu     sync.Mutex
	closed bool
}

// TrySend queues payload for the connection without blocking. It reports
// false when the buffer is full or the connection has been torn down.
// Every goroutine other than the owner must go through here; the mutex
// is what keeps a send from racing the close of the channel.
func (c *Client) TrySend(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.Send <- payload:
		return true
	default:
		return false
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

// Manager manages all active WebSocket connections and the per-chat
// subscriber groups used for message fan-out.
type Manager struct {
	clients     map[string]*Client            // connection id -> client
	userClients map[string]map[string]*Client // user id -> connection id -> client
	chatClients map[uint]map[string]*Client   // chat id -> connection id -> client
	Register    chan *Client
	Unregister  chan *Client
	mutex       sync.RWMutex
}

// NewManager creates a new WebSocket connection manager
func NewManager() *Manager {
	return &Manager{
		clients:     make(map[string]*Client),
		userClients: make(map[string]map[string]*Client),
		chatClients: make(map[uint]map[string]*Client),
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.addClient(client)
				logger.Info("Client registered: conn=%s user=%s", client.ID, client.UserID)

			case client := <-m.Unregister:
				m.removeClient(client)
				logger.Info("Client unregistered: conn=%s user=%s", client.ID, client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *Manager) addClient(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.clients[client.ID] = client
	if m.userClients[client.UserID] == nil {
		m.userClients[client.UserID] = make(map[string]*Client)
	}
	m.userClients[client.UserID][client.ID] = client
}

func (m *Manager) removeClient(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.clients[client.ID]; !ok {
		return
	}
	delete(m.clients, client.ID)

	if conns, ok := m.userClients[client.UserID]; ok {
		delete(conns, client.ID)
		if len(conns) == 0 {
			delete(m.userClients, client.UserID)
		}
	}

	// Leave every chat group the connection joined.
	for chatID, conns := range m.chatClients {
		delete(conns, client.ID)
		if len(conns) == 0 {
			delete(m.chatClients, chatID)
		}
	}

	client.closeSend()
}

// AddToChat subscribes a connection to a chat's broadcast group. Unknown
// connection ids are ignored: join and disconnect are independent
// operations with no ordering guarantee.
func (m *Manager) AddToChat(chatID uint, connectionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	client, ok := m.clients[connectionID]
	if !ok {
		logger.Warn("AddToChat: unknown connection %s for chat %d", connectionID, chatID)
		return
	}

	if m.chatClients[chatID] == nil {
		m.chatClients[chatID] = make(map[string]*Client)
	}
	m.chatClients[chatID][connectionID] = client
}

// RemoveFromChat unsubscribes a connection from a chat's broadcast group.
func (m *Manager) RemoveFromChat(chatID uint, connectionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if conns, ok := m.chatClients[chatID]; ok {
		delete(conns, connectionID)
		if len(conns) == 0 {
			delete(m.chatClients, chatID)
		}
	}
}

// BroadcastToChat delivers payload to every connection currently
// subscribed to the chat. Delivery is best effort: a connection with a
// full send buffer is skipped, never waited on.
func (m *Manager) BroadcastToChat(chatID uint, payload []byte) {
	m.broadcast(chatID, payload, "")
}

// BroadcastToChatExcept is BroadcastToChat minus every connection that
// belongs to excludeUserID (typically the sender).
func (m *Manager) BroadcastToChatExcept(chatID uint, payload []byte, excludeUserID string) {
	m.broadcast(chatID, payload, excludeUserID)
}

func (m *Manager) broadcast(chatID uint, payload []byte, excludeUserID string) {
	// Iterate over a snapshot so membership changes during delivery
	// cannot corrupt the walk.
	m.mutex.RLock()
	targets := make([]*Client, 0, len(m.chatClients[chatID]))
	for _, client := range m.chatClients[chatID] {
		if excludeUserID != "" && client.UserID == excludeUserID {
			continue
		}
		targets = append(targets, client)
	}
	m.mutex.RUnlock()

	for _, client := range targets {
		if !client.TrySend(payload) {
			logger.Warn("Broadcast: dropping message for slow connection %s (chat %d)", client.ID, chatID)
		}
	}
}

// SendToUser sends payload to every active connection of a user.
func (m *Manager) SendToUser(userID string, payload []byte) {
	m.mutex.RLock()
	targets := make([]*Client, 0, len(m.userClients[userID]))
	for _, client := range m.userClients[userID] {
		targets = append(targets, client)
	}
	m.mutex.RUnlock()

	for _, client := range targets {
		if !client.TrySend(payload) {
			logger.Warn("SendToUser: dropping message for slow connection %s (user %s)", client.ID, userID)
		}
	}
}
