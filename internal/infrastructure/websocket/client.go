package websocket

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"shophop/pkg/logger"
)

const (
	MessageTypeConnected = "connected"
	MessageTypePing      = "ping"
	MessageTypePong      = "pong"
	MessageTypeJoinChat  = "join_chat"
	MessageTypeLeaveChat = "leave_chat"
)

// WSMessage is the envelope for control frames exchanged over the socket.
// New chat messages themselves are posted over HTTP and fanned out by the
// manager after they are persisted.
type WSMessage struct {
	Type      string      `json:"type"`
	ChatID    string      `json:"chat_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// ReadPump reads control messages from the WebSocket connection
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, payload, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("WebSocket read error for conn %s: %v", c.ID, err)
			}
			break
		}

		c.handleMessage(m, payload)
	}
}

func (c *Client) handleMessage(m *Manager, payload []byte) {
	var msg WSMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		logger.Warn("WebSocket: invalid frame from conn %s: %v", c.ID, err)
		return
	}

	switch msg.Type {
	case MessageTypePing:
		c.sendControl(WSMessage{
			Type:      MessageTypePong,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})

	case MessageTypeJoinChat:
		chatID, err := strconv.ParseUint(msg.ChatID, 10, 32)
		if err != nil {
			logger.Warn("WebSocket: invalid chat_id %q from conn %s", msg.ChatID, c.ID)
			return
		}
		m.AddToChat(uint(chatID), c.ID)
		logger.Info("WebSocket: conn %s joined chat %d", c.ID, chatID)

	case MessageTypeLeaveChat:
		chatID, err := strconv.ParseUint(msg.ChatID, 10, 32)
		if err != nil {
			logger.Warn("WebSocket: invalid chat_id %q from conn %s", msg.ChatID, c.ID)
			return
		}
		m.RemoveFromChat(uint(chatID), c.ID)
		logger.Info("WebSocket: conn %s left chat %d", c.ID, chatID)

	default:
		logger.Warn("WebSocket: unknown message type %q from conn %s", msg.Type, c.ID)
	}
}

func (c *Client) sendControl(msg WSMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	c.TrySend(payload)
}

// WritePump sends messages to the WebSocket connection
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		payload, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.Error("WebSocket write error for conn %s: %v", c.ID, err)
			return
		}
	}
}
