package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/shopverse/shopverse-backend/pkg/logger"
)

// Client is one WebSocket session. A user can hold several at once
// (multiple tabs or devices).
type Client struct {
	Hub           *Hub
	Conn          *Conn
	UserID        uint
	Send          chan []byte
	MessageCount  int
	LastResetTime time.Time
	RateMu        sync.Mutex
}

// Hub tracks connected clients and fans notification pushes out to every
// session a user has open.
type Hub struct {
	clients map[uint][]*Client

	register   chan *Client
	unregister chan *Client

	push chan *PushMessage

	mu sync.RWMutex
}

// PushMessage is a payload addressed to a single user.
type PushMessage struct {
	UserID  uint
	Message []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		push:       make(chan *PushMessage, 1024),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			total := len(h.clients[client.UserID])
			h.mu.Unlock()
			logger.Info("WebSocket client registered", map[string]interface{}{
				"user_id":        client.UserID,
				"total_sessions": total,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			found := false
			remaining := 0
			if clientList, ok := h.clients[client.UserID]; ok {
				newList := make([]*Client, 0, len(clientList))
				for _, c := range clientList {
					if c != client {
						newList = append(newList, c)
					} else {
						found = true
					}
				}

				if len(newList) == 0 {
					delete(h.clients, client.UserID)
				} else {
					h.clients[client.UserID] = newList
				}
				remaining = len(newList)
			}
			h.mu.Unlock()

			// A session can be unregistered twice (buffer-full kick plus the
			// read pump's own defer); only the removal that found it may
			// close the channel.
			if found {
				close(client.Send)
				logger.Info("WebSocket client unregistered", map[string]interface{}{
					"user_id":            client.UserID,
					"remaining_sessions": remaining,
				})
			}

		case message := <-h.push:
			h.mu.RLock()
			if clientList, ok := h.clients[message.UserID]; ok {
				for _, client := range clientList {
					select {
					case client.Send <- message.Message:
					default:
						// Send buffer is stuck; drop the session.
						go h.Unregister(client)
						logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
							"user_id": message.UserID,
						})
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// SendToUser pushes a payload to every open session of a user. Messages are
// dropped rather than blocking when the push channel is full.
func (h *Hub) SendToUser(userID uint, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		logger.Error("Failed to marshal push message", err, nil)
		return err
	}

	select {
	case h.push <- &PushMessage{
		UserID:  userID,
		Message: data,
	}:
		return nil
	default:
		logger.Warn("Push channel full, message dropped", map[string]interface{}{
			"user_id": userID,
		})
		return nil
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) IsUserOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}
