package websocket

import (
	"context"
	"sync"

	"github.com/anjiri1684/review_board/logger"
	"github.com/anjiri1684/review_board/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const EventReviewCreated = "review_created"

type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type Client struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Conn   Conn
}

func NewClient(userID uuid.UUID, conn Conn) *Client {
	return &Client{ID: uuid.New(), UserID: userID, Conn: conn}
}

type Event struct {
	Type   string        `json:"type"`
	Review models.Review `json:"review"`
}

// Hub fans review events out to every connected view.
type Hub struct {
	clients   map[uuid.UUID]*Client
	clientsMu sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	done       chan struct{}

	log *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 64),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Register adds the client and reports false once the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ReviewCreated queues an event without blocking the caller. Events are
// dropped when the queue is full.
func (h *Hub) ReviewCreated(review models.Review) {
	select {
	case h.broadcast <- Event{Type: EventReviewCreated, Review: review}:
	default:
		h.log.Warn("websocket broadcast queue full, dropping event", zap.Stringer("review_id", review.ID))
	}
}

func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.log.Debug("websocket client registered", zap.Stringer("user_id", client.UserID))
			h.clientsMu.Lock()
			h.clients[client.ID] = client
			h.clientsMu.Unlock()
		case client := <-h.unregister:
			h.log.Debug("websocket client unregistered", zap.Stringer("user_id", client.UserID))
			h.clientsMu.Lock()
			delete(h.clients, client.ID)
			h.clientsMu.Unlock()
		case event := <-h.broadcast:
			h.send(event)
		}
	}
}

func (h *Hub) send(event Event) {
	var failed []*Client

	h.clientsMu.RLock()
	for _, client := range h.clients {
		if err := client.Conn.WriteJSON(event); err != nil {
			h.log.Warn("failed to send websocket event", zap.Stringer("user_id", client.UserID), zap.Error(err))
			failed = append(failed, client)
		}
	}
	h.clientsMu.RUnlock()

	if len(failed) == 0 {
		return
	}
	h.clientsMu.Lock()
	for _, client := range failed {
		_ = client.Conn.Close()
		delete(h.clients, client.ID)
	}
	h.clientsMu.Unlock()
}

func (h *Hub) closeAll() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	for id, client := range h.clients {
		_ = client.Conn.Close()
		delete(h.clients, id)
	}
}
