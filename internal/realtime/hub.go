package realtime

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/todoapp/server/internal/shared/metrics"
)

// Hub tracks connected WebSocket clients by user email and fans Redis
// pub/sub messages out to them.
type Hub struct {
	redis   redis.UniversalClient
	metrics *metrics.Metrics
	logger  *zap.Logger

	// clients maps a user email to their open connections. A user may
	// be connected from several tabs or devices.
	clients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	messages   chan ownerMessage

	// done is closed when Run returns so that client goroutines never
	// block on the channels above after shutdown.
	done chan struct{}
}

type ownerMessage struct {
	email   string
	payload []byte
}

// NewHub creates a new realtime hub.
func NewHub(rdb redis.UniversalClient, m *metrics.Metrics, logger *zap.Logger) *Hub {
	return &Hub{
		redis:      rdb,
		metrics:    m,
		logger:     logger,
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		messages:   make(chan ownerMessage, 64),
		done:       make(chan struct{}),
	}
}

// Run subscribes to all owner topics and dispatches until ctx is
// cancelled. It blocks and is meant to be started in its own goroutine.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	sub := h.redis.PSubscribe(ctx, topicPrefix+"*")
	defer sub.Close()

	go h.pump(ctx, sub)

	for {
		select {
		case <-ctx.Done():
			for _, conns := range h.clients {
				for client := range conns {
					close(client.send)
				}
			}
			return

		case client := <-h.register:
			conns, ok := h.clients[client.email]
			if !ok {
				conns = make(map[*Client]bool)
				h.clients[client.email] = conns
			}
			conns[client] = true
			h.metrics.RealtimeClientsActive.Inc()

		case client := <-h.unregister:
			if conns, ok := h.clients[client.email]; ok && conns[client] {
				delete(conns, client)
				if len(conns) == 0 {
					delete(h.clients, client.email)
				}
				close(client.send)
				h.metrics.RealtimeClientsActive.Dec()
			}

		case msg := <-h.messages:
			for client := range h.clients[msg.email] {
				select {
				case client.send <- msg.payload:
				default:
					// Slow consumer; drop the connection rather than
					// blocking the hub.
					h.logger.Warn("dropping slow realtime client",
						zap.String("email", msg.email))
					delete(h.clients[msg.email], client)
					close(client.send)
					h.metrics.RealtimeClientsActive.Dec()
				}
			}
		}
	}
}

// pump forwards Redis pub/sub messages into the hub loop.
func (h *Hub) pump(ctx context.Context, sub *redis.PubSub) {
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			email, ok := strings.CutPrefix(msg.Channel, topicPrefix)
			if !ok {
				continue
			}
			select {
			case h.messages <- ownerMessage{email: email, payload: []byte(msg.Payload)}:
			case <-ctx.Done():
				return
			}
		}
	}
}
