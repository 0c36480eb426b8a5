package websocket

import (
	"context"
	"encoding/json"

	"storefront-be/internal/dto"
	"storefront-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	hubModule = "Hub"

	// clusterChannel carries cart pushes between service instances.
	clusterChannel = "cart_events"

	MessageCartUpdated = "cart_updated"
)

// Hub tracks live connections per session and fans cart updates out to them.
// Only Run touches the clients map, so no lock is needed and a client's Send
// channel is closed exactly once.
type Hub struct {
	clients map[uuid.UUID]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	deliver    chan delivery
	count      chan countRequest

	// Redis connection for cross-instance communication
	rdb        *redis.Client
	instanceID string

	logger logger.ILogger
	done   chan struct{}
}

type delivery struct {
	sessionID uuid.UUID
	data      []byte
}

type countRequest struct {
	sessionID uuid.UUID
	reply     chan int
}

type clusterMessage struct {
	Origin    string          `json:"origin"`
	SessionID uuid.UUID       `json:"session_id"`
	Message   json.RawMessage `json:"message"`
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan delivery, 256),
		count:      make(chan countRequest),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
		done:       make(chan struct{}),
	}
}

// Run serves the hub until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	defer func() {
		for _, clients := range h.clients {
			for client := range clients {
				close(client.Send)
			}
		}
		h.clients = map[uuid.UUID]map[*Client]struct{}{}
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			if h.clients[client.SessionID] == nil {
				h.clients[client.SessionID] = make(map[*Client]struct{})
			}
			h.clients[client.SessionID][client] = struct{}{}
			h.logger.Info(hubModule, "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.remove(client)

		case d := <-h.deliver:
			for client := range h.clients[d.sessionID] {
				select {
				case client.Send <- d.data:
				default:
					h.logger.Warn(hubModule, "Client Send buffer full, dropping client", map[string]interface{}{"session_id": d.sessionID})
					h.remove(client)
				}
			}

		case req := <-h.count:
			req.reply <- len(h.clients[req.sessionID])
		}
	}
}

func (h *Hub) remove(client *Client) {
	clients, ok := h.clients[client.SessionID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.clients, client.SessionID)
		h.logger.Info(hubModule, "Session has no live connections", map[string]interface{}{"session_id": client.SessionID})
	}
}

// NotifyCartUpdated pushes the cart to every connection of the session on this
// instance and, through Redis, on the others.
func (h *Hub) NotifyCartUpdated(sessionID uuid.UUID, cart *dto.CartResponse) {
	data, err := json.Marshal(dto.CartUpdatedMessage{Type: MessageCartUpdated, Cart: cart})
	if err != nil {
		h.logger.Error(hubModule, "Failed to encode cart update", map[string]interface{}{"error": err.Error()})
		return
	}

	h.deliverLocal(sessionID, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterMessage{Origin: h.instanceID, SessionID: sessionID, Message: data})
		if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
			h.logger.Warn(hubModule, "Failed to publish cart update to Redis", map[string]interface{}{"error": err.Error()})
		}
	}
}

// deliverLocal never blocks the caller for long: a stopped hub or a full queue drops the push.
func (h *Hub) deliverLocal(sessionID uuid.UUID, data []byte) {
	select {
	case h.deliver <- delivery{sessionID: sessionID, data: data}:
	case <-h.done:
	default:
		h.logger.Warn(hubModule, "Delivery queue full, dropping cart update", map[string]interface{}{"session_id": sessionID})
	}
}

// ConnectionCount reports how many live connections the session has on this instance.
func (h *Hub) ConnectionCount(sessionID uuid.UUID) int {
	req := countRequest{sessionID: sessionID, reply: make(chan int, 1)}
	select {
	case h.count <- req:
		return <-req.reply
	case <-h.done:
		return 0
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var payload clusterMessage
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				h.logger.Warn(hubModule, "Redis message parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			// Our own publishes were already delivered locally.
			if payload.Origin == h.instanceID {
				continue
			}
			h.deliverLocal(payload.SessionID, payload.Message)
		}
	}
}
