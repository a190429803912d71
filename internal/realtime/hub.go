package realtime

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/festeja/backend/internal/models"
)

const (
	// PingInterval and PongWait are used for heartbeat.
	PingInterval = 30
	PongWait     = 60
)

// EventSubmissionReceived is pushed to a supplier's dashboard when a new
// contact form submission arrives.
const EventSubmissionReceived = "submission_received"

// Hub maintains supplier_id -> set of dashboard connections and pushes
// inbox events. Uses Redis pub/sub for horizontal scaling: events are
// published to Redis and every instance's subscription fans them out.
type Hub struct {
	// supplierID -> map[clientID]*Client
	suppliers map[uuid.UUID]map[string]*Client
	subs      map[uuid.UUID]func() // cancel Redis subscription per supplier
	mu        sync.RWMutex
	logger    *zap.Logger
	redis     RedisPublisher
	redisSub  RedisSubscriber
}

// RedisPublisher publishes supplier events to Redis for cross-instance broadcast.
type RedisPublisher interface {
	PublishSupplierEvent(supplierID uuid.UUID, event string, payload []byte) error
}

// RedisSubscriber subscribes to supplier channels and invokes handler for incoming events.
type RedisSubscriber interface {
	SubscribeSupplier(supplierID uuid.UUID, handler func(event string, payload []byte)) (cancel func(), err error)
}

// NewHub creates a new WebSocket hub.
func NewHub(logger *zap.Logger, redisPub RedisPublisher, redisSub RedisSubscriber) *Hub {
	return &Hub{
		suppliers: make(map[uuid.UUID]map[string]*Client),
		subs:      make(map[uuid.UUID]func()),
		logger:    logger,
		redis:     redisPub,
		redisSub:  redisSub,
	}
}

// Register adds a client to a supplier channel. Starts the Redis
// subscription for this supplier if it is the first client.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.suppliers[c.SupplierID] == nil {
		h.suppliers[c.SupplierID] = make(map[string]*Client)
		if h.redisSub != nil {
			cancel, err := h.redisSub.SubscribeSupplier(c.SupplierID, func(event string, payload []byte) {
				h.Broadcast(c.SupplierID, event, json.RawMessage(payload))
			})
			if err == nil {
				h.subs[c.SupplierID] = cancel
			}
		}
	}
	h.suppliers[c.SupplierID][c.ID] = c
	h.mu.Unlock()
	h.logger.Debug("dashboard client connected",
		zap.String("client_id", c.ID), zap.String("supplier_id", c.SupplierID.String()))
}

// Unregister removes a client. Cancels the Redis subscription when the last
// client for the supplier leaves.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if m, ok := h.suppliers[c.SupplierID]; ok {
		delete(m, c.ID)
		if len(m) == 0 {
			delete(h.suppliers, c.SupplierID)
			if cancel, ok := h.subs[c.SupplierID]; ok {
				cancel()
				delete(h.subs, c.SupplierID)
			}
		}
	}
	h.mu.Unlock()
	h.logger.Debug("dashboard client disconnected",
		zap.String("client_id", c.ID), zap.String("supplier_id", c.SupplierID.String()))
}

// Broadcast sends a message to all of the supplier's connected dashboards
// (local instance only).
func (h *Hub) Broadcast(supplierID uuid.UUID, event string, payload interface{}) {
	var data []byte
	switch v := payload.(type) {
	case []byte:
		data = v
	case json.RawMessage:
		data = v
	default:
		data, _ = json.Marshal(payload)
	}
	msg := WSMessage{Event: event, Data: data}

	h.mu.RLock()
	clients := h.suppliers[supplierID]
	h.mu.RUnlock()

	if clients == nil {
		return
	}
	for _, c := range clients {
		select {
		case c.send <- msg:
		default:
			// buffer full, skip
		}
	}
}

// PublishOnly publishes to Redis without a local broadcast, so the
// subscription callback delivers the event exactly once to every instance's
// clients, this one included. A local broadcast here would double up for
// local dashboards. Falls back to broadcasting when Redis is absent.
func (h *Hub) PublishOnly(supplierID uuid.UUID, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if h.redis != nil {
		_ = h.redis.PublishSupplierEvent(supplierID, event, data)
		return
	}
	h.Broadcast(supplierID, event, json.RawMessage(data))
}

// SubmissionReceived implements the contactforms notifier: it pushes the
// new submission to every open dashboard of the supplier.
func (h *Hub) SubmissionReceived(supplierID uuid.UUID, submission *models.Submission) {
	h.PublishOnly(supplierID, EventSubmissionReceived, submission)
}

// ClientCount returns the number of connected dashboards for a supplier.
func (h *Hub) ClientCount(supplierID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.suppliers[supplierID])
}
