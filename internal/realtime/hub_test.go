package realtime

import (
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/festeja/backend/internal/models"
)

// fakePubSub loops published events straight back into the supplier's
// subscription handler, like a single-instance Redis round trip.
type fakePubSub struct {
	handlers  map[uuid.UUID]func(event string, payload []byte)
	published int
}

func newFakePubSub() *fakePubSub {
	return &fakePubSub{handlers: make(map[uuid.UUID]func(event string, payload []byte))}
}

func (f *fakePubSub) PublishSupplierEvent(supplierID uuid.UUID, event string, payload []byte) error {
	f.published++
	if h, ok := f.handlers[supplierID]; ok {
		h(event, payload)
	}
	return nil
}

func (f *fakePubSub) SubscribeSupplier(supplierID uuid.UUID, handler func(event string, payload []byte)) (func(), error) {
	f.handlers[supplierID] = handler
	return func() { delete(f.handlers, supplierID) }, nil
}

func TestSubmissionReceivedDeliversOnceWithRedis(t *testing.T) {
	ps := newFakePubSub()
	hub := NewHub(zap.NewNop(), ps, ps)

	supplierID := uuid.New()
	client := &Client{ID: "c1", SupplierID: supplierID, send: make(chan WSMessage, 4)}
	hub.Register(client)

	hub.SubmissionReceived(supplierID, &models.Submission{ID: uuid.New()})

	if ps.published != 1 {
		t.Fatalf("published %d events, want 1", ps.published)
	}
	if got := len(client.send); got != 1 {
		t.Fatalf("client received %d messages, want exactly 1", got)
	}
	msg := <-client.send
	if msg.Event != EventSubmissionReceived {
		t.Errorf("event = %q, want %q", msg.Event, EventSubmissionReceived)
	}
}

func TestSubmissionReceivedWithoutRedisBroadcastsLocally(t *testing.T) {
	hub := NewHub(zap.NewNop(), nil, nil)

	supplierID := uuid.New()
	client := &Client{ID: "c1", SupplierID: supplierID, send: make(chan WSMessage, 4)}
	hub.Register(client)

	hub.SubmissionReceived(supplierID, &models.Submission{ID: uuid.New()})

	if got := len(client.send); got != 1 {
		t.Fatalf("client received %d messages, want 1", got)
	}
}

func TestUnregisterCancelsSupplierSubscription(t *testing.T) {
	ps := newFakePubSub()
	hub := NewHub(zap.NewNop(), ps, ps)

	supplierID := uuid.New()
	client := &Client{ID: "c1", SupplierID: supplierID, send: make(chan WSMessage, 4)}
	hub.Register(client)
	if len(ps.handlers) != 1 {
		t.Fatalf("subscriptions after register = %d, want 1", len(ps.handlers))
	}
	hub.Unregister(client)
	if len(ps.handlers) != 0 {
		t.Fatalf("subscriptions after unregister = %d, want 0", len(ps.handlers))
	}
}
