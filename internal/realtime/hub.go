// Package realtime fans inserted messages out to open transcript
// streams. Messages travel through a Redis channel so every server
// instance sees inserts made on any instance; without Redis the hub
// dispatches locally and still serves a single instance correctly.
package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"trusthire/server/internal/model"
)

const channelName = "messages.inserted"

type Subscription struct {
	C chan model.Message
}

type Hub struct {
	rdb    *redis.Client
	logger *slog.Logger
	buffer int

	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

// NewHub builds a hub. rdb may be nil, in which case Publish dispatches
// straight to local subscribers.
func NewHub(rdb *redis.Client, logger *slog.Logger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		rdb:    rdb,
		logger: logger,
		buffer: buffer,
		subs:   make(map[*Subscription]struct{}),
	}
}

// Run consumes the Redis channel and dispatches until ctx is canceled.
// It is a no-op when the hub has no Redis client.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb == nil {
		<-ctx.Done()
		return
	}

	pubsub := h.rdb.Subscribe(ctx, channelName)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-ch:
			if !ok {
				return
			}
			var msg model.Message
			if err := json.Unmarshal([]byte(payload.Payload), &msg); err != nil {
				h.logger.Warn("realtime: drop malformed payload", "error", err)
				continue
			}
			h.dispatch(msg)
		}
	}
}

// Publish announces an inserted message. The caller has already
// persisted it; failures here lose the live update, not the message.
func (h *Hub) Publish(ctx context.Context, msg model.Message) error {
	if h.rdb == nil {
		h.dispatch(msg)
		return nil
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return h.rdb.Publish(ctx, channelName, payload).Err()
}

// Subscribe registers a stream. Every open stream holds exactly one
// subscription; the caller must Unsubscribe when the stream closes.
func (h *Hub) Subscribe() *Subscription {
	sub := &Subscription{C: make(chan model.Message, h.buffer)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Unsubscribe removes the subscription and closes its channel. Calling
// it twice is safe; only the registered subscription is closed.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.C)
}

func (h *Hub) dispatch(msg model.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		select {
		case sub.C <- msg:
		default:
			// Slow consumer; drop rather than stall the hub.
			h.logger.Warn("realtime: subscriber buffer full, dropping message", "message_id", msg.ID)
		}
	}
}
