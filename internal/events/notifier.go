// Package events is the in-process change notifier. Services publish a topic
// after a committed mutation; the presentation layer subscribes to refresh.
package events

import (
	"context"
	"log/slog"
	"sync"
)

// TopicLogsRefresh is published after any site-log mutation.
const TopicLogsRefresh = "logs.refresh"

// Handler receives a published topic. Handlers run synchronously on the
// publishing goroutine and must not block.
type Handler func(ctx context.Context, topic string)

// Notifier fans a topic out to its subscribers.
type Notifier struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]Handler
	log    *slog.Logger
}

// NewNotifier creates an empty notifier.
func NewNotifier(log *slog.Logger) *Notifier {
	return &Notifier{
		subs: make(map[string]map[int]Handler),
		log:  log.With("component", "events"),
	}
}

// Subscribe registers h for topic and returns a function that removes it.
func (n *Notifier) Subscribe(topic string, h Handler) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs[topic] == nil {
		n.subs[topic] = make(map[int]Handler)
	}
	id := n.nextID
	n.nextID++
	n.subs[topic][id] = h

	return func() {
		n.mu.Lock()
		delete(n.subs[topic], id)
		n.mu.Unlock()
	}
}

// Publish delivers topic to every current subscriber. A panicking handler is
// logged and does not affect the others.
func (n *Notifier) Publish(ctx context.Context, topic string) {
	n.mu.RLock()
	handlers := make([]Handler, 0, len(n.subs[topic]))
	for _, h := range n.subs[topic] {
		handlers = append(handlers, h)
	}
	n.mu.RUnlock()

	for _, h := range handlers {
		n.deliver(ctx, topic, h)
	}
	n.log.DebugContext(ctx, "event published",
		slog.String("topic", topic),
		slog.Int("subscribers", len(handlers)),
	)
}

func (n *Notifier) deliver(ctx context.Context, topic string, h Handler) {
	defer func() {
		if rec := recover(); rec != nil {
			n.log.ErrorContext(ctx, "event handler panic",
				slog.String("topic", topic),
				slog.Any("panic", rec),
			)
		}
	}()
	h(ctx, topic)
}
