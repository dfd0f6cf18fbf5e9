// Package events delivers cart and currency change notifications to
// in-process listeners such as the badge, mini-summary and recommendation views.
package events

import (
	"context"
	"sort"
	"sync"

	"github.com/tdpro/backend/internal/domain"
	"go.uber.org/zap"
)

// Event type names, matching the storefront's browser events
const (
	TypeCartChange     = "cartchange"
	TypeCurrencyChange = "currencychange"
)

// Event is one notification. Payload is domain.CartChanged or domain.CurrencyChanged.
type Event struct {
	Type    string `json:"type"`
	Session string `json:"session"`
	Payload any    `json:"payload"`
}

// Listener receives events synchronously on the publishing goroutine
type Listener func(Event)

// Broadcaster fans events out to every subscriber in subscription order.
// It implements domain.EventPublisher.
type Broadcaster struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]Listener
	logger    *zap.Logger
}

// NewBroadcaster creates an empty broadcaster
func NewBroadcaster(logger *zap.Logger) *Broadcaster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Broadcaster{
		listeners: make(map[int]Listener),
		logger:    logger,
	}
}

// Subscribe registers l and returns a func that removes it
func (b *Broadcaster) Subscribe(l Listener) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = l
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}
}

// SubscribeSession returns a buffered channel of events for one session.
// Events are dropped when the buffer is full. The channel is closed by unsubscribe.
func (b *Broadcaster) SubscribeSession(session string, buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)
	var (
		mu     sync.Mutex
		closed bool
	)

	remove := b.Subscribe(func(e Event) {
		if e.Session != session {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case ch <- e:
		default:
			b.logger.Debug("dropping event for slow subscriber",
				zap.String("session", session), zap.String("type", e.Type))
		}
	})

	return ch, func() {
		remove()
		mu.Lock()
		defer mu.Unlock()
		if !closed {
			closed = true
			close(ch)
		}
	}
}

// Len returns the number of active listeners
func (b *Broadcaster) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}

// PublishCartChanged implements domain.EventPublisher
func (b *Broadcaster) PublishCartChanged(ctx context.Context, event domain.CartChanged) {
	b.publish(Event{Type: TypeCartChange, Session: event.Session, Payload: event})
}

// PublishCurrencyChanged implements domain.EventPublisher
func (b *Broadcaster) PublishCurrencyChanged(ctx context.Context, event domain.CurrencyChanged) {
	b.publish(Event{Type: TypeCurrencyChange, Session: event.Session, Payload: event})
}

func (b *Broadcaster) publish(e Event) {
	b.mu.RLock()
	ids := make([]int, 0, len(b.listeners))
	for id := range b.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	listeners := make([]Listener, len(ids))
	for i, id := range ids {
		listeners[i] = b.listeners[id]
	}
	b.mu.RUnlock()

	for _, l := range listeners {
		b.deliver(l, e)
	}
}

// deliver isolates listeners from each other: a panicking view doesn't stop the rest
func (b *Broadcaster) deliver(l Listener, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event listener panicked",
				zap.String("type", e.Type), zap.Any("panic", r))
		}
	}()
	l(e)
}
