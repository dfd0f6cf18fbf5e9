package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/tdpro/backend/internal/catalog"
	"github.com/tdpro/backend/internal/domain"
	"github.com/tdpro/backend/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// CartKey is the storage key holding a session's cart
func CartKey(session string) string {
	return "cart:" + session
}

// AddLine merges candidate into a copy of cart. An existing line with the
// same id gains the candidate's qty and an imageUrl if it had none; otherwise
// the candidate is appended. Candidates without an id or with qty <= 0 are ignored.
func AddLine(cart domain.Cart, candidate domain.CartLine) domain.Cart {
	out := cart.Normalize()
	if candidate.ID == "" || candidate.Qty <= 0 {
		return out
	}

	if i, ok := out.Find(candidate.ID); ok {
		out[i].Qty = addQty(out[i].Qty, candidate.Qty)
		if out[i].ImageURL == "" {
			out[i].ImageURL = candidate.ImageURL
		}
		return out
	}

	return append(out, candidate.Normalize())
}

// addQty saturates at math.MaxInt instead of wrapping
func addQty(have, add int) int {
	if add > 0 && have > math.MaxInt-add {
		return math.MaxInt
	}
	return have + add
}

// PrepareLine applies the card-add defaults: qty of at least 1, an id derived
// from the name when missing, a fallback name and a non-negative price.
func PrepareLine(line domain.CartLine) domain.CartLine {
	if line.Qty < 1 {
		line.Qty = 1
	}
	if strings.TrimSpace(line.ID) == "" {
		line.ID = SlugID(line.Name)
	}
	if line.Name == "" {
		line.Name = "Item"
	}
	if line.Price < 0 {
		line.Price = 0
	}
	return line
}

// sessionLocks hands out one mutex per session so a load, change, save cycle
// never interleaves with another on the same cart. Entries are dropped once
// no caller holds or waits on them.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func (l *sessionLocks) lock(session string) (unlock func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sessionLock)
	}
	sl, ok := l.locks[session]
	if !ok {
		sl = &sessionLock{}
		l.locks[session] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()
	return func() {
		sl.mu.Unlock()
		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, session)
		}
		l.mu.Unlock()
	}
}

func (l *sessionLocks) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// CartStore owns the persisted cart of every session
type CartStore struct {
	store     domain.KVStore
	publisher domain.EventPublisher
	catalog   *catalog.Index
	metrics   *metrics.Metrics
	logger    *zap.Logger
	locks     sessionLocks
}

// NewCartStore wires a cart store. publisher, m and logger may be nil.
func NewCartStore(store domain.KVStore, index *catalog.Index, publisher domain.EventPublisher, m *metrics.Metrics, logger *zap.Logger) *CartStore {
	if index == nil {
		index = catalog.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartStore{
		store:     store,
		publisher: publisher,
		catalog:   index,
		metrics:   m,
		logger:    logger,
	}
}

// Load reads the session's cart. It never fails: a missing, unreadable or
// malformed payload is an empty cart.
func (s *CartStore) Load(ctx context.Context, session string) domain.Cart {
	data, err := s.store.Get(ctx, CartKey(session))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("cart load failed, using empty cart", zap.String("session", session), zap.Error(err))
		}
		return domain.Cart{}
	}
	return domain.DecodeCart(data)
}

// Save normalizes and writes the whole cart, replacing prior content
func (s *CartStore) Save(ctx context.Context, session string, cart domain.Cart) error {
	data, err := cart.Encode()
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.store.Set(ctx, CartKey(session), data); err != nil {
		s.logger.Error("cart save failed", zap.String("session", session), zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// Snapshot returns the cart as consumers see it: active, normalized lines only
func (s *CartStore) Snapshot(ctx context.Context, session string) domain.Cart {
	return s.Load(ctx, session).Active()
}

// Add merges a user-supplied line after PrepareLine
func (s *CartStore) Add(ctx context.Context, session string, line domain.CartLine) (domain.Cart, error) {
	line = PrepareLine(line)
	return s.mutate(ctx, session, "add", line.Qty, func(cart domain.Cart) domain.Cart {
		return AddLine(cart, line)
	})
}

// AddProductByID adds qty of a catalog product using the catalog's snapshot fields
func (s *CartStore) AddProductByID(ctx context.Context, session, id string, qty int) (domain.Cart, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	product, ok := s.catalog.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProduct, id)
	}
	line := product.NewLine(qty)
	return s.mutate(ctx, session, "add_product", qty, func(cart domain.Cart) domain.Cart {
		return AddLine(cart, line)
	})
}

// Clear empties the session's cart
func (s *CartStore) Clear(ctx context.Context, session string) (domain.Cart, error) {
	return s.mutate(ctx, session, "clear", 0, func(domain.Cart) domain.Cart {
		return domain.Cart{}
	})
}

// mutate runs a load, change, save cycle under the session lock and notifies
// listeners on success. Writers in other processes are not serialized.
func (s *CartStore) mutate(ctx context.Context, session, op string, qty int, change func(domain.Cart) domain.Cart) (domain.Cart, error) {
	unlock := s.locks.lock(session)
	cart := change(s.Load(ctx, session))
	err := s.Save(ctx, session, cart)
	unlock()
	if err != nil {
		return nil, err
	}

	s.metrics.RecordCartMutation(op, qty)
	s.logger.Debug("cart updated",
		zap.String("session", session),
		zap.String("operation", op),
		zap.Int("lines", len(cart)),
		zap.Int("count", cart.Count()),
	)

	snapshot := cart.Active()
	if s.publisher != nil {
		s.publisher.PublishCartChanged(ctx, domain.CartChanged{Session: session, Cart: snapshot})
	}
	return snapshot, nil
}

// SlugID derives a line id from a display name: "Tournament Banner" is "tournament-banner"
func SlugID(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Item"
	}
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
