package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tdpro/backend/internal/domain"
)

var errStoreDown = errors.New("store offline")

// MockKVStore is an in-memory domain.KVStore with injectable failures
type MockKVStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	getError error
	setError error
	getDelay time.Duration
	sets     int
}

func NewMockKVStore() *MockKVStore {
	return &MockKVStore{data: make(map[string][]byte)}
}

func (m *MockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getDelay > 0 {
		time.Sleep(m.getDelay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getError != nil {
		return nil, m.getError
	}
	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MockKVStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setError != nil {
		return m.setError
	}
	m.sets++
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MockKVStore) raw(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.data[key])
}

// MockPublisher records every event it is handed
type MockPublisher struct {
	carts      []domain.CartChanged
	currencies []domain.CurrencyChanged
}

func (m *MockPublisher) PublishCartChanged(ctx context.Context, event domain.CartChanged) {
	m.carts = append(m.carts, event)
}

func (m *MockPublisher) PublishCurrencyChanged(ctx context.Context, event domain.CurrencyChanged) {
	m.currencies = append(m.currencies, event)
}

// MockReceiptSender captures the forwarded checkout
type MockReceiptSender struct {
	err      error
	customer domain.Customer
	cart     domain.Cart
	calls    int
}

func (m *MockReceiptSender) Send(ctx context.Context, customer domain.Customer, cart domain.Cart) error {
	m.calls++
	m.customer = customer
	m.cart = cart
	return m.err
}
