package domain

import "context"

// KVStore is the persistence medium: an opaque key-value byte store.
// Get returns ErrNotFound when the key is absent.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// EventPublisher broadcasts state changes to view collaborators
type EventPublisher interface {
	PublishCartChanged(ctx context.Context, event CartChanged)
	PublishCurrencyChanged(ctx context.Context, event CurrencyChanged)
}

// ReceiptSender hands a finished checkout to the external receipt service
type ReceiptSender interface {
	Send(ctx context.Context, customer Customer, cart Cart) error
}

// CartChanged is emitted after every successful cart mutation
type CartChanged struct {
	Session string `json:"session"`
	Cart    Cart   `json:"cart"`
}

// CurrencyChanged is emitted after the region selection changes
type CurrencyChanged struct {
	Session string `json:"session"`
	Region  string `json:"region"`
	Symbol  string `json:"symbol"`
}
