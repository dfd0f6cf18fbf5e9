package domain

import "errors"

var (
	// ErrNotFound is returned by a key-value store when a key is absent
	ErrNotFound = errors.New("key not found")

	// ErrUnknownProduct is returned when a product id has no catalog entry
	ErrUnknownProduct = errors.New("product not found in catalog")

	// ErrInvalidQuantity is returned when a quantity is zero or negative where a positive one is required
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidRegion is returned when a region code is not in the supported set
	ErrInvalidRegion = errors.New("unsupported region code")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrStorageUnavailable is returned when the persistence medium rejects a write
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrReceiptFailure is returned when the receipt service request fails
	ErrReceiptFailure = errors.New("receipt service request failed")
)
