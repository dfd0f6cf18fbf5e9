package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/tdpro/backend/internal/currency"
	"github.com/tdpro/backend/internal/domain"
	"go.uber.org/zap"
)

// RegionKey is the storage key holding a session's region selection
func RegionKey(session string) string {
	return "country:" + session
}

// DistanceKey is the storage key holding a session's field length in feet
func DistanceKey(session string) string {
	return "td_distance_feet:" + session
}

// PreferencesService reads and writes the per-session ambient context the
// formatter and rule engine take as explicit inputs
type PreferencesService struct {
	store         domain.KVStore
	publisher     domain.EventPublisher
	defaultRegion string
	logger        *zap.Logger
}

// NewPreferencesService wires the service. An unsupported defaultRegion falls back to the baseline.
func NewPreferencesService(store domain.KVStore, publisher domain.EventPublisher, defaultRegion string, logger *zap.Logger) *PreferencesService {
	defaultRegion = strings.ToUpper(strings.TrimSpace(defaultRegion))
	if !currency.Supported(defaultRegion) {
		defaultRegion = currency.Baseline
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferencesService{
		store:         store,
		publisher:     publisher,
		defaultRegion: defaultRegion,
		logger:        logger,
	}
}

// Region returns the stored region code, or the default when none is stored
// or the stored value is not a supported code
func (s *PreferencesService) Region(ctx context.Context, session string) string {
	raw, ok := s.read(ctx, RegionKey(session))
	if !ok {
		return s.defaultRegion
	}
	code := strings.ToUpper(strings.TrimSpace(string(raw)))
	if !currency.Supported(code) {
		return s.defaultRegion
	}
	return code
}

// SetRegion persists code and emits a currency-changed notification
func (s *PreferencesService) SetRegion(ctx context.Context, session, code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !currency.Supported(code) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidRegion, code)
	}
	if err := s.store.Set(ctx, RegionKey(session), []byte(code)); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	s.logger.Debug("region changed", zap.String("session", session), zap.String("region", code))
	if s.publisher != nil {
		s.publisher.PublishCurrencyChanged(ctx, domain.CurrencyChanged{
			Session: session,
			Region:  code,
			Symbol:  currency.SymbolFor(code),
		})
	}
	return code, nil
}

// FieldDistance returns the stored field length; anything unusable is 0
func (s *PreferencesService) FieldDistance(ctx context.Context, session string) int {
	raw, ok := s.read(ctx, DistanceKey(session))
	if !ok {
		return 0
	}
	return ParseDistance(string(raw))
}

// SetFieldDistance persists the field length in feet
func (s *PreferencesService) SetFieldDistance(ctx context.Context, session string, feet int) error {
	if feet < 0 {
		return fmt.Errorf("%w: distance must not be negative", domain.ErrInvalidRequest)
	}
	if err := s.store.Set(ctx, DistanceKey(session), []byte(strconv.Itoa(feet))); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *PreferencesService) read(ctx context.Context, key string) ([]byte, bool) {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("preference read failed, using default", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return raw, true
}

// ParseDistance reads leading decimal digits the way a browser's parseInt
// does ("220ft" is 220). Missing, non-numeric or negative input is 0.
func ParseDistance(raw string) int {
	raw = strings.TrimSpace(raw)
	end := 0
	for end < len(raw) && unicode.IsDigit(rune(raw[end])) {
		end++
	}
	if end == 0 {
		return 0
	}
	v, err := strconv.Atoi(raw[:end])
	if err != nil || v <= 0 {
		return 0
	}
	return v
}
