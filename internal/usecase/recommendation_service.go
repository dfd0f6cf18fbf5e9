package usecase

import (
	"context"

	"github.com/tdpro/backend/internal/domain"
	"github.com/tdpro/backend/internal/infrastructure/metrics"
)

// RecommendationService computes suggestions from the stored cart and field length
type RecommendationService struct {
	carts   *CartStore
	prefs   *PreferencesService
	metrics *metrics.Metrics
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(carts *CartStore, prefs *PreferencesService, m *metrics.Metrics) *RecommendationService {
	return &RecommendationService{carts: carts, prefs: prefs, metrics: m}
}

// ForCart returns the aggregated, unsatisfied suggestions for the whole cart
func (s *RecommendationService) ForCart(ctx context.Context, session string) []domain.Recommendation {
	recs := AggregateForCart(s.carts.Snapshot(ctx, session), s.prefs.FieldDistance(ctx, session))
	s.metrics.RecordRecommendations("cart", len(recs))
	return recs
}

// ForAdd returns the suggestions a just-added product triggers against the current cart
func (s *RecommendationService) ForAdd(ctx context.Context, session, productID string, qty int) []domain.Recommendation {
	recs := BuildForAdd(productID, qty, s.carts.Snapshot(ctx, session), s.prefs.FieldDistance(ctx, session))
	s.metrics.RecordRecommendations("add", len(recs))
	return recs
}

// Supplies returns the flag and paint estimate for the stored field length
func (s *RecommendationService) Supplies(ctx context.Context, session string) domain.SuppliesSuggestion {
	return SuppliesSuggestionFor(s.prefs.FieldDistance(ctx, session))
}
