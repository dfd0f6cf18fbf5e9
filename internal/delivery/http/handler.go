package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tdpro/backend/internal/catalog"
	"github.com/tdpro/backend/internal/currency"
	"github.com/tdpro/backend/internal/domain"
	"github.com/tdpro/backend/internal/infrastructure/events"
	"github.com/tdpro/backend/internal/infrastructure/metrics"
	"github.com/tdpro/backend/internal/usecase"
	"go.uber.org/zap"
)

// Dependencies are the services the handlers call into
type Dependencies struct {
	Catalog         *catalog.Index
	Carts           *usecase.CartStore
	Preferences     *usecase.PreferencesService
	Recommendations *usecase.RecommendationService
	Checkout        *usecase.CheckoutService
	Events          *events.Broadcaster
	Metrics         *metrics.Metrics
	Logger          *zap.Logger
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog         *catalog.Index
	carts           *usecase.CartStore
	prefs           *usecase.PreferencesService
	recommendations *usecase.RecommendationService
	checkout        *usecase.CheckoutService
	events          *events.Broadcaster
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(deps Dependencies) *Handler {
	if deps.Catalog == nil {
		deps.Catalog = catalog.Default()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Handler{
		catalog:         deps.Catalog,
		carts:           deps.Carts,
		prefs:           deps.Preferences,
		recommendations: deps.Recommendations,
		checkout:        deps.Checkout,
		events:          deps.Events,
		metrics:         deps.Metrics,
		logger:          deps.Logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "tdpro-backend",
		"version": "1.0.0",
	})
}

type productView struct {
	domain.Product
	DisplayPrice string `json:"displayPrice"`
	ImageURL     string `json:"imageUrl"`
	Frequent     bool   `json:"frequent"`
}

// ListCatalog returns products, optionally filtered by repeated ?category=
func (h *Handler) ListCatalog(c *gin.Context) {
	var categories []domain.Category
	for _, raw := range c.QueryArray("category") {
		cat := domain.Category(raw)
		if !cat.Valid() {
			h.respondError(c, errInvalid("unknown category %q", raw))
			return
		}
		categories = append(categories, cat)
	}

	region := h.region(c)
	products := h.catalog.ByCategory(categories...)
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, productView{
			Product:      p,
			DisplayPrice: currency.Format(p.BasePrice, region),
			ImageURL:     p.ImageURL(),
			Frequent:     h.catalog.Frequent(p.ID),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"region":   region,
		"products": out,
	})
}

// region is ?region= when supported, else the session's stored selection
func (h *Handler) region(c *gin.Context) string {
	if q := c.Query("region"); currency.Supported(q) {
		return q
	}
	return h.prefs.Region(c.Request.Context(), sessionFrom(c))
}

// respondError maps domain errors to status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidRegion):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownProduct):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrReceiptFailure):
		status = http.StatusBadGateway
	case errors.Is(err, domain.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("session", sessionFrom(c)),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
