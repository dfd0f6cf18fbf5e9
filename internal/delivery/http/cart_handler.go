package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tdpro/backend/internal/currency"
	"github.com/tdpro/backend/internal/domain"
	"github.com/tdpro/backend/internal/usecase"
)

func errInvalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidRequest, fmt.Sprintf(format, args...))
}

type cartLineView struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	Qty          int      `json:"qty"`
	ImageURL     string   `json:"imageUrl"`
	Customizable bool     `json:"customizable"`
	CustomNotes  string   `json:"customNotes"`
	CustomImages []string `json:"customImages"`
	DisplayPrice string   `json:"displayPrice"`
	DisplayTotal string   `json:"displayTotal"`
	// catalog-derived, omitted for lines the catalog no longer knows
	Details  string `json:"details,omitempty"`
	Category string `json:"category,omitempty"`
}

type cartView struct {
	Session         string         `json:"session"`
	Region          string         `json:"region"`
	Lines           []cartLineView `json:"lines"`
	Count           int            `json:"count"`
	Subtotal        float64        `json:"subtotal"`
	DisplaySubtotal string         `json:"displaySubtotal"`
}

func (h *Handler) cartView(c *gin.Context, cart domain.Cart) cartView {
	region := h.region(c)
	lines := make([]cartLineView, 0, len(cart))
	for _, l := range cart.Active() {
		v := cartLineView{
			ID:           l.ID,
			Name:         l.Name,
			Price:        l.Price,
			Qty:          l.Qty,
			ImageURL:     l.ImageURL,
			Customizable: l.Customizable,
			CustomNotes:  l.CustomNotes,
			CustomImages: l.CustomImages,
			DisplayPrice: currency.Format(l.Price, region),
			DisplayTotal: currency.Format(l.LineTotal(), region),
		}
		if p, ok := h.catalog.Lookup(l.ID); ok {
			v.Details = p.Details
			v.Category = string(p.Category)
		}
		lines = append(lines, v)
	}

	return cartView{
		Session:         sessionFrom(c),
		Region:          region,
		Lines:           lines,
		Count:           cart.Count(),
		Subtotal:        cart.Subtotal(),
		DisplaySubtotal: currency.Format(cart.Subtotal(), region),
	}
}

// GetCart returns the session's cart with display prices
func (h *Handler) GetCart(c *gin.Context) {
	cart := h.carts.Snapshot(c.Request.Context(), sessionFrom(c))
	c.JSON(http.StatusOK, h.cartView(c, cart))
}

type addItemRequest struct {
	ID           string  `json:"id" binding:"required_without=Name"`
	Name         string  `json:"name"`
	Price        float64 `json:"price" binding:"gte=0"`
	Qty          int     `json:"qty"`
	ImageURL     string  `json:"imageUrl"`
	Customizable bool    `json:"customizable"`
	CustomNotes  string  `json:"customNotes"`
}

// AddItem merges a product-card line into the cart. Missing card fields are
// taken from the catalog when the id is known.
func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errInvalid("%v", err))
		return
	}

	line := domain.NewCartLine(req.ID, req.Name, req.Price, req.Qty, req.ImageURL, req.Customizable)
	line.CustomNotes = req.CustomNotes
	if strings.TrimSpace(line.ID) == "" {
		line.ID = usecase.SlugID(line.Name)
	}
	if p, ok := h.catalog.Lookup(line.ID); ok {
		if line.Name == "" {
			line.Name = p.Name
		}
		if line.Price == 0 {
			line.Price = p.BasePrice
		}
		if line.ImageURL == "" {
			line.ImageURL = p.ImageURL()
		}
		line.Customizable = line.Customizable || p.Customizable
	}
	line = usecase.PrepareLine(line)

	ctx := c.Request.Context()
	session := sessionFrom(c)
	cart, err := h.carts.Add(ctx, session, line)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":            h.cartView(c, cart),
		"recommendations": h.recommendations.ForAdd(ctx, session, line.ID, line.Qty),
	})
}

type addProductRequest struct {
	Qty int `json:"qty"`
}

// AddProduct adds a catalog product by id, the path a suggestion tile takes
func (h *Handler) AddProduct(c *gin.Context) {
	req := addProductRequest{Qty: 1}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.respondError(c, errInvalid("%v", err))
			return
		}
	}

	ctx := c.Request.Context()
	session := sessionFrom(c)
	id := c.Param("id")
	cart, err := h.carts.AddProductByID(ctx, session, id, req.Qty)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":            h.cartView(c, cart),
		"recommendations": h.recommendations.ForAdd(ctx, session, id, req.Qty),
	})
}

// ClearCart empties the session's cart
func (h *Handler) ClearCart(c *gin.Context) {
	cart, err := h.carts.Clear(c.Request.Context(), sessionFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cartView(c, cart))
}

// CartRecommendations returns the aggregated suggestions for the whole cart
func (h *Handler) CartRecommendations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"recommendations": h.recommendations.ForCart(c.Request.Context(), sessionFrom(c)),
	})
}

// ProductRecommendations returns what adding :id would suggest given the current cart
func (h *Handler) ProductRecommendations(c *gin.Context) {
	qty := 1
	if raw := c.Query("qty"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.respondError(c, errInvalid("qty must be an integer"))
			return
		}
		qty = n
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": h.recommendations.ForAdd(c.Request.Context(), sessionFrom(c), c.Param("id"), qty),
	})
}
