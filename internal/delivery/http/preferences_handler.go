package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tdpro/backend/internal/currency"
)

// GetRegion returns the selected region and every selectable one
func (h *Handler) GetRegion(c *gin.Context) {
	code := h.prefs.Region(c.Request.Context(), sessionFrom(c))
	c.JSON(http.StatusOK, gin.H{
		"region":  code,
		"symbol":  currency.SymbolFor(code),
		"regions": currency.Regions(),
	})
}

type setRegionRequest struct {
	Region string `json:"region" binding:"required"`
}

// SetRegion changes the display currency
func (h *Handler) SetRegion(c *gin.Context) {
	var req setRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errInvalid("%v", err))
		return
	}

	code, err := h.prefs.SetRegion(c.Request.Context(), sessionFrom(c), req.Region)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"region": code,
		"symbol": currency.SymbolFor(code),
	})
}

// GetFieldDistance returns the stored field length
func (h *Handler) GetFieldDistance(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"distanceFeet": h.prefs.FieldDistance(c.Request.Context(), sessionFrom(c)),
	})
}

type setDistanceRequest struct {
	DistanceFeet *int `json:"distanceFeet" binding:"required,gte=0"`
}

// SetFieldDistance stores the field length used by the supplies rules
func (h *Handler) SetFieldDistance(c *gin.Context) {
	var req setDistanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errInvalid("%v", err))
		return
	}

	if err := h.prefs.SetFieldDistance(c.Request.Context(), sessionFrom(c), *req.DistanceFeet); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"distanceFeet": *req.DistanceFeet})
}

// SuppliesSuggestion returns flag and paint estimates for the stored field length
func (h *Handler) SuppliesSuggestion(c *gin.Context) {
	c.JSON(http.StatusOK, h.recommendations.Supplies(c.Request.Context(), sessionFrom(c)))
}
