package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tdpro/backend/internal/domain"
)

// checkoutRequest accepts the storefront's form post as well as JSON
type checkoutRequest struct {
	FullName string `json:"fullname" form:"fullname" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required"`
	Address  string `json:"address" form:"address"`
	City     string `json:"city" form:"city"`
	State    string `json:"state" form:"state"`
	Zip      string `json:"zip" form:"zip"`
}

// Checkout prices the cart and returns the receipt
func (h *Handler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respondError(c, errInvalid("%v", err))
		return
	}

	receipt, err := h.checkout.Checkout(c.Request.Context(), sessionFrom(c), domain.Customer{
		FullName: req.FullName,
		Email:    req.Email,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		Zip:      req.Zip,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}
