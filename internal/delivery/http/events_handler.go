package http

import (
	"github.com/gin-gonic/gin"
	"github.com/tdpro/backend/internal/domain"
	"github.com/tdpro/backend/internal/infrastructure/events"
	"go.uber.org/zap"
)

const eventBuffer = 16

// Events streams the session's cartchange and currencychange notifications
// as Server-Sent Events, starting with the current cart
func (h *Handler) Events(c *gin.Context) {
	ctx := c.Request.Context()
	session := sessionFrom(c)

	ch, unsubscribe := h.events.SubscribeSession(session, eventBuffer)
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent(events.TypeCartChange, domain.CartChanged{Session: session, Cart: h.carts.Snapshot(ctx, session)})
	c.Writer.Flush()

	h.logger.Debug("event stream opened", zap.String("session", session))
	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("event stream closed", zap.String("session", session))
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			c.SSEvent(e.Type, e.Payload)
			c.Writer.Flush()
		}
	}
}
