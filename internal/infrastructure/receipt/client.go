// Package receipt forwards completed checkouts to the external receipt
// service as a form POST.
package receipt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tdpro/backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxAttempts = 3

// Client posts checkout forms to the receipt endpoint
type Client struct {
	httpClient  *http.Client
	endpoint    string
	rateLimiter *rate.Limiter
	backoff     time.Duration
	logger      *zap.Logger
}

// NewClient creates a receipt client for endpoint
func NewClient(endpoint string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		endpoint:    endpoint,
		rateLimiter: rate.NewLimiter(rate.Limit(5), 5),
		backoff:     500 * time.Millisecond,
		logger:      logger.Named("receipt"),
	}
}

// Form builds the fields the receipt service expects
func Form(customer domain.Customer, cart domain.Cart) (url.Values, error) {
	payload, err := cart.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode cart: %w", err)
	}

	form := url.Values{}
	form.Set("fullname", customer.FullName)
	form.Set("email", customer.Email)
	form.Set("address", customer.Address)
	form.Set("city", customer.City)
	form.Set("state", customer.State)
	form.Set("zip", customer.Zip)
	form.Set("cartPayload", string(payload))
	return form, nil
}

// Send posts the form, retrying transient failures
func (c *Client) Send(ctx context.Context, customer domain.Customer, cart domain.Cart) error {
	form, err := Form(customer, cart)
	if err != nil {
		return err
	}
	body := form.Encode()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limiter: %v", domain.ErrReceiptFailure, err)
		}

		status, err := c.post(ctx, body)
		if err != nil {
			c.logger.Warn("receipt request failed", zap.Int("attempt", attempt), zap.Error(err))
			lastErr = err
			if !c.sleep(ctx, attempt) {
				return fmt.Errorf("%w: %v", domain.ErrReceiptFailure, ctx.Err())
			}
			continue
		}

		if status >= 200 && status < 300 {
			c.logger.Debug("receipt forwarded", zap.Int("status", status), zap.Int("lines", len(cart)))
			return nil
		}

		lastErr = fmt.Errorf("%w: status %d", domain.ErrReceiptFailure, status)
		// client errors will not improve on retry
		if status < 500 {
			c.logger.Warn("receipt rejected", zap.Int("status", status))
			return lastErr
		}
		c.logger.Warn("receipt service error", zap.Int("attempt", attempt), zap.Int("status", status))
		if !c.sleep(ctx, attempt) {
			break
		}
	}

	return lastErr
}

func (c *Client) post(ctx context.Context, body string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: create request: %v", domain.ErrReceiptFailure, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "TDPro/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrReceiptFailure, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

// sleep waits attempt*backoff; false means ctx ended first
func (c *Client) sleep(ctx context.Context, attempt int) bool {
	if attempt >= maxAttempts {
		return true
	}
	t := time.NewTimer(time.Duration(attempt) * c.backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
