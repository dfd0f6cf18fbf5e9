package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/tdpro/backend/internal/domain"
	"github.com/tdpro/backend/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// CheckoutConfig holds pricing for receipts
type CheckoutConfig struct {
	TaxRate      float64
	FlatShipping float64
}

// CheckoutService prices the cart and hands it to the receipt collaborator
type CheckoutService struct {
	carts    *CartStore
	sender   domain.ReceiptSender
	taxRate  decimal.Decimal
	shipping decimal.Decimal
	validate *validator.Validate
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewCheckoutService creates a checkout service. sender may be nil, in which
// case receipts are only built and returned.
func NewCheckoutService(carts *CartStore, sender domain.ReceiptSender, config CheckoutConfig, m *metrics.Metrics, logger *zap.Logger) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		carts:    carts,
		sender:   sender,
		taxRate:  decimal.NewFromFloat(config.TaxRate),
		shipping: decimal.NewFromFloat(config.FlatShipping),
		validate: validator.New(),
		metrics:  m,
		logger:   logger,
	}
}

// Checkout builds the receipt for the session's cart and forwards it when a
// sender is configured
func (s *CheckoutService) Checkout(ctx context.Context, session string, customer domain.Customer) (*domain.Receipt, error) {
	customer = trimCustomer(customer)
	cart := s.carts.Snapshot(ctx, session)

	receipt := BuildReceipt(customer, cart, s.taxRate, s.shipping)
	receipt.EmailValid = s.validate.Var(customer.Email, "required,email") == nil

	if s.sender != nil {
		if err := s.sender.Send(ctx, customer, cart); err != nil {
			s.metrics.RecordCheckout("failed")
			s.logger.Error("receipt forward failed", zap.String("session", session), zap.Error(err))
			return nil, fmt.Errorf("%w: %v", domain.ErrReceiptFailure, err)
		}
		receipt.Forwarded = true
	}

	s.metrics.RecordCheckout("completed")
	s.logger.Info("checkout completed",
		zap.String("session", session),
		zap.Int("lines", len(receipt.Lines)),
		zap.String("total", receipt.Total.StringFixed(2)),
		zap.Bool("forwarded", receipt.Forwarded),
	)
	return receipt, nil
}

// BuildReceipt prices the active lines of cart and renders the text receipt.
// Shipping applies only when the subtotal is positive; tax is rounded to cents.
func BuildReceipt(customer domain.Customer, cart domain.Cart, taxRate, flatShipping decimal.Decimal) *domain.Receipt {
	r := &domain.Receipt{
		Customer: customer,
		Lines:    []domain.ReceiptLine{},
		Subtotal: decimal.Zero,
		Shipping: decimal.Zero,
	}

	for _, line := range cart {
		if !line.Active() {
			continue
		}
		name := line.Name
		if name == "" {
			name = "Item"
		}
		unit := decimal.NewFromFloat(line.Price)
		total := unit.Mul(decimal.NewFromInt(int64(line.Qty)))
		r.Lines = append(r.Lines, domain.ReceiptLine{Name: name, Qty: line.Qty, UnitPrice: unit, LineTotal: total})
		r.Subtotal = r.Subtotal.Add(total)
	}

	r.Tax = r.Subtotal.Mul(taxRate).Round(2)
	if r.Subtotal.IsPositive() {
		r.Shipping = flatShipping
	}
	r.Total = r.Subtotal.Add(r.Tax).Add(r.Shipping)
	r.Text = receiptText(r, taxRate)
	return r
}

func receiptText(r *domain.Receipt, taxRate decimal.Decimal) string {
	c := r.Customer
	var b strings.Builder

	name := c.FullName
	if name == "" {
		name = "Customer"
	}
	fmt.Fprintf(&b, "Order receipt for %s\n\n", name)
	b.WriteString("Ship to:\n")
	if c.FullName != "" {
		b.WriteString(c.FullName + "\n")
	}
	if c.Address != "" {
		b.WriteString(c.Address + "\n")
	}
	if c.City != "" || c.State != "" || c.Zip != "" {
		b.WriteString(strings.TrimSpace(c.City+", "+c.State+" "+c.Zip) + "\n")
	}

	b.WriteString("\nItems:\n")
	for _, l := range r.Lines {
		fmt.Fprintf(&b, "%s x %d — $%s\n", l.Name, l.Qty, money(l.LineTotal))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Subtotal: $%s\n", money(r.Subtotal))
	fmt.Fprintf(&b, "Tax (%s%%): $%s\n", taxRate.Shift(2).String(), money(r.Tax))
	fmt.Fprintf(&b, "Shipping: $%s\n", money(r.Shipping))
	fmt.Fprintf(&b, "Total: $%s\n", money(r.Total))
	return b.String()
}

// money renders d with two decimals and comma thousands separators
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, ch := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	return sign + b.String() + "." + frac
}

func trimCustomer(c domain.Customer) domain.Customer {
	return domain.Customer{
		FullName: strings.TrimSpace(c.FullName),
		Email:    strings.TrimSpace(c.Email),
		Address:  strings.TrimSpace(c.Address),
		City:     strings.TrimSpace(c.City),
		State:    strings.TrimSpace(c.State),
		Zip:      strings.TrimSpace(c.Zip),
	}
}
