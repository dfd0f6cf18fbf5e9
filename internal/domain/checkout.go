package domain

import "github.com/shopspring/decimal"

// Customer holds the checkout form fields
type Customer struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
}

// ReceiptLine is one priced item on a receipt
type ReceiptLine struct {
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Receipt is the order confirmation built at checkout
type Receipt struct {
	Customer   Customer        `json:"customer"`
	Lines      []ReceiptLine   `json:"lines"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Shipping   decimal.Decimal `json:"shipping"`
	Total      decimal.Decimal `json:"total"`
	Text       string          `json:"text"`
	EmailValid bool            `json:"emailValid"`
	Forwarded  bool            `json:"forwarded"`
}
