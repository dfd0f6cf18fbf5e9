package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CartLine is one entry in the cart. Name and Price are snapshots taken when the
// line was first added. A line with Qty <= 0 counts as absent everywhere.
// Extra carries fields written by other clients so a save never drops them.
type CartLine struct {
	ID           string
	Name         string
	Price        float64
	Qty          int
	ImageURL     string
	Customizable bool
	CustomNotes  string
	CustomImages []string
	Extra        map[string]json.RawMessage
}

// NewCartLine builds a line with every optional field defaulted
func NewCartLine(id, name string, price float64, qty int, imageURL string, customizable bool) CartLine {
	return CartLine{
		ID:           id,
		Name:         name,
		Price:        price,
		Qty:          qty,
		ImageURL:     imageURL,
		Customizable: customizable,
		CustomNotes:  "",
		CustomImages: []string{},
	}
}

// Normalize fills defaults for optional fields and returns the line
func (l CartLine) Normalize() CartLine {
	if l.CustomImages == nil {
		l.CustomImages = []string{}
	} else {
		l.CustomImages = append([]string{}, l.CustomImages...)
	}
	if l.Extra != nil {
		extra := make(map[string]json.RawMessage, len(l.Extra))
		for k, v := range l.Extra {
			extra[k] = append(json.RawMessage(nil), v...)
		}
		l.Extra = extra
	}
	return l
}

// Active reports whether the line should be counted by consumers
func (l CartLine) Active() bool {
	return l.ID != "" && l.Qty > 0
}

// LineTotal is price times quantity, zero for inactive lines
func (l CartLine) LineTotal() float64 {
	if !l.Active() {
		return 0
	}
	return l.Price * float64(l.Qty)
}

type wireLine struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	Qty          int      `json:"qty"`
	ImageURL     string   `json:"imageUrl"`
	Customizable bool     `json:"customizable"`
	CustomNotes  string   `json:"customNotes"`
	CustomImages []string `json:"customImages"`
}

var knownLineFields = map[string]bool{
	"id": true, "name": true, "price": true, "qty": true, "imageUrl": true,
	"customizable": true, "customNotes": true, "customImages": true,
}

// MarshalJSON writes the known fields merged over any preserved extra fields
func (l CartLine) MarshalJSON() ([]byte, error) {
	n := l.Normalize()
	w := wireLine{
		ID:           n.ID,
		Name:         n.Name,
		Price:        n.Price,
		Qty:          n.Qty,
		ImageURL:     n.ImageURL,
		Customizable: n.Customizable,
		CustomNotes:  n.CustomNotes,
		CustomImages: n.CustomImages,
	}
	if len(n.Extra) == 0 {
		return json.Marshal(w)
	}

	known, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	merged := make(map[string]json.RawMessage, len(n.Extra)+len(knownLineFields))
	for k, v := range n.Extra {
		merged[k] = v
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// UnmarshalJSON decodes a line leniently: a known field with the wrong type
// falls back to its default instead of failing the whole line.
// Only a payload that is not a JSON object is rejected.
func (l *CartLine) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return ErrInvalidRequest
	}

	line := NewCartLine(
		rawString(fields["id"]),
		rawString(fields["name"]),
		rawFloat(fields["price"]),
		rawInt(fields["qty"]),
		rawString(fields["imageUrl"]),
		rawBool(fields["customizable"]),
	)
	line.CustomNotes = rawString(fields["customNotes"])
	line.CustomImages = rawStrings(fields["customImages"])

	for k, v := range fields {
		if knownLineFields[k] {
			continue
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, v); err != nil {
			continue
		}
		if line.Extra == nil {
			line.Extra = make(map[string]json.RawMessage)
		}
		line.Extra[k] = buf.Bytes()
	}

	*l = line
	return nil
}

func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// rawFloat accepts JSON numbers and numeric strings. Non-finite values are 0.
func rawFloat(raw json.RawMessage) float64 {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	if s := strings.TrimSpace(rawString(raw)); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v
		}
	}
	return 0
}

// rawInt truncates like rawFloat; a value outside the int range is 0
func rawInt(raw json.RawMessage) int {
	f := rawFloat(raw)
	if f >= float64(math.MaxInt) || f <= float64(math.MinInt) {
		return 0
	}
	return int(f)
}

func rawBool(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false
	}
	return b
}

func rawStrings(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
		}
	}
	return out
}

// Cart is the persisted aggregate. Order is stable for display only.
type Cart []CartLine

// DecodeCart parses a persisted payload. Absent, non-array or corrupt data
// yields an empty cart; elements that are not objects are skipped.
func DecodeCart(data []byte) Cart {
	if len(bytes.TrimSpace(data)) == 0 {
		return Cart{}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return Cart{}
	}
	cart := make(Cart, 0, len(items))
	for _, item := range items {
		var line CartLine
		if err := json.Unmarshal(item, &line); err != nil {
			continue
		}
		cart = append(cart, line)
	}
	return cart.Normalize()
}

// Encode serializes the normalized cart
func (c Cart) Encode() ([]byte, error) {
	return json.Marshal(c.Normalize())
}

// MarshalJSON always writes an array, never null
func (c Cart) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]CartLine(c))
}

// Normalize returns a copy with every line's optional fields defaulted
func (c Cart) Normalize() Cart {
	out := make(Cart, len(c))
	for i, line := range c {
		out[i] = line.Normalize()
	}
	return out
}

// Find returns the index of the line with the given id
func (c Cart) Find(id string) (int, bool) {
	for i, line := range c {
		if line.ID == id {
			return i, true
		}
	}
	return -1, false
}

// QtyOf sums the positive quantities held for id
func (c Cart) QtyOf(id string) int {
	if id == "" {
		return 0
	}
	n := 0
	for _, line := range c {
		if line.ID == id && line.Qty > 0 {
			n += line.Qty
		}
	}
	return n
}

// QtyOfPrefix sums the positive quantities of every id starting with prefix
func (c Cart) QtyOfPrefix(prefix string) int {
	n := 0
	for _, line := range c {
		if line.Qty > 0 && strings.HasPrefix(line.ID, prefix) {
			n += line.Qty
		}
	}
	return n
}

// Active returns only the lines consumers should see
func (c Cart) Active() Cart {
	out := make(Cart, 0, len(c))
	for _, line := range c {
		if line.Active() {
			out = append(out, line.Normalize())
		}
	}
	return out
}

// Count is the badge number: total quantity across active lines
func (c Cart) Count() int {
	n := 0
	for _, line := range c {
		if line.Active() {
			n += line.Qty
		}
	}
	return n
}

// Subtotal is the sum of line totals in the reference currency
func (c Cart) Subtotal() float64 {
	total := 0.0
	for _, line := range c {
		total += line.LineTotal()
	}
	return total
}
