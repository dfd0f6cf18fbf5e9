package domain

// Recommendation is a computed suggestion; it is never persisted.
// CustomID is empty when the target has no custom variant.
type Recommendation struct {
	Label    string `json:"label"`
	PlainID  string `json:"plainId"`
	CustomID string `json:"customId"`
	Quantity int    `json:"qty"`
}

// Key identifies the target pair used when merging suggestions
func (r Recommendation) Key() string {
	return r.PlainID + "|" + r.CustomID
}

// Target picks the product id to add when the suggestion is accepted.
// The plain id is the default; the custom id only when asked for and offered.
func (r Recommendation) Target(wantCustom bool) string {
	if wantCustom && r.CustomID != "" {
		return r.CustomID
	}
	return r.PlainID
}

// Satisfied reports whether cart already holds the wanted quantity of either variant
func (r Recommendation) Satisfied(cart Cart) bool {
	have := cart.QtyOf(r.PlainID)
	if r.CustomID != "" && r.CustomID != r.PlainID {
		have += cart.QtyOf(r.CustomID)
	}
	return have >= r.Quantity
}

// SuppliesSuggestion is the field-layout estimate for a given field length
type SuppliesSuggestion struct {
	DistanceFeet int `json:"distanceFeet"`
	FlagPacks    int `json:"flagPacks"`
	PaintCans    int `json:"paintCans"`
}
