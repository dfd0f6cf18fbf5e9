package domain

// Category is one of the fixed catalog groupings
type Category string

const (
	CategoryDiscs    Category = "Discs"
	CategoryBottles  Category = "Bottles"
	CategoryApparel  Category = "Apparel"
	CategorySupplies Category = "Supplies"
)

// Categories lists every catalog category in display order
var Categories = []Category{CategoryDiscs, CategoryBottles, CategoryApparel, CategorySupplies}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product is an immutable catalog entry. BasePrice is in the reference currency (USD).
type Product struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	BasePrice    float64  `json:"price"`
	Category     Category `json:"category"`
	Customizable bool     `json:"customizable"`
	Details      string   `json:"details,omitempty"`
}

// ImageURL returns the storefront image path for the product
func (p Product) ImageURL() string {
	return "assets/images/" + p.ID + ".png"
}

// NewLine builds a cart line snapshot of the product with the given quantity
func (p Product) NewLine(qty int) CartLine {
	return NewCartLine(p.ID, p.Name, p.BasePrice, qty, p.ImageURL(), p.Customizable)
}
