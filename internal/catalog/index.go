// Package catalog holds the static product index the storefront sells from.
package catalog

import "github.com/tdpro/backend/internal/domain"

// Well-known product ids referenced by the recommendation rules
const (
	DriverPlain  = "disc-driver-plain"
	DriverCustom = "disc-driver-custom"
	MidPlain     = "disc-midrange-plain"
	MidCustom    = "disc-midrange-custom"
	PutterPlain  = "disc-putter-plain"
	PutterCustom = "disc-putter-custom"
	TrophyCustom = "disc-trophy-custom"
	HoodiePrefix = "hoodie-"
	StaffHat     = "hat-staff"
	FlagsPack    = "flags-pack"
	SprayPaint   = "spray-paint"
	BugSpray     = "bug-spray"
	Sunscreen    = "sunscreen"
)

var products = []domain.Product{
	{ID: DriverPlain, Name: "Plain Driver Disc", BasePrice: 8.00, Category: domain.CategoryDiscs, Details: "High-speed driver • stable flight"},
	{ID: MidPlain, Name: "Plain Midrange Disc", BasePrice: 7.00, Category: domain.CategoryDiscs, Details: "Point-and-shoot control • straight"},
	{ID: PutterPlain, Name: "Plain Putter Disc", BasePrice: 6.00, Category: domain.CategoryDiscs, Details: "Beadless putter • soft landing"},
	{ID: "disc-marker-plain", Name: "Plain Marker", BasePrice: 3.00, Category: domain.CategoryDiscs, Details: "2.25\" round • full-color print"},
	{ID: DriverCustom, Name: "Custom Driver Disc", BasePrice: 19.00, Category: domain.CategoryDiscs, Customizable: true, Details: "Customizable • High-speed driver • stable flight"},
	{ID: MidCustom, Name: "Custom Midrange Disc", BasePrice: 15.00, Category: domain.CategoryDiscs, Customizable: true, Details: "Customizable • Point-and-shoot control • straight"},
	{ID: PutterCustom, Name: "Custom Putter Disc", BasePrice: 12.00, Category: domain.CategoryDiscs, Customizable: true, Details: "Customizable • Beadless putter • soft landing"},
	{ID: "disc-marker-custom", Name: "Custom Marker", BasePrice: 5.00, Category: domain.CategoryDiscs, Customizable: true, Details: "Customizable • 2.25\" round • full-color print"},
	{ID: TrophyCustom, Name: "Custom Trophy Disc", BasePrice: 28.00, Category: domain.CategoryDiscs, Customizable: true, Details: "Customizable • Premium foil stamp • award ready"},

	{ID: "bottle-steel-34-plain", Name: "Plain Steel Bottle 34oz", BasePrice: 18.00, Category: domain.CategoryBottles, Details: "Double-wall vacuum • leakproof lid"},
	{ID: "bottle-squeeze-26-plain", Name: "Plain Squeeze Bottle 26oz", BasePrice: 5.00, Category: domain.CategoryBottles, Details: "Soft LDPE • push-pull cap"},
	{ID: "bottle-steel-34-custom", Name: "Custom Steel Bottle 34oz", BasePrice: 24.00, Category: domain.CategoryBottles, Customizable: true, Details: "Customizable • Double-wall vacuum • leakproof lid"},
	{ID: "bottle-squeeze-26-custom", Name: "Custom Squeeze Bottle 26oz", BasePrice: 9.00, Category: domain.CategoryBottles, Customizable: true, Details: "Customizable • Soft LDPE • push-pull cap"},

	{ID: "hoodie-podium", Name: "Podium Hoodie", BasePrice: 36.00, Category: domain.CategoryApparel, Customizable: true, Details: "Mid-weight fleece • S–3XL"},

	{ID: "tee-volunteer", Name: "Volunteer Tee", BasePrice: 12.00, Category: domain.CategorySupplies, Customizable: true, Details: "Unisex blend • S–3XL"},
	{ID: "polo-staff", Name: "Staff Polo", BasePrice: 22.00, Category: domain.CategorySupplies, Customizable: true, Details: "Moisture-wicking • S–3XL"},
	{ID: StaffHat, Name: "Staff Hat", BasePrice: 18.00, Category: domain.CategorySupplies, Customizable: true, Details: "Snapback • structured"},
	{ID: FlagsPack, Name: "Boundary Flags (Pack)", BasePrice: 14.00, Category: domain.CategorySupplies, Details: "Assorted colors • 100-pack"},
	{ID: SprayPaint, Name: "Field Spray Paint", BasePrice: 7.50, Category: domain.CategorySupplies, Details: "Inverted tip • turf safe"},
	{ID: "goal-kit", Name: "Goal Kit", BasePrice: 129.00, Category: domain.CategorySupplies, Details: "Targets • anchors • hardware"},
	{ID: "goal-parts", Name: "Goal Kit Repair Parts", BasePrice: 22.00, Category: domain.CategorySupplies, Details: "Bolts • stakes • clamps"},
	{ID: BugSpray, Name: "Bug Spray", BasePrice: 6.50, Category: domain.CategorySupplies, Details: "DEET-free • long-lasting"},
	{ID: Sunscreen, Name: "Sunscreen", BasePrice: 8.00, Category: domain.CategorySupplies, Details: "Broad spectrum • water-resistant"},
}

// frequent carries the "Frequently Bought" badge
var frequent = map[string]bool{
	DriverCustom: true, MidPlain: true, PutterPlain: true, SprayPaint: true, FlagsPack: true,
	TrophyCustom: true, "disc-marker-custom": true, "bottle-squeeze-26-custom": true, "hoodie-podium": true,
}

// Index is a read-only product lookup. It is safe for concurrent use.
type Index struct {
	list []domain.Product
	byID map[string]domain.Product
}

// New builds an index over products. The first entry for an id wins.
func New(products []domain.Product) *Index {
	idx := &Index{
		list: make([]domain.Product, 0, len(products)),
		byID: make(map[string]domain.Product, len(products)),
	}
	for _, p := range products {
		if p.ID == "" {
			continue
		}
		if _, dup := idx.byID[p.ID]; dup {
			continue
		}
		idx.list = append(idx.list, p)
		idx.byID[p.ID] = p
	}
	return idx
}

var defaultIndex = New(products)

// Default returns the storefront catalog
func Default() *Index {
	return defaultIndex
}

// Lookup returns the product for id
func (i *Index) Lookup(id string) (domain.Product, bool) {
	p, ok := i.byID[id]
	return p, ok
}

// All returns every product in catalog order
func (i *Index) All() []domain.Product {
	return append([]domain.Product(nil), i.list...)
}

// ByCategory returns products in any of the given categories, in catalog order.
// No categories means the whole catalog.
func (i *Index) ByCategory(categories ...domain.Category) []domain.Product {
	if len(categories) == 0 {
		return i.All()
	}
	want := make(map[domain.Category]bool, len(categories))
	for _, c := range categories {
		want[c] = true
	}
	out := []domain.Product{}
	for _, p := range i.list {
		if want[p.Category] {
			out = append(out, p)
		}
	}
	return out
}

// Frequent reports whether the product shows the "Frequently Bought" badge
func (i *Index) Frequent(id string) bool {
	return frequent[id]
}
