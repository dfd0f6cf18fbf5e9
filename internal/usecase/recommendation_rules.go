package usecase

import (
	"strings"

	"github.com/tdpro/backend/internal/catalog"
	"github.com/tdpro/backend/internal/domain"
)

const (
	feetPerFlagPack = 50
	feetPerPaintCan = 200
	staffHatLabel   = "Staff hats for your hoodie players"
	paintLabel      = "Field spray paint for your layout"
	flagsLabel      = "Boundary flags to match your paint"
	bugSprayLabel   = "Bug spray to match your sunscreen"
	sunscreenLabel  = "Sunscreen to match your bug spray"
)

// mold is one disc category with a plain and a custom SKU
type mold struct {
	label    string
	plainID  string
	customID string
}

// molds in parity order; trophy discs are not part of any mold
var molds = []mold{
	{label: "Driver discs", plainID: catalog.DriverPlain, customID: catalog.DriverCustom},
	{label: "Midrange discs", plainID: catalog.MidPlain, customID: catalog.MidCustom},
	{label: "Putter discs", plainID: catalog.PutterPlain, customID: catalog.PutterCustom},
}

func (m mold) total(cart domain.Cart) int {
	return cart.QtyOf(m.plainID) + cart.QtyOf(m.customID)
}

type rule func(productID string, cart domain.Cart, distanceFeet int) []domain.Recommendation

// rules run in this order and their output is concatenated
var rules = []rule{
	discMoldParity,
	hoodieHatParity,
	fieldLayoutSupplies,
	sunscreenBugSprayParity,
}

// BuildForAdd returns the suggestions triggered by adding productID to cart.
// cart is the snapshot after the add, so the added quantity is already part
// of the totals the rules compare. The result is never nil.
func BuildForAdd(productID string, _ int, cart domain.Cart, distanceFeet int) []domain.Recommendation {
	out := []domain.Recommendation{}
	for _, r := range rules {
		for _, rec := range r(productID, cart, distanceFeet) {
			if rec.Quantity > 0 {
				out = append(out, rec)
			}
		}
	}
	return out
}

// SuppliesSuggestionFor estimates flag packs and paint cans for a field length
func SuppliesSuggestionFor(distanceFeet int) domain.SuppliesSuggestion {
	if distanceFeet <= 0 {
		return domain.SuppliesSuggestion{}
	}
	return domain.SuppliesSuggestion{
		DistanceFeet: distanceFeet,
		FlagPacks:    ceilDiv(distanceFeet, feetPerFlagPack),
		PaintCans:    ceilDiv(distanceFeet, feetPerPaintCan),
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func discMoldParity(productID string, cart domain.Cart, _ int) []domain.Recommendation {
	added := -1
	for i, m := range molds {
		if m.customID == productID {
			added = i
			break
		}
	}
	if added < 0 {
		return nil
	}

	have := molds[added].total(cart)
	var out []domain.Recommendation
	for i, m := range molds {
		if i == added {
			continue
		}
		if need := have - m.total(cart); need > 0 {
			out = append(out, domain.Recommendation{
				Label:    m.label,
				PlainID:  m.plainID,
				CustomID: m.customID,
				Quantity: need,
			})
		}
	}
	return out
}

func hoodieHatParity(productID string, cart domain.Cart, _ int) []domain.Recommendation {
	if !strings.HasPrefix(productID, catalog.HoodiePrefix) {
		return nil
	}
	missing := cart.QtyOfPrefix(catalog.HoodiePrefix) - cart.QtyOf(catalog.StaffHat)
	if missing <= 0 {
		return nil
	}
	return []domain.Recommendation{{Label: staffHatLabel, PlainID: catalog.StaffHat, Quantity: missing}}
}

func fieldLayoutSupplies(productID string, cart domain.Cart, distanceFeet int) []domain.Recommendation {
	if distanceFeet <= 0 {
		return nil
	}
	need := SuppliesSuggestionFor(distanceFeet)

	switch productID {
	case catalog.FlagsPack:
		if cart.QtyOf(catalog.SprayPaint) == 0 {
			return []domain.Recommendation{{Label: paintLabel, PlainID: catalog.SprayPaint, Quantity: need.PaintCans}}
		}
	case catalog.SprayPaint:
		if cart.QtyOf(catalog.FlagsPack) == 0 {
			return []domain.Recommendation{{Label: flagsLabel, PlainID: catalog.FlagsPack, Quantity: need.FlagPacks}}
		}
	}
	return nil
}

func sunscreenBugSprayParity(productID string, cart domain.Cart, _ int) []domain.Recommendation {
	sun := cart.QtyOf(catalog.Sunscreen)
	bug := cart.QtyOf(catalog.BugSpray)

	switch productID {
	case catalog.Sunscreen:
		if sun > 0 && bug == 0 {
			return []domain.Recommendation{{Label: bugSprayLabel, PlainID: catalog.BugSpray, Quantity: sun}}
		}
	case catalog.BugSpray:
		if bug > 0 && sun == 0 {
			return []domain.Recommendation{{Label: sunscreenLabel, PlainID: catalog.Sunscreen, Quantity: bug}}
		}
	}
	return nil
}
