package usecase

import "github.com/tdpro/backend/internal/domain"

// AggregateForCart runs the rules once per distinct line id, merges results
// by target pair and drops suggestions the cart already satisfies.
// The first suggestion for a pair keeps its label; quantities are summed.
func AggregateForCart(cart domain.Cart, distanceFeet int) []domain.Recommendation {
	active := cart.Active()
	merged := []domain.Recommendation{}
	index := map[string]int{}
	seen := map[string]bool{}

	for _, line := range active {
		if seen[line.ID] {
			continue
		}
		seen[line.ID] = true

		for _, rec := range BuildForAdd(line.ID, line.Qty, active, distanceFeet) {
			if i, ok := index[rec.Key()]; ok {
				merged[i].Quantity += rec.Quantity
				continue
			}
			index[rec.Key()] = len(merged)
			merged = append(merged, rec)
		}
	}

	out := merged[:0]
	for _, rec := range merged {
		if rec.Quantity > 0 && !rec.Satisfied(active) {
			out = append(out, rec)
		}
	}
	return out
}
