package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecommendation_Target(t *testing.T) {
	r := Recommendation{PlainID: "p", CustomID: "c", Quantity: 1}
	assert.Equal(t, "p", r.Target(false))
	assert.Equal(t, "c", r.Target(true))

	plainOnly := Recommendation{PlainID: "p", Quantity: 1}
	assert.Equal(t, "p", plainOnly.Target(true))
}

func TestRecommendation_Satisfied(t *testing.T) {
	r := Recommendation{PlainID: "p", CustomID: "c", Quantity: 3}

	assert.False(t, r.Satisfied(Cart{}))
	assert.False(t, r.Satisfied(Cart{NewCartLine("p", "P", 1, 2, "", false)}))
	assert.True(t, r.Satisfied(Cart{
		NewCartLine("p", "P", 1, 1, "", false),
		NewCartLine("c", "C", 1, 2, "", true),
	}))

	same := Recommendation{PlainID: "p", CustomID: "p", Quantity: 2}
	assert.False(t, same.Satisfied(Cart{NewCartLine("p", "P", 1, 1, "", false)}), "same id is not counted twice")
}

func TestRecommendation_Key(t *testing.T) {
	a := Recommendation{Label: "one", PlainID: "p", CustomID: "c"}
	b := Recommendation{Label: "two", PlainID: "p", CustomID: "c"}
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), Recommendation{PlainID: "p"}.Key())
}

func TestProduct(t *testing.T) {
	p := Product{ID: "spray-paint", Name: "Field Spray Paint", BasePrice: 7.5, Category: CategorySupplies}
	assert.Equal(t, "assets/images/spray-paint.png", p.ImageURL())

	l := p.NewLine(2)
	assert.Equal(t, "spray-paint", l.ID)
	assert.Equal(t, 7.5, l.Price)
	assert.Equal(t, 2, l.Qty)
	assert.Equal(t, p.ImageURL(), l.ImageURL)
	assert.NotNil(t, l.CustomImages)

	assert.True(t, CategoryApparel.Valid())
	assert.False(t, Category("apparel").Valid())
}
