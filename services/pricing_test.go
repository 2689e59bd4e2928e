package services

import (
	"testing"

	"merchline/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func tieredProduct() *models.Product {
	return &models.Product{
		Name:         "Crew Neck Tee",
		BasePrice:    decimal.NewFromInt(100),
		MinimumOrder: 1,
		BulkPrices: []models.BulkPrice{
			{Qty: 5, Price: decimal.NewFromInt(90)},
			{Qty: 10, Price: decimal.NewFromInt(80)},
		},
	}
}

func TestPriceForWithoutTiers(t *testing.T) {
	product := &models.Product{
		Name:      "Tote Bag",
		BasePrice: decimal.NewFromInt(50),
	}

	assert.True(t, PriceFor(product, 1).Equal(decimal.NewFromInt(50)))
	assert.True(t, PriceFor(product, 1000).Equal(decimal.NewFromInt(50)))
}

func TestPriceForTierSelection(t *testing.T) {
	product := tieredProduct()

	tests := []struct {
		quantity int
		want     int64
	}{
		{1, 100},  // below every threshold, base price
		{5, 90},   // first tier exactly
		{7, 90},   // between tiers
		{10, 80},  // second tier exactly
		{15, 80},  // above every threshold
	}

	for _, tt := range tests {
		got := PriceFor(product, tt.quantity)
		assert.True(t, got.Equal(decimal.NewFromInt(tt.want)),
			"quantity %d: want %d, got %s", tt.quantity, tt.want, got)
	}
}

func TestPriceForMisconfiguredTiers(t *testing.T) {
	// A low tier accidentally priced below a higher one: the cheapest
	// qualifying price still wins, the nearest threshold does not.
	product := &models.Product{
		Name:      "Hoodie",
		BasePrice: decimal.NewFromInt(100),
		BulkPrices: []models.BulkPrice{
			{Qty: 5, Price: decimal.NewFromInt(70)},
			{Qty: 10, Price: decimal.NewFromInt(85)},
		},
	}

	assert.True(t, PriceFor(product, 12).Equal(decimal.NewFromInt(70)))
}

func TestPriceForIsPure(t *testing.T) {
	product := tieredProduct()

	first := PriceFor(product, 7)
	second := PriceFor(product, 7)

	assert.True(t, first.Equal(second))
	// The product itself is untouched.
	assert.Len(t, product.BulkPrices, 2)
	assert.True(t, product.BasePrice.Equal(decimal.NewFromInt(100)))
}
