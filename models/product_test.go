package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validProduct() *Product {
	return &Product{
		Name:         "Crew Neck Tee",
		BasePrice:    decimal.NewFromInt(100),
		MinimumOrder: 2,
		BulkPrices: []BulkPrice{
			{Qty: 5, Price: decimal.NewFromInt(90)},
			{Qty: 10, Price: decimal.NewFromInt(80)},
		},
		Sizes:  []string{"M", "L"},
		Colors: []Color{{Name: "Black", HexColor: "#000000"}},
	}
}

func TestValidatePricingAcceptsValidTiers(t *testing.T) {
	assert.False(t, validProduct().ValidatePricing().Any())
}

func TestValidatePricingTierBelowMinimumOrder(t *testing.T) {
	p := validProduct()
	p.MinimumOrder = 5

	errs := p.ValidatePricing()
	assert.Contains(t, errs, "bulk_prices")
}

func TestValidatePricingDuplicateThresholds(t *testing.T) {
	p := validProduct()
	p.BulkPrices = append(p.BulkPrices, BulkPrice{Qty: 5, Price: decimal.NewFromInt(85)})

	errs := p.ValidatePricing()
	assert.Contains(t, errs, "bulk_prices")
}

func TestValidatePricingTierPriceBounds(t *testing.T) {
	p := validProduct()
	p.BulkPrices[0].Price = decimal.Zero
	p.BulkPrices[1].Price = decimal.NewFromInt(100) // not below base

	errs := p.ValidatePricing()
	assert.Len(t, errs["bulk_prices"], 2)
}

func TestHasSizeAndColor(t *testing.T) {
	p := validProduct()

	assert.True(t, p.HasSize("M"))
	assert.False(t, p.HasSize("XXS"))
	assert.True(t, p.HasColor("Black"))
	assert.False(t, p.HasColor("black"))
}
