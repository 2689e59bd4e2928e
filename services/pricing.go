package services

import (
	"merchline/models"

	"github.com/shopspring/decimal"
)

// PriceFor returns the unit price to charge for an aggregate quantity of a
// product. Without bulk tiers the base price applies. Otherwise the cheapest
// price among tiers whose quantity threshold is met wins; tiers are stored
// unordered and are not assumed monotonic, so a low tier accidentally priced
// below a higher one still gives the customer the best rate they qualify
// for. When no tier threshold is reached the base price applies.
func PriceFor(product *models.Product, quantity int) decimal.Decimal {
	if len(product.BulkPrices) == 0 {
		return product.BasePrice
	}

	var best decimal.Decimal
	found := false
	for _, tier := range product.BulkPrices {
		if tier.Qty > quantity {
			continue
		}
		if !found || tier.Price.LessThan(best) {
			best = tier.Price
			found = true
		}
	}

	if !found {
		return product.BasePrice
	}
	return best
}
