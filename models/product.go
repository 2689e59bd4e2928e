package models

import (
	"time"

	"github.com/shopspring/decimal"
)

var Sizes = []string{"XXS", "XS", "S", "M", "L", "XL", "2XL", "3XL", "4XL", "5XL", "6XL", "7XL", "Single Size"}

type BulkPrice struct {
	Qty   int             `json:"qty"`
	Price decimal.Decimal `json:"price"`
}

type Color struct {
	Name     string `json:"name"`
	HexColor string `json:"hex_color"`
}

type Product struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `json:"name" validate:"required"`
	Description  string          `json:"description"`
	BasePrice    decimal.Decimal `gorm:"type:decimal(10,2)" json:"base_price"`
	MinimumOrder int             `json:"minimum_order"`
	BulkPrices   []BulkPrice     `gorm:"type:text;serializer:json" json:"bulk_prices"`
	Sizes        []string        `gorm:"type:text;serializer:json" json:"sizes"`
	Colors       []Color         `gorm:"type:text;serializer:json" json:"colors"`
	Images       []string        `gorm:"type:text;serializer:json" json:"images"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	Projects     []Project       `gorm:"many2many:products_projects" json:"projects,omitempty"`
}

func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

func (p *Product) HasColor(name string) bool {
	for _, c := range p.Colors {
		if c.Name == name {
			return true
		}
	}
	return false
}

// ValidatePricing checks the bulk tier invariants: every tier quantity must
// exceed the minimum order, tier quantities are unique, and every tier price
// is positive and below the base price.
func (p *Product) ValidatePricing() Errors {
	errs := Errors{}

	if p.BasePrice.IsNegative() {
		errs.Add("base_price", "must be greater than or equal to 0")
	}
	if p.MinimumOrder < 0 {
		errs.Add("minimum_order", "must be greater than or equal to 0")
	}

	seen := make(map[int]bool)
	for _, bp := range p.BulkPrices {
		if bp.Qty <= p.MinimumOrder {
			errs.Add("bulk_prices", "tier quantity must exceed minimum order")
		}
		if seen[bp.Qty] {
			errs.Add("bulk_prices", "tier quantities must be unique")
		}
		seen[bp.Qty] = true
		if !bp.Price.IsPositive() {
			errs.Add("bulk_prices", "tier price must be greater than 0")
		} else if bp.Price.GreaterThanOrEqual(p.BasePrice) {
			errs.Add("bulk_prices", "tier price must be lower than base price")
		}
	}
	return errs
}
