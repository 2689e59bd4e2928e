package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Address rows are immutable: a changed address always means a new row with
// the association repointed, never an in-place update.
type Address struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Street    string    `json:"street" validate:"required"`
	City      string    `json:"city" validate:"required"`
	State     string    `json:"state" validate:"required"`
	ZipCode   string    `json:"zip_code" validate:"required"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

var ErrAddressImmutable = errors.New("address records are immutable")

func (a *Address) BeforeUpdate(tx *gorm.DB) error {
	return ErrAddressImmutable
}

// Matches reports whether every stored field equals the given values with
// exact string comparison. Case and whitespace differences count as a change.
func (a *Address) Matches(street, city, state, zipCode string) bool {
	return a.Street == street &&
		a.City == city &&
		a.State == state &&
		a.ZipCode == zipCode
}
