package models

import "time"

type Client struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	CompanyName       string    `json:"company_name" validate:"required"`
	PersonalName      string    `json:"personal_name" validate:"required"`
	PhoneNumber       string    `json:"phone_number" validate:"required"`
	AddressID         *uint     `json:"address_id" gorm:"default:null"`
	ShippingAddressID *uint     `json:"shipping_address_id" gorm:"default:null"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Address           *Address  `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	ShippingAddress   *Address  `gorm:"foreignKey:ShippingAddressID" json:"shipping_address,omitempty"`
	Users             []User    `gorm:"foreignKey:ClientID" json:"users,omitempty"`
	Projects          []Project `gorm:"foreignKey:ClientID" json:"projects,omitempty"`
	Orders            []Order   `gorm:"foreignKey:ClientID" json:"orders,omitempty"`
	Errors            Errors    `gorm:"-" json:"errors,omitempty"`
}
