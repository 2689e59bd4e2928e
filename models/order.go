package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ClientID      uint            `json:"client_id"`
	ProjectID     uint            `json:"project_id"`
	OrderedByID   *uint           `json:"ordered_by_id,omitempty" gorm:"default:null"`
	DeliveryDate  time.Time       `gorm:"type:date" json:"delivery_date"`
	TotalQuantity int             `json:"total_quantity"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	Client        Client          `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Project       Project         `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	OrderItems    []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"`
	Errors        Errors          `gorm:"-" json:"errors,omitempty"`
}

type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `json:"order_id"`
	ProductID uint      `json:"product_id" validate:"required"`
	Color     string    `json:"color" validate:"required"`
	Size      string    `json:"size" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
