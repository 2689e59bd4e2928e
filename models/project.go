package models

import "time"

const (
	ProjectStatusDraft    = "draft"
	ProjectStatusActive   = "active"
	ProjectStatusArchived = "archived"
)

type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClientID    uint      `json:"client_id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Status      string    `gorm:"size:10;default:draft" json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Client      Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Products    []Product `gorm:"many2many:products_projects" json:"products,omitempty"`
	Orders      []Order   `gorm:"foreignKey:ProjectID" json:"orders,omitempty"`
}

func (p *Project) Active() bool {
	return p.Status == ProjectStatusActive
}
