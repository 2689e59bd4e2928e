package models

import "time"

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique" json:"email" validate:"required,email"`
	Password  string    `json:"-"`
	Role      string    `gorm:"size:10;default:client" json:"role"`
	ClientID  *uint     `json:"client_id" gorm:"default:null"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Client    *Client   `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Orders    []Order   `gorm:"foreignKey:OrderedByID" json:"orders,omitempty"`
}

func (u *User) Admin() bool {
	return u.Role == RoleAdmin
}
