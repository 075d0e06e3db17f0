package models

import "time"

// User is an account that places orders. Staff users can see and move
// every order.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:25;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:80;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	IsStaff   bool      `gorm:"not null;default:false" json:"is_staff"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	Orders    []Order   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Staff satisfies rbac.Principal.
func (u *User) Staff() bool { return u != nil && u.IsStaff }
