package models

import "time"

// UserRole gates administrative operations.
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

// User represents a household member who can sign in.
type User struct {
	Base
	Username    string     `gorm:"uniqueIndex;size:80;not null" json:"username"`
	Name        string     `gorm:"size:120" json:"name"`
	Password    string     `gorm:"not null" json:"-"`
	Role        UserRole   `gorm:"size:20;not null;default:'user'" json:"role"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
