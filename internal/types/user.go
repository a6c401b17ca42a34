package types

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string    `gorm:"uniqueIndex;not null;column:email" json:"email,omitempty"`
	Password      string    `gorm:"not null;column:password" json:"-"`
	Name          string    `gorm:"not null;column:name" json:"name"`
	Role          UserRole  `gorm:"type:varchar(16);not null;default:USER;column:role" json:"role,omitempty"`
	Image         string    `gorm:"column:image" json:"image"`
	EmailVerified bool      `gorm:"not null;default:false;column:email_verified" json:"emailVerified"`
	CreatedAt     time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string {
	return "user"
}
