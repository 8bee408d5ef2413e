package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a directory account that can sign in and manage employees.
// UserName is case-sensitive and immutable after registration.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserName  string    `gorm:"size:255;not null;uniqueIndex" json:"userName"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
