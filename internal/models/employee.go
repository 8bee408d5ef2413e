package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Closed field enumerations. Anything outside these sets is rejected
// before the record reaches the store.
var (
	Designations = []string{"HR", "Manager", "Sales"}
	Genders      = []string{"M", "F"}
	Courses      = []string{"MCA", "BCA", "BSC"}
)

const (
	StatusActive   = "Active"
	StatusDeactive = "Deactive"
)

// Employee is a directory record. Email uniqueness is enforced by the
// unique index, not by a pre-read.
type Employee struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string                      `gorm:"size:255;not null" json:"name"`
	Email       string                      `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Mobile      string                      `gorm:"size:10;not null" json:"mobile"`
	Designation string                      `gorm:"size:50;not null" json:"designation"`
	Gender      string                      `gorm:"size:1;not null" json:"gender"`
	Course      datatypes.JSONSlice[string] `json:"course"`
	ImageURL    string                      `gorm:"size:512" json:"imageUrl"`
	ImageKey    string                      `gorm:"size:255" json:"-"`
	Active      string                      `gorm:"size:10;not null;default:'Active'" json:"active"`
	UserID      uuid.UUID                   `gorm:"type:uuid;index" json:"userId"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}
