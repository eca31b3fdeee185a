package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string  `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string  `gorm:"uniqueIndex;not null" json:"email"`
	Password  string  `gorm:"not null" json:"-"`
	FirstName string  `gorm:"not null" json:"firstName"`
	LastName  string  `gorm:"not null" json:"lastName"`
	AvatarURL *string `json:"avatarUrl,omitempty"`

	// Optional daily nutrient targets, consumed by the dashboard.
	TargetCalories *float64 `gorm:"type:decimal(10,2)" json:"targetCalories,omitempty"`
	TargetProteins *float64 `gorm:"type:decimal(10,2)" json:"targetProteins,omitempty"`
	TargetCarbs    *float64 `gorm:"type:decimal(10,2)" json:"targetCarbs,omitempty"`
	TargetFats     *float64 `gorm:"type:decimal(10,2)" json:"targetFats,omitempty"`

	ResetToken    *string    `json:"-"`
	ResetTokenExp *time.Time `json:"-"`

	Meals []Meal `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
