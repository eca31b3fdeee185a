package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Food is a canonical nutrition record. Nutrient values are per ServingSize
// units of ServingUnit (100 g by default). The (name, brand) pair identifies a
// food; a brand-less food is its own identity bucket.
type Food struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string  `gorm:"not null;uniqueIndex:idx_foods_name_brand" json:"name"`
	Brand       *string `gorm:"uniqueIndex:idx_foods_name_brand" json:"brand,omitempty"`
	Calories    float64 `gorm:"type:decimal(10,2);not null" json:"calories"`
	Proteins    float64 `gorm:"type:decimal(10,2);not null" json:"proteins"`
	Carbs       float64 `gorm:"type:decimal(10,2);not null" json:"carbs"`
	Fats        float64 `gorm:"type:decimal(10,2);not null" json:"fats"`
	ServingSize float64 `gorm:"type:decimal(10,2);not null;default:100" json:"servingSize"`
	ServingUnit string  `gorm:"not null;default:g" json:"servingUnit"`
	Barcode     *string `gorm:"uniqueIndex" json:"barcode,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (f *Food) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
