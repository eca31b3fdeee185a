package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// Meal is a dated grouping of food entries. UserID is nullable: meals logged
// before accounts existed have no owner and stay readable by anyone.
type Meal struct {
	ID     string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID *string    `gorm:"type:uuid;index" json:"userId,omitempty"`
	Type   MealType   `gorm:"not null;default:lunch" json:"type"`
	Date   time.Time  `gorm:"not null;index" json:"date"`
	Notes  *string    `json:"notes,omitempty"`
	Items  []MealItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`

	// Derived on read via ComputeTotals, never persisted.
	TotalCalories float64 `gorm:"-" json:"totalCalories"`
	TotalProteins float64 `gorm:"-" json:"totalProteins"`
	TotalCarbs    float64 `gorm:"-" json:"totalCarbs"`
	TotalFats     float64 `gorm:"-" json:"totalFats"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MealItem is one food-at-a-quantity entry. The four nutrient values are
// snapshotted when the item is written (quantity / food.servingSize scaling)
// and do not follow later edits of the food.
type MealItem struct {
	ID       string  `gorm:"type:uuid;primaryKey" json:"id"`
	MealID   string  `gorm:"type:uuid;not null;index" json:"mealId"`
	FoodID   string  `gorm:"type:uuid;not null;index" json:"foodId"`
	Food     Food    `json:"food"`
	Quantity float64 `gorm:"type:decimal(10,2);not null" json:"quantity"`
	Calories float64 `gorm:"type:decimal(10,2);not null" json:"calories"`
	Proteins float64 `gorm:"type:decimal(10,2);not null" json:"proteins"`
	Carbs    float64 `gorm:"type:decimal(10,2);not null" json:"carbs"`
	Fats     float64 `gorm:"type:decimal(10,2);not null" json:"fats"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (mi *MealItem) BeforeCreate(tx *gorm.DB) error {
	if mi.ID == "" {
		mi.ID = uuid.NewString()
	}
	return nil
}

// ComputeTotals sums the per-item nutrients into the meal's derived fields.
// A meal with no items keeps all-zero totals.
func (m *Meal) ComputeTotals() {
	m.TotalCalories, m.TotalProteins, m.TotalCarbs, m.TotalFats = 0, 0, 0, 0
	for _, it := range m.Items {
		m.TotalCalories += it.Calories
		m.TotalProteins += it.Proteins
		m.TotalCarbs += it.Carbs
		m.TotalFats += it.Fats
	}
}
