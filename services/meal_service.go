package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/PaulBerthelot21/nutrylog/models"

	"gorm.io/gorm"
)

type MealService struct {
	db      *gorm.DB
	foodSvc *FoodService
}

func NewMealService(db *gorm.DB, fs *FoodService) *MealService {
	return &MealService{db: db, foodSvc: fs}
}

type CreateMealItemInput struct {
	FoodID   string  `json:"foodId" binding:"required,uuid"`
	Quantity float64 `json:"quantity" binding:"gte=0"`
}

// CreateMealInput and UpdateMealInput carry values already validated and
// parsed at the HTTP boundary.
type CreateMealInput struct {
	Type  models.MealType
	Date  time.Time
	Notes *string
	Items []CreateMealItemInput
}

type UpdateMealInput struct {
	Type  *models.MealType
	Date  *time.Time
	Notes *string
}

type NutrientTotals struct {
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

type DailySummary struct {
	Date   string         `json:"date"`
	Meals  []models.Meal  `json:"meals"`
	Totals NutrientTotals `json:"totals"`
}

// AuthorizeMeal grants access when the meal has no owner (legacy anonymous
// entries) or the caller is the owner. It runs before every single-meal read
// or mutation.
func AuthorizeMeal(meal *models.Meal, callerID string) error {
	if meal.UserID != nil && *meal.UserID != callerID {
		return fmt.Errorf("%w: meal %s belongs to another user", models.ErrForbidden, meal.ID)
	}
	return nil
}

// findOwned loads a bare meal row and checks ownership.
func (s *MealService) findOwned(callerID, mealID string) (*models.Meal, error) {
	var meal models.Meal
	if err := s.db.First(&meal, "id = ?", mealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: meal %s", models.ErrNotFound, mealID)
		}
		return nil, err
	}
	if err := AuthorizeMeal(&meal, callerID); err != nil {
		return nil, err
	}
	return &meal, nil
}

func (s *MealService) preloadItems(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("meal_items.created_at ASC")
		}).
		Preload("Items.Food")
}

// FindOne returns a meal with its items, food details and derived totals.
func (s *MealService) FindOne(callerID, mealID string) (*models.Meal, error) {
	var meal models.Meal
	err := s.preloadItems(s.db).First(&meal, "id = ?", mealID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: meal %s", models.ErrNotFound, mealID)
		}
		return nil, err
	}
	if err := AuthorizeMeal(&meal, callerID); err != nil {
		return nil, err
	}
	meal.ComputeTotals()
	return &meal, nil
}

func (s *MealService) Create(callerID string, input CreateMealInput) (*models.Meal, error) {
	meal := &models.Meal{
		UserID: &callerID,
		Type:   input.Type,
		Date:   input.Date,
		Notes:  input.Notes,
	}
	if err := s.db.Create(meal).Error; err != nil {
		return nil, err
	}

	for _, it := range input.Items {
		if _, err := s.AddItem(callerID, meal.ID, it.FoodID, it.Quantity); err != nil {
			return nil, err
		}
	}

	return s.FindOne(callerID, meal.ID)
}

// FindAll lists the caller's meals, newest day first. Listings are owner
// scoped at the query, so no per-meal authorization is needed.
func (s *MealService) FindAll(callerID string) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.preloadItems(s.db).
		Where("user_id = ?", callerID).
		Order("date DESC, created_at DESC").
		Find(&meals).Error
	if err != nil {
		return nil, err
	}
	for i := range meals {
		meals[i].ComputeTotals()
	}
	return meals, nil
}

// dayWindow returns the local [midnight, midnight+24h) range of a date.
func dayWindow(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.Add(24 * time.Hour)
}

func (s *MealService) FindByDate(callerID string, date time.Time) ([]models.Meal, error) {
	start, end := dayWindow(date)
	var meals []models.Meal
	err := s.preloadItems(s.db).
		Where("user_id = ? AND date >= ? AND date < ?", callerID, start, end).
		Order("created_at ASC").
		Find(&meals).Error
	if err != nil {
		return nil, err
	}
	for i := range meals {
		meals[i].ComputeTotals()
	}
	return meals, nil
}

func (s *MealService) FindByDateRange(callerID string, from, to time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.preloadItems(s.db).
		Where("user_id = ? AND date >= ? AND date <= ?", callerID, from, to).
		Order("date ASC, created_at ASC").
		Find(&meals).Error
	if err != nil {
		return nil, err
	}
	for i := range meals {
		meals[i].ComputeTotals()
	}
	return meals, nil
}

func (s *MealService) Update(callerID, mealID string, input UpdateMealInput) (*models.Meal, error) {
	meal, err := s.findOwned(callerID, mealID)
	if err != nil {
		return nil, err
	}

	if input.Type != nil {
		meal.Type = *input.Type
	}
	if input.Date != nil {
		meal.Date = *input.Date
	}
	if input.Notes != nil {
		meal.Notes = input.Notes
	}

	if err := s.db.Save(meal).Error; err != nil {
		return nil, err
	}
	return s.FindOne(callerID, mealID)
}

// Delete removes a meal and all of its items.
func (s *MealService) Delete(callerID, mealID string) error {
	meal, err := s.findOwned(callerID, mealID)
	if err != nil {
		return err
	}
	if err := s.db.Where("meal_id = ?", meal.ID).Delete(&models.MealItem{}).Error; err != nil {
		return err
	}
	return s.db.Delete(meal).Error
}

// AddItem snapshots the food's nutrients scaled by quantity/servingSize and
// attaches the item to the meal. Later food edits leave the snapshot alone.
func (s *MealService) AddItem(callerID, mealID, foodID string, quantity float64) (*models.Meal, error) {
	meal, err := s.findOwned(callerID, mealID)
	if err != nil {
		return nil, err
	}
	food, err := s.foodSvc.FindOne(foodID)
	if err != nil {
		return nil, err
	}

	ratio := quantity / food.ServingSize
	item := &models.MealItem{
		MealID:   meal.ID,
		FoodID:   food.ID,
		Quantity: quantity,
		Calories: food.Calories * ratio,
		Proteins: food.Proteins * ratio,
		Carbs:    food.Carbs * ratio,
		Fats:     food.Fats * ratio,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, err
	}

	return s.FindOne(callerID, mealID)
}

func (s *MealService) findItem(mealID, itemID string) (*models.MealItem, error) {
	var item models.MealItem
	err := s.db.First(&item, "id = ? AND meal_id = ?", itemID, mealID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: item %s in meal %s", models.ErrNotFound, itemID, mealID)
		}
		return nil, err
	}
	return &item, nil
}

// UpdateItem re-quantifies an item. This is the one path where a later food
// edit reaches a past meal: the nutrients are recomputed from the food's
// current values.
func (s *MealService) UpdateItem(callerID, mealID, itemID string, quantity float64) (*models.Meal, error) {
	if _, err := s.findOwned(callerID, mealID); err != nil {
		return nil, err
	}
	item, err := s.findItem(mealID, itemID)
	if err != nil {
		return nil, err
	}
	food, err := s.foodSvc.FindOne(item.FoodID)
	if err != nil {
		return nil, err
	}

	ratio := quantity / food.ServingSize
	item.Quantity = quantity
	item.Calories = food.Calories * ratio
	item.Proteins = food.Proteins * ratio
	item.Carbs = food.Carbs * ratio
	item.Fats = food.Fats * ratio

	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return s.FindOne(callerID, mealID)
}

func (s *MealService) RemoveItem(callerID, mealID, itemID string) (*models.Meal, error) {
	if _, err := s.findOwned(callerID, mealID); err != nil {
		return nil, err
	}
	item, err := s.findItem(mealID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(item).Error; err != nil {
		return nil, err
	}
	return s.FindOne(callerID, mealID)
}

// GetDailySummary sums nutrient totals across all of the caller's meals on
// one calendar day. A day with no meals yields zero totals, never an error.
func (s *MealService) GetDailySummary(callerID string, date time.Time) (*DailySummary, error) {
	meals, err := s.FindByDate(callerID, date)
	if err != nil {
		return nil, err
	}
	if meals == nil {
		meals = []models.Meal{}
	}

	var totals NutrientTotals
	for _, m := range meals {
		for _, it := range m.Items {
			totals.Calories += it.Calories
			totals.Proteins += it.Proteins
			totals.Carbs += it.Carbs
			totals.Fats += it.Fats
		}
	}

	return &DailySummary{
		Date:   date.Format("2006-01-02"),
		Meals:  meals,
		Totals: totals,
	}, nil
}
