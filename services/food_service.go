package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/PaulBerthelot21/nutrylog/models"

	"gorm.io/gorm"
)

type FoodService struct {
	db *gorm.DB
}

func NewFoodService(db *gorm.DB) *FoodService {
	return &FoodService{db: db}
}

type CreateFoodInput struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Brand       *string  `json:"brand" binding:"omitempty,max=255"`
	Calories    float64  `json:"calories" binding:"gte=0"`
	Proteins    float64  `json:"proteins" binding:"gte=0"`
	Carbs       float64  `json:"carbs" binding:"gte=0"`
	Fats        float64  `json:"fats" binding:"gte=0"`
	ServingSize *float64 `json:"servingSize" binding:"omitempty,gt=0"`
	ServingUnit *string  `json:"servingUnit"`
	Barcode     *string  `json:"barcode"`
}

// UpdateFoodInput is an explicit patch: a present field overwrites, an absent
// one is retained.
type UpdateFoodInput struct {
	Name        *string  `json:"name" binding:"omitempty,max=255"`
	Brand       *string  `json:"brand" binding:"omitempty,max=255"`
	Calories    *float64 `json:"calories" binding:"omitempty,gte=0"`
	Proteins    *float64 `json:"proteins" binding:"omitempty,gte=0"`
	Carbs       *float64 `json:"carbs" binding:"omitempty,gte=0"`
	Fats        *float64 `json:"fats" binding:"omitempty,gte=0"`
	ServingSize *float64 `json:"servingSize" binding:"omitempty,gt=0"`
	ServingUnit *string  `json:"servingUnit"`
	Barcode     *string  `json:"barcode"`
}

func (s *FoodService) findByNameAndBrand(name string, brand *string) (*models.Food, error) {
	var food models.Food
	q := s.db.Where("name = ?", name)
	if brand != nil {
		q = q.Where("brand = ?", *brand)
	} else {
		q = q.Where("brand IS NULL")
	}
	if err := q.First(&food).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &food, nil
}

func (s *FoodService) build(input CreateFoodInput) (*models.Food, error) {
	food := &models.Food{
		Name:        input.Name,
		Brand:       input.Brand,
		Calories:    input.Calories,
		Proteins:    input.Proteins,
		Carbs:       input.Carbs,
		Fats:        input.Fats,
		ServingSize: 100,
		ServingUnit: "g",
		Barcode:     input.Barcode,
	}
	if input.ServingSize != nil {
		food.ServingSize = *input.ServingSize
	}
	if input.ServingUnit != nil {
		food.ServingUnit = *input.ServingUnit
	}
	// Item scaling divides by servingSize, so zero can never be stored.
	if food.ServingSize <= 0 {
		return nil, fmt.Errorf("servingSize must be strictly positive")
	}
	return food, nil
}

// Create inserts a new food, failing when the (name, brand) pair is taken.
func (s *FoodService) Create(input CreateFoodInput) (*models.Food, error) {
	existing, err := s.findByNameAndBrand(input.Name, input.Brand)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: food %q already exists", models.ErrConflict, input.Name)
	}

	food, err := s.build(input)
	if err != nil {
		return nil, err
	}
	if err := s.db.Create(food).Error; err != nil {
		return nil, err
	}
	return food, nil
}

// FindOrCreate returns the existing food for the (name, brand) identity or
// creates it. The boolean reports whether a new record was created.
func (s *FoodService) FindOrCreate(input CreateFoodInput) (*models.Food, bool, error) {
	existing, err := s.findByNameAndBrand(input.Name, input.Brand)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	food, err := s.build(input)
	if err != nil {
		return nil, false, err
	}
	if err := s.db.Create(food).Error; err != nil {
		return nil, false, err
	}
	return food, true, nil
}

// FindAll lists the catalog. With a search term it matches name or brand
// case-insensitively and ranks prefix matches on the name first, alphabetical
// within each rank.
func (s *FoodService) FindAll(search string) ([]models.Food, error) {
	var foods []models.Food

	if search == "" {
		err := s.db.Order("name asc").Find(&foods).Error
		return foods, err
	}

	like := "%" + strings.ToLower(search) + "%"
	if err := s.db.
		Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ?", like, like).
		Find(&foods).Error; err != nil {
		return nil, err
	}

	term := strings.ToLower(search)
	sort.Slice(foods, func(i, j int) bool {
		iPrefix := strings.HasPrefix(strings.ToLower(foods[i].Name), term)
		jPrefix := strings.HasPrefix(strings.ToLower(foods[j].Name), term)
		if iPrefix != jPrefix {
			return iPrefix
		}
		return strings.ToLower(foods[i].Name) < strings.ToLower(foods[j].Name)
	})
	return foods, nil
}

func (s *FoodService) FindOne(id string) (*models.Food, error) {
	var food models.Food
	if err := s.db.First(&food, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: food %s", models.ErrNotFound, id)
		}
		return nil, err
	}
	return &food, nil
}

// FindByBarcode is an exact lookup; an unknown barcode yields no result, not
// an error.
func (s *FoodService) FindByBarcode(barcode string) (*models.Food, error) {
	var food models.Food
	if err := s.db.First(&food, "barcode = ?", barcode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &food, nil
}

func (s *FoodService) Update(id string, input UpdateFoodInput) (*models.Food, error) {
	food, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		food.Name = *input.Name
	}
	if input.Brand != nil {
		food.Brand = input.Brand
	}
	if input.Calories != nil {
		food.Calories = *input.Calories
	}
	if input.Proteins != nil {
		food.Proteins = *input.Proteins
	}
	if input.Carbs != nil {
		food.Carbs = *input.Carbs
	}
	if input.Fats != nil {
		food.Fats = *input.Fats
	}
	if input.ServingSize != nil {
		if *input.ServingSize <= 0 {
			return nil, fmt.Errorf("servingSize must be strictly positive")
		}
		food.ServingSize = *input.ServingSize
	}
	if input.ServingUnit != nil {
		food.ServingUnit = *input.ServingUnit
	}
	if input.Barcode != nil {
		food.Barcode = input.Barcode
	}

	if err := s.db.Save(food).Error; err != nil {
		return nil, err
	}
	return food, nil
}

func (s *FoodService) Remove(id string) error {
	food, err := s.FindOne(id)
	if err != nil {
		return err
	}
	return s.db.Delete(food).Error
}
