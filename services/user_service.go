package services

import (
	"errors"
	"fmt"

	"github.com/PaulBerthelot21/nutrylog/models"
	"github.com/PaulBerthelot21/nutrylog/utils"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type CreateUserInput struct {
	Email          string   `json:"email" binding:"required,email"`
	Password       string   `json:"password" binding:"required,min=8,max=50"`
	FirstName      string   `json:"firstName" binding:"required,max=50"`
	LastName       string   `json:"lastName" binding:"required,max=50"`
	TargetCalories *float64 `json:"targetCalories" binding:"omitempty,gte=0"`
	TargetProteins *float64 `json:"targetProteins" binding:"omitempty,gte=0"`
	TargetCarbs    *float64 `json:"targetCarbs" binding:"omitempty,gte=0"`
	TargetFats     *float64 `json:"targetFats" binding:"omitempty,gte=0"`
}

type UpdateUserInput struct {
	FirstName      *string  `json:"firstName" binding:"omitempty,max=50"`
	LastName       *string  `json:"lastName" binding:"omitempty,max=50"`
	TargetCalories *float64 `json:"targetCalories" binding:"omitempty,gte=0"`
	TargetProteins *float64 `json:"targetProteins" binding:"omitempty,gte=0"`
	TargetCarbs    *float64 `json:"targetCarbs" binding:"omitempty,gte=0"`
	TargetFats     *float64 `json:"targetFats" binding:"omitempty,gte=0"`
}

func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	var existing models.User
	err := s.db.First(&existing, "email = ?", input.Email).Error
	if err == nil {
		return nil, fmt.Errorf("%w: email %s already registered", models.ErrConflict, input.Email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:          input.Email,
		Password:       hashed,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		TargetCalories: input.TargetCalories,
		TargetProteins: input.TargetProteins,
		TargetCarbs:    input.TargetCarbs,
		TargetFats:     input.TargetFats,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", models.ErrNotFound, id)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", models.ErrNotFound, email)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) UpdateProfile(id string, input UpdateUserInput) (*models.User, error) {
	user, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.TargetCalories != nil {
		user.TargetCalories = input.TargetCalories
	}
	if input.TargetProteins != nil {
		user.TargetProteins = input.TargetProteins
	}
	if input.TargetCarbs != nil {
		user.TargetCarbs = input.TargetCarbs
	}
	if input.TargetFats != nil {
		user.TargetFats = input.TargetFats
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetAvatar(id, url string) (*models.User, error) {
	user, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	user.AvatarURL = &url
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the account and cascades to its meals and their items in one
// transaction.
func (s *UserService) Delete(id string) error {
	user, err := s.FindByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("meal_id IN (?)", tx.Model(&models.Meal{}).Select("id").Where("user_id = ?", user.ID)).
			Delete(&models.MealItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Meal{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}
