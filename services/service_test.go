package services

import (
	"testing"

	"github.com/PaulBerthelot21/nutrylog/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database per test. Max one open
// connection, otherwise every pooled connection would see its own empty
// :memory: database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Food{},
		&models.Meal{},
		&models.MealItem{},
	))

	return db
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func createTestFood(t *testing.T, svc *FoodService, name string, calories float64) *models.Food {
	t.Helper()
	food, err := svc.Create(CreateFoodInput{
		Name:     name,
		Calories: calories,
		Proteins: calories / 10,
		Carbs:    calories / 5,
		Fats:     calories / 20,
	})
	require.NoError(t, err)
	return food
}
