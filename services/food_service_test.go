package services

import (
	"testing"

	"github.com/PaulBerthelot21/nutrylog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDuplicateNameBrandConflicts(t *testing.T) {
	svc := NewFoodService(setupTestDB(t))

	_, err := svc.Create(CreateFoodInput{Name: "Oats", Brand: strPtr("Quaker"), Calories: 380})
	require.NoError(t, err)

	_, err = svc.Create(CreateFoodInput{Name: "Oats", Brand: strPtr("Quaker"), Calories: 400})
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestBrandlessFoodIsItsOwnIdentity(t *testing.T) {
	svc := NewFoodService(setupTestDB(t))

	_, err := svc.Create(CreateFoodInput{Name: "Oats", Brand: strPtr("Quaker"), Calories: 380})
	require.NoError(t, err)

	// Same name without a brand does not conflict with the branded entry.
	_, err = svc.Create(CreateFoodInput{Name: "Oats", Calories: 370})
	require.NoError(t, err)

	// A second brand-less entry does.
	_, err = svc.Create(CreateFoodInput{Name: "Oats", Calories: 360})
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestFindOrCreateIsIdempotent(t *testing.T) {
	svc := NewFoodService(setupTestDB(t))
	input := CreateFoodInput{Name: "Banana", Calories: 89}

	first, created, err := svc.FindOrCreate(input)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := svc.FindOrCreate(input)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestCreateAppliesServingDefaults(t *testing.T) {
	svc := NewFoodService(setupTestDB(t))

	food, err := svc.Create(CreateFoodInput{Name: "Rice", Calories: 130})
	require.NoError(t, err)
	assert.Equal(t, 100.0, food.ServingSize)
	assert.Equal(t, "g", food.ServingUnit)
}

func TestCreateRejectsZeroServingSize(t *testing.T) {
	svc := NewFoodService(setupTestDB(t))

	_, err := svc.Create(CreateFoodInput{Name: "Rice", Calories: 130, ServingSize: floatPtr(0)})
	assert.Error(t, err)

	_, _, err = svc.FindOrCreate(CreateFoodInput{Name: "Rice", Calories: 130, ServingSize: floatPtr(-5)})
	assert.Error(t, err)
}

func TestSearchRanksPrefixMatchesFirst(t *testing.T) {
	svc := NewFoodService(setupTestDB(t))
	createTestFood(t, svc, "Hot Chocolate", 90)
	createTestFood(t, svc, "Chocolate Bar", 540)
	createTestFood(t, svc, "Almonds", 580)

	foods, err := svc.FindAll("choc")
	require.NoError(t, err)
	require.Len(t, foods, 2)
	assert.Equal(t, "Chocolate Bar", foods[0].Name)
	assert.Equal(t, "Hot Chocolate", foods[1].Name)
}

func TestSearchMatchesBrand(t *testing.T) {
	svc := NewFoodService(setupTestDB(t))

	_, err := svc.Create(CreateFoodInput{Name: "Corn Flakes", Brand: strPtr("Kellogg's"), Calories: 357})
	require.NoError(t, err)

	foods, err := svc.FindAll("kellogg")
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "Corn Flakes", foods[0].Name)
}

func TestFindAllWithoutTermIsAlphabetical(t *testing.T) {
	svc := NewFoodService(setupTestDB(t))
	createTestFood(t, svc, "Walnuts", 650)
	createTestFood(t, svc, "Apple", 52)
	createTestFood(t, svc, "Milk", 42)

	foods, err := svc.FindAll("")
	require.NoError(t, err)
	require.Len(t, foods, 3)
	assert.Equal(t, "Apple", foods[0].Name)
	assert.Equal(t, "Milk", foods[1].Name)
	assert.Equal(t, "Walnuts", foods[2].Name)
}

func TestFindByBarcode(t *testing.T) {
	svc := NewFoodService(setupTestDB(t))

	_, err := svc.Create(CreateFoodInput{Name: "Yogurt", Calories: 59, Barcode: strPtr("3017620422003")})
	require.NoError(t, err)

	food, err := svc.FindByBarcode("3017620422003")
	require.NoError(t, err)
	require.NotNil(t, food)
	assert.Equal(t, "Yogurt", food.Name)

	// Unknown barcode yields no result, not an error.
	food, err = svc.FindByBarcode("0000000000000")
	require.NoError(t, err)
	assert.Nil(t, food)
}

func TestFindOneNotFound(t *testing.T) {
	svc := NewFoodService(setupTestDB(t))

	_, err := svc.FindOne("3f1b2a70-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	svc := NewFoodService(setupTestDB(t))
	food := createTestFood(t, svc, "Lentils", 116)

	updated, err := svc.Update(food.ID, UpdateFoodInput{Calories: floatPtr(120)})
	require.NoError(t, err)
	assert.Equal(t, 120.0, updated.Calories)
	assert.Equal(t, "Lentils", updated.Name)
	assert.Equal(t, food.Proteins, updated.Proteins)
}

func TestUpdateAndRemoveNotFound(t *testing.T) {
	svc := NewFoodService(setupTestDB(t))

	_, err := svc.Update("3f1b2a70-0000-0000-0000-000000000000", UpdateFoodInput{})
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = svc.Remove("3f1b2a70-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRemoveDeletesFood(t *testing.T) {
	svc := NewFoodService(setupTestDB(t))
	food := createTestFood(t, svc, "Butter", 717)

	require.NoError(t, svc.Remove(food.ID))

	_, err := svc.FindOne(food.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
