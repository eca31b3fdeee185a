package services

import (
	"testing"
	"time"

	"github.com/PaulBerthelot21/nutrylog/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMealService(t *testing.T) (*MealService, *FoodService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	foodSvc := NewFoodService(db)
	return NewMealService(db, foodSvc), foodSvc, db
}

func createTestMeal(t *testing.T, svc *MealService, callerID string, date time.Time) *models.Meal {
	t.Helper()
	meal, err := svc.Create(callerID, CreateMealInput{Type: models.MealTypeLunch, Date: date})
	require.NoError(t, err)
	return meal
}

func TestAddItemScalesProportionally(t *testing.T) {
	svc, foodSvc, _ := newMealService(t)
	caller := uuid.NewString()

	food, err := foodSvc.Create(CreateFoodInput{
		Name: "Chicken Breast", Calories: 200, Proteins: 40, Carbs: 0, Fats: 4,
	})
	require.NoError(t, err)

	meal := createTestMeal(t, svc, caller, time.Now())
	meal, err = svc.AddItem(caller, meal.ID, food.ID, 50)
	require.NoError(t, err)

	require.Len(t, meal.Items, 1)
	item := meal.Items[0]
	assert.Equal(t, 100.0, item.Calories)
	assert.Equal(t, 20.0, item.Proteins)
	assert.Equal(t, 0.0, item.Carbs)
	assert.Equal(t, 2.0, item.Fats)
	assert.Equal(t, food.ID, item.Food.ID)
}

func TestAddItemUnknownMealOrFood(t *testing.T) {
	svc, foodSvc, _ := newMealService(t)
	caller := uuid.NewString()
	food := createTestFood(t, foodSvc, "Egg", 155)
	meal := createTestMeal(t, svc, caller, time.Now())

	_, err := svc.AddItem(caller, uuid.NewString(), food.ID, 100)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.AddItem(caller, meal.ID, uuid.NewString(), 100)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMealTotalsAreDerivedFromItems(t *testing.T) {
	svc, foodSvc, _ := newMealService(t)
	caller := uuid.NewString()

	a := createTestFood(t, foodSvc, "Bread", 100)
	b := createTestFood(t, foodSvc, "Cheese", 50)

	meal := createTestMeal(t, svc, caller, time.Now())
	_, err := svc.AddItem(caller, meal.ID, a.ID, 100)
	require.NoError(t, err)
	refreshed, err := svc.AddItem(caller, meal.ID, b.ID, 100)
	require.NoError(t, err)

	assert.Equal(t, 150.0, refreshed.TotalCalories)

	empty := createTestMeal(t, svc, caller, time.Now())
	assert.Equal(t, 0.0, empty.TotalCalories)
	assert.Equal(t, 0.0, empty.TotalProteins)
}

func TestItemSnapshotFrozenAfterFoodEdit(t *testing.T) {
	svc, foodSvc, _ := newMealService(t)
	caller := uuid.NewString()

	food := createTestFood(t, foodSvc, "Granola", 400)
	meal := createTestMeal(t, svc, caller, time.Now())
	meal, err := svc.AddItem(caller, meal.ID, food.ID, 100)
	require.NoError(t, err)
	require.Equal(t, 400.0, meal.Items[0].Calories)

	_, err = foodSvc.Update(food.ID, UpdateFoodInput{Calories: floatPtr(500)})
	require.NoError(t, err)

	meal, err = svc.FindOne(caller, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, 400.0, meal.Items[0].Calories)
}

func TestUpdateItemRecomputesFromCurrentFood(t *testing.T) {
	svc, foodSvc, _ := newMealService(t)
	caller := uuid.NewString()

	food := createTestFood(t, foodSvc, "Granola", 400)
	meal := createTestMeal(t, svc, caller, time.Now())
	meal, err := svc.AddItem(caller, meal.ID, food.ID, 100)
	require.NoError(t, err)
	itemID := meal.Items[0].ID

	// Re-quantifying is the one path where a food edit reaches an old item.
	_, err = foodSvc.Update(food.ID, UpdateFoodInput{Calories: floatPtr(500)})
	require.NoError(t, err)

	meal, err = svc.UpdateItem(caller, meal.ID, itemID, 50)
	require.NoError(t, err)
	assert.Equal(t, 50.0, meal.Items[0].Quantity)
	assert.Equal(t, 250.0, meal.Items[0].Calories)
}

func TestRemoveItemScopedToMeal(t *testing.T) {
	svc, foodSvc, _ := newMealService(t)
	caller := uuid.NewString()

	food := createTestFood(t, foodSvc, "Pasta", 131)
	mealA := createTestMeal(t, svc, caller, time.Now())
	mealB := createTestMeal(t, svc, caller, time.Now())

	mealA, err := svc.AddItem(caller, mealA.ID, food.ID, 100)
	require.NoError(t, err)
	itemID := mealA.Items[0].ID

	// The item exists, but under a different meal.
	_, err = svc.RemoveItem(caller, mealB.ID, itemID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	mealA, err = svc.RemoveItem(caller, mealA.ID, itemID)
	require.NoError(t, err)
	assert.Empty(t, mealA.Items)
}

func TestAuthorizeMeal(t *testing.T) {
	owner := uuid.NewString()
	stranger := uuid.NewString()

	owned := &models.Meal{ID: uuid.NewString(), UserID: &owner}
	assert.NoError(t, AuthorizeMeal(owned, owner))
	assert.ErrorIs(t, AuthorizeMeal(owned, stranger), models.ErrForbidden)

	anonymous := &models.Meal{ID: uuid.NewString()}
	assert.NoError(t, AuthorizeMeal(anonymous, stranger))
}

func TestFindOneDeniedForOtherUsersMeal(t *testing.T) {
	svc, _, _ := newMealService(t)
	owner := uuid.NewString()

	meal := createTestMeal(t, svc, owner, time.Now())

	_, err := svc.FindOne(uuid.NewString(), meal.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestAnonymousMealIsReadable(t *testing.T) {
	svc, _, db := newMealService(t)

	legacy := &models.Meal{Type: models.MealTypeDinner, Date: time.Now()}
	require.NoError(t, db.Create(legacy).Error)

	meal, err := svc.FindOne(uuid.NewString(), legacy.ID)
	require.NoError(t, err)
	assert.Nil(t, meal.UserID)
}

func TestCreateWithInlineItems(t *testing.T) {
	svc, foodSvc, _ := newMealService(t)
	caller := uuid.NewString()

	food := createTestFood(t, foodSvc, "Tofu", 76)
	meal, err := svc.Create(caller, CreateMealInput{
		Type: models.MealTypeBreakfast,
		Date: time.Now(),
		Items: []CreateMealItemInput{
			{FoodID: food.ID, Quantity: 200},
		},
	})
	require.NoError(t, err)
	require.Len(t, meal.Items, 1)
	assert.Equal(t, 152.0, meal.Items[0].Calories)
	assert.Equal(t, 152.0, meal.TotalCalories)
}

func TestDeleteMealRemovesItems(t *testing.T) {
	svc, foodSvc, db := newMealService(t)
	caller := uuid.NewString()

	food := createTestFood(t, foodSvc, "Soup", 35)
	meal := createTestMeal(t, svc, caller, time.Now())
	_, err := svc.AddItem(caller, meal.ID, food.ID, 250)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(caller, meal.ID))

	_, err = svc.FindOne(caller, meal.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.MealItem{}).Where("meal_id = ?", meal.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateMealPatch(t *testing.T) {
	svc, _, _ := newMealService(t)
	caller := uuid.NewString()

	meal := createTestMeal(t, svc, caller, time.Now())

	dinner := models.MealTypeDinner
	updated, err := svc.Update(caller, meal.ID, UpdateMealInput{Type: &dinner, Notes: strPtr("late one")})
	require.NoError(t, err)
	assert.Equal(t, models.MealTypeDinner, updated.Type)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "late one", *updated.Notes)
	assert.Equal(t, meal.Date.Format("2006-01-02"), updated.Date.Format("2006-01-02"))
}

func TestDailySummaryEmptyDay(t *testing.T) {
	svc, _, _ := newMealService(t)

	summary, err := svc.GetDailySummary(uuid.NewString(), time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)

	assert.Equal(t, "2024-03-10", summary.Date)
	assert.Empty(t, summary.Meals)
	assert.Equal(t, NutrientTotals{}, summary.Totals)
}

func TestDailySummarySumsAcrossMeals(t *testing.T) {
	svc, foodSvc, _ := newMealService(t)
	caller := uuid.NewString()
	day := time.Date(2024, 3, 11, 12, 30, 0, 0, time.Local)

	bread := createTestFood(t, foodSvc, "Bread", 100)
	cheese := createTestFood(t, foodSvc, "Cheese", 50)

	breakfast := createTestMeal(t, svc, caller, day)
	_, err := svc.AddItem(caller, breakfast.ID, bread.ID, 100)
	require.NoError(t, err)

	dinner := createTestMeal(t, svc, caller, day)
	_, err = svc.AddItem(caller, dinner.ID, cheese.ID, 200)
	require.NoError(t, err)

	// A meal on another day must not leak in.
	other := createTestMeal(t, svc, caller, day.AddDate(0, 0, 1))
	_, err = svc.AddItem(caller, other.ID, bread.ID, 100)
	require.NoError(t, err)

	summary, err := svc.GetDailySummary(caller, day)
	require.NoError(t, err)
	assert.Len(t, summary.Meals, 2)
	assert.Equal(t, 200.0, summary.Totals.Calories)
}

func TestDailySummaryIsOwnerScoped(t *testing.T) {
	svc, foodSvc, _ := newMealService(t)
	day := time.Date(2024, 3, 12, 8, 0, 0, 0, time.Local)

	food := createTestFood(t, foodSvc, "Muesli", 360)
	owner := uuid.NewString()
	meal := createTestMeal(t, svc, owner, day)
	_, err := svc.AddItem(owner, meal.ID, food.ID, 100)
	require.NoError(t, err)

	summary, err := svc.GetDailySummary(uuid.NewString(), day)
	require.NoError(t, err)
	assert.Empty(t, summary.Meals)
	assert.Equal(t, 0.0, summary.Totals.Calories)
}
