package controllers

import (
	"net/http"

	"github.com/PaulBerthelot21/nutrylog/models"
	"github.com/PaulBerthelot21/nutrylog/services"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	meals *services.MealService
}

func NewMealController(meals *services.MealService) *MealController {
	return &MealController{meals: meals}
}

func (ctl *MealController) Create(c *gin.Context) {
	var body struct {
		Type  string                         `json:"type" binding:"required,oneof=breakfast lunch dinner snack"`
		Date  string                         `json:"date" binding:"required"`
		Notes *string                        `json:"notes"`
		Items []services.CreateMealItemInput `json:"items" binding:"omitempty,dive"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseDate(body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	meal, err := ctl.meals.Create(c.GetString("userID"), services.CreateMealInput{
		Type:  models.MealType(body.Type),
		Date:  date,
		Notes: body.Notes,
		Items: body.Items,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (ctl *MealController) FindAll(c *gin.Context) {
	meals, err := ctl.meals.FindAll(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

// GET /meals/date/:date
func (ctl *MealController) FindByDate(c *gin.Context) {
	date, err := parseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	meals, err := ctl.meals.FindByDate(c.GetString("userID"), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

// GET /meals/range?start=2024-01-01&end=2024-01-31
func (ctl *MealController) FindByDateRange(c *gin.Context) {
	start, err := parseDate(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date"})
		return
	}
	end, err := parseDate(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date"})
		return
	}

	meals, err := ctl.meals.FindByDateRange(c.GetString("userID"), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

// GET /meals/summary/:date
func (ctl *MealController) GetDailySummary(c *gin.Context) {
	date, err := parseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	summary, err := ctl.meals.GetDailySummary(c.GetString("userID"), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (ctl *MealController) FindOne(c *gin.Context) {
	meal, err := ctl.meals.FindOne(c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (ctl *MealController) Update(c *gin.Context) {
	var body struct {
		Type  *string `json:"type" binding:"omitempty,oneof=breakfast lunch dinner snack"`
		Date  *string `json:"date"`
		Notes *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input services.UpdateMealInput
	if body.Type != nil {
		t := models.MealType(*body.Type)
		input.Type = &t
	}
	if body.Date != nil {
		date, err := parseDate(*body.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		input.Date = &date
	}
	input.Notes = body.Notes

	meal, err := ctl.meals.Update(c.GetString("userID"), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (ctl *MealController) Delete(c *gin.Context) {
	if err := ctl.meals.Delete(c.GetString("userID"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /meals/:id/items
func (ctl *MealController) AddItem(c *gin.Context) {
	var body services.CreateMealItemInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := ctl.meals.AddItem(c.GetString("userID"), c.Param("id"), body.FoodID, body.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// PATCH /meals/:id/items/:itemId
func (ctl *MealController) UpdateItem(c *gin.Context) {
	var body struct {
		Quantity float64 `json:"quantity" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := ctl.meals.UpdateItem(c.GetString("userID"), c.Param("id"), c.Param("itemId"), body.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

// DELETE /meals/:id/items/:itemId
func (ctl *MealController) RemoveItem(c *gin.Context) {
	meal, err := ctl.meals.RemoveItem(c.GetString("userID"), c.Param("id"), c.Param("itemId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}
