package controllers

import (
	"net/http"

	"github.com/PaulBerthelot21/nutrylog/services"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	foods *services.FoodService
}

func NewFoodController(foods *services.FoodService) *FoodController {
	return &FoodController{foods: foods}
}

func (ctl *FoodController) Create(c *gin.Context) {
	var input services.CreateFoodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food, err := ctl.foods.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, food)
}

// FindOrCreate lets clients "add this food if it's new" idempotently.
func (ctl *FoodController) FindOrCreate(c *gin.Context) {
	var input services.CreateFoodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food, created, err := ctl.foods.FindOrCreate(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"food": food, "created": created})
}

// GET /foods?search=choc
func (ctl *FoodController) FindAll(c *gin.Context) {
	foods, err := ctl.foods.FindAll(c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, foods)
}

func (ctl *FoodController) FindByBarcode(c *gin.Context) {
	food, err := ctl.foods.FindByBarcode(c.Param("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

func (ctl *FoodController) FindOne(c *gin.Context) {
	food, err := ctl.foods.FindOne(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

func (ctl *FoodController) Update(c *gin.Context) {
	var input services.UpdateFoodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food, err := ctl.foods.Update(c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

func (ctl *FoodController) Remove(c *gin.Context) {
	if err := ctl.foods.Remove(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
