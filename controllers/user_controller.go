package controllers

import (
	"net/http"

	"github.com/PaulBerthelot21/nutrylog/services"
	"github.com/PaulBerthelot21/nutrylog/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users    *services.UserService
	uploader *utils.S3Uploader
}

// NewUserController wires the profile endpoints. uploader may be nil when S3
// is not configured; avatar upload then answers 503.
func NewUserController(users *services.UserService, uploader *utils.S3Uploader) *UserController {
	return &UserController{users: users, uploader: uploader}
}

func (ctl *UserController) Me(c *gin.Context) {
	user, err := ctl.users.FindByID(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctl *UserController) UpdateMe(c *gin.Context) {
	var input services.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ctl.users.UpdateProfile(c.GetString("userID"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctl *UserController) DeleteMe(c *gin.Context) {
	if err := ctl.users.Delete(c.GetString("userID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctl *UserController) UploadAvatar(c *gin.Context) {
	var input struct {
		ImageBase64 string `json:"imageBase64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if ctl.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "avatar storage not configured"})
		return
	}

	userID := c.GetString("userID")
	url, err := ctl.uploader.UploadBase64Image(c.Request.Context(), input.ImageBase64, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user, err := ctl.users.SetAvatar(userID, url)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
