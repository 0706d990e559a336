package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow-be/internal/middleware"
	"taskflow-be/internal/models"
	"taskflow-be/internal/service"
)

type UserController struct {
	authService service.AuthService
}

func NewUserController(authService service.AuthService) *UserController {
	return &UserController{
		authService: authService,
	}
}

// GetProfile handles GET /user/profile
func (uc *UserController) GetProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, models.NewUserResponse(user))
}

// UpdateProfile handles PUT /user/profile
func (uc *UserController) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	user := middleware.CurrentUser(c)
	updated, err := uc.authService.UpdateProfile(c.Request.Context(), user.ID, &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Email already in use",
			})
			return
		}
		log.Printf("profile update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, models.NewUserResponse(updated))
}
