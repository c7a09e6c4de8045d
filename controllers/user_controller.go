package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"preparedhub-api/models"
	"preparedhub-api/utils"
)

type UserController struct {
	db *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

// GetProfile returns the caller's profile with their learning progress
// and earned badges
func (uc *UserController) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var progress []models.UserProgress
	if err := uc.db.Where("user_id = ?", userID).Find(&progress).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch progress"})
		return
	}

	completed := 0
	for _, p := range progress {
		if p.QuizScore >= models.PassingScore {
			completed++
		}
	}

	badges := badgesForCompleted(completed)

	user.Password = ""

	c.JSON(http.StatusOK, gin.H{
		"user":                user,
		"progress":            progress,
		"badges":              badges,
		"completed_resources": completed,
	})
}

// Badge thresholds by number of resources passed
func badgesForCompleted(completed int) []string {
	badges := []string{}
	if completed >= 1 {
		badges = append(badges, "First Steps")
	}
	if completed >= 3 {
		badges = append(badges, "Safety Aware")
	}
	if completed >= 5 {
		badges = append(badges, "Emergency Expert")
	}
	return badges
}

type UpdateProfileRequest struct {
	State       *string `json:"state"`
	City        *string `json:"city"`
	Locality    *string `json:"locality"`
	PhoneNumber *string `json:"phone_number"`
}

// UpdateProfile updates the caller's location and contact details
func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Locality != nil {
		updates["locality"] = *req.Locality
	}
	if req.PhoneNumber != nil {
		if *req.PhoneNumber != "" && !utils.IsValidPhoneNumber(*req.PhoneNumber) {
			utils.SendValidationError(c, "invalid phone number")
			return
		}
		updates["phone_number"] = *req.PhoneNumber
	}

	if len(updates) > 0 {
		if err := uc.db.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
	}

	user.Password = ""
	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
