package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"preparedhub-api/models"
	"preparedhub-api/services"
)

type AlertController struct {
	db     *gorm.DB
	alerts *services.AlertService
}

func NewAlertController(db *gorm.DB, alerts *services.AlertService) *AlertController {
	return &AlertController{
		db:     db,
		alerts: alerts,
	}
}

// GetAlerts returns the caller's alert feed: location-matched plus
// community-matched active alerts, newest first
func (ac *AlertController) GetAlerts(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := ac.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	alerts, err := ac.alerts.ResolveForUser(&user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

type CreateAlertRequest struct {
	Title       string               `json:"title" binding:"required"`
	Message     string               `json:"message" binding:"required"`
	AlertType   models.AlertType     `json:"alert_type" binding:"required"`
	Severity    models.AlertSeverity `json:"severity" binding:"required"`
	Category    string               `json:"category"`
	State       *string              `json:"state"`
	City        *string              `json:"city"`
	Locality    *string              `json:"locality"`
	CommunityID *string              `json:"community_id"`
	ExpiresAt   *time.Time           `json:"expires_at"`
	Source      string               `json:"source"`
}

func (ac *AlertController) CreateAlert(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := ac.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	alert, err := ac.alerts.Create(&user, services.CreateAlertParams{
		Title:       req.Title,
		Message:     req.Message,
		AlertType:   req.AlertType,
		Severity:    req.Severity,
		Category:    req.Category,
		State:       req.State,
		City:        req.City,
		Locality:    req.Locality,
		CommunityID: req.CommunityID,
		ExpiresAt:   req.ExpiresAt,
		Source:      req.Source,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Alert created successfully",
		"alert":   alert,
	})
}

// DismissAlert deactivates an alert for everyone. Dismissal is a shared
// action with no per-user tracking.
func (ac *AlertController) DismissAlert(c *gin.Context) {
	alertID := c.Param("id")

	if _, err := ac.alerts.Dismiss(alertID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Alert dismissed successfully"})
}
