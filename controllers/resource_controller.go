package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"preparedhub-api/models"
)

type ResourceController struct {
	db *gorm.DB
}

func NewResourceController(db *gorm.DB) *ResourceController {
	return &ResourceController{db: db}
}

// GetResources lists educational resources, optionally filtered by
// category
func (rc *ResourceController) GetResources(c *gin.Context) {
	query := rc.db.Order("created_at DESC")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var resources []models.Resource
	if err := query.Find(&resources).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch resources"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"resources": resources,
		"count":     len(resources),
	})
}

// GetResource returns one resource with its quiz questions. Correct
// answers are never serialized.
func (rc *ResourceController) GetResource(c *gin.Context) {
	resourceID := c.Param("id")

	var resource models.Resource
	if err := rc.db.Preload("Quizzes").First(&resource, "id = ?", resourceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"resource": resource})
}

type CreateResourceRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	ContentURL  string `json:"content_url"`
	ContentType string `json:"content_type"`
	Category    string `json:"category" binding:"required"`
}

// CreateResource adds a new educational resource (admin only, enforced
// by route middleware)
func (rc *ResourceController) CreateResource(c *gin.Context) {
	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "article"
	}

	resource := models.Resource{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		ContentURL:  req.ContentURL,
		ContentType: contentType,
		Category:    req.Category,
	}

	if err := rc.db.Create(&resource).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create resource"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Resource created successfully",
		"resource": resource,
	})
}

type CreateQuizRequest struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer int      `json:"correct_answer" binding:"min=0"`
}

// CreateQuiz attaches a quiz question to a resource (admin only)
func (rc *ResourceController) CreateQuiz(c *gin.Context) {
	resourceID := c.Param("id")

	var resource models.Resource
	if err := rc.db.First(&resource, "id = ?", resourceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.CorrectAnswer >= len(req.Options) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "correct_answer is out of range"})
		return
	}

	quiz := models.Quiz{
		ID:            uuid.New().String(),
		ResourceID:    resourceID,
		Question:      req.Question,
		Options:       models.StringSlice(req.Options),
		CorrectAnswer: req.CorrectAnswer,
	}

	if err := rc.db.Create(&quiz).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create quiz"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Quiz created successfully",
		"quiz":    quiz,
	})
}

type SubmitQuizRequest struct {
	ResourceID string `json:"resource_id" binding:"required"`
	Answers    []int  `json:"answers" binding:"required"`
}

// SubmitQuiz scores the caller's answers against a resource's quizzes
// and upserts their progress row. 70% is the passing grade.
func (rc *ResourceController) SubmitQuiz(c *gin.Context) {
	userID := c.GetString("user_id")

	var req SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var quizzes []models.Quiz
	if err := rc.db.Where("resource_id = ?", req.ResourceID).Order("created_at ASC").Find(&quizzes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quizzes"})
		return
	}
	if len(quizzes) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No quizzes found for this resource"})
		return
	}

	if len(req.Answers) != len(quizzes) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Number of answers does not match number of questions"})
		return
	}

	correct := 0
	for i, quiz := range quizzes {
		if req.Answers[i] == quiz.CorrectAnswer {
			correct++
		}
	}
	score := float64(correct) / float64(len(quizzes)) * 100

	// Upsert progress for the (user, resource) pair
	var progress models.UserProgress
	err := rc.db.Where("user_id = ? AND resource_id = ?", userID, req.ResourceID).First(&progress).Error
	if err != nil {
		progress = models.UserProgress{
			UserID:      userID,
			ResourceID:  req.ResourceID,
			QuizScore:   score,
			CompletedAt: time.Now(),
		}
		if err := rc.db.Create(&progress).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save progress"})
			return
		}
	} else {
		if err := rc.db.Model(&progress).Updates(map[string]interface{}{
			"quiz_score":   score,
			"completed_at": time.Now(),
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save progress"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"score":           score,
		"correct_answers": correct,
		"total_questions": len(quizzes),
		"passed":          score >= models.PassingScore,
		"progress":        progress,
	})
}
