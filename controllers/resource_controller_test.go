package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"preparedhub-api/models"
)

func setupResourceTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Resource{}, &models.Quiz{}, &models.UserProgress{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	rc := NewResourceController(db)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "test-user")
	})
	r.GET("/resources/:id", rc.GetResource)
	r.POST("/resources/:id/quizzes", rc.CreateQuiz)
	r.POST("/quiz/submit", rc.SubmitQuiz)

	return db, r
}

func seedResourceWithQuizzes(t *testing.T, db *gorm.DB, answers ...int) *models.Resource {
	t.Helper()

	resource := &models.Resource{
		ID:          uuid.New().String(),
		Title:       "Flood preparedness basics",
		Description: "What to do before, during and after a flood",
		Category:    "flood",
	}
	require.NoError(t, db.Create(resource).Error)

	base := time.Now().Add(-time.Hour)
	for i, answer := range answers {
		quiz := &models.Quiz{
			ID:            uuid.New().String(),
			ResourceID:    resource.ID,
			Question:      "Question " + string(rune('A'+i)),
			Options:       models.StringSlice{"option 0", "option 1", "option 2"},
			CorrectAnswer: answer,
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(quiz).Error)
	}
	return resource
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitQuiz_ScoresAgainstPassingThreshold(t *testing.T) {
	db, r := setupResourceTest(t)
	resource := seedResourceWithQuizzes(t, db, 0, 1, 2)

	// Two of three correct falls short of the 70% bar
	w := postJSON(t, r, "/quiz/submit", gin.H{
		"resource_id": resource.ID,
		"answers":     []int{0, 1, 0},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Score          float64 `json:"score"`
		CorrectAnswers int     `json:"correct_answers"`
		TotalQuestions int     `json:"total_questions"`
		Passed         bool    `json:"passed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.InDelta(t, 66.67, result.Score, 0.1)
	assert.Equal(t, 2, result.CorrectAnswers)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.False(t, result.Passed)

	// A perfect retake overwrites the progress row instead of adding one
	w = postJSON(t, r, "/quiz/submit", gin.H{
		"resource_id": resource.ID,
		"answers":     []int{0, 1, 2},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 100.0, result.Score)
	assert.True(t, result.Passed)

	var count int64
	require.NoError(t, db.Model(&models.UserProgress{}).
		Where("user_id = ? AND resource_id = ?", "test-user", resource.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var progress models.UserProgress
	require.NoError(t, db.Where("user_id = ? AND resource_id = ?", "test-user", resource.ID).First(&progress).Error)
	assert.Equal(t, 100.0, progress.QuizScore)
}

func TestSubmitQuiz_AnswerCountMismatch(t *testing.T) {
	db, r := setupResourceTest(t)
	resource := seedResourceWithQuizzes(t, db, 0, 1)

	w := postJSON(t, r, "/quiz/submit", gin.H{
		"resource_id": resource.ID,
		"answers":     []int{0},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitQuiz_ResourceWithoutQuizzes(t *testing.T) {
	db, r := setupResourceTest(t)
	resource := seedResourceWithQuizzes(t, db)

	w := postJSON(t, r, "/quiz/submit", gin.H{
		"resource_id": resource.ID,
		"answers":     []int{},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateQuiz_RejectsOutOfRangeAnswer(t *testing.T) {
	db, r := setupResourceTest(t)
	resource := seedResourceWithQuizzes(t, db)

	w := postJSON(t, r, "/resources/"+resource.ID+"/quizzes", gin.H{
		"question":       "Which way is up?",
		"options":        []string{"left", "right"},
		"correct_answer": 5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetResource_NeverExposesCorrectAnswers(t *testing.T) {
	db, r := setupResourceTest(t)
	resource := seedResourceWithQuizzes(t, db, 1)

	req := httptest.NewRequest(http.MethodGet, "/resources/"+resource.ID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "correct_answer")
	assert.Contains(t, w.Body.String(), "Question A")
}
