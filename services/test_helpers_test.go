package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"preparedhub-api/models"
	"preparedhub-api/repositories"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Community{},
		&models.CommunityMember{},
		&models.Message{},
		&models.Alert{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newMembershipService(db *gorm.DB) *MembershipService {
	return NewMembershipService(
		repositories.NewMembershipRepository(db),
		repositories.NewMessageRepository(db),
	)
}

func newMessageService(db *gorm.DB) *MessageService {
	return NewMessageService(repositories.NewMessageRepository(db), newMembershipService(db))
}

func newAlertService(db *gorm.DB) *AlertService {
	membershipRepo := repositories.NewMembershipRepository(db)
	return NewAlertService(
		repositories.NewAlertRepository(db),
		membershipRepo,
		NewMembershipService(membershipRepo, repositories.NewMessageRepository(db)),
		nil, // no kafka in tests
	)
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    username + "@example.com",
		Password: "$2a$10$dummy",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestCommunity(t *testing.T, svc *MembershipService, creatorID string, maxMembers int) *models.Community {
	t.Helper()

	community, err := svc.CreateCommunity(creatorID, CreateCommunityParams{
		Name:       "Riverside Flood Watch",
		State:      "Kerala",
		City:       "Kochi",
		IsPublic:   true,
		MaxMembers: maxMembers,
	})
	if err != nil {
		t.Fatalf("failed to create test community: %v", err)
	}
	return community
}

func createTestAlert(t *testing.T, db *gorm.DB, alert *models.Alert) *models.Alert {
	t.Helper()

	if alert.ID == "" {
		alert.ID = uuid.New().String()
	}
	if alert.AlertType == "" {
		alert.AlertType = models.AlertWeather
	}
	if alert.Severity == "" {
		alert.Severity = models.SeverityMedium
	}
	if alert.Title == "" {
		alert.Title = "Test alert"
	}
	if alert.Message == "" {
		alert.Message = "Test alert body"
	}
	if alert.IssuedAt.IsZero() {
		alert.IssuedAt = time.Now()
	}
	alert.IsActive = true

	if err := db.Create(alert).Error; err != nil {
		t.Fatalf("failed to create test alert: %v", err)
	}
	return alert
}

func strPtr(s string) *string {
	return &s
}
