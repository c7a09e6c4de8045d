package database

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"preparedhub-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Info),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Resource{},
		&models.Quiz{},
		&models.UserProgress{},
		&models.Community{},
		&models.CommunityMember{},
		&models.Message{},
		&models.Alert{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addDatabaseConstraints(db); err != nil {
		return fmt.Errorf("failed to add database constraints: %w", err)
	}

	return nil
}

func addDatabaseConstraints(db *gorm.DB) error {
	// Prevent duplicate membership rows under concurrent joins
	if err := db.Exec("ALTER TABLE community_members ADD CONSTRAINT uk_community_user UNIQUE (community_id, user_id)").Error; err != nil {
		// Ignore error if constraint already exists
		fmt.Printf("Warning: Could not add unique constraint for community_members: %v\n", err)
	}

	// Prevent duplicate progress rows under concurrent quiz submissions
	if err := db.Exec("ALTER TABLE user_progresses ADD CONSTRAINT uk_user_resource UNIQUE (user_id, resource_id)").Error; err != nil {
		fmt.Printf("Warning: Could not add unique constraint for user_progresses: %v\n", err)
	}

	return nil
}

// SeedData populates the database with initial data for development/testing
func SeedData(db *gorm.DB) error {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		ID:            uuid.New().String(),
		Username:      "admin",
		Email:         "admin@preparedhub.in",
		Password:      string(hashed),
		IsAdmin:       true,
		EmailVerified: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		fmt.Printf("Warning: Could not create admin user: %v\n", err)
	}

	testResources := []models.Resource{
		{
			ID:          uuid.New().String(),
			Title:       "Earthquake Safety Basics",
			Description: "Drop, cover and hold on. What to do before, during and after an earthquake.",
			ContentType: "article",
			Category:    "earthquake",
		},
		{
			ID:          uuid.New().String(),
			Title:       "Flood Preparedness Checklist",
			Description: "Assembling a go-bag, securing documents and planning evacuation routes.",
			ContentType: "article",
			Category:    "flood",
		},
	}

	for _, resource := range testResources {
		if err := db.Create(&resource).Error; err != nil {
			fmt.Printf("Warning: Could not create test resource %s: %v\n", resource.Title, err)
		}
	}

	fmt.Println("Database seeded with admin user and starter resources")
	return nil
}
