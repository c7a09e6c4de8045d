package repositories

import (
	"time"

	"gorm.io/gorm"

	"preparedhub-api/models"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(alert *models.Alert) error {
	return r.db.Create(alert).Error
}

func (r *AlertRepository) FindByID(alertID string) (*models.Alert, error) {
	var alert models.Alert
	if err := r.db.First(&alert, "id = ?", alertID).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

// LocationMatched returns active alerts matching the user's location.
// An unset alert field is global at that level and matches everyone.
// A user with no state set only matches alerts with no state; locality
// is deliberately not filtered.
func (r *AlertRepository) LocationMatched(state, city string) ([]models.Alert, error) {
	query := r.db.Where("is_active = ?", true).
		Where("state IS NULL OR state = ?", state)

	if state != "" && city != "" {
		query = query.Where("city IS NULL OR city = ?", city)
	}

	var alerts []models.Alert
	err := query.Order("issued_at DESC").Find(&alerts).Error
	return alerts, err
}

// CommunityMatched returns active alerts scoped to any of the given
// communities
func (r *AlertRepository) CommunityMatched(communityIDs []string) ([]models.Alert, error) {
	if len(communityIDs) == 0 {
		return nil, nil
	}

	var alerts []models.Alert
	err := r.db.Where("community_id IN ? AND is_active = ?", communityIDs, true).
		Find(&alerts).Error
	return alerts, err
}

// Deactivate flips the shared is_active flag. Deactivation is global:
// the alert disappears from every user's feed.
func (r *AlertRepository) Deactivate(alert *models.Alert) error {
	if err := r.db.Model(alert).Update("is_active", false).Error; err != nil {
		return err
	}
	alert.IsActive = false
	return nil
}

// DeactivateExpired bulk-deactivates alerts whose expiry has passed and
// returns how many rows changed
func (r *AlertRepository) DeactivateExpired(now time.Time) (int64, error) {
	result := r.db.Model(&models.Alert{}).
		Where("is_active = ? AND expires_at IS NOT NULL AND expires_at <= ?", true, now).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
