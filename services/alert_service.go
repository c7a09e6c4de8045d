package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"preparedhub-api/models"
	"preparedhub-api/repositories"
)

// AlertService computes each user's alert feed by merging the location
// match rule with the community match rule, and owns alert creation and
// dismissal.
type AlertService struct {
	alertRepo      *repositories.AlertRepository
	membershipRepo *repositories.MembershipRepository
	membership     *MembershipService
	publisher      *AlertPublisher
}

func NewAlertService(alertRepo *repositories.AlertRepository, membershipRepo *repositories.MembershipRepository, membership *MembershipService, publisher *AlertPublisher) *AlertService {
	return &AlertService{
		alertRepo:      alertRepo,
		membershipRepo: membershipRepo,
		membership:     membership,
		publisher:      publisher,
	}
}

// ResolveForUser returns the active alerts visible to the user: alerts
// matching their state/city plus alerts scoped to communities where
// they hold an active membership. An alert matched by both rules
// appears once. The merged feed is ordered by issue time, newest first.
func (s *AlertService) ResolveForUser(user *models.User) ([]models.Alert, error) {
	locationAlerts, err := s.alertRepo.LocationMatched(user.State, user.City)
	if err != nil {
		return nil, err
	}

	communityIDs, err := s.membershipRepo.ActiveCommunityIDs(user.ID)
	if err != nil {
		return nil, err
	}

	communityAlerts, err := s.alertRepo.CommunityMatched(communityIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(locationAlerts)+len(communityAlerts))
	merged := make([]models.Alert, 0, len(locationAlerts)+len(communityAlerts))
	for _, alert := range append(locationAlerts, communityAlerts...) {
		if seen[alert.ID] {
			continue
		}
		seen[alert.ID] = true
		merged = append(merged, alert)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].IssuedAt.After(merged[j].IssuedAt)
	})

	return merged, nil
}

type CreateAlertParams struct {
	Title       string
	Message     string
	AlertType   models.AlertType
	Severity    models.AlertSeverity
	Category    string
	State       *string
	City        *string
	Locality    *string
	CommunityID *string
	ExpiresAt   *time.Time
	Source      string
}

// Create issues a new alert. Community-scoped alerts need an active
// admin or moderator membership in the target community; global and
// location alerts are reserved for platform admins.
func (s *AlertService) Create(actor *models.User, params CreateAlertParams) (*models.Alert, error) {
	if strings.TrimSpace(params.Title) == "" || strings.TrimSpace(params.Message) == "" {
		return nil, fmt.Errorf("%w: title and message are required", ErrValidation)
	}
	if !params.AlertType.Valid() {
		return nil, fmt.Errorf("%w: unknown alert type %q", ErrValidation, params.AlertType)
	}
	if !params.Severity.Valid() {
		return nil, fmt.Errorf("%w: unknown severity %q", ErrValidation, params.Severity)
	}

	if params.CommunityID != nil {
		if _, err := s.membership.Authorize(actor.ID, *params.CommunityID, models.RoleAdmin, models.RoleModerator); err != nil {
			return nil, err
		}
	} else if !actor.IsAdmin {
		return nil, fmt.Errorf("%w: only platform admins can issue location-wide alerts", ErrAccessDenied)
	}

	source := params.Source
	if source == "" {
		source = "community"
	}

	alert := &models.Alert{
		ID:          uuid.New().String(),
		Title:       params.Title,
		Message:     params.Message,
		AlertType:   params.AlertType,
		Severity:    params.Severity,
		Category:    params.Category,
		State:       params.State,
		City:        params.City,
		Locality:    params.Locality,
		CommunityID: params.CommunityID,
		IssuedAt:    time.Now(),
		ExpiresAt:   params.ExpiresAt,
		IsActive:    true,
		Source:      source,
	}
	if err := s.alertRepo.Create(alert); err != nil {
		return nil, err
	}

	s.publisher.PublishCreated(alert)

	return alert, nil
}

// Dismiss deactivates an alert. The flag is shared: once dismissed the
// alert is gone from every user's feed, not only the caller's.
func (s *AlertService) Dismiss(alertID string) (*models.Alert, error) {
	alert, err := s.alertRepo.FindByID(alertID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: alert", ErrNotFound)
		}
		return nil, err
	}

	if err := s.alertRepo.Deactivate(alert); err != nil {
		return nil, err
	}
	return alert, nil
}
