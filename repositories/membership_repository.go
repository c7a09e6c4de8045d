package repositories

import (
	"time"

	"gorm.io/gorm"

	"preparedhub-api/models"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// GetCommunity retrieves a community by ID
func (r *MembershipRepository) GetCommunity(communityID string) (*models.Community, error) {
	var community models.Community
	if err := r.db.First(&community, "id = ?", communityID).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

// CreateCommunityWithCreator creates the community row and the creator's
// admin membership in one transaction, so there is no state where a
// community exists without its creator-admin member.
func (r *MembershipRepository) CreateCommunityWithCreator(community *models.Community, member *models.CommunityMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(community).Error; err != nil {
			return err
		}
		member.CommunityID = community.ID
		return tx.Create(member).Error
	})
}

// DeleteCommunityCascade removes a community together with its owned
// children (memberships and messages). Alerts referencing the community
// are weak references and stay in place.
func (r *MembershipRepository) DeleteCommunityCascade(communityID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("community_id = ?", communityID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("community_id = ?", communityID).Delete(&models.CommunityMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Community{}, "id = ?", communityID).Error
	})
}

// GetMembership retrieves the membership row for a (community, user)
// pair regardless of its status
func (r *MembershipRepository) GetMembership(communityID, userID string) (*models.CommunityMember, error) {
	var member models.CommunityMember
	err := r.db.Where("community_id = ? AND user_id = ?", communityID, userID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// CountActiveMembers returns the number of active members in a community
func (r *MembershipRepository) CountActiveMembers(communityID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.CommunityMember{}).
		Where("community_id = ? AND status = ?", communityID, models.StatusActive).
		Count(&count).Error
	return count, err
}

// CreateMembership inserts a new membership row. The unique constraint
// on (community_id, user_id) rejects duplicates under concurrent joins.
func (r *MembershipRepository) CreateMembership(member *models.CommunityMember) error {
	return r.db.Create(member).Error
}

// Reactivate transitions an inactive membership back to active and
// refreshes the join timestamp
func (r *MembershipRepository) Reactivate(member *models.CommunityMember) error {
	now := time.Now()
	err := r.db.Model(member).Updates(map[string]interface{}{
		"status":    models.StatusActive,
		"joined_at": now,
	}).Error
	if err != nil {
		return err
	}
	member.Status = models.StatusActive
	member.JoinedAt = now
	return nil
}

// Deactivate marks a membership inactive. The row is kept so the
// history survives and a rejoin reuses it.
func (r *MembershipRepository) Deactivate(member *models.CommunityMember) error {
	if err := r.db.Model(member).Update("status", models.StatusInactive).Error; err != nil {
		return err
	}
	member.Status = models.StatusInactive
	return nil
}

// ActiveCommunityIDs returns the IDs of communities where the user
// holds an active membership
func (r *MembershipRepository) ActiveCommunityIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.CommunityMember{}).
		Where("user_id = ? AND status = ?", userID, models.StatusActive).
		Pluck("community_id", &ids).Error
	return ids, err
}

// ListActiveMembers returns the active members of a community with
// their user records loaded
func (r *MembershipRepository) ListActiveMembers(communityID string) ([]models.CommunityMember, error) {
	var members []models.CommunityMember
	err := r.db.Preload("User").
		Where("community_id = ? AND status = ?", communityID, models.StatusActive).
		Find(&members).Error
	return members, err
}

// ListPublicCommunities returns public communities matching the given
// location filters; empty filters are skipped
func (r *MembershipRepository) ListPublicCommunities(state, city, locality string) ([]models.Community, error) {
	query := r.db.Where("is_public = ?", true)

	if state != "" {
		query = query.Where("state = ?", state)
	}
	if city != "" {
		query = query.Where("city = ?", city)
	}
	if locality != "" {
		query = query.Where("locality = ?", locality)
	}

	var communities []models.Community
	err := query.Order("created_at DESC").Find(&communities).Error
	return communities, err
}
