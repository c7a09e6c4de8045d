package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"preparedhub-api/models"
	"preparedhub-api/repositories"
)

// MembershipService owns the community membership lifecycle and decides
// who may act inside a community.
type MembershipService struct {
	membershipRepo *repositories.MembershipRepository
	messageRepo    *repositories.MessageRepository
}

func NewMembershipService(membershipRepo *repositories.MembershipRepository, messageRepo *repositories.MessageRepository) *MembershipService {
	return &MembershipService{
		membershipRepo: membershipRepo,
		messageRepo:    messageRepo,
	}
}

type CreateCommunityParams struct {
	Name        string
	Description string
	State       string
	City        string
	Locality    string
	IsPublic    bool
	MaxMembers  int
}

// CreateCommunity creates a community and its creator's active admin
// membership atomically
func (s *MembershipService) CreateCommunity(creatorID string, params CreateCommunityParams) (*models.Community, error) {
	if strings.TrimSpace(params.Name) == "" || params.State == "" || params.City == "" {
		return nil, fmt.Errorf("%w: name, state and city are required", ErrValidation)
	}
	if params.MaxMembers <= 0 {
		params.MaxMembers = 500
	}

	community := &models.Community{
		ID:          uuid.New().String(),
		Name:        params.Name,
		Description: params.Description,
		State:       params.State,
		City:        params.City,
		Locality:    params.Locality,
		IsPublic:    params.IsPublic,
		MaxMembers:  params.MaxMembers,
		CreatorID:   creatorID,
	}

	creatorMember := &models.CommunityMember{
		UserID:   creatorID,
		Role:     models.RoleAdmin,
		Status:   models.StatusActive,
		JoinedAt: time.Now(),
	}

	if err := s.membershipRepo.CreateCommunityWithCreator(community, creatorMember); err != nil {
		return nil, err
	}
	return community, nil
}

// DeleteCommunity removes a community and its owned memberships and
// messages. Only the creator may delete.
func (s *MembershipService) DeleteCommunity(userID, communityID string) error {
	community, err := s.membershipRepo.GetCommunity(communityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: community", ErrNotFound)
		}
		return err
	}

	if community.CreatorID != userID {
		return fmt.Errorf("%w: only the creator can delete a community", ErrForbiddenOperation)
	}

	return s.membershipRepo.DeleteCommunityCascade(communityID)
}

// Join adds the user to the community, or reactivates an earlier
// membership. Rejoins go through the same capacity check as fresh
// joins, so a full community cannot grow past its limit through
// leave/rejoin cycles.
func (s *MembershipService) Join(userID, communityID string) (*models.CommunityMember, error) {
	community, err := s.membershipRepo.GetCommunity(communityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: community", ErrNotFound)
		}
		return nil, err
	}

	existing, err := s.membershipRepo.GetMembership(communityID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		switch existing.Status {
		case models.StatusActive:
			return nil, ErrAlreadyMember
		case models.StatusBanned:
			return nil, fmt.Errorf("%w: banned from this community", ErrAccessDenied)
		case models.StatusInactive:
			if err := s.checkCapacity(community); err != nil {
				return nil, err
			}
			if err := s.membershipRepo.Reactivate(existing); err != nil {
				return nil, err
			}
			return existing, nil
		}
	}

	if err := s.checkCapacity(community); err != nil {
		return nil, err
	}

	member := &models.CommunityMember{
		CommunityID: communityID,
		UserID:      userID,
		Role:        models.RoleMember,
		Status:      models.StatusActive,
		JoinedAt:    time.Now(),
	}
	if err := s.membershipRepo.CreateMembership(member); err != nil {
		return nil, err
	}
	return member, nil
}

// Leave marks the caller's membership inactive. Creators cannot leave
// their own community; there is no ownership-transfer path.
func (s *MembershipService) Leave(userID, communityID string) error {
	member, err := s.membershipRepo.GetMembership(communityID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotAMember
		}
		return err
	}
	if member.Status != models.StatusActive {
		return ErrNotAMember
	}

	community, err := s.membershipRepo.GetCommunity(communityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: community", ErrNotFound)
		}
		return err
	}
	if community.CreatorID == userID {
		return fmt.Errorf("%w: community creators cannot leave their community", ErrForbiddenOperation)
	}

	return s.membershipRepo.Deactivate(member)
}

// Authorize returns the caller's membership row if it is active and,
// when requiredRoles is non-empty, the role is one of them. Anything
// else is an access-denied, including a missing row.
func (s *MembershipService) Authorize(userID, communityID string, requiredRoles ...models.MemberRole) (*models.CommunityMember, error) {
	member, err := s.membershipRepo.GetMembership(communityID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: not a member of this community", ErrAccessDenied)
		}
		return nil, err
	}

	if member.Status != models.StatusActive {
		return nil, fmt.Errorf("%w: membership is not active", ErrAccessDenied)
	}

	if len(requiredRoles) == 0 {
		return member, nil
	}
	for _, role := range requiredRoles {
		if member.Role == role {
			return member, nil
		}
	}
	return nil, fmt.Errorf("%w: insufficient role", ErrAccessDenied)
}

// GetCommunity loads a community, its active members and the latest
// messages. Private communities are only visible to members.
func (s *MembershipService) GetCommunity(userID, communityID string) (*CommunityDetail, error) {
	community, err := s.membershipRepo.GetCommunity(communityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: community", ErrNotFound)
		}
		return nil, err
	}

	membership, err := s.membershipRepo.GetMembership(communityID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if !community.IsPublic && membership == nil {
		return nil, fmt.Errorf("%w: private community", ErrAccessDenied)
	}

	members, err := s.membershipRepo.ListActiveMembers(communityID)
	if err != nil {
		return nil, err
	}

	recent, err := s.messageRepo.Recent(communityID, 50)
	if err != nil {
		return nil, err
	}

	return &CommunityDetail{
		Community:      community,
		Members:        members,
		RecentMessages: recent,
		UserMembership: membership,
	}, nil
}

// CommunityDetail is the community page payload: the community, its
// active members, the last 50 messages in chronological order and the
// caller's own membership if any.
type CommunityDetail struct {
	Community      *models.Community        `json:"community"`
	Members        []models.CommunityMember `json:"members"`
	RecentMessages []models.Message         `json:"recent_messages"`
	UserMembership *models.CommunityMember  `json:"user_membership"`
}

// ListCommunities returns public communities filtered by location
func (s *MembershipService) ListCommunities(state, city, locality string) ([]models.CommunityResponse, error) {
	communities, err := s.membershipRepo.ListPublicCommunities(state, city, locality)
	if err != nil {
		return nil, err
	}

	responses := make([]models.CommunityResponse, 0, len(communities))
	for _, community := range communities {
		count, err := s.membershipRepo.CountActiveMembers(community.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, models.CommunityResponse{
			Community:   community,
			MemberCount: count,
		})
	}
	return responses, nil
}

func (s *MembershipService) checkCapacity(community *models.Community) error {
	count, err := s.membershipRepo.CountActiveMembers(community.ID)
	if err != nil {
		return err
	}
	if count >= int64(community.MaxMembers) {
		return ErrCapacityExceeded
	}
	return nil
}
