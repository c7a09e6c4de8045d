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

const DefaultMessagePageSize = 50

// MessageService mediates message send, retrieval and moderation. Every
// operation is gated by an active membership in the target community.
type MessageService struct {
	messageRepo *repositories.MessageRepository
	membership  *MembershipService
}

func NewMessageService(messageRepo *repositories.MessageRepository, membership *MembershipService) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		membership:  membership,
	}
}

type SendMessageParams struct {
	Content     string
	MessageType models.MessageType
	IsEmergency bool
}

// Send persists a new message with a server-assigned timestamp. Any
// active member may send; the content must be non-empty. Sending is not
// idempotent: a retry creates a duplicate message.
func (s *MessageService) Send(userID, communityID string, params SendMessageParams) (*models.Message, error) {
	if _, err := s.membership.Authorize(userID, communityID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(params.Content) == "" {
		return nil, fmt.Errorf("%w: message content is required", ErrValidation)
	}

	messageType := params.MessageType
	if messageType == "" {
		messageType = models.MessageText
	}
	if !messageType.Valid() {
		return nil, fmt.Errorf("%w: unknown message type %q", ErrValidation, messageType)
	}

	message := &models.Message{
		ID:          uuid.New().String(),
		CommunityID: communityID,
		SenderID:    userID,
		Content:     params.Content,
		MessageType: messageType,
		IsEmergency: params.IsEmergency,
		CreatedAt:   time.Now(),
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}
	return message, nil
}

// List returns one page of a community's messages for an active member.
// Pages are windows over the newest-first order; each page is delivered
// oldest-first so clients can render it chronologically.
func (s *MessageService) List(userID, communityID string, page, perPage int) (*models.MessagePage, error) {
	if _, err := s.membership.Authorize(userID, communityID); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultMessagePageSize
	}

	messages, total, err := s.messageRepo.Page(communityID, page, perPage)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))

	return &models.MessagePage{
		Messages: messages,
		Pagination: models.Pagination{
			Page:    page,
			PerPage: perPage,
			Total:   total,
			Pages:   pages,
			HasNext: page < pages,
			HasPrev: page > 1,
		},
	}, nil
}

// TogglePin flips a message's pin flag. Only admins and moderators of
// the message's community may pin and unpin.
func (s *MessageService) TogglePin(actorID, messageID string) (*models.Message, error) {
	message, err := s.messageRepo.FindByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: message", ErrNotFound)
		}
		return nil, err
	}

	if _, err := s.membership.Authorize(actorID, message.CommunityID, models.RoleAdmin, models.RoleModerator); err != nil {
		return nil, err
	}

	if err := s.messageRepo.SetPinned(message, !message.IsPinned); err != nil {
		return nil, err
	}
	return message, nil
}
