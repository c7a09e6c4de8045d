package repositories

import (
	"gorm.io/gorm"

	"preparedhub-api/models"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *MessageRepository) FindByID(messageID string) (*models.Message, error) {
	var message models.Message
	if err := r.db.First(&message, "id = ?", messageID).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// Page returns one page of a community's messages plus the total count.
// The window is computed over the newest-first order, then the page is
// reversed so callers receive it oldest-first. Clients render the page
// top-to-bottom chronologically while page 1 still holds the latest
// messages.
func (r *MessageRepository) Page(communityID string, page, perPage int) ([]models.Message, int64, error) {
	var total int64
	if err := r.db.Model(&models.Message{}).
		Where("community_id = ?", communityID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage

	var messages []models.Message
	err := r.db.Preload("Sender").
		Where("community_id = ?", communityID).
		Order("created_at DESC").
		Offset(offset).
		Limit(perPage).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	reverseMessages(messages)
	return messages, total, nil
}

// Recent returns the latest n messages of a community in chronological
// order, for the community detail view
func (r *MessageRepository) Recent(communityID string, n int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("Sender").
		Where("community_id = ?", communityID).
		Order("created_at DESC").
		Limit(n).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	reverseMessages(messages)
	return messages, nil
}

// SetPinned persists a pin flag flip
func (r *MessageRepository) SetPinned(message *models.Message, pinned bool) error {
	if err := r.db.Model(message).Update("is_pinned", pinned).Error; err != nil {
		return err
	}
	message.IsPinned = pinned
	return nil
}

func reverseMessages(messages []models.Message) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
