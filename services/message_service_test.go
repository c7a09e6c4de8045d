package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"preparedhub-api/models"
)

func insertMessage(t *testing.T, db *gorm.DB, communityID, senderID, content string, createdAt time.Time) *models.Message {
	t.Helper()

	message := &models.Message{
		ID:          uuid.New().String(),
		CommunityID: communityID,
		SenderID:    senderID,
		Content:     content,
		MessageType: models.MessageText,
		CreatedAt:   createdAt,
	}
	if err := db.Create(message).Error; err != nil {
		t.Fatalf("failed to insert message: %v", err)
	}
	return message
}

func TestSend_RequiresActiveMembership(t *testing.T) {
	db := setupTestDB(t)
	svc := newMessageService(db)
	membership := newMembershipService(db)
	creator := createTestUser(t, db, "creator")
	outsider := createTestUser(t, db, "outsider")
	community := createTestCommunity(t, membership, creator.ID, 10)

	_, err := svc.Send(outsider.ID, community.ID, SendMessageParams{Content: "hi"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSend_EmptyContentRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newMessageService(db)
	membership := newMembershipService(db)
	creator := createTestUser(t, db, "creator")
	community := createTestCommunity(t, membership, creator.ID, 10)

	_, err := svc.Send(creator.ID, community.ID, SendMessageParams{Content: "   "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSend_DefaultsToTextType(t *testing.T) {
	db := setupTestDB(t)
	svc := newMessageService(db)
	membership := newMembershipService(db)
	creator := createTestUser(t, db, "creator")
	community := createTestCommunity(t, membership, creator.ID, 10)

	message, err := svc.Send(creator.ID, community.ID, SendMessageParams{Content: "stay safe"})
	require.NoError(t, err)
	assert.Equal(t, models.MessageText, message.MessageType)
	assert.False(t, message.CreatedAt.IsZero())

	_, err = svc.Send(creator.ID, community.ID, SendMessageParams{Content: "x", MessageType: "bogus"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestList_PagesNewestFirstButChronologicalWithinPage(t *testing.T) {
	db := setupTestDB(t)
	svc := newMessageService(db)
	membership := newMembershipService(db)
	creator := createTestUser(t, db, "creator")
	community := createTestCommunity(t, membership, creator.ID, 10)

	base := time.Now().Add(-time.Hour)
	m1 := insertMessage(t, db, community.ID, creator.ID, "m1", base)
	m2 := insertMessage(t, db, community.ID, creator.ID, "m2", base.Add(time.Minute))
	m3 := insertMessage(t, db, community.ID, creator.ID, "m3", base.Add(2*time.Minute))

	// Page 1 windows the two newest messages, delivered oldest-first
	page, err := svc.List(creator.ID, community.ID, 1, 2)
	require.NoError(t, err)
	require.Len(t, page.Messages, 2)
	assert.Equal(t, m2.ID, page.Messages[0].ID)
	assert.Equal(t, m3.ID, page.Messages[1].ID)

	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.Pages)
	assert.True(t, page.Pagination.HasNext)
	assert.False(t, page.Pagination.HasPrev)

	// Page 2 holds the remaining oldest message
	page, err = svc.List(creator.ID, community.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page.Messages, 1)
	assert.Equal(t, m1.ID, page.Messages[0].ID)
	assert.False(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)
}

func TestList_DefaultsAndMembershipGate(t *testing.T) {
	db := setupTestDB(t)
	svc := newMessageService(db)
	membership := newMembershipService(db)
	creator := createTestUser(t, db, "creator")
	outsider := createTestUser(t, db, "outsider")
	community := createTestCommunity(t, membership, creator.ID, 10)

	_, err := svc.List(outsider.ID, community.ID, 1, 10)
	assert.ErrorIs(t, err, ErrAccessDenied)

	page, err := svc.List(creator.ID, community.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, DefaultMessagePageSize, page.Pagination.PerPage)
}

func TestTogglePin_RoleGateAndFlip(t *testing.T) {
	db := setupTestDB(t)
	svc := newMessageService(db)
	membership := newMembershipService(db)
	creator := createTestUser(t, db, "creator")
	member := createTestUser(t, db, "member")
	moderator := createTestUser(t, db, "moderator")
	community := createTestCommunity(t, membership, creator.ID, 10)

	_, err := svc.Send(creator.ID, community.ID, SendMessageParams{Content: "important"})
	require.NoError(t, err)
	message := insertMessage(t, db, community.ID, creator.ID, "pin me", time.Now())

	_, err = membership.Join(member.ID, community.ID)
	require.NoError(t, err)
	_, err = membership.Join(moderator.ID, community.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.CommunityMember{}).
		Where("community_id = ? AND user_id = ?", community.ID, moderator.ID).
		Update("role", models.RoleModerator).Error)

	// Plain members cannot pin
	_, err = svc.TogglePin(member.ID, message.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Moderators flip it back and forth
	pinned, err := svc.TogglePin(moderator.ID, message.ID)
	require.NoError(t, err)
	assert.True(t, pinned.IsPinned)

	unpinned, err := svc.TogglePin(moderator.ID, message.ID)
	require.NoError(t, err)
	assert.False(t, unpinned.IsPinned)

	// Admins are equally privileged
	pinned, err = svc.TogglePin(creator.ID, message.ID)
	require.NoError(t, err)
	assert.True(t, pinned.IsPinned)
}

func TestTogglePin_UnknownMessage(t *testing.T) {
	db := setupTestDB(t)
	svc := newMessageService(db)
	createTestUser(t, db, "someone")

	_, err := svc.TogglePin("someone", "no-such-message")
	assert.ErrorIs(t, err, ErrNotFound)
}
