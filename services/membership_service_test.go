package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"preparedhub-api/models"
)

func TestCreateCommunity_CreatorBecomesActiveAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := newMembershipService(db)
	creator := createTestUser(t, db, "creator")

	community := createTestCommunity(t, svc, creator.ID, 10)

	var member models.CommunityMember
	err := db.Where("community_id = ? AND user_id = ?", community.ID, creator.ID).First(&member).Error
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, member.Role)
	assert.Equal(t, models.StatusActive, member.Status)
}

func TestCreateCommunity_RequiresNameStateCity(t *testing.T) {
	db := setupTestDB(t)
	svc := newMembershipService(db)
	creator := createTestUser(t, db, "creator")

	_, err := svc.CreateCommunity(creator.ID, CreateCommunityParams{Name: "No location"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestJoin_CreatesActiveMemberRow(t *testing.T) {
	db := setupTestDB(t)
	svc := newMembershipService(db)
	creator := createTestUser(t, db, "creator")
	joiner := createTestUser(t, db, "joiner")
	community := createTestCommunity(t, svc, creator.ID, 10)

	member, err := svc.Join(joiner.ID, community.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, member.Role)
	assert.Equal(t, models.StatusActive, member.Status)
}

func TestJoin_UnknownCommunity(t *testing.T) {
	db := setupTestDB(t)
	svc := newMembershipService(db)
	joiner := createTestUser(t, db, "joiner")

	_, err := svc.Join(joiner.ID, "no-such-community")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJoin_ActiveMemberRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newMembershipService(db)
	creator := createTestUser(t, db, "creator")
	joiner := createTestUser(t, db, "joiner")
	community := createTestCommunity(t, svc, creator.ID, 10)

	_, err := svc.Join(joiner.ID, community.ID)
	require.NoError(t, err)

	_, err = svc.Join(joiner.ID, community.ID)
	assert.ErrorIs(t, err, ErrAlreadyMember)
}

func TestJoin_CapacityBoundary(t *testing.T) {
	db := setupTestDB(t)
	svc := newMembershipService(db)
	creator := createTestUser(t, db, "creator")
	// Capacity 2: the creator occupies one slot
	community := createTestCommunity(t, svc, creator.ID, 2)

	second := createTestUser(t, db, "second")
	_, err := svc.Join(second.ID, community.ID)
	require.NoError(t, err, "joining at capacity-1 must succeed")

	third := createTestUser(t, db, "third")
	_, err = svc.Join(third.ID, community.ID)
	assert.ErrorIs(t, err, ErrCapacityExceeded, "joining at capacity must fail")
}

func TestJoin_RejoinReusesRow(t *testing.T) {
	db := setupTestDB(t)
	svc := newMembershipService(db)
	creator := createTestUser(t, db, "creator")
	joiner := createTestUser(t, db, "joiner")
	community := createTestCommunity(t, svc, creator.ID, 10)

	first, err := svc.Join(joiner.ID, community.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Leave(joiner.ID, community.ID))

	rejoined, err := svc.Join(joiner.ID, community.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, rejoined.ID, "rejoin must reactivate the existing row")
	assert.Equal(t, models.StatusActive, rejoined.Status)

	var count int64
	db.Model(&models.CommunityMember{}).
		Where("community_id = ? AND user_id = ?", community.ID, joiner.ID).
		Count(&count)
	assert.Equal(t, int64(1), count, "only one membership row per (community, user)")
}

func TestJoin_RejoinRechecksCapacity(t *testing.T) {
	db := setupTestDB(t)
	svc := newMembershipService(db)
	creator := createTestUser(t, db, "creator")
	community := createTestCommunity(t, svc, creator.ID, 2)

	early := createTestUser(t, db, "early")
	_, err := svc.Join(early.ID, community.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Leave(early.ID, community.ID))

	// A new member takes the freed slot
	late := createTestUser(t, db, "late")
	_, err = svc.Join(late.ID, community.ID)
	require.NoError(t, err)

	// The community is full again; the earlier member cannot slip back in
	_, err = svc.Join(early.ID, community.ID)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestJoin_BannedMemberRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newMembershipService(db)
	creator := createTestUser(t, db, "creator")
	banned := createTestUser(t, db, "banned")
	community := createTestCommunity(t, svc, creator.ID, 10)

	_, err := svc.Join(banned.ID, community.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.CommunityMember{}).
		Where("community_id = ? AND user_id = ?", community.ID, banned.ID).
		Update("status", models.StatusBanned).Error)

	_, err = svc.Join(banned.ID, community.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestLeave_NotAMember(t *testing.T) {
	db := setupTestDB(t)
	svc := newMembershipService(db)
	creator := createTestUser(t, db, "creator")
	outsider := createTestUser(t, db, "outsider")
	community := createTestCommunity(t, svc, creator.ID, 10)

	assert.ErrorIs(t, svc.Leave(outsider.ID, community.ID), ErrNotAMember)
}

func TestLeave_InactiveMemberIsNotAMember(t *testing.T) {
	db := setupTestDB(t)
	svc := newMembershipService(db)
	creator := createTestUser(t, db, "creator")
	joiner := createTestUser(t, db, "joiner")
	community := createTestCommunity(t, svc, creator.ID, 10)

	_, err := svc.Join(joiner.ID, community.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Leave(joiner.ID, community.ID))

	assert.ErrorIs(t, svc.Leave(joiner.ID, community.ID), ErrNotAMember)
}

func TestLeave_CreatorCannotLeave(t *testing.T) {
	db := setupTestDB(t)
	svc := newMembershipService(db)
	creator := createTestUser(t, db, "creator")
	community := createTestCommunity(t, svc, creator.ID, 10)

	assert.ErrorIs(t, svc.Leave(creator.ID, community.ID), ErrForbiddenOperation)
}

func TestAuthorize_RoleChecks(t *testing.T) {
	db := setupTestDB(t)
	svc := newMembershipService(db)
	creator := createTestUser(t, db, "creator")
	member := createTestUser(t, db, "member")
	community := createTestCommunity(t, svc, creator.ID, 10)

	_, err := svc.Join(member.ID, community.ID)
	require.NoError(t, err)

	// Any role
	_, err = svc.Authorize(member.ID, community.ID)
	assert.NoError(t, err)

	// Member lacks moderation roles
	_, err = svc.Authorize(member.ID, community.ID, models.RoleAdmin, models.RoleModerator)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// The creator is an admin
	_, err = svc.Authorize(creator.ID, community.ID, models.RoleAdmin, models.RoleModerator)
	assert.NoError(t, err)

	// Inactive membership fails even without role requirements
	require.NoError(t, svc.Leave(member.ID, community.ID))
	_, err = svc.Authorize(member.ID, community.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetCommunity_PrivateRequiresMembership(t *testing.T) {
	db := setupTestDB(t)
	svc := newMembershipService(db)
	creator := createTestUser(t, db, "creator")
	outsider := createTestUser(t, db, "outsider")

	community, err := svc.CreateCommunity(creator.ID, CreateCommunityParams{
		Name:     "Closed Group",
		State:    "Kerala",
		City:     "Kochi",
		IsPublic: false,
	})
	require.NoError(t, err)

	_, err = svc.GetCommunity(outsider.ID, community.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	detail, err := svc.GetCommunity(creator.ID, community.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Members, 1)
	require.NotNil(t, detail.UserMembership)
	assert.Equal(t, models.RoleAdmin, detail.UserMembership.Role)
}

func TestDeleteCommunity_CascadesOwnedChildren(t *testing.T) {
	db := setupTestDB(t)
	svc := newMembershipService(db)
	msgSvc := newMessageService(db)
	creator := createTestUser(t, db, "creator")
	community := createTestCommunity(t, svc, creator.ID, 10)

	_, err := msgSvc.Send(creator.ID, community.ID, SendMessageParams{Content: "hello"})
	require.NoError(t, err)

	alert := createTestAlert(t, db, &models.Alert{CommunityID: &community.ID})

	outsider := createTestUser(t, db, "outsider")
	assert.ErrorIs(t, svc.DeleteCommunity(outsider.ID, community.ID), ErrForbiddenOperation)

	require.NoError(t, svc.DeleteCommunity(creator.ID, community.ID))

	var memberCount, messageCount int64
	db.Model(&models.CommunityMember{}).Where("community_id = ?", community.ID).Count(&memberCount)
	db.Model(&models.Message{}).Where("community_id = ?", community.ID).Count(&messageCount)
	assert.Zero(t, memberCount)
	assert.Zero(t, messageCount)

	// Alerts are weak references and survive
	var survivor models.Alert
	assert.NoError(t, db.First(&survivor, "id = ?", alert.ID).Error)
}
