package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"preparedhub-api/models"
	"preparedhub-api/services"
)

type CommunityController struct {
	db         *gorm.DB
	membership *services.MembershipService
}

func NewCommunityController(db *gorm.DB, membership *services.MembershipService) *CommunityController {
	return &CommunityController{
		db:         db,
		membership: membership,
	}
}

// GetCommunities lists public communities near the caller. Explicit
// query filters win over the caller's profile location.
func (cc *CommunityController) GetCommunities(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	cc.db.First(&user, "id = ?", userID)

	state := c.DefaultQuery("state", user.State)
	city := c.DefaultQuery("city", user.City)
	locality := c.Query("locality")

	communities, err := cc.membership.ListCommunities(state, city, locality)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"communities": communities,
		"count":       len(communities),
	})
}

type CreateCommunityRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	State       string `json:"state" binding:"required"`
	City        string `json:"city" binding:"required"`
	Locality    string `json:"locality"`
	IsPublic    *bool  `json:"is_public"`
	MaxMembers  int    `json:"max_members"`
}

func (cc *CommunityController) CreateCommunity(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	community, err := cc.membership.CreateCommunity(userID, services.CreateCommunityParams{
		Name:        req.Name,
		Description: req.Description,
		State:       req.State,
		City:        req.City,
		Locality:    req.Locality,
		IsPublic:    isPublic,
		MaxMembers:  req.MaxMembers,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Community created successfully",
		"community": community,
	})
}

func (cc *CommunityController) GetCommunity(c *gin.Context) {
	userID := c.GetString("user_id")
	communityID := c.Param("id")

	detail, err := cc.membership.GetCommunity(userID, communityID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (cc *CommunityController) DeleteCommunity(c *gin.Context) {
	userID := c.GetString("user_id")
	communityID := c.Param("id")

	if err := cc.membership.DeleteCommunity(userID, communityID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Community deleted successfully"})
}

func (cc *CommunityController) JoinCommunity(c *gin.Context) {
	userID := c.GetString("user_id")
	communityID := c.Param("id")

	member, err := cc.membership.Join(userID, communityID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Successfully joined community",
		"membership": member,
	})
}

func (cc *CommunityController) LeaveCommunity(c *gin.Context) {
	userID := c.GetString("user_id")
	communityID := c.Param("id")

	if err := cc.membership.Leave(userID, communityID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully left community"})
}
