package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"preparedhub-api/models"
	"preparedhub-api/services"
)

type MessageController struct {
	messages *services.MessageService
}

func NewMessageController(messages *services.MessageService) *MessageController {
	return &MessageController{messages: messages}
}

// GetMessages returns one page of a community's messages. Each page is
// chronological even though pages are numbered newest-first.
func (mc *MessageController) GetMessages(c *gin.Context) {
	userID := c.GetString("user_id")
	communityID := c.Param("id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))

	result, err := mc.messages.List(userID, communityID, page, perPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type SendMessageRequest struct {
	Content     string             `json:"content" binding:"required"`
	MessageType models.MessageType `json:"message_type"`
	IsEmergency bool               `json:"is_emergency"`
}

func (mc *MessageController) SendMessage(c *gin.Context) {
	userID := c.GetString("user_id")
	communityID := c.Param("id")

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := mc.messages.Send(userID, communityID, services.SendMessageParams{
		Content:     req.Content,
		MessageType: req.MessageType,
		IsEmergency: req.IsEmergency,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Message sent successfully",
		"message_data": message,
	})
}

// TogglePin flips a message's pin flag (admin/moderator only)
func (mc *MessageController) TogglePin(c *gin.Context) {
	userID := c.GetString("user_id")
	messageID := c.Param("id")

	message, err := mc.messages.TogglePin(userID, messageID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	status := "unpinned"
	if message.IsPinned {
		status = "pinned"
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Message " + status + " successfully",
		"message_data": message,
	})
}
