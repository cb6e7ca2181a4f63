package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"energy_chat/internal/models"
	"energy_chat/internal/service"
)

// MessageHandler 處理發送訊息的請求
type MessageHandler struct {
	messageService *service.MessageService
}

// NewMessageHandler 創建一個新的 MessageHandler 實例
func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// SendMessage 發送一條訊息到指定房間
// 訊息會被追加到紀錄、即時廣播，並交給 AI 審核員評估是否回覆
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var input struct {
		RoomID  uint   `json:"room_id" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username := c.GetString("username")

	msg, err := h.messageService.Send(input.RoomID, username, input.Content)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "訊息內容不可為空"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "房間不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "sent", "message": msg})
}
