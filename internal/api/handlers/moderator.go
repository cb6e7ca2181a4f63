package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"energy_chat/internal/models"
	"energy_chat/internal/service"
)

// ModeratorHandler 提供外部工作流使用的兩個端點：
// 拉取房間對話上下文，以及把產生的 AI 回覆送回來
type ModeratorHandler struct {
	moderator   *service.ModeratorGateway
	roomService *service.RoomService
}

// NewModeratorHandler 創建一個新的 ModeratorHandler 實例
func NewModeratorHandler(moderator *service.ModeratorGateway, roomService *service.RoomService) *ModeratorHandler {
	return &ModeratorHandler{
		moderator:   moderator,
		roomService: roomService,
	}
}

// GetContext 回傳房間最近的對話紀錄，供外部工作流產生回覆時使用
func (h *ModeratorHandler) GetContext(c *gin.Context) {
	roomID, err := parseRoomID(c)
	if err != nil {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	room, err := h.roomService.Get(roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "房間不存在"})
		return
	}

	messages, err := h.moderator.Context(roomID, limit)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "房間不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room_id":        roomID,
		"room_name":      room.Name,
		"messages":       messages,
		"total_messages": len(messages),
	})
}

// InjectAIMessage 是外部工作流回傳 AI 回覆的 webhook 端點
// 回覆會走與一般訊息相同的追加與廣播路徑
func (h *ModeratorHandler) InjectAIMessage(c *gin.Context) {
	var input struct {
		RoomID  uint   `json:"room_id" binding:"required"`
		Content string `json:"content" binding:"required"`
		Author  string `json:"author"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.moderator.InjectReply(input.RoomID, input.Author, input.Content)
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
