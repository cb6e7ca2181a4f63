package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"energy_chat/internal/models"
	"energy_chat/internal/service"
)

// RoomHandler 處理與聊天房間相關的請求
type RoomHandler struct {
	roomService    *service.RoomService
	messageService *service.MessageService
}

// NewRoomHandler 創建一個新的 RoomHandler 實例
func NewRoomHandler(roomService *service.RoomService, messageService *service.MessageService) *RoomHandler {
	return &RoomHandler{
		roomService:    roomService,
		messageService: messageService,
	}
}

// ListRooms 處理獲取房間列表的請求
func (h *RoomHandler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, h.roomService.List())
}

// CreateRoom 處理創建新房間的請求
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.roomService.Create(input.Name, input.Description)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "房間名稱不可為空"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "創建房間失敗"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "created", "room": room})
}

// DeleteRoom 處理刪除房間的請求
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	roomID, err := parseRoomID(c)
	if err != nil {
		return
	}

	if err := h.roomService.Delete(roomID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "房間不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted", "room_id": roomID})
}

// JoinRoom 處理加入房間的請求
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	roomID, err := parseRoomID(c)
	if err != nil {
		return
	}
	username := c.GetString("username")

	room, err := h.roomService.Join(roomID, username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "房間不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "joined", "room": room})
}

// LeaveRoom 處理離開房間的請求
func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	roomID, err := parseRoomID(c)
	if err != nil {
		return
	}
	username := c.GetString("username")

	if err := h.roomService.Leave(roomID, username); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "房間不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "left"})
}

// GetMessages 處理獲取房間訊息紀錄的請求
func (h *RoomHandler) GetMessages(c *gin.Context) {
	roomID, err := parseRoomID(c)
	if err != nil {
		return
	}

	messages, err := h.messageService.List(roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "房間不存在"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// parseRoomID 解析路徑參數中的房間 ID，失敗時直接回應 400
func parseRoomID(c *gin.Context) (uint, error) {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的房間 ID"})
		return 0, err
	}
	return uint(roomID), nil
}
