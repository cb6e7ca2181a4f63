package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"energy_chat/internal/service"
)

// 定義 WebSocket 升級器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 注意：在生產環境中，應該檢查 origin
	},
}

// WebSocketHandler 處理 WebSocket 連接
type WebSocketHandler struct {
	sessions    *service.SessionManager
	roomService *service.RoomService
}

// NewWebSocketHandler 創建一個新的 WebSocketHandler 實例
func NewWebSocketHandler(sessions *service.SessionManager, roomService *service.RoomService) *WebSocketHandler {
	return &WebSocketHandler{
		sessions:    sessions,
		roomService: roomService,
	}
}

// HandleWebSocket 處理 WebSocket 連接請求
// 每個用戶同時只有一條連線，重複連線會取代舊的
// 斷線時自動把用戶從目前訂閱的房間移除，確保成員列表準確
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	username := c.GetString("username")

	// 升級 HTTP 連接為 WebSocket 連接
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "升級WebSocket失敗"})
		return
	}

	// 一直阻塞到連線結束
	roomID := h.sessions.HandleConnection(conn, username)

	if roomID != 0 {
		if err := h.roomService.Leave(roomID, username); err != nil {
			log.Printf("leave room %d on disconnect failed for %s: %v", roomID, username, err)
		}
	}
}
