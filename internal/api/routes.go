package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"energy_chat/internal/api/handlers"
	"energy_chat/internal/middleware"
	"energy_chat/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services) {
	// 初始化 handlers
	authHandler := handlers.NewAuthHandler(services.User)
	roomHandler := handlers.NewRoomHandler(services.Room, services.Message)
	messageHandler := handlers.NewMessageHandler(services.Message)
	moderatorHandler := handlers.NewModeratorHandler(services.Moderator, services.Room)
	wsHandler := handlers.NewWebSocketHandler(services.Sessions, services.Room)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 公開路由
	{
		// 用戶認證相關
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		// 外部工作流使用的端點：拉取上下文、回傳 AI 回覆
		api.GET("/moderator/context/:id", moderatorHandler.GetContext)
		api.POST("/moderator/ai-message", moderatorHandler.InjectAIMessage)
	}

	// 需要驗證的路由
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	{
		// 聊天室相關
		rooms := authorized.Group("/rooms")
		{
			// 基本操作
			rooms.GET("", roomHandler.ListRooms)         // 獲取房間列表
			rooms.POST("", roomHandler.CreateRoom)       // 創建房間
			rooms.DELETE("/:id", roomHandler.DeleteRoom) // 刪除房間

			// 房間參與
			rooms.POST("/:id/join", roomHandler.JoinRoom)   // 加入房間
			rooms.POST("/:id/leave", roomHandler.LeaveRoom) // 離開房間

			// 訊息紀錄
			rooms.GET("/:id/messages", roomHandler.GetMessages) // 獲取房間訊息
		}

		// 發送訊息
		authorized.POST("/messages", messageHandler.SendMessage)

		// WebSocket 連接點，每個用戶一條連線
		authorized.GET("/ws", wsHandler.HandleWebSocket)
	}
}
