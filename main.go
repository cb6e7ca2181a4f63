package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"energy_chat/internal/api"
	"energy_chat/internal/models"
	"energy_chat/internal/repository"
	"energy_chat/internal/service"
	"energy_chat/internal/storage"
	"energy_chat/pkg/config"
)

func main() {
	// 載入應用程式配置
	// 從配置文件中讀取設置，如數據庫連接信息和服務器地址等
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化資料庫連接
	// 用戶帳號保存在 PostgreSQL，房間與訊息保存在記憶體中
	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	// 確保在程序結束時關閉數據庫連接
	defer db.Close()

	// 自動遷移資料庫結構
	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 初始化 repositories
	repos := repository.NewRepositories(db)

	// 設定外部 AI 回應者
	// 沒有配置 webhook 時審核員不會轉發任何訊息
	var responder service.Responder
	if cfg.Moderator.WebhookURL != "" {
		responder = service.NewWebhookResponder(cfg.Moderator.WebhookURL, cfg.Moderator.Timeout())
	} else {
		log.Println("moderator webhook not configured, AI responses disabled")
	}

	// 初始化 services
	services := service.NewServices(repos, responder, cfg.Moderator)

	// 設置 Gin 路由
	r := gin.Default()
	api.SetupRoutes(r, services)

	// 啟動伺服器
	// 使用配置中指定的地址啟動 HTTP 服務器
	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
