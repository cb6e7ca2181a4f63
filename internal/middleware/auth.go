package middleware

import (
	"net/http"
	"strings"

	"energy_chat/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 是一個 Gin 中間件，用於驗證請求的 JWT token
// WebSocket 握手無法自訂 header，所以也接受 query string 中的 token
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""

		// 從請求頭中獲取 Authorization 字段
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			// 檢查 Authorization 頭的格式
			parts := strings.SplitN(authHeader, " ", 2)
			if !(len(parts) == 2 && parts[0] == "Bearer") {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
				c.Abort()
				return
			}
			token = parts[1]
		} else {
			token = c.Query("token")
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		// 解析 JWT token
		claims, err := utils.ParseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// 將用戶信息設置到上下文中
		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Next() // 繼續處理請求
	}
}
