package models

import (
	"time"
)

// Room 表示一個聊天房間
// 房間與其成員只存在於記憶體中，刪除房間時會一併清除其訊息紀錄
type Room struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Users       []string  `json:"users"` // 成員用戶名列表
	CreatedAt   time.Time `json:"created_at"`
}

// HasUser 檢查用戶是否為房間成員
func (r *Room) HasUser(username string) bool {
	for _, u := range r.Users {
		if u == username {
			return true
		}
	}
	return false
}
