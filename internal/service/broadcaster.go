package service

import (
	"log"

	"energy_chat/internal/models"
)

// Broadcaster 負責把新追加的訊息推送給訂閱該房間的所有連線
// 傳遞保證是 at-most-once：訊息紀錄才是可靠來源，
// 斷線的客戶端重連後透過查詢歷史紀錄補齊，而不是依賴即時推送
type Broadcaster struct {
	sessions *SessionManager
}

func NewBroadcaster(sessions *SessionManager) *Broadcaster {
	return &Broadcaster{sessions: sessions}
}

// Publish 把訊息推送給房間內所有訂閱中的連線
// 每次呼叫對每個連線最多送出一次；沒有訂閱者時什麼都不做
func (b *Broadcaster) Publish(msg *models.Message) {
	envelope := models.NewMessageEnvelope(msg)

	for _, client := range b.sessions.Subscribers(msg.RoomID) {
		// 連線已經關閉的直接跳過
		select {
		case <-client.done:
			continue
		default:
		}

		select {
		case client.SendChan <- envelope:
			// 訊息成功加入發送隊列
		default:
			// 客戶端發送隊列已滿，放棄這次推送，不重試也不影響其他連線
			log.Printf("dropping message %s for user %s: send buffer full", msg.ID, client.Username)
		}
	}
}
