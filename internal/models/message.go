package models

import (
	"time"
)

// MessageType 定義訊息類型
type MessageType string

const (
	MessageTypeUser MessageType = "user" // 用戶發送的訊息
	MessageTypeAI   MessageType = "ai"   // AI 審核員回覆的訊息
)

// Message 代表房間內的一條聊天訊息，追加後不可變更
type Message struct {
	ID        string      `json:"id"` // UUID
	RoomID    uint        `json:"room_id"`
	Author    string      `json:"author"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	Type      MessageType `json:"type"`
	Seq       uint64      `json:"-"` // 房間內的追加序號，時間戳相同時以此決定順序
}

// Envelope 是透過 WebSocket 推送給客戶端的訊息封裝
type Envelope struct {
	Type    string   `json:"type"` // 目前僅有 "message"
	RoomID  uint     `json:"room_id"`
	Message *Message `json:"message"`
}

// NewMessageEnvelope 建立一個訊息推送封裝
func NewMessageEnvelope(msg *Message) *Envelope {
	return &Envelope{
		Type:    "message",
		RoomID:  msg.RoomID,
		Message: msg,
	}
}
