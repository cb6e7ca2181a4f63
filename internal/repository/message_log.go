package repository

import (
	"strings"
	"sync"
	"time"

	"energy_chat/internal/models"

	"github.com/google/uuid"
)

// MessageLog 保存每個房間的訊息紀錄，只允許追加
// 同一房間內的追加操作會被序列化，確保訊息順序不變
type MessageLog struct {
	mu   sync.RWMutex
	logs map[uint][]*models.Message
	seqs map[uint]uint64
}

func NewMessageLog() *MessageLog {
	return &MessageLog{
		logs: make(map[uint][]*models.Message),
		seqs: make(map[uint]uint64),
	}
}

// Create 為新房間建立空的訊息紀錄，由 RoomService 在建立房間時呼叫
func (l *MessageLog) Create(roomID uint) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.logs[roomID]; !ok {
		l.logs[roomID] = []*models.Message{}
	}
}

// Append 在房間紀錄尾端追加一條新訊息
// 房間在追加當下必須存在，訊息內容不可為空白
func (l *MessageLog) Append(roomID uint, author, content string, msgType models.MessageType) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.ErrInvalidInput
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	messages, ok := l.logs[roomID]
	if !ok {
		return nil, models.ErrRoomNotFound
	}

	l.seqs[roomID]++
	msg := &models.Message{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		Author:    author,
		Content:   content,
		Timestamp: time.Now(),
		Type:      msgType,
		Seq:       l.seqs[roomID],
	}
	l.logs[roomID] = append(messages, msg)

	return msg, nil
}

// List 依追加順序回傳房間的完整訊息紀錄
func (l *MessageLog) List(roomID uint) ([]*models.Message, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	messages, ok := l.logs[roomID]
	if !ok {
		return nil, models.ErrRoomNotFound
	}
	return copyMessages(messages), nil
}

// Recent 回傳房間最近的 limit 條訊息，作為外部回應者的對話上下文
func (l *MessageLog) Recent(roomID uint, limit int) ([]*models.Message, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	messages, ok := l.logs[roomID]
	if !ok {
		return nil, models.ErrRoomNotFound
	}
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return copyMessages(messages), nil
}

// Count 回傳房間的訊息總數
func (l *MessageLog) Count(roomID uint) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	messages, ok := l.logs[roomID]
	if !ok {
		return 0, models.ErrRoomNotFound
	}
	return len(messages), nil
}

// Purge 清除房間的所有訊息，之後的 Append/List 都會回傳房間不存在
func (l *MessageLog) Purge(roomID uint) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.logs, roomID)
	delete(l.seqs, roomID)
}

func copyMessages(messages []*models.Message) []*models.Message {
	out := make([]*models.Message, len(messages))
	copy(out, messages)
	return out
}
