package service

import (
	"energy_chat/internal/models"
	"energy_chat/internal/repository"
)

// MessageService 處理訊息的發送與查詢
type MessageService struct {
	messages    *repository.MessageLog
	broadcaster *Broadcaster
	moderator   *ModeratorGateway
}

func NewMessageService(messages *repository.MessageLog, broadcaster *Broadcaster, moderator *ModeratorGateway) *MessageService {
	return &MessageService{
		messages:    messages,
		broadcaster: broadcaster,
		moderator:   moderator,
	}
}

// Send 發送一條用戶訊息：追加到紀錄、廣播給訂閱者、再交給審核員評估
// 追加與廣播是同步完成的，審核員的評估不會拖慢或影響這條訊息
func (s *MessageService) Send(roomID uint, username, content string) (*models.Message, error) {
	msg, err := s.messages.Append(roomID, username, content, models.MessageTypeUser)
	if err != nil {
		return nil, err
	}

	s.broadcaster.Publish(msg)
	s.moderator.Offer(msg)

	return msg, nil
}

// List 依追加順序回傳房間的完整訊息紀錄
func (s *MessageService) List(roomID uint) ([]*models.Message, error) {
	return s.messages.List(roomID)
}
