package service

import (
	"energy_chat/internal/models"
	"energy_chat/internal/repository"
)

// RoomService 管理房間的生命週期與成員
type RoomService struct {
	rooms    *repository.RoomRegistry
	messages *repository.MessageLog
	sessions *SessionManager
}

func NewRoomService(rooms *repository.RoomRegistry, messages *repository.MessageLog, sessions *SessionManager) *RoomService {
	return &RoomService{
		rooms:    rooms,
		messages: messages,
		sessions: sessions,
	}
}

// Create 建立新房間，同時為它建立空的訊息紀錄
func (s *RoomService) Create(name, description string) (*models.Room, error) {
	room, err := s.rooms.Create(name, description)
	if err != nil {
		return nil, err
	}
	s.messages.Create(room.ID)
	return room, nil
}

// List 依建立順序回傳所有房間
func (s *RoomService) List() []*models.Room {
	return s.rooms.List()
}

// Get 取得指定房間
func (s *RoomService) Get(roomID uint) (*models.Room, error) {
	return s.rooms.Get(roomID)
}

// Delete 刪除房間，連帶清除訊息紀錄並取消所有連線的訂閱
func (s *RoomService) Delete(roomID uint) error {
	if err := s.rooms.Delete(roomID); err != nil {
		return err
	}
	s.messages.Purge(roomID)
	s.sessions.ClearRoom(roomID)
	return nil
}

// Join 把用戶加入房間成員，並把其活躍連線的訂閱切換到這個房間
func (s *RoomService) Join(roomID uint, username string) (*models.Room, error) {
	room, err := s.rooms.Join(roomID, username)
	if err != nil {
		return nil, err
	}
	s.sessions.SetCurrentRoom(username, roomID)
	return room, nil
}

// Leave 把用戶從房間成員移除並取消訂閱
func (s *RoomService) Leave(roomID uint, username string) error {
	if err := s.rooms.Leave(roomID, username); err != nil {
		return err
	}
	s.sessions.ClearCurrentRoom(username, roomID)
	return nil
}
