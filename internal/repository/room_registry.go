package repository

import (
	"strings"
	"sync"
	"time"

	"energy_chat/internal/models"
)

// RoomRegistry 管理所有聊天房間與其成員，全部保存在記憶體中
// 所有操作都必須能在多個連線同時呼叫下安全執行
type RoomRegistry struct {
	mu     sync.RWMutex
	rooms  map[uint]*models.Room
	order  []uint // 依建立順序排列的房間 ID
	nextID uint
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms:  make(map[uint]*models.Room),
		nextID: 1,
	}
}

// Create 建立一個新房間，成員列表為空
func (r *RoomRegistry) Create(name, description string) (*models.Room, error) {
	if strings.TrimSpace(name) == "" {
		return nil, models.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room := &models.Room{
		ID:          r.nextID,
		Name:        name,
		Description: description,
		Users:       []string{},
		CreatedAt:   time.Now(),
	}
	r.rooms[room.ID] = room
	r.order = append(r.order, room.ID)
	r.nextID++

	return copyRoom(room), nil
}

// List 依建立順序回傳所有房間
func (r *RoomRegistry) List() []*models.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]*models.Room, 0, len(r.order))
	for _, id := range r.order {
		if room, ok := r.rooms[id]; ok {
			rooms = append(rooms, copyRoom(room))
		}
	}
	return rooms
}

// Get 取得指定房間的快照
func (r *RoomRegistry) Get(id uint) (*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, models.ErrRoomNotFound
	}
	return copyRoom(room), nil
}

// Delete 移除房間及其成員資訊
// 訊息紀錄的清除由 service 層一併處理
func (r *RoomRegistry) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[id]; !ok {
		return models.ErrRoomNotFound
	}
	delete(r.rooms, id)
	for i, roomID := range r.order {
		if roomID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Join 將用戶加入房間成員，重複加入不會產生重複項
func (r *RoomRegistry) Join(id uint, username string) (*models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, models.ErrRoomNotFound
	}
	if !room.HasUser(username) {
		room.Users = append(room.Users, username)
	}
	return copyRoom(room), nil
}

// Leave 將用戶從房間成員移除，不是成員時視為成功
func (r *RoomRegistry) Leave(id uint, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[id]
	if !ok {
		return models.ErrRoomNotFound
	}
	for i, u := range room.Users {
		if u == username {
			room.Users = append(room.Users[:i], room.Users[i+1:]...)
			break
		}
	}
	return nil
}

// copyRoom 回傳房間的複本，避免呼叫端與內部狀態共用 slice
func copyRoom(room *models.Room) *models.Room {
	users := make([]string, len(room.Users))
	copy(users, room.Users)
	c := *room
	c.Users = users
	return &c
}
