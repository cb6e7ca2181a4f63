package repository

import "energy_chat/internal/storage"

type Repositories struct {
	User     UserRepository
	Rooms    *RoomRegistry
	Messages *MessageLog
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Rooms:    NewRoomRegistry(),
		Messages: NewMessageLog(),
	}
}
