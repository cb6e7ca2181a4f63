package service

import (
	"energy_chat/internal/repository"
	"energy_chat/pkg/config"
)

type Services struct {
	User      *UserService
	Room      *RoomService
	Message   *MessageService
	Sessions  *SessionManager
	Moderator *ModeratorGateway
}

// NewServices 組裝所有服務
// responder 可以是 nil，此時審核員不會轉發任何訊息
func NewServices(repos *repository.Repositories, responder Responder, moderatorCfg config.ModeratorConfig) *Services {
	sessions := NewSessionManager()
	broadcaster := NewBroadcaster(sessions)
	moderator := NewModeratorGateway(repos.Messages, broadcaster, responder, moderatorCfg)

	return &Services{
		User:      NewUserService(repos.User),
		Room:      NewRoomService(repos.Rooms, repos.Messages, sessions),
		Message:   NewMessageService(repos.Messages, broadcaster, moderator),
		Sessions:  sessions,
		Moderator: moderator,
	}
}
