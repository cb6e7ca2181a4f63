package service

import (
	"testing"
	"time"

	"energy_chat/internal/models"

	"github.com/stretchr/testify/assert"
)

func testMessage(roomID uint) *models.Message {
	return &models.Message{
		ID:        "msg-1",
		RoomID:    roomID,
		Author:    "alice",
		Content:   "hello",
		Timestamp: time.Now(),
		Type:      models.MessageTypeUser,
	}
}

// 沒有任何訂閱者時 Publish 不應該出錯或阻塞
func TestPublishNoSubscribers(t *testing.T) {
	sessions := NewSessionManager()
	broadcaster := NewBroadcaster(sessions)

	broadcaster.Publish(testMessage(1))
}

// 廣播只會送到訂閱該房間的連線，且每個連線恰好收到一次
func TestPublishScopedToRoom(t *testing.T) {
	sessions := NewSessionManager()
	broadcaster := NewBroadcaster(sessions)

	alice := fakeClient("alice", 256)
	bob := fakeClient("bob", 256)
	carol := fakeClient("carol", 256)
	addFakeSession(sessions, alice, 1)
	addFakeSession(sessions, bob, 2)
	addFakeSession(sessions, carol, 1)

	broadcaster.Publish(testMessage(1))

	assert.Len(t, alice.SendChan, 1)
	assert.Len(t, carol.SendChan, 1)
	assert.Empty(t, bob.SendChan)

	envelope := <-alice.SendChan
	assert.Equal(t, "message", envelope.Type)
	assert.Equal(t, uint(1), envelope.RoomID)
	assert.Equal(t, "msg-1", envelope.Message.ID)
}

// 已關閉的連線會被跳過，不影響其他訂閱者
func TestPublishSkipsClosedSession(t *testing.T) {
	sessions := NewSessionManager()
	broadcaster := NewBroadcaster(sessions)

	alice := fakeClient("alice", 256)
	bob := fakeClient("bob", 256)
	addFakeSession(sessions, alice, 1)
	addFakeSession(sessions, bob, 1)
	close(bob.done)

	broadcaster.Publish(testMessage(1))

	assert.Len(t, alice.SendChan, 1)
	assert.Empty(t, bob.SendChan)
}

// 發送隊列滿的連線只會被略過，Publish 不會阻塞
func TestPublishDropsWhenBufferFull(t *testing.T) {
	sessions := NewSessionManager()
	broadcaster := NewBroadcaster(sessions)

	full := fakeClient("alice", 1)
	full.SendChan <- models.NewMessageEnvelope(testMessage(1))
	addFakeSession(sessions, full, 1)

	done := make(chan struct{})
	go func() {
		broadcaster.Publish(testMessage(1))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full send buffer")
	}
	assert.Len(t, full.SendChan, 1)
}
