package repository

import (
	"fmt"
	"testing"

	"energy_chat/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageLogAppendAndList(t *testing.T) {
	log := NewMessageLog()
	log.Create(1)

	for i := 0; i < 5; i++ {
		_, err := log.Append(1, "alice", fmt.Sprintf("message %d", i), models.MessageTypeUser)
		require.NoError(t, err)
	}

	messages, err := log.List(1)
	require.NoError(t, err)
	require.Len(t, messages, 5)

	// 依追加順序排列，序號遞增且沒有空洞或重複
	seen := make(map[string]bool)
	for i, msg := range messages {
		assert.Equal(t, fmt.Sprintf("message %d", i), msg.Content)
		assert.Equal(t, uint64(i+1), msg.Seq)
		assert.False(t, seen[msg.ID], "duplicate message id %s", msg.ID)
		seen[msg.ID] = true
		if i > 0 {
			assert.False(t, msg.Timestamp.Before(messages[i-1].Timestamp),
				"timestamps must be non-decreasing")
		}
	}
}

func TestMessageLogAppendUnknownRoom(t *testing.T) {
	log := NewMessageLog()

	_, err := log.Append(7, "alice", "hello", models.MessageTypeUser)
	assert.ErrorIs(t, err, models.ErrRoomNotFound)
}

func TestMessageLogAppendBlankContent(t *testing.T) {
	log := NewMessageLog()
	log.Create(1)

	_, err := log.Append(1, "alice", "   ", models.MessageTypeUser)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	messages, err := log.List(1)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestMessageLogPurge(t *testing.T) {
	log := NewMessageLog()
	log.Create(1)
	_, err := log.Append(1, "alice", "hello", models.MessageTypeUser)
	require.NoError(t, err)

	log.Purge(1)

	_, err = log.List(1)
	assert.ErrorIs(t, err, models.ErrRoomNotFound)
	_, err = log.Append(1, "alice", "hello again", models.MessageTypeUser)
	assert.ErrorIs(t, err, models.ErrRoomNotFound)
}

func TestMessageLogRecent(t *testing.T) {
	log := NewMessageLog()
	log.Create(1)
	for i := 0; i < 12; i++ {
		_, err := log.Append(1, "alice", fmt.Sprintf("message %d", i), models.MessageTypeUser)
		require.NoError(t, err)
	}

	recent, err := log.Recent(1, 10)
	require.NoError(t, err)
	require.Len(t, recent, 10)
	assert.Equal(t, "message 2", recent[0].Content)
	assert.Equal(t, "message 11", recent[9].Content)

	// limit 0 表示全部
	all, err := log.Recent(1, 0)
	require.NoError(t, err)
	assert.Len(t, all, 12)
}

// 並發追加時不可遺失訊息，序號也不可重複
func TestMessageLogConcurrentAppend(t *testing.T) {
	log := NewMessageLog()
	log.Create(1)

	const writers = 8
	const perWriter = 25

	done := make(chan struct{})
	for w := 0; w < writers; w++ {
		go func(w int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < perWriter; i++ {
				_, err := log.Append(1, fmt.Sprintf("user%d", w), "hello", models.MessageTypeUser)
				assert.NoError(t, err)
			}
		}(w)
	}
	for w := 0; w < writers; w++ {
		<-done
	}

	messages, err := log.List(1)
	require.NoError(t, err)
	require.Len(t, messages, writers*perWriter)
	for i, msg := range messages {
		assert.Equal(t, uint64(i+1), msg.Seq)
	}
}
