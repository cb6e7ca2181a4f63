package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"energy_chat/internal/models"
	"energy_chat/internal/repository"
	"energy_chat/pkg/config"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// stack 組裝一套完整的服務供測試使用，不經過 HTTP 層
type stack struct {
	msgLog      *repository.MessageLog
	sessions    *SessionManager
	broadcaster *Broadcaster
	moderator   *ModeratorGateway
	roomSvc     *RoomService
	msgSvc      *MessageService
}

func newTestStack(responder Responder) *stack {
	cfg := config.ModeratorConfig{TimeoutSeconds: 1, ContextLimit: 10, AIName: "Jarvis"}

	rooms := repository.NewRoomRegistry()
	msgLog := repository.NewMessageLog()
	sessions := NewSessionManager()
	broadcaster := NewBroadcaster(sessions)
	moderator := NewModeratorGateway(msgLog, broadcaster, responder, cfg)

	return &stack{
		msgLog:      msgLog,
		sessions:    sessions,
		broadcaster: broadcaster,
		moderator:   moderator,
		roomSvc:     NewRoomService(rooms, msgLog, sessions),
		msgSvc:      NewMessageService(msgLog, broadcaster, moderator),
	}
}

// newChatServer 啟動一個測試用的 WebSocket 端點
// 行為與正式的 ws handler 相同：斷線後把用戶從訂閱中的房間移除
func newChatServer(t *testing.T, st *stack) *httptest.Server {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username := r.URL.Query().Get("username")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		if roomID := st.sessions.HandleConnection(conn, username); roomID != 0 {
			st.roomSvc.Leave(roomID, username)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dialUser(t *testing.T, srv *httptest.Server, st *stack, username string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?username=" + username
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	waitOnline(t, st.sessions, username)
	return conn
}

// waitOnline 等待伺服器端完成連線登記
func waitOnline(t *testing.T, m *SessionManager, username string) {
	t.Helper()

	require.Eventually(t, func() bool {
		m.mu.RLock()
		defer m.mu.RUnlock()
		_, ok := m.sessions[username]
		return ok
	}, 2*time.Second, 5*time.Millisecond)
}

func readEnvelope(t *testing.T, conn *websocket.Conn) *models.Envelope {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var envelope models.Envelope
	require.NoError(t, conn.ReadJSON(&envelope))
	return &envelope
}

// assertNoEnvelope 確認短時間內沒有任何推送
func assertNoEnvelope(t *testing.T, conn *websocket.Conn) {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var envelope models.Envelope
	require.Error(t, conn.ReadJSON(&envelope))
}

// fakeClient 建立一個不帶實際連線的客戶端，只用於廣播邏輯測試
func fakeClient(username string, buffer int) *Client {
	return &Client{
		Username: username,
		SendChan: make(chan *models.Envelope, buffer),
		done:     make(chan struct{}),
	}
}

// addFakeSession 直接登記一個假的連線並訂閱指定房間
func addFakeSession(m *SessionManager, client *Client, roomID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[client.Username] = &session{client: client, roomID: roomID}
}
