package service

import (
	"log"
	"sync"
	"time"

	"energy_chat/internal/models"

	"github.com/gorilla/websocket"
)

// Client 代表一個 WebSocket 客戶端連接
type Client struct {
	Conn     *websocket.Conn       // WebSocket 連接
	Username string                // 用戶名，一個用戶同時只會有一個連接
	SendChan chan *models.Envelope // 訊息發送通道，用於異步傳送訊息
	done     chan struct{}         // 關閉信號，SendChan 本身永遠不會被 close
	once     sync.Once
}

// shutdown 關閉連接並通知 writePump 結束
// SendChan 不關閉，避免與進行中的廣播發生 panic
func (c *Client) shutdown() {
	c.once.Do(func() {
		close(c.done)
		c.Conn.Close()
	})
}

// session 記錄一個用戶的連線狀態與目前訂閱的房間
type session struct {
	client *Client
	roomID uint // 0 表示未訂閱任何房間
}

// SessionManager 管理所有的 WebSocket 連接
// 每個用戶名最多只有一個活躍連線，重新連線會取代並關閉舊連線
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

// NewSessionManager 創建並初始化新的連線管理器
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*session),
	}
}

// HandleConnection 處理新的 WebSocket 連接請求
// 會一直阻塞到連線結束，回傳斷線當下訂閱的房間 ID（0 表示沒有）
func (m *SessionManager) HandleConnection(conn *websocket.Conn, username string) uint {
	client := &Client{
		Conn:     conn,
		Username: username,
		SendChan: make(chan *models.Envelope, 256), // 設置緩衝大小為 256 的訊息通道
		done:     make(chan struct{}),
	}

	m.bind(client)

	go m.writePump(client)
	m.readPump(client)

	roomID := m.unbind(client)
	client.shutdown()
	return roomID
}

// bind 登記新連線，同一用戶的舊連線會被關閉取代
func (m *SessionManager) bind(client *Client) {
	m.mu.Lock()
	old := m.sessions[client.Username]
	m.sessions[client.Username] = &session{client: client}
	m.mu.Unlock()

	if old != nil {
		old.client.shutdown()
	}
}

// unbind 移除連線登記
// 如果該用戶已經被新連線取代，什麼都不做，避免把新連線的狀態清掉
func (m *SessionManager) unbind(client *Client) uint {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[client.Username]
	if !ok || s.client != client {
		return 0
	}
	delete(m.sessions, client.Username)
	return s.roomID
}

// SetCurrentRoom 設定用戶目前訂閱的房間
// 用戶沒有活躍連線時不做任何事（可以先加入房間再建立連線）
func (m *SessionManager) SetCurrentRoom(username string, roomID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[username]; ok {
		s.roomID = roomID
	}
}

// ClearCurrentRoom 取消用戶對指定房間的訂閱
// 只在用戶目前訂閱的就是該房間時才清除
func (m *SessionManager) ClearCurrentRoom(username string, roomID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[username]; ok && s.roomID == roomID {
		s.roomID = 0
	}
}

// ClearRoom 取消所有用戶對指定房間的訂閱，房間被刪除時呼叫
func (m *SessionManager) ClearRoom(roomID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.sessions {
		if s.roomID == roomID {
			s.roomID = 0
		}
	}
}

// Subscribers 取得目前訂閱指定房間的所有連線快照
func (m *SessionManager) Subscribers(roomID uint) []*Client {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var clients []*Client
	for _, s := range m.sessions {
		if s.roomID == roomID {
			clients = append(clients, s.client)
		}
	}
	return clients
}

// readPump 持續監聽客戶端連線直到斷線
// 客戶端的所有操作都走 REST API，這裡收到的訊息只用來維持連線
func (m *SessionManager) readPump(client *Client) {
	client.Conn.SetReadLimit(4096) // 設置最大訊息大小為 4KB
	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket unexpected close error: %v", err)
			}
			break
		}
	}
}

// writePump 處理向客戶端發送訊息的邏輯
func (m *SessionManager) writePump(client *Client) {
	// 設置心跳檢查計時器
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-client.done:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case envelope := <-client.SendChan:
			// 設置寫入超時
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteJSON(envelope); err != nil {
				log.Printf("websocket write error for %s: %v", client.Username, err)
				return
			}

		case <-ticker.C:
			// 發送心跳包
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
