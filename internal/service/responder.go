package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"energy_chat/internal/models"
)

// ResponderRequest 是轉發給外部回應者的觸發訊息與上下文
type ResponderRequest struct {
	RoomID    uint              `json:"room_id"`
	Author    string            `json:"author"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Context   []*models.Message `json:"context,omitempty"`
}

// ResponderReply 是外部回應者決定回覆時的內容
type ResponderReply struct {
	Author  string
	Content string
}

// Responder 是外部 AI 回應者的抽象
// 回傳 (nil, nil) 表示這次不回應；是否回應由外部決定，不保證可重現
type Responder interface {
	Respond(ctx context.Context, req *ResponderRequest) (*ResponderReply, error)
}

// WebhookResponder 透過 webhook 觸發外部工作流（例如 n8n）
// 工作流是異步的：它透過 GET /api/moderator/context 拉取上下文，
// 再把產生的回覆 POST 回 /api/moderator/ai-message，
// 所以這裡觸發成功時一律回傳「沒有直接回覆」
type WebhookResponder struct {
	url    string
	client *http.Client
}

func NewWebhookResponder(url string, timeout time.Duration) *WebhookResponder {
	return &WebhookResponder{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (r *WebhookResponder) Respond(ctx context.Context, req *ResponderRequest) (*ResponderReply, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	// 回覆會經由 webhook 回傳，這裡只負責觸發
	return nil, nil
}
