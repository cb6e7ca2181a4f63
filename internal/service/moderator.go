package service

import (
	"context"
	"log"
	"strings"

	"energy_chat/internal/models"
	"energy_chat/internal/repository"
	"energy_chat/pkg/config"
)

// 會觸發轉發給外部回應者的關鍵字
// 問句（含問號）也會觸發；是否真的回覆由外部回應者決定
var moderatorTriggers = []string{
	"help", "question", "how", "what", "why", "when", "where",
	"solar", "wind", "hydro", "renewable", "energy", "power",
	"efficiency", "cost", "installation", "maintenance", "battery",
	"grid", "panel", "turbine", "carbon", "emission", "geothermal",
	"biomass", "tidal", "wave", "nuclear", "fusion",
}

// ModeratorGateway 決定是否把用戶訊息轉發給外部回應者，
// 並把回覆的 AI 訊息送回追加與廣播的路徑
// 對外部回應者的呼叫一律在獨立的 goroutine 中進行，
// 不持有任何鎖，也不影響觸發訊息本身的追加與廣播
type ModeratorGateway struct {
	messages    *repository.MessageLog
	broadcaster *Broadcaster
	responder   Responder
	cfg         config.ModeratorConfig
}

func NewModeratorGateway(messages *repository.MessageLog, broadcaster *Broadcaster, responder Responder, cfg config.ModeratorConfig) *ModeratorGateway {
	return &ModeratorGateway{
		messages:    messages,
		broadcaster: broadcaster,
		responder:   responder,
		cfg:         cfg,
	}
}

// Offer 把一條剛追加的用戶訊息提供給審核員評估
// 立即回傳，外部呼叫在背景進行；發起連線的用戶斷線不會中止這個呼叫
func (g *ModeratorGateway) Offer(msg *models.Message) {
	if g.responder == nil || !shouldRespond(msg.Content) {
		return
	}

	// 在進入 goroutine 前先取上下文快照，不在外部呼叫期間持鎖
	recent, err := g.messages.Recent(msg.RoomID, g.cfg.ContextLimit)
	if err != nil {
		return
	}

	req := &ResponderRequest{
		RoomID:    msg.RoomID,
		Author:    msg.Author,
		Message:   msg.Content,
		Timestamp: msg.Timestamp,
		Context:   recent,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), g.cfg.Timeout())
		defer cancel()

		reply, err := g.responder.Respond(ctx, req)
		if err != nil {
			// 逾時或錯誤都視為「不回應」，不會回報給任何用戶
			log.Printf("moderator responder unavailable: %v", err)
			return
		}
		if reply == nil {
			return
		}

		if _, err := g.InjectReply(msg.RoomID, reply.Author, reply.Content); err != nil {
			log.Printf("dropping moderator reply for room %d: %v", msg.RoomID, err)
		}
	}()
}

// InjectReply 把 AI 回覆追加到訊息紀錄並廣播
// 也供外部工作流的 webhook 端點使用；房間已被刪除時回傳錯誤
func (g *ModeratorGateway) InjectReply(roomID uint, author, content string) (*models.Message, error) {
	if author == "" {
		author = g.cfg.AIName
	}

	msg, err := g.messages.Append(roomID, author, content, models.MessageTypeAI)
	if err != nil {
		return nil, err
	}
	g.broadcaster.Publish(msg)
	return msg, nil
}

// Context 取得房間最近的對話紀錄，供外部工作流拉取
func (g *ModeratorGateway) Context(roomID uint, limit int) ([]*models.Message, error) {
	if limit <= 0 {
		limit = g.cfg.ContextLimit
	}
	return g.messages.Recent(roomID, limit)
}

// shouldRespond 判斷是否把訊息轉發給外部回應者
// 問句或含有關鍵字的訊息才轉發，其餘的直接略過
func shouldRespond(content string) bool {
	if strings.Contains(content, "?") {
		return true
	}

	lower := strings.ToLower(content)
	for _, trigger := range moderatorTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}
