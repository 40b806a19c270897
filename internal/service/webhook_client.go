package service

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// WebhookPayload 回合通知payload
type WebhookPayload struct {
	Event       string `json:"event"` // "round_started"/"round_revealed"
	RoomID      string `json:"room_id,omitempty"`
	RoundID     string `json:"round_id"`
	RoundNumber int    `json:"round_number,omitempty"`
	OccurredAt  string `json:"occurred_at"`
}

// WebhookClient 回合通知客户端
// 未配置WEBHOOK_URL时不创建；通知失败只记日志，不影响核心操作结果
type WebhookClient struct {
	httpClient *resty.Client
	url        string
	logger     *zap.Logger
}

// NewWebhookClient 创建回合通知客户端
func NewWebhookClient(url string, logger *zap.Logger) *WebhookClient {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &WebhookClient{
		httpClient: client,
		url:        url,
		logger:     logger,
	}
}

// NotifyRoundStarted 通知新回合开始
func (c *WebhookClient) NotifyRoundStarted(ctx context.Context, roomID, roundID string, roundNumber int) {
	c.post(ctx, WebhookPayload{
		Event:       "round_started",
		RoomID:      roomID,
		RoundID:     roundID,
		RoundNumber: roundNumber,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})
}

// NotifyRoundRevealed 通知回合公开
func (c *WebhookClient) NotifyRoundRevealed(ctx context.Context, roundID string) {
	c.post(ctx, WebhookPayload{
		Event:      "round_revealed",
		RoundID:    roundID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// post 发送通知
func (c *WebhookClient) post(ctx context.Context, payload WebhookPayload) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.url)
	if err != nil {
		c.logger.Warn("webhook delivery failed",
			zap.String("event", payload.Event),
			zap.Error(err),
		)
		return
	}
	if resp.IsError() {
		c.logger.Warn("webhook rejected",
			zap.String("event", payload.Event),
			zap.Int("status", resp.StatusCode()),
		)
	}
}
