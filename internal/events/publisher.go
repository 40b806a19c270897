package events

import (
	"context"
	"time"

	commonredis "github.com/ma-weihao/PokerFaceOff-server/common/redis"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StreamKeyPrefix 每个房间一个stream：poker:rooms:<room_id>
const StreamKeyPrefix = "poker:rooms:"

// Publisher 房间事件发布接口
// 发布是尽力而为：失败只记日志，绝不影响已提交的存储操作
type Publisher interface {
	PublishRoomEvent(ctx context.Context, event RoomEvent)
}

// StreamPublisher 基于 Redis Streams 的事件发布器
type StreamPublisher struct {
	client *redis.Client
	logger *zap.Logger
}

// NewStreamPublisher 创建事件发布器
func NewStreamPublisher(client *redis.Client, logger *zap.Logger) *StreamPublisher {
	return &StreamPublisher{client: client, logger: logger}
}

// 确保实现了接口
var _ Publisher = (*StreamPublisher)(nil)

// PublishRoomEvent 发布房间事件
func (p *StreamPublisher) PublishRoomEvent(ctx context.Context, event RoomEvent) {
	// stream按房间分key，room_id为空会退化成所有房间共用一条流
	if event.RoomID == "" {
		p.logger.Warn("dropping room event without room_id",
			zap.String("type", event.Type),
		)
		return
	}
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	stream := StreamKeyPrefix + event.RoomID
	id, err := commonredis.PublishJSONToStream(ctx, p.client, stream, event)
	if err != nil {
		p.logger.Warn("failed to publish room event",
			zap.String("type", event.Type),
			zap.String("room_id", event.RoomID),
			zap.Error(err),
		)
		return
	}

	p.logger.Debug("published room event",
		zap.String("type", event.Type),
		zap.String("room_id", event.RoomID),
		zap.String("stream_id", id),
	)
}

// NopPublisher 空实现（未配置Redis时使用）
type NopPublisher struct{}

// 确保实现了接口
var _ Publisher = NopPublisher{}

// PublishRoomEvent 丢弃事件
func (NopPublisher) PublishRoomEvent(ctx context.Context, event RoomEvent) {}
