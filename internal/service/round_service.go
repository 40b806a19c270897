package service

import (
	"context"

	"github.com/ma-weihao/PokerFaceOff-server/internal/domain"
	"github.com/ma-weihao/PokerFaceOff-server/internal/events"
	"github.com/ma-weihao/PokerFaceOff-server/internal/repository"

	"go.uber.org/zap"
)

// RoundService 回合推进/公开服务接口
type RoundService interface {
	// NextRound 公开当前回合并开启下一回合（单事务，同房间串行化）
	// 失败时上一回合保持open，也不会产生新回合；调用方确认结果后才可重试
	NextRound(ctx context.Context, roomID string) error

	// RevealRound 公开指定回合；重复公开是幂等的成功
	RevealRound(ctx context.Context, roundID string) error
}

// roundService 实现
type roundService struct {
	roundsRepo repository.RoundsRepository
	publisher  events.Publisher
	webhook    *WebhookClient // 可选，nil表示未配置
	logger     *zap.Logger
}

// NewRoundService 创建 RoundService 实例
func NewRoundService(roundsRepo repository.RoundsRepository, publisher events.Publisher, webhook *WebhookClient, logger *zap.Logger) RoundService {
	return &roundService{
		roundsRepo: roundsRepo,
		publisher:  publisher,
		webhook:    webhook,
		logger:     logger,
	}
}

// NextRound 进入下一回合
func (s *roundService) NextRound(ctx context.Context, roomID string) error {
	if roomID == "" {
		return domain.NewValidationError("room_id is required")
	}

	if err := s.roundsRepo.AdvanceRound(ctx, roomID); err != nil {
		return err
	}

	// 事务已提交；取新回合只为事件/通知携带round_id，失败不影响结果
	var roundID string
	var roundNumber int
	if round, err := s.roundsRepo.GetCurrentRound(ctx, roomID); err == nil {
		roundID = round.RoundID
		roundNumber = round.RoundNumber
	}

	s.logger.Info("round advanced",
		zap.String("room_id", roomID),
		zap.Int("round_number", roundNumber),
	)

	s.publisher.PublishRoomEvent(ctx, events.RoomEvent{
		Type:    events.TypeRoundStarted,
		RoomID:  roomID,
		RoundID: roundID,
	})

	if s.webhook != nil {
		s.webhook.NotifyRoundStarted(ctx, roomID, roundID, roundNumber)
	}

	return nil
}

// RevealRound 公开回合
func (s *roundService) RevealRound(ctx context.Context, roundID string) error {
	if roundID == "" {
		return domain.NewValidationError("round_id is required")
	}

	if err := s.roundsRepo.RevealRound(ctx, roundID); err != nil {
		return err
	}

	s.logger.Info("round revealed", zap.String("round_id", roundID))

	// 事件流按房间分key，必须补查room_id；查不到只丢事件，不影响已提交的公开
	if round, err := s.roundsRepo.GetRound(ctx, roundID); err == nil {
		s.publisher.PublishRoomEvent(ctx, events.RoomEvent{
			Type:    events.TypeRoundRevealed,
			RoomID:  round.RoomID,
			RoundID: roundID,
		})
	} else {
		s.logger.Warn("failed to resolve room for reveal event",
			zap.String("round_id", roundID),
			zap.Error(err),
		)
	}

	if s.webhook != nil {
		s.webhook.NotifyRoundRevealed(ctx, roundID)
	}

	return nil
}
