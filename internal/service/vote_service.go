package service

import (
	"context"

	"github.com/ma-weihao/PokerFaceOff-server/internal/domain"
	"github.com/ma-weihao/PokerFaceOff-server/internal/events"
	"github.com/ma-weihao/PokerFaceOff-server/internal/repository"

	"go.uber.org/zap"
)

// VoteService 投票账本服务接口
type VoteService interface {
	// CastVote 对成员所在房间的当前回合投票，重复投票覆盖旧值
	// 回合已公开也照常记录（迟到投票按设计接受，不拒绝）
	CastVote(ctx context.Context, req CastVoteRequest) error
}

// voteService 实现
type voteService struct {
	votesRepo repository.VotesRepository
	usersRepo repository.UsersRepository
	publisher events.Publisher
	logger    *zap.Logger
}

// NewVoteService 创建 VoteService 实例
func NewVoteService(votesRepo repository.VotesRepository, usersRepo repository.UsersRepository, publisher events.Publisher, logger *zap.Logger) VoteService {
	return &voteService{
		votesRepo: votesRepo,
		usersRepo: usersRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// CastVoteRequest 投票请求
type CastVoteRequest struct {
	UserID    string // 必填
	VoteValue string // 必填，不透明估点值
}

// CastVote 投票
func (s *voteService) CastVote(ctx context.Context, req CastVoteRequest) error {
	if req.UserID == "" {
		return domain.NewValidationError("user_id is required")
	}
	if req.VoteValue == "" {
		return domain.NewValidationError("vote_value is required")
	}

	// 先解析成员：拿到room_id用于事件流，同时让"成员不存在"报NotFound而不是0行写入
	user, err := s.usersRepo.GetUser(ctx, req.UserID)
	if err != nil {
		return err
	}

	if err := s.votesRepo.UpsertVote(ctx, req.UserID, req.VoteValue); err != nil {
		return err
	}

	s.logger.Info("vote cast",
		zap.String("user_id", req.UserID),
		zap.String("room_id", user.RoomID),
	)

	// 事件不携带估点值：公开前对外不可见
	s.publisher.PublishRoomEvent(ctx, events.RoomEvent{
		Type:   events.TypeVoteCast,
		RoomID: user.RoomID,
		UserID: req.UserID,
	})

	return nil
}
