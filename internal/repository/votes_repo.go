package repository

import (
	"context"

	"github.com/ma-weihao/PokerFaceOff-server/internal/domain"
)

// VotesRepository 投票Repository接口
type VotesRepository interface {
	// UpsertVote 对成员所在房间的当前回合投票
	// 同一回合重复投票原地覆盖（幂等，不报错）
	// 回合已公开也照常记录：迟到的投票按设计接受
	UpsertVote(ctx context.Context, userID, voteValue string) error

	// ListVotesByRoom 列出房间全部回合的全部投票（用于历史导出）
	ListVotesByRoom(ctx context.Context, roomID string) ([]*domain.Vote, error)
}
