package repository

import (
	"context"

	"github.com/ma-weihao/PokerFaceOff-server/internal/domain"
)

// RoundsRepository 回合Repository接口
type RoundsRepository interface {
	// AdvanceRound 进入下一回合：单事务内
	// (a) 把当前open回合置为revealed
	// (b) 取 MAX(round_number)+1
	// (c) 插入新的open回合
	// 事务持有房间行锁，同房间的并发调用被串行化，回合号不会重复或跳号
	AdvanceRound(ctx context.Context, roomID string) error

	// RevealRound 公开回合；对已公开的回合重复调用是幂等的成功
	RevealRound(ctx context.Context, roundID string) error

	// GetRound 按round_id获取回合
	GetRound(ctx context.Context, roundID string) (*domain.Round, error)

	// GetCurrentRound 获取当前回合（round_number 最大的那个）
	GetCurrentRound(ctx context.Context, roomID string) (*domain.Round, error)

	// ListRounds 按回合号升序列出房间的全部回合（用于历史导出）
	ListRounds(ctx context.Context, roomID string) ([]*domain.Round, error)
}
