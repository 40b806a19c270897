package repository

import (
	"context"

	"github.com/ma-weihao/PokerFaceOff-server/internal/domain"
)

// ProfileUpdate 成员资料部分更新
// nil 表示该字段不更新；空字符串是合法的写入值
type ProfileUpdate struct {
	Role      *string
	Username  *string
	AvatarURL *string
}

// Empty 是否没有任何待更新字段
func (u ProfileUpdate) Empty() bool {
	return u.Role == nil && u.Username == nil && u.AvatarURL == nil
}

// MemberVote 成员 + 当前回合投票的联合视图（LEFT JOIN votes）
type MemberVote struct {
	UserID    string
	Username  string
	AvatarURL string
	Role      string
	Vote      string // 未投票时为 domain.NoVoteValue
}

// UsersRepository 成员Repository接口
type UsersRepository interface {
	// CreateUser 加入房间，返回新成员的user_id
	// 不检查重复加入：同一open_id可以产生多条成员记录
	CreateUser(ctx context.Context, user *domain.User) (string, error)

	// GetUser 获取成员
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// UpdateProfile 部分更新成员资料
	// 只写入update中非nil的字段；包含角色时在同一事务里删除该成员的全部投票
	// （无条件删除，不比较新旧角色值）
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) error

	// ListMembersWithVotes 列出房间全部成员，LEFT JOIN 指定回合的投票
	// 未投票的成员填充 domain.NoVoteValue，按加入顺序返回
	ListMembersWithVotes(ctx context.Context, roomID, roundID string) ([]*MemberVote, error)

	// ListRoomMembers 按加入顺序列出房间全部成员
	ListRoomMembers(ctx context.Context, roomID string) ([]*domain.User, error)
}
