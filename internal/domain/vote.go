package domain

// NoVoteValue 查询投票状态时用的哨兵值：该成员本回合还没有投票
const NoVoteValue = "-1"

// Vote 投票领域模型（对应 votes 表）
// 复合主键 (user_id, round_id)：同一成员同一回合只有一行，重复投票原地覆盖
type Vote struct {
	UserID    string `db:"user_id"`    // UUID, FK to users
	RoundID   string `db:"round_id"`   // UUID, FK to rounds
	VoteValue string `db:"vote_value"` // 估点值，不透明字符串（如 "5"、"?"、"coffee"）
}
