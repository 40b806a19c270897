package domain

import "time"

// 回合状态机：open → revealed，revealed 为终态
const (
	RoundStatusOpen     = "open"
	RoundStatusRevealed = "revealed"
)

// Round 回合领域模型（对应 rounds 表）
// 每个房间同一时刻只有一个 open 回合：round_number 最大的那个
// round_number 从 1 开始严格递增，无空洞无重复（UNIQUE (room_id, round_number)）
type Round struct {
	RoundID     string    `db:"round_id"`     // UUID, PRIMARY KEY
	RoomID      string    `db:"room_id"`      // UUID, NOT NULL, FK to rooms
	RoundNumber int       `db:"round_number"` // INT, NOT NULL, >= 1
	Status      string    `db:"status"`       // 'open'/'revealed'
	CreatedAt   time.Time `db:"created_at"`   // TIMESTAMPTZ, NOT NULL, DEFAULT CURRENT_TIMESTAMP
}
