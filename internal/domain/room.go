package domain

import "time"

// Room 房间领域模型（对应 rooms 表）
// 一个估点会话：创建后不可变，没有删除操作
type Room struct {
	RoomID    string    `db:"room_id"`    // UUID, PRIMARY KEY
	RoomName  string    `db:"room_name"`  // VARCHAR(100), NOT NULL（不要求唯一，只按 room_id 寻址）
	CreatedBy string    `db:"created_by"` // 创建者外部身份标识（open_id）
	CreatedAt time.Time `db:"created_at"` // TIMESTAMPTZ, NOT NULL, DEFAULT CURRENT_TIMESTAMP
}
