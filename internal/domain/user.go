package domain

import "database/sql"

// 成员角色
const (
	RoleEstimator = "estimator" // 参与估点
	RoleObserver  = "observer"  // 只观察，不参与统计
)

// User 成员领域模型（对应 users 表）
// 同一外部身份可以多次加入同一房间，产生多条成员记录（刻意为之，不做去重）
type User struct {
	UserID    string         `db:"user_id"`    // UUID, PRIMARY KEY
	Username  string         `db:"username"`   // VARCHAR(100), NOT NULL
	OpenID    sql.NullString `db:"open_id"`    // 外部身份标识，nullable
	AvatarURL string         `db:"avatar_url"` // TEXT
	Role      string         `db:"role"`       // 'estimator'/'observer'
	RoomID    string         `db:"room_id"`    // UUID, NOT NULL, FK to rooms
}
