package events

import "time"

// 房间事件类型
const (
	TypeRoomCreated    = "room_created"
	TypeMemberJoined   = "member_joined"
	TypeRoundStarted   = "round_started"
	TypeVoteCast       = "vote_cast"
	TypeRoundRevealed  = "round_revealed"
	TypeProfileUpdated = "profile_updated"
)

// RoomEvent 房间事件（发布到 Redis Streams 供实时消费者使用）
// 投票内容不进事件流：vote_cast 只携带who，值在公开前对外不可见
type RoomEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	RoomID     string    `json:"room_id"`
	UserID     string    `json:"user_id,omitempty"`
	RoundID    string    `json:"round_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
