package repository

import (
	"context"

	"github.com/ma-weihao/PokerFaceOff-server/internal/domain"
)

// RoomsRepository 房间Repository接口
type RoomsRepository interface {
	// CreateRoom 创建房间：房间 + 创建者成员 + 第1回合，单事务写入
	// 任何一步失败整体回滚，不会留下半个房间
	// 返回 (roomID, creatorUserID)
	CreateRoom(ctx context.Context, roomName, createdBy, creatorName, creatorAvatar string) (string, string, error)

	// GetRoom 获取房间
	GetRoom(ctx context.Context, roomID string) (*domain.Room, error)
}
