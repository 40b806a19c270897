package service

import (
	"context"

	"github.com/ma-weihao/PokerFaceOff-server/internal/domain"
	"github.com/ma-weihao/PokerFaceOff-server/internal/events"
	"github.com/ma-weihao/PokerFaceOff-server/internal/repository"

	"go.uber.org/zap"
)

// RoomService 房间目录服务接口
type RoomService interface {
	// CreateRoom 创建房间：房间 + 创建者 + 第1回合原子落库
	CreateRoom(ctx context.Context, req CreateRoomRequest) (*CreateRoomResponse, error)
}

// roomService 实现
type roomService struct {
	roomsRepo repository.RoomsRepository
	publisher events.Publisher
	logger    *zap.Logger
}

// NewRoomService 创建 RoomService 实例
func NewRoomService(roomsRepo repository.RoomsRepository, publisher events.Publisher, logger *zap.Logger) RoomService {
	return &roomService{
		roomsRepo: roomsRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateRoomRequest 创建房间请求
type CreateRoomRequest struct {
	RoomName        string // 必填（不要求唯一）
	CreatedByOpenID string // 创建者外部身份
	UserName        string // 必填，创建者昵称
	AvatarURL       string // 可选
}

// CreateRoomResponse 创建房间响应
type CreateRoomResponse struct {
	RoomID string
	UserID string // 创建者成员ID
}

// CreateRoom 创建房间
func (s *roomService) CreateRoom(ctx context.Context, req CreateRoomRequest) (*CreateRoomResponse, error) {
	if req.RoomName == "" {
		return nil, domain.NewValidationError("room_name is required")
	}
	if req.UserName == "" {
		return nil, domain.NewValidationError("user_name is required")
	}

	roomID, userID, err := s.roomsRepo.CreateRoom(ctx, req.RoomName, req.CreatedByOpenID, req.UserName, req.AvatarURL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("room created",
		zap.String("room_id", roomID),
		zap.String("creator_user_id", userID),
	)

	s.publisher.PublishRoomEvent(ctx, events.RoomEvent{
		Type:   events.TypeRoomCreated,
		RoomID: roomID,
		UserID: userID,
	})

	return &CreateRoomResponse{RoomID: roomID, UserID: userID}, nil
}
