package service

import (
	"context"
	"database/sql"

	"github.com/ma-weihao/PokerFaceOff-server/internal/domain"
	"github.com/ma-weihao/PokerFaceOff-server/internal/events"
	"github.com/ma-weihao/PokerFaceOff-server/internal/repository"

	"go.uber.org/zap"
)

// MemberService 成员与资料管理服务接口
type MemberService interface {
	// JoinRoom 加入房间；同一外部身份可以重复加入，产生多条成员记录
	JoinRoom(ctx context.Context, req JoinRoomRequest) (*JoinRoomResponse, error)

	// EditProfile 部分更新资料；没有任何字段时报ValidationError且零写入
	// 包含角色时，同一事务删除该成员全部投票
	EditProfile(ctx context.Context, req EditProfileRequest) error

	// ChangeRole 切换角色并无条件删除该成员全部投票（即使角色值没变）
	ChangeRole(ctx context.Context, req ChangeRoleRequest) error
}

// memberService 实现
type memberService struct {
	usersRepo repository.UsersRepository
	roomsRepo repository.RoomsRepository
	publisher events.Publisher
	logger    *zap.Logger
}

// NewMemberService 创建 MemberService 实例
func NewMemberService(usersRepo repository.UsersRepository, roomsRepo repository.RoomsRepository, publisher events.Publisher, logger *zap.Logger) MemberService {
	return &memberService{
		usersRepo: usersRepo,
		roomsRepo: roomsRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// JoinRoomRequest 加入房间请求
type JoinRoomRequest struct {
	RoomID    string // 必填
	UserName  string // 必填
	AvatarURL string // 可选
	Role      string // 必填：'estimator'/'observer'
	OpenID    string // 可选，外部身份
}

// JoinRoomResponse 加入房间响应
type JoinRoomResponse struct {
	UserID string
}

// EditProfileRequest 编辑资料请求（nil表示不更新该字段）
type EditProfileRequest struct {
	UserID    string
	Role      *string
	UserName  *string
	AvatarURL *string
}

// ChangeRoleRequest 切换角色请求
type ChangeRoleRequest struct {
	UserID string
	Role   string
}

// validRole 角色值校验
func validRole(role string) bool {
	return role == domain.RoleEstimator || role == domain.RoleObserver
}

// JoinRoom 加入房间
func (s *memberService) JoinRoom(ctx context.Context, req JoinRoomRequest) (*JoinRoomResponse, error) {
	if req.RoomID == "" {
		return nil, domain.NewValidationError("room_id is required")
	}
	if req.UserName == "" {
		return nil, domain.NewValidationError("user_name is required")
	}
	if !validRole(req.Role) {
		return nil, domain.NewValidationError("role must be %q or %q", domain.RoleEstimator, domain.RoleObserver)
	}

	// 房间必须存在；不存在时报NotFound而不是落到FK冲突
	if _, err := s.roomsRepo.GetRoom(ctx, req.RoomID); err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:  req.UserName,
		AvatarURL: req.AvatarURL,
		Role:      req.Role,
		RoomID:    req.RoomID,
	}
	if req.OpenID != "" {
		user.OpenID = sql.NullString{String: req.OpenID, Valid: true}
	}

	userID, err := s.usersRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("member joined",
		zap.String("room_id", req.RoomID),
		zap.String("user_id", userID),
		zap.String("role", req.Role),
	)

	s.publisher.PublishRoomEvent(ctx, events.RoomEvent{
		Type:   events.TypeMemberJoined,
		RoomID: req.RoomID,
		UserID: userID,
	})

	return &JoinRoomResponse{UserID: userID}, nil
}

// EditProfile 编辑资料
func (s *memberService) EditProfile(ctx context.Context, req EditProfileRequest) error {
	if req.UserID == "" {
		return domain.NewValidationError("user_id is required")
	}

	update := repository.ProfileUpdate{
		Role:      req.Role,
		Username:  req.UserName,
		AvatarURL: req.AvatarURL,
	}
	if update.Empty() {
		return domain.NewValidationError("no fields to update")
	}
	if req.Role != nil && !validRole(*req.Role) {
		return domain.NewValidationError("role must be %q or %q", domain.RoleEstimator, domain.RoleObserver)
	}

	if err := s.usersRepo.UpdateProfile(ctx, req.UserID, update); err != nil {
		return err
	}

	s.logger.Info("profile updated",
		zap.String("user_id", req.UserID),
		zap.Bool("role_changed", req.Role != nil),
	)

	s.publishProfileUpdated(ctx, req.UserID)
	return nil
}

// ChangeRole 切换角色
func (s *memberService) ChangeRole(ctx context.Context, req ChangeRoleRequest) error {
	if req.UserID == "" {
		return domain.NewValidationError("user_id is required")
	}
	if !validRole(req.Role) {
		return domain.NewValidationError("role must be %q or %q", domain.RoleEstimator, domain.RoleObserver)
	}

	// 统一走UpdateProfile：角色写入 + 投票清除在同一事务
	if err := s.usersRepo.UpdateProfile(ctx, req.UserID, repository.ProfileUpdate{Role: &req.Role}); err != nil {
		return err
	}

	s.logger.Info("role changed",
		zap.String("user_id", req.UserID),
		zap.String("role", req.Role),
	)

	s.publishProfileUpdated(ctx, req.UserID)
	return nil
}

// publishProfileUpdated 资料变更事件（需要补查room_id，失败只影响事件不影响结果）
func (s *memberService) publishProfileUpdated(ctx context.Context, userID string) {
	user, err := s.usersRepo.GetUser(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to resolve room for profile event",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return
	}
	s.publisher.PublishRoomEvent(ctx, events.RoomEvent{
		Type:   events.TypeProfileUpdated,
		RoomID: user.RoomID,
		UserID: userID,
	})
}
