package service

import (
	"context"
	"fmt"

	"github.com/ma-weihao/PokerFaceOff-server/internal/domain"
	"github.com/ma-weihao/PokerFaceOff-server/internal/repository"

	"go.uber.org/zap"
)

// StatusService 房间状态投影服务接口
type StatusService interface {
	// FetchStatus 组装房间 + 当前回合 + 成员投票的只读视图
	// 三条独立查询，不做快照事务：回合切换夹在两条查询之间时，
	// 这一次轮询可能混合新旧回合，下一次轮询即恢复一致（调用方是轮询模型）
	FetchStatus(ctx context.Context, roomID string) (*RoomStatusResponse, error)

	// RoomHistory 房间全量历史：回合 × 成员投票矩阵（用于导出）
	RoomHistory(ctx context.Context, roomID string) (*RoomHistoryResponse, error)
}

// statusService 实现
type statusService struct {
	roomsRepo  repository.RoomsRepository
	roundsRepo repository.RoundsRepository
	usersRepo  repository.UsersRepository
	votesRepo  repository.VotesRepository
	logger     *zap.Logger
}

// NewStatusService 创建 StatusService 实例
func NewStatusService(
	roomsRepo repository.RoomsRepository,
	roundsRepo repository.RoundsRepository,
	usersRepo repository.UsersRepository,
	votesRepo repository.VotesRepository,
	logger *zap.Logger,
) StatusService {
	return &statusService{
		roomsRepo:  roomsRepo,
		roundsRepo: roundsRepo,
		usersRepo:  usersRepo,
		votesRepo:  votesRepo,
		logger:     logger,
	}
}

// RoomStatusResponse 房间状态视图
type RoomStatusResponse struct {
	Room  RoomStatus   `json:"room"`
	Users []UserStatus `json:"users"`
}

// RoomStatus 房间描述
type RoomStatus struct {
	RoomID             string `json:"room_id"`
	RoomName           string `json:"room_name"`
	CurrentRoundName   string `json:"current_round_name"` // "Round {n}"
	CurrentRoundID     string `json:"current_round_id"`
	CurrentRoundStatus string `json:"current_round_status"`
}

// UserStatus 成员状态（vote未投票时为哨兵值"-1"）
type UserStatus struct {
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	AvatarURL string `json:"avatar_url"`
	Role      string `json:"role"`
	Vote      string `json:"vote"`
}

// RoomHistoryResponse 房间历史
type RoomHistoryResponse struct {
	Room    *domain.Room
	Rounds  []*domain.Round
	Members []*domain.User
	// Votes[roundID][userID] = vote_value
	Votes map[string]map[string]string
}

// FetchStatus 获取房间状态
func (s *statusService) FetchStatus(ctx context.Context, roomID string) (*RoomStatusResponse, error) {
	if roomID == "" {
		return nil, domain.NewValidationError("room_id is required")
	}

	room, err := s.roomsRepo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	// 房间创建即带第1回合，这里查不到属于数据损坏，仍按NotFound上抛
	round, err := s.roundsRepo.GetCurrentRound(ctx, roomID)
	if err != nil {
		return nil, err
	}

	members, err := s.usersRepo.ListMembersWithVotes(ctx, roomID, round.RoundID)
	if err != nil {
		return nil, err
	}

	users := make([]UserStatus, 0, len(members))
	for _, m := range members {
		users = append(users, UserStatus{
			UserID:    m.UserID,
			UserName:  m.Username,
			AvatarURL: m.AvatarURL,
			Role:      m.Role,
			Vote:      m.Vote,
		})
	}

	return &RoomStatusResponse{
		Room: RoomStatus{
			RoomID:             room.RoomID,
			RoomName:           room.RoomName,
			CurrentRoundName:   fmt.Sprintf("Round %d", round.RoundNumber),
			CurrentRoundID:     round.RoundID,
			CurrentRoundStatus: round.Status,
		},
		Users: users,
	}, nil
}

// RoomHistory 获取房间全量历史
func (s *statusService) RoomHistory(ctx context.Context, roomID string) (*RoomHistoryResponse, error) {
	if roomID == "" {
		return nil, domain.NewValidationError("room_id is required")
	}

	room, err := s.roomsRepo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	rounds, err := s.roundsRepo.ListRounds(ctx, roomID)
	if err != nil {
		return nil, err
	}

	members, err := s.usersRepo.ListRoomMembers(ctx, roomID)
	if err != nil {
		return nil, err
	}

	votes, err := s.votesRepo.ListVotesByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	byRound := make(map[string]map[string]string)
	for _, v := range votes {
		if byRound[v.RoundID] == nil {
			byRound[v.RoundID] = make(map[string]string)
		}
		byRound[v.RoundID][v.UserID] = v.VoteValue
	}

	return &RoomHistoryResponse{
		Room:    room,
		Rounds:  rounds,
		Members: members,
		Votes:   byRound,
	}, nil
}
