package httpapi

import (
	"context"

	"github.com/ma-weihao/PokerFaceOff-server/internal/domain"
	"github.com/ma-weihao/PokerFaceOff-server/internal/service"
)

// handler单测用的service桩：只关心请求翻译和错误映射

type stubRoomService struct {
	createRoomFn func(ctx context.Context, req service.CreateRoomRequest) (*service.CreateRoomResponse, error)
}

func (s *stubRoomService) CreateRoom(ctx context.Context, req service.CreateRoomRequest) (*service.CreateRoomResponse, error) {
	return s.createRoomFn(ctx, req)
}

var _ service.RoomService = (*stubRoomService)(nil)

type stubMemberService struct {
	joinRoomFn    func(ctx context.Context, req service.JoinRoomRequest) (*service.JoinRoomResponse, error)
	editProfileFn func(ctx context.Context, req service.EditProfileRequest) error
	changeRoleFn  func(ctx context.Context, req service.ChangeRoleRequest) error
}

func (s *stubMemberService) JoinRoom(ctx context.Context, req service.JoinRoomRequest) (*service.JoinRoomResponse, error) {
	return s.joinRoomFn(ctx, req)
}

func (s *stubMemberService) EditProfile(ctx context.Context, req service.EditProfileRequest) error {
	return s.editProfileFn(ctx, req)
}

func (s *stubMemberService) ChangeRole(ctx context.Context, req service.ChangeRoleRequest) error {
	return s.changeRoleFn(ctx, req)
}

var _ service.MemberService = (*stubMemberService)(nil)

type stubRoundService struct {
	nextRoundFn   func(ctx context.Context, roomID string) error
	revealRoundFn func(ctx context.Context, roundID string) error
}

func (s *stubRoundService) NextRound(ctx context.Context, roomID string) error {
	return s.nextRoundFn(ctx, roomID)
}

func (s *stubRoundService) RevealRound(ctx context.Context, roundID string) error {
	return s.revealRoundFn(ctx, roundID)
}

var _ service.RoundService = (*stubRoundService)(nil)

type stubVoteService struct {
	castVoteFn func(ctx context.Context, req service.CastVoteRequest) error
}

func (s *stubVoteService) CastVote(ctx context.Context, req service.CastVoteRequest) error {
	return s.castVoteFn(ctx, req)
}

var _ service.VoteService = (*stubVoteService)(nil)

type stubStatusService struct {
	fetchStatusFn func(ctx context.Context, roomID string) (*service.RoomStatusResponse, error)
	roomHistoryFn func(ctx context.Context, roomID string) (*service.RoomHistoryResponse, error)
}

func (s *stubStatusService) FetchStatus(ctx context.Context, roomID string) (*service.RoomStatusResponse, error) {
	return s.fetchStatusFn(ctx, roomID)
}

func (s *stubStatusService) RoomHistory(ctx context.Context, roomID string) (*service.RoomHistoryResponse, error) {
	return s.roomHistoryFn(ctx, roomID)
}

var _ service.StatusService = (*stubStatusService)(nil)

func sampleHistory() *service.RoomHistoryResponse {
	return &service.RoomHistoryResponse{
		Room: &domain.Room{RoomID: "room-1", RoomName: "Sprint1"},
		Rounds: []*domain.Round{
			{RoundID: "round-1", RoundNumber: 1, Status: domain.RoundStatusRevealed},
			{RoundID: "round-2", RoundNumber: 2, Status: domain.RoundStatusOpen},
		},
		Members: []*domain.User{
			{UserID: "user-1", Username: "Alice", Role: domain.RoleEstimator},
			{UserID: "user-2", Username: "Bob", Role: domain.RoleObserver},
		},
		Votes: map[string]map[string]string{
			"round-1": {"user-1": "3", "user-2": "5"},
			"round-2": {"user-1": "8"},
		},
	}
}
