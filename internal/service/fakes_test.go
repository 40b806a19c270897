package service

import (
	"context"
	"sync"

	"github.com/ma-weihao/PokerFaceOff-server/internal/domain"
	"github.com/ma-weihao/PokerFaceOff-server/internal/events"
	"github.com/ma-weihao/PokerFaceOff-server/internal/repository"
)

// 内存fake：service单测不连真实Postgres

type fakeRoomsRepo struct {
	createRoomFn func(ctx context.Context, roomName, createdBy, creatorName, creatorAvatar string) (string, string, error)
	getRoomFn    func(ctx context.Context, roomID string) (*domain.Room, error)
}

func (f *fakeRoomsRepo) CreateRoom(ctx context.Context, roomName, createdBy, creatorName, creatorAvatar string) (string, string, error) {
	return f.createRoomFn(ctx, roomName, createdBy, creatorName, creatorAvatar)
}

func (f *fakeRoomsRepo) GetRoom(ctx context.Context, roomID string) (*domain.Room, error) {
	return f.getRoomFn(ctx, roomID)
}

var _ repository.RoomsRepository = (*fakeRoomsRepo)(nil)

type fakeRoundsRepo struct {
	advanceCalls    []string
	advanceFn       func(ctx context.Context, roomID string) error
	revealCalls     []string
	revealFn        func(ctx context.Context, roundID string) error
	getRoundFn      func(ctx context.Context, roundID string) (*domain.Round, error)
	getCurrentFn    func(ctx context.Context, roomID string) (*domain.Round, error)
	listRoundsFn    func(ctx context.Context, roomID string) ([]*domain.Round, error)
}

func (f *fakeRoundsRepo) AdvanceRound(ctx context.Context, roomID string) error {
	f.advanceCalls = append(f.advanceCalls, roomID)
	if f.advanceFn != nil {
		return f.advanceFn(ctx, roomID)
	}
	return nil
}

func (f *fakeRoundsRepo) RevealRound(ctx context.Context, roundID string) error {
	f.revealCalls = append(f.revealCalls, roundID)
	if f.revealFn != nil {
		return f.revealFn(ctx, roundID)
	}
	return nil
}

func (f *fakeRoundsRepo) GetRound(ctx context.Context, roundID string) (*domain.Round, error) {
	if f.getRoundFn != nil {
		return f.getRoundFn(ctx, roundID)
	}
	return nil, domain.NewNotFoundError("round", roundID)
}

func (f *fakeRoundsRepo) GetCurrentRound(ctx context.Context, roomID string) (*domain.Round, error) {
	if f.getCurrentFn != nil {
		return f.getCurrentFn(ctx, roomID)
	}
	return nil, domain.NewNotFoundError("round", "")
}

func (f *fakeRoundsRepo) ListRounds(ctx context.Context, roomID string) ([]*domain.Round, error) {
	if f.listRoundsFn != nil {
		return f.listRoundsFn(ctx, roomID)
	}
	return []*domain.Round{}, nil
}

var _ repository.RoundsRepository = (*fakeRoundsRepo)(nil)

type fakeUsersRepo struct {
	createUserFn    func(ctx context.Context, user *domain.User) (string, error)
	getUserFn       func(ctx context.Context, userID string) (*domain.User, error)
	updateCalls     []repository.ProfileUpdate
	updateProfileFn func(ctx context.Context, userID string, update repository.ProfileUpdate) error
	listWithVotesFn func(ctx context.Context, roomID, roundID string) ([]*repository.MemberVote, error)
	listMembersFn   func(ctx context.Context, roomID string) ([]*domain.User, error)
}

func (f *fakeUsersRepo) CreateUser(ctx context.Context, user *domain.User) (string, error) {
	return f.createUserFn(ctx, user)
}

func (f *fakeUsersRepo) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if f.getUserFn != nil {
		return f.getUserFn(ctx, userID)
	}
	return nil, domain.NewNotFoundError("user", userID)
}

func (f *fakeUsersRepo) UpdateProfile(ctx context.Context, userID string, update repository.ProfileUpdate) error {
	f.updateCalls = append(f.updateCalls, update)
	if f.updateProfileFn != nil {
		return f.updateProfileFn(ctx, userID, update)
	}
	return nil
}

func (f *fakeUsersRepo) ListMembersWithVotes(ctx context.Context, roomID, roundID string) ([]*repository.MemberVote, error) {
	return f.listWithVotesFn(ctx, roomID, roundID)
}

func (f *fakeUsersRepo) ListRoomMembers(ctx context.Context, roomID string) ([]*domain.User, error) {
	if f.listMembersFn != nil {
		return f.listMembersFn(ctx, roomID)
	}
	return []*domain.User{}, nil
}

var _ repository.UsersRepository = (*fakeUsersRepo)(nil)

type fakeVotesRepo struct {
	upsertCalls []string
	upsertFn    func(ctx context.Context, userID, voteValue string) error
	listVotesFn func(ctx context.Context, roomID string) ([]*domain.Vote, error)
}

func (f *fakeVotesRepo) UpsertVote(ctx context.Context, userID, voteValue string) error {
	f.upsertCalls = append(f.upsertCalls, userID+"="+voteValue)
	if f.upsertFn != nil {
		return f.upsertFn(ctx, userID, voteValue)
	}
	return nil
}

func (f *fakeVotesRepo) ListVotesByRoom(ctx context.Context, roomID string) ([]*domain.Vote, error) {
	if f.listVotesFn != nil {
		return f.listVotesFn(ctx, roomID)
	}
	return []*domain.Vote{}, nil
}

var _ repository.VotesRepository = (*fakeVotesRepo)(nil)

// capturePublisher 记录发布的事件
type capturePublisher struct {
	mu     sync.Mutex
	events []events.RoomEvent
}

func (p *capturePublisher) PublishRoomEvent(ctx context.Context, event events.RoomEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *capturePublisher) published() []events.RoomEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.RoomEvent, len(p.events))
	copy(out, p.events)
	return out
}

var _ events.Publisher = (*capturePublisher)(nil)
