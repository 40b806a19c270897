//go:build integration
// +build integration

package repository

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"sync"
	"testing"

	"github.com/ma-weihao/PokerFaceOff-server/common/config"
	"github.com/ma-weihao/PokerFaceOff-server/common/database"
	"github.com/ma-weihao/PokerFaceOff-server/internal/domain"
)

// getTestDB 获取测试数据库连接（不可达时跳过）
func getTestDB(t *testing.T) *sql.DB {
	cfg := &config.DatabaseConfig{
		Host:     getTestEnv("TEST_DB_HOST", "localhost"),
		Port:     getTestEnvInt("TEST_DB_PORT", 5432),
		User:     getTestEnv("TEST_DB_USER", "postgres"),
		Password: getTestEnv("TEST_DB_PASSWORD", "postgres"),
		Database: getTestEnv("TEST_DB_NAME", "pokerface"),
		SSLMode:  getTestEnv("TEST_DB_SSLMODE", "disable"),
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		t.Skipf("Skipping integration test: cannot connect to database: %v", err)
		return nil
	}

	if err := db.Ping(); err != nil {
		t.Skipf("Skipping integration test: cannot ping database: %v", err)
		return nil
	}

	return db
}

func getTestEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getTestEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// cleanupRoom 级联删除测试房间
func cleanupRoom(db *sql.DB, roomID string) {
	_, _ = db.Exec(`DELETE FROM rooms WHERE room_id = $1`, roomID)
}

func TestSessionLifecycle(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	ctx := context.Background()
	roomsRepo := NewPostgresRoomsRepository(db)
	roundsRepo := NewPostgresRoundsRepository(db)
	usersRepo := NewPostgresUsersRepository(db)
	votesRepo := NewPostgresVotesRepository(db)

	// 创建房间：房主 + 第1回合一并落库
	roomID, creatorID, err := roomsRepo.CreateRoom(ctx, "Integration Sprint", "", "Alice", "")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	defer cleanupRoom(db, roomID)

	round, err := roundsRepo.GetCurrentRound(ctx, roomID)
	if err != nil {
		t.Fatalf("GetCurrentRound failed: %v", err)
	}
	if round.RoundNumber != 1 || round.Status != domain.RoundStatusOpen {
		t.Fatalf("expected open round 1, got number=%d status=%s", round.RoundNumber, round.Status)
	}

	// 第二个成员加入
	bobID, err := usersRepo.CreateUser(ctx, &domain.User{
		Username: "Bob",
		Role:     domain.RoleObserver,
		RoomID:   roomID,
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	// 投票 + 覆盖
	if err := votesRepo.UpsertVote(ctx, creatorID, "5"); err != nil {
		t.Fatalf("UpsertVote failed: %v", err)
	}
	if err := votesRepo.UpsertVote(ctx, creatorID, "8"); err != nil {
		t.Fatalf("UpsertVote overwrite failed: %v", err)
	}

	members, err := usersRepo.ListMembersWithVotes(ctx, roomID, round.RoundID)
	if err != nil {
		t.Fatalf("ListMembersWithVotes failed: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	if members[0].Vote != "8" {
		t.Fatalf("expected overwritten vote 8, got %s", members[0].Vote)
	}
	if members[1].Vote != domain.NoVoteValue {
		t.Fatalf("expected sentinel for non-voter, got %s", members[1].Vote)
	}

	// 公开回合（两次都成功：幂等）
	if err := roundsRepo.RevealRound(ctx, round.RoundID); err != nil {
		t.Fatalf("RevealRound failed: %v", err)
	}
	if err := roundsRepo.RevealRound(ctx, round.RoundID); err != nil {
		t.Fatalf("RevealRound repeat failed: %v", err)
	}

	// 推进到第2回合：旧回合revealed，新回合open，投票清零
	if err := roundsRepo.AdvanceRound(ctx, roomID); err != nil {
		t.Fatalf("AdvanceRound failed: %v", err)
	}
	round2, err := roundsRepo.GetCurrentRound(ctx, roomID)
	if err != nil {
		t.Fatalf("GetCurrentRound after advance failed: %v", err)
	}
	if round2.RoundNumber != 2 || round2.Status != domain.RoundStatusOpen {
		t.Fatalf("expected open round 2, got number=%d status=%s", round2.RoundNumber, round2.Status)
	}

	members2, err := usersRepo.ListMembersWithVotes(ctx, roomID, round2.RoundID)
	if err != nil {
		t.Fatalf("ListMembersWithVotes round2 failed: %v", err)
	}
	for _, m := range members2 {
		if m.Vote != domain.NoVoteValue {
			t.Fatalf("expected fresh round with no votes, got %s for %s", m.Vote, m.UserID)
		}
	}

	// 角色切换清除历史投票
	if err := votesRepo.UpsertVote(ctx, bobID, "13"); err != nil {
		t.Fatalf("UpsertVote for Bob failed: %v", err)
	}
	role := domain.RoleEstimator
	if err := usersRepo.UpdateProfile(ctx, bobID, ProfileUpdate{Role: &role}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	var voteCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM votes WHERE user_id = $1`, bobID).Scan(&voteCount); err != nil {
		t.Fatalf("count votes failed: %v", err)
	}
	if voteCount != 0 {
		t.Fatalf("expected votes cleared after role change, got %d", voteCount)
	}

	t.Logf("lifecycle success: room=%s creator=%s bob=%s", roomID, creatorID, bobID)
}

func TestAdvanceRound_ConcurrentMonotonic(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	ctx := context.Background()
	roomsRepo := NewPostgresRoomsRepository(db)
	roundsRepo := NewPostgresRoundsRepository(db)

	roomID, _, err := roomsRepo.CreateRoom(ctx, "Concurrency Sprint", "", "Alice", "")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	defer cleanupRoom(db, roomID)

	const workers = 10
	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := roundsRepo.AdvanceRound(ctx, roomID); err != nil {
				errCh <- err
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("AdvanceRound failed under concurrency: %v", err)
	}

	// 回合号必须是1..workers+1，无空洞无重复
	rounds, err := roundsRepo.ListRounds(ctx, roomID)
	if err != nil {
		t.Fatalf("ListRounds failed: %v", err)
	}
	if len(rounds) != workers+1 {
		t.Fatalf("expected %d rounds, got %d", workers+1, len(rounds))
	}
	for i, r := range rounds {
		if r.RoundNumber != i+1 {
			t.Fatalf("round numbering broken at index %d: got %d", i, r.RoundNumber)
		}
	}

	// 只有最后一个回合open
	openCount := 0
	for _, r := range rounds {
		if r.Status == domain.RoundStatusOpen {
			openCount++
			if r.RoundNumber != workers+1 {
				t.Fatalf("open round is %d, expected %d", r.RoundNumber, workers+1)
			}
		}
	}
	if openCount != 1 {
		t.Fatalf("expected exactly 1 open round, got %d", openCount)
	}

	t.Logf("concurrent advance success: room=%s rounds=%d", roomID, len(rounds))
}
