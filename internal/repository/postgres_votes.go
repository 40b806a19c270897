package repository

import (
	"context"
	"database/sql"

	"github.com/ma-weihao/PokerFaceOff-server/internal/domain"
)

// PostgresVotesRepository 投票Repository实现
type PostgresVotesRepository struct {
	db *sql.DB
}

// NewPostgresVotesRepository 创建投票Repository
func NewPostgresVotesRepository(db *sql.DB) *PostgresVotesRepository {
	return &PostgresVotesRepository{db: db}
}

// 确保实现了接口
var _ VotesRepository = (*PostgresVotesRepository)(nil)

// UpsertVote 对当前回合投票（单语句：解析成员→房间→当前回合并upsert）
// 刻意不检查回合status：公开后迟到的投票仍被记录
func (r *PostgresVotesRepository) UpsertVote(ctx context.Context, userID, voteValue string) error {
	if userID == "" {
		return domain.NewNotFoundError("user", userID)
	}

	query := `
		INSERT INTO votes (user_id, round_id, vote_value)
		SELECT u.user_id, r.round_id, $2
		FROM users u
		JOIN rounds r ON r.room_id = u.room_id
		WHERE u.user_id = $1
		ORDER BY r.round_number DESC
		LIMIT 1
		ON CONFLICT (user_id, round_id) DO UPDATE SET vote_value = EXCLUDED.vote_value
	`

	result, err := r.db.ExecContext(ctx, query, userID, voteValue)
	if err != nil {
		return domain.NewStorageError("upsert vote", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return domain.NewStorageError("upsert vote", err)
	}
	if rows == 0 {
		// 成员不存在，或其房间没有任何回合
		return domain.NewNotFoundError("current round for user", userID)
	}

	return nil
}

// ListVotesByRoom 列出房间全部回合的全部投票
func (r *PostgresVotesRepository) ListVotesByRoom(ctx context.Context, roomID string) ([]*domain.Vote, error) {
	if roomID == "" {
		return []*domain.Vote{}, nil
	}

	query := `
		SELECT
			v.user_id::text,
			v.round_id::text,
			v.vote_value
		FROM votes v
		JOIN rounds r ON r.round_id = v.round_id
		WHERE r.room_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, domain.NewStorageError("list votes by room", err)
	}
	defer rows.Close()

	votes := []*domain.Vote{}
	for rows.Next() {
		var vote domain.Vote
		if err := rows.Scan(
			&vote.UserID,
			&vote.RoundID,
			&vote.VoteValue,
		); err != nil {
			return nil, domain.NewStorageError("scan vote", err)
		}
		votes = append(votes, &vote)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list votes by room", err)
	}

	return votes, nil
}
