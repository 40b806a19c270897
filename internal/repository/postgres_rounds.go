package repository

import (
	"context"
	"database/sql"

	"github.com/ma-weihao/PokerFaceOff-server/internal/domain"
)

// PostgresRoundsRepository 回合Repository实现
type PostgresRoundsRepository struct {
	db *sql.DB
}

// NewPostgresRoundsRepository 创建回合Repository
func NewPostgresRoundsRepository(db *sql.DB) *PostgresRoundsRepository {
	return &PostgresRoundsRepository{db: db}
}

// 确保实现了接口
var _ RoundsRepository = (*PostgresRoundsRepository)(nil)

// AdvanceRound 进入下一回合（单事务 + 房间行锁）
func (r *PostgresRoundsRepository) AdvanceRound(ctx context.Context, roomID string) error {
	if roomID == "" {
		return domain.NewNotFoundError("room", roomID)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewStorageError("begin advance round", err)
	}
	defer tx.Rollback()

	// 锁住房间行：同房间并发的 AdvanceRound 在这里排队，
	// 保证两个事务不会读到同一个 MAX(round_number)
	var lockedID string
	err = tx.QueryRowContext(ctx,
		`SELECT room_id::text FROM rooms WHERE room_id = $1 FOR UPDATE`,
		roomID,
	).Scan(&lockedID)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.NewNotFoundError("room", roomID)
		}
		return domain.NewStorageError("lock room", err)
	}

	// 关闭当前open回合
	_, err = tx.ExecContext(ctx,
		`UPDATE rounds SET status = $1 WHERE room_id = $2 AND status = $3`,
		domain.RoundStatusRevealed, roomID, domain.RoundStatusOpen,
	)
	if err != nil {
		return domain.NewStorageError("close current round", err)
	}

	// 插入新回合：回合号 = MAX+1（房间行锁已串行化并发读取）
	_, err = tx.ExecContext(ctx,
		`INSERT INTO rounds (room_id, round_number, status)
		 SELECT $1, COALESCE(MAX(round_number), 0) + 1, $2
		 FROM rounds
		 WHERE room_id = $1`,
		roomID, domain.RoundStatusOpen,
	)
	if err != nil {
		return domain.NewStorageError("insert next round", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.NewStorageError("commit advance round", err)
	}

	return nil
}

// RevealRound 公开回合（幂等：重复公开仍然成功）
func (r *PostgresRoundsRepository) RevealRound(ctx context.Context, roundID string) error {
	if roundID == "" {
		return domain.NewNotFoundError("round", roundID)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE rounds SET status = $1 WHERE round_id = $2`,
		domain.RoundStatusRevealed, roundID,
	)
	if err != nil {
		return domain.NewStorageError("reveal round", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return domain.NewStorageError("reveal round", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError("round", roundID)
	}

	return nil
}

// GetRound 按round_id获取回合
func (r *PostgresRoundsRepository) GetRound(ctx context.Context, roundID string) (*domain.Round, error) {
	if roundID == "" {
		return nil, domain.NewNotFoundError("round", roundID)
	}

	query := `
		SELECT
			round_id::text,
			room_id::text,
			round_number,
			status,
			created_at
		FROM rounds
		WHERE round_id = $1
	`

	var round domain.Round
	err := r.db.QueryRowContext(ctx, query, roundID).Scan(
		&round.RoundID,
		&round.RoomID,
		&round.RoundNumber,
		&round.Status,
		&round.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewNotFoundError("round", roundID)
		}
		return nil, domain.NewStorageError("get round", err)
	}

	return &round, nil
}

// GetCurrentRound 获取当前回合
func (r *PostgresRoundsRepository) GetCurrentRound(ctx context.Context, roomID string) (*domain.Round, error) {
	if roomID == "" {
		return nil, domain.NewNotFoundError("room", roomID)
	}

	query := `
		SELECT
			round_id::text,
			room_id::text,
			round_number,
			status,
			created_at
		FROM rounds
		WHERE room_id = $1
		ORDER BY round_number DESC
		LIMIT 1
	`

	var round domain.Round
	err := r.db.QueryRowContext(ctx, query, roomID).Scan(
		&round.RoundID,
		&round.RoomID,
		&round.RoundNumber,
		&round.Status,
		&round.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewNotFoundError("round", "")
		}
		return nil, domain.NewStorageError("get current round", err)
	}

	return &round, nil
}

// ListRounds 按回合号升序列出房间的全部回合
func (r *PostgresRoundsRepository) ListRounds(ctx context.Context, roomID string) ([]*domain.Round, error) {
	if roomID == "" {
		return []*domain.Round{}, nil
	}

	query := `
		SELECT
			round_id::text,
			room_id::text,
			round_number,
			status,
			created_at
		FROM rounds
		WHERE room_id = $1
		ORDER BY round_number ASC
	`

	rows, err := r.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, domain.NewStorageError("list rounds", err)
	}
	defer rows.Close()

	rounds := []*domain.Round{}
	for rows.Next() {
		var round domain.Round
		if err := rows.Scan(
			&round.RoundID,
			&round.RoomID,
			&round.RoundNumber,
			&round.Status,
			&round.CreatedAt,
		); err != nil {
			return nil, domain.NewStorageError("scan round", err)
		}
		rounds = append(rounds, &round)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list rounds", err)
	}

	return rounds, nil
}
