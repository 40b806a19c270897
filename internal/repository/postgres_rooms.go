package repository

import (
	"context"
	"database/sql"

	"github.com/ma-weihao/PokerFaceOff-server/internal/domain"
)

// PostgresRoomsRepository 房间Repository实现
type PostgresRoomsRepository struct {
	db *sql.DB
}

// NewPostgresRoomsRepository 创建房间Repository
func NewPostgresRoomsRepository(db *sql.DB) *PostgresRoomsRepository {
	return &PostgresRoomsRepository{db: db}
}

// 确保实现了接口
var _ RoomsRepository = (*PostgresRoomsRepository)(nil)

// CreateRoom 创建房间（房间 + 创建者 + 第1回合，单事务）
func (r *PostgresRoomsRepository) CreateRoom(ctx context.Context, roomName, createdBy, creatorName, creatorAvatar string) (string, string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", "", domain.NewStorageError("begin create room", err)
	}
	defer tx.Rollback()

	// 插入rooms表（让DB生成room_id）
	var roomID string
	err = tx.QueryRowContext(ctx,
		`INSERT INTO rooms (room_name, created_by)
		 VALUES ($1, $2)
		 RETURNING room_id::text`,
		roomName, createdBy,
	).Scan(&roomID)
	if err != nil {
		return "", "", domain.NewStorageError("create room", err)
	}

	// 创建者作为第一个成员加入，角色固定为estimator
	var userID string
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (username, open_id, avatar_url, role, room_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING user_id::text`,
		creatorName, createdBy, creatorAvatar, domain.RoleEstimator, roomID,
	).Scan(&userID)
	if err != nil {
		return "", "", domain.NewStorageError("create room creator", err)
	}

	// 第1回合，初始为open
	_, err = tx.ExecContext(ctx,
		`INSERT INTO rounds (room_id, round_number, status)
		 VALUES ($1, 1, $2)`,
		roomID, domain.RoundStatusOpen,
	)
	if err != nil {
		return "", "", domain.NewStorageError("create first round", err)
	}

	if err := tx.Commit(); err != nil {
		return "", "", domain.NewStorageError("commit create room", err)
	}

	return roomID, userID, nil
}

// GetRoom 获取房间
func (r *PostgresRoomsRepository) GetRoom(ctx context.Context, roomID string) (*domain.Room, error) {
	if roomID == "" {
		return nil, domain.NewNotFoundError("room", roomID)
	}

	query := `
		SELECT
			room_id::text,
			room_name,
			created_by,
			created_at
		FROM rooms
		WHERE room_id = $1
	`

	var room domain.Room
	err := r.db.QueryRowContext(ctx, query, roomID).Scan(
		&room.RoomID,
		&room.RoomName,
		&room.CreatedBy,
		&room.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewNotFoundError("room", roomID)
		}
		return nil, domain.NewStorageError("get room", err)
	}

	return &room, nil
}
