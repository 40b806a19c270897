package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ma-weihao/PokerFaceOff-server/internal/domain"
)

// PostgresUsersRepository 成员Repository实现
type PostgresUsersRepository struct {
	db *sql.DB
}

// NewPostgresUsersRepository 创建成员Repository
func NewPostgresUsersRepository(db *sql.DB) *PostgresUsersRepository {
	return &PostgresUsersRepository{db: db}
}

// 确保实现了接口
var _ UsersRepository = (*PostgresUsersRepository)(nil)

// CreateUser 加入房间
func (r *PostgresUsersRepository) CreateUser(ctx context.Context, user *domain.User) (string, error) {
	if user == nil {
		return "", domain.NewValidationError("user is required")
	}

	var openID any
	if user.OpenID.Valid {
		openID = user.OpenID.String
	}

	var userID string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, open_id, avatar_url, role, room_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING user_id::text`,
		user.Username, openID, user.AvatarURL, user.Role, user.RoomID,
	).Scan(&userID)
	if err != nil {
		return "", domain.NewStorageError("create user", err)
	}

	return userID, nil
}

// GetUser 获取成员
func (r *PostgresUsersRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.NewNotFoundError("user", userID)
	}

	query := `
		SELECT
			user_id::text,
			username,
			open_id,
			avatar_url,
			role,
			room_id::text
		FROM users
		WHERE user_id = $1
	`

	var user domain.User
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.UserID,
		&user.Username,
		&user.OpenID,
		&user.AvatarURL,
		&user.Role,
		&user.RoomID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewNotFoundError("user", userID)
		}
		return nil, domain.NewStorageError("get user", err)
	}

	return &user, nil
}

// UpdateProfile 部分更新成员资料（含角色时同事务删除投票）
func (r *PostgresUsersRepository) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) error {
	if userID == "" {
		return domain.NewNotFoundError("user", userID)
	}
	if update.Empty() {
		return domain.NewValidationError("no fields to update")
	}

	// 显式的 (列, 值) 列表：没出现的字段绝不会被写
	setClauses := []string{}
	args := []any{}
	argN := 1

	if update.Role != nil {
		setClauses = append(setClauses, fmt.Sprintf("role = $%d", argN))
		args = append(args, *update.Role)
		argN++
	}
	if update.Username != nil {
		setClauses = append(setClauses, fmt.Sprintf("username = $%d", argN))
		args = append(args, *update.Username)
		argN++
	}
	if update.AvatarURL != nil {
		setClauses = append(setClauses, fmt.Sprintf("avatar_url = $%d", argN))
		args = append(args, *update.AvatarURL)
		argN++
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewStorageError("begin update profile", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf("UPDATE users SET %s WHERE user_id = $%d", strings.Join(setClauses, ", "), argN)
	args = append(args, userID)

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.NewStorageError("update profile", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return domain.NewStorageError("update profile", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError("user", userID)
	}

	// 角色变更使该成员的历史投票全部失效，和资料更新同一事务提交或回滚
	if update.Role != nil {
		_, err = tx.ExecContext(ctx, `DELETE FROM votes WHERE user_id = $1`, userID)
		if err != nil {
			return domain.NewStorageError("invalidate votes", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.NewStorageError("commit update profile", err)
	}

	return nil
}

// ListMembersWithVotes 成员 LEFT JOIN 指定回合投票
func (r *PostgresUsersRepository) ListMembersWithVotes(ctx context.Context, roomID, roundID string) ([]*MemberVote, error) {
	if roomID == "" {
		return []*MemberVote{}, nil
	}

	query := `
		SELECT
			u.user_id::text,
			u.username,
			u.avatar_url,
			u.role,
			COALESCE(v.vote_value, $3)
		FROM users u
		LEFT JOIN votes v ON v.user_id = u.user_id AND v.round_id = $2
		WHERE u.room_id = $1
		ORDER BY u.joined_at ASC, u.user_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, roomID, roundID, domain.NoVoteValue)
	if err != nil {
		return nil, domain.NewStorageError("list members with votes", err)
	}
	defer rows.Close()

	members := []*MemberVote{}
	for rows.Next() {
		var m MemberVote
		if err := rows.Scan(
			&m.UserID,
			&m.Username,
			&m.AvatarURL,
			&m.Role,
			&m.Vote,
		); err != nil {
			return nil, domain.NewStorageError("scan member vote", err)
		}
		members = append(members, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list members with votes", err)
	}

	return members, nil
}

// ListRoomMembers 按加入顺序列出房间全部成员
func (r *PostgresUsersRepository) ListRoomMembers(ctx context.Context, roomID string) ([]*domain.User, error) {
	if roomID == "" {
		return []*domain.User{}, nil
	}

	query := `
		SELECT
			user_id::text,
			username,
			open_id,
			avatar_url,
			role,
			room_id::text
		FROM users
		WHERE room_id = $1
		ORDER BY joined_at ASC, user_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, domain.NewStorageError("list room members", err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.UserID,
			&user.Username,
			&user.OpenID,
			&user.AvatarURL,
			&user.Role,
			&user.RoomID,
		); err != nil {
			return nil, domain.NewStorageError("scan user", err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list room members", err)
	}

	return users, nil
}
