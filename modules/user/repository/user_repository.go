package repository

import (
	"campusflow/core/database"
	"campusflow/core/logger"
	"campusflow/modules/user/entity"
	"context"
	"database/sql"
	stdErrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrEmailTaken = stdErrors.New("email already registered")

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByGoogleSub(ctx context.Context, sub string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.User, error)
	UpdateProfile(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	LinkGoogle(ctx context.Context, id uuid.UUID, sub string) error
	TouchLastSeen(ctx context.Context, id uuid.UUID, at time.Time) error
	SetPushToken(ctx context.Context, id uuid.UUID, token *string) error
	SetAvatar(ctx context.Context, id uuid.UUID, url string) error
	SetRoles(ctx context.Context, id uuid.UUID, organizer, admin bool) error

	Block(ctx context.Context, blockerID, blockedID uuid.UUID) error
	Unblock(ctx context.Context, blockerID, blockedID uuid.UUID) error
	ListBlocked(ctx context.Context, blockerID uuid.UUID) ([]entity.User, error)
	IsBlockedEither(ctx context.Context, a, b uuid.UUID) (bool, error)
	BlockedEither(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	ListOthers(ctx context.Context, exclude uuid.UUID, course string) ([]entity.User, error)
	ListIDsByYear(ctx context.Context, year int) ([]uuid.UUID, error)
	ListAllIDs(ctx context.Context) ([]uuid.UUID, error)
	Count(ctx context.Context) (int, error)
}

const userColumns = `id, email, password_hash, google_sub, name, course, year, interests, bio, avatar_url,
	role_student, role_organizer, role_admin, quiet_start, quiet_end, quiet_enabled,
	push_token, last_seen, created_at, updated_at`

type UserRepository struct {
	db database.IDatabase
}

func NewUserRepository(db database.IDatabase) UserRepositoryInterface {
	return &UserRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return stdErrors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, google_sub, name, course, year, interests, bio, avatar_url,
			role_student, role_organizer, role_admin, quiet_start, quiet_end, quiet_enabled, created_at, updated_at)
		VALUES (:id, :email, :password_hash, :google_sub, :name, :course, :year, :interests, :bio, :avatar_url,
			:role_student, :role_organizer, :role_admin, :quiet_start, :quiet_end, :quiet_enabled, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		logger.Error("UserRepository:Create", err)
		return err
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	var user entity.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("UserRepository:Get", "where", where, "error", err)
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "lower(email) = $1", strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepository) GetByGoogleSub(ctx context.Context, sub string) (*entity.User, error) {
	return r.getOne(ctx, "google_sub = $1", sub)
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.User, error) {
	if len(ids) == 0 {
		return []entity.User{}, nil
	}
	query, args, err := sqlx.In(`SELECT `+userColumns+` FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var users []entity.User
	if err := r.db.SelectContext(ctx, &users, r.db.SQLx().Rebind(query), args...); err != nil {
		logger.Error("UserRepository:GetByIDs", err)
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE users SET name = :name, course = :course, year = :year, interests = :interests, bio = :bio,
			quiet_start = :quiet_start, quiet_end = :quiet_end, quiet_enabled = :quiet_enabled, updated_at = :updated_at
		WHERE id = :id
	`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		logger.Error("UserRepository:UpdateProfile", err)
		return err
	}
	return nil
}

func (r *UserRepository) exec(ctx context.Context, op, query string, args ...any) error {
	if err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.Error("UserRepository:"+op, err)
		return err
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.exec(ctx, "UpdatePassword", `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`, id, hash)
}

func (r *UserRepository) LinkGoogle(ctx context.Context, id uuid.UUID, sub string) error {
	return r.exec(ctx, "LinkGoogle", `UPDATE users SET google_sub = $2, updated_at = NOW() WHERE id = $1`, id, sub)
}

func (r *UserRepository) TouchLastSeen(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.exec(ctx, "TouchLastSeen", `UPDATE users SET last_seen = $2 WHERE id = $1`, id, at)
}

func (r *UserRepository) SetPushToken(ctx context.Context, id uuid.UUID, token *string) error {
	return r.exec(ctx, "SetPushToken", `UPDATE users SET push_token = $2, updated_at = NOW() WHERE id = $1`, id, token)
}

func (r *UserRepository) SetAvatar(ctx context.Context, id uuid.UUID, url string) error {
	return r.exec(ctx, "SetAvatar", `UPDATE users SET avatar_url = $2, updated_at = NOW() WHERE id = $1`, id, url)
}

func (r *UserRepository) SetRoles(ctx context.Context, id uuid.UUID, organizer, admin bool) error {
	return r.exec(ctx, "SetRoles", `UPDATE users SET role_organizer = $2, role_admin = $3, updated_at = NOW() WHERE id = $1`, id, organizer, admin)
}

func (r *UserRepository) Block(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	return r.exec(ctx, "Block", `
		INSERT INTO user_blocks (blocker_id, blocked_id) VALUES ($1, $2)
		ON CONFLICT (blocker_id, blocked_id) DO NOTHING`, blockerID, blockedID)
}

func (r *UserRepository) Unblock(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	return r.exec(ctx, "Unblock", `DELETE FROM user_blocks WHERE blocker_id = $1 AND blocked_id = $2`, blockerID, blockedID)
}

func (r *UserRepository) ListBlocked(ctx context.Context, blockerID uuid.UUID) ([]entity.User, error) {
	query := `
		SELECT ` + prefixed("u") + ` FROM users u
		JOIN user_blocks b ON b.blocked_id = u.id
		WHERE b.blocker_id = $1
		ORDER BY b.created_at DESC
	`
	var users []entity.User
	if err := r.db.SelectContext(ctx, &users, query, blockerID); err != nil {
		logger.Error("UserRepository:ListBlocked", err)
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) IsBlockedEither(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_blocks
			WHERE (blocker_id = $1 AND blocked_id = $2) OR (blocker_id = $2 AND blocked_id = $1)
		)
	`
	if err := r.db.GetContext(ctx, &exists, query, a, b); err != nil {
		logger.Error("UserRepository:IsBlockedEither", err)
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) BlockedEither(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT blocked_id FROM user_blocks WHERE blocker_id = $1
		UNION
		SELECT blocker_id FROM user_blocks WHERE blocked_id = $1
	`
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		logger.Error("UserRepository:BlockedEither", err)
		return nil, err
	}
	return ids, nil
}

func (r *UserRepository) ListOthers(ctx context.Context, exclude uuid.UUID, course string) ([]entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id <> $1`
	args := []any{exclude}
	if course != "" {
		query += ` AND lower(course) = lower($2)`
		args = append(args, course)
	}
	query += ` ORDER BY name ASC LIMIT 200`

	var users []entity.User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		logger.Error("UserRepository:ListOthers", err)
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) ListIDsByYear(ctx context.Context, year int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM users WHERE year = $1`, year); err != nil {
		logger.Error("UserRepository:ListIDsByYear", err)
		return nil, err
	}
	return ids, nil
}

func (r *UserRepository) ListAllIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM users`); err != nil {
		logger.Error("UserRepository:ListAllIDs", err)
		return nil, err
	}
	return ids, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		logger.Error("UserRepository:Count", err)
		return 0, err
	}
	return n, nil
}

func prefixed(alias string) string {
	cols := strings.Split(strings.Join(strings.Fields(userColumns), " "), ", ")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}
