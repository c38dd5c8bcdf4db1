package repository

import (
	"campusflow/core/database"
	"campusflow/core/logger"
	"campusflow/modules/studybuddy/entity"
	"context"
	"database/sql"
	stdErrors "errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type StudyBuddyRepositoryInterface interface {
	Create(ctx context.Context, req *entity.Request) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Request, error)
	ListIncomingPending(ctx context.Context, targetID uuid.UUID) ([]entity.Request, error)
	Respond(ctx context.Context, id uuid.UUID, status string) (bool, error)
}

const requestColumns = `id, requester_id, target_id, course, message, status, created_at, updated_at`

type StudyBuddyRepository struct {
	db database.IDatabase
}

func NewStudyBuddyRepository(db database.IDatabase) StudyBuddyRepositoryInterface {
	return &StudyBuddyRepository{db: db}
}

// Create maps the pending-pair unique index onto ErrDuplicatePending.
func (r *StudyBuddyRepository) Create(ctx context.Context, req *entity.Request) error {
	query := `
		INSERT INTO study_buddy_requests (id, requester_id, target_id, course, message, status, created_at, updated_at)
		VALUES (:id, :requester_id, :target_id, :course, :message, :status, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		var pqErr *pq.Error
		if stdErrors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrDuplicatePending
		}
		logger.Error("StudyBuddyRepository:Create", err)
		return err
	}
	return nil
}

func (r *StudyBuddyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Request, error) {
	var req entity.Request
	err := r.db.GetContext(ctx, &req, `SELECT `+requestColumns+` FROM study_buddy_requests WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("StudyBuddyRepository:GetByID", err)
		return nil, err
	}
	return &req, nil
}

func (r *StudyBuddyRepository) ListIncomingPending(ctx context.Context, targetID uuid.UUID) ([]entity.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM study_buddy_requests
		WHERE target_id = $1 AND status = 'pending'
		ORDER BY created_at DESC`
	var reqs []entity.Request
	if err := r.db.SelectContext(ctx, &reqs, query, targetID); err != nil {
		logger.Error("StudyBuddyRepository:ListIncomingPending", err)
		return nil, err
	}
	return reqs, nil
}

// Respond moves a pending request to status. It reports false when the request was no longer pending.
func (r *StudyBuddyRepository) Respond(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	var updated uuid.UUID
	err := r.db.GetContext(ctx, &updated, `
		UPDATE study_buddy_requests SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING id
	`, id, status)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		logger.Error("StudyBuddyRepository:Respond", err)
		return false, err
	}
	return true, nil
}
