package repository

import (
	"campusflow/core/database"
	"campusflow/core/logger"
	"campusflow/modules/report/entity"
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type ReportRepositoryInterface interface {
	Create(ctx context.Context, report *entity.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Report, error)
	List(ctx context.Context, status string) ([]entity.Report, error)
	Review(ctx context.Context, id, reviewer uuid.UUID, action string, at time.Time) (bool, error)
	Close(ctx context.Context, id uuid.UUID) (bool, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}

const reportColumns = `id, reporter_id, target_type, target_id, reason, status, reviewed_by, reviewed_at, action, created_at, updated_at`

type ReportRepository struct {
	db database.IDatabase
}

func NewReportRepository(db database.IDatabase) ReportRepositoryInterface {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *entity.Report) error {
	query := `
		INSERT INTO reports (id, reporter_id, target_type, target_id, reason, status, action, created_at, updated_at)
		VALUES (:id, :reporter_id, :target_type, :target_id, :reason, :status, :action, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, report); err != nil {
		logger.Error("ReportRepository:Create", err)
		return err
	}
	return nil
}

func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	var report entity.Report
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	if err := r.db.GetContext(ctx, &report, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ReportRepository:GetByID", err)
		return nil, err
	}
	return &report, nil
}

// List returns the oldest reports first, optionally filtered by status.
func (r *ReportRepository) List(ctx context.Context, status string) ([]entity.Report, error) {
	reports := []entity.Report{}
	query := `SELECT ` + reportColumns + ` FROM reports WHERE ($1 = '' OR status = $1) ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &reports, query, status); err != nil {
		logger.Error("ReportRepository:List", err)
		return nil, err
	}
	return reports, nil
}

func (r *ReportRepository) Review(ctx context.Context, id, reviewer uuid.UUID, action string, at time.Time) (bool, error) {
	query := `
		UPDATE reports
		SET status = 'reviewed', reviewed_by = $2, reviewed_at = $3, action = $4, updated_at = $3
		WHERE id = $1 AND status = 'open'
		RETURNING id
	`
	return r.transition(ctx, "ReportRepository:Review", query, id, reviewer, at, action)
}

func (r *ReportRepository) Close(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE reports SET status = 'closed', updated_at = NOW()
		WHERE id = $1 AND status IN ('open', 'reviewed')
		RETURNING id
	`
	return r.transition(ctx, "ReportRepository:Close", query, id)
}

func (r *ReportRepository) transition(ctx context.Context, op, query string, args ...any) (bool, error) {
	var updated uuid.UUID
	if err := r.db.GetContext(ctx, &updated, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		logger.Error(op, err)
		return false, err
	}
	return true, nil
}

func (r *ReportRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM reports WHERE status = $1`, status); err != nil {
		logger.Error("ReportRepository:CountByStatus", err)
		return 0, err
	}
	return count, nil
}
