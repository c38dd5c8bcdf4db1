package repository

import (
	"campusflow/core/database"
	"campusflow/core/logger"
	"campusflow/modules/announcement/entity"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type AnnouncementRepositoryInterface interface {
	Create(ctx context.Context, a *entity.Announcement) error
	ListVisible(ctx context.Context, year int, groupIDs []uuid.UUID, now time.Time) ([]entity.Announcement, error)
}

const announcementColumns = `id, title, body, audience, target_id, target_year, priority, created_by, expires_at, created_at, updated_at`

type AnnouncementRepository struct {
	db database.IDatabase
}

func NewAnnouncementRepository(db database.IDatabase) AnnouncementRepositoryInterface {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) Create(ctx context.Context, a *entity.Announcement) error {
	query := `
		INSERT INTO announcements (id, title, body, audience, target_id, target_year, priority, created_by, expires_at, created_at, updated_at)
		VALUES (:id, :title, :body, :audience, :target_id, :target_year, :priority, :created_by, :expires_at, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, a); err != nil {
		logger.Error("AnnouncementRepository:Create", err)
		return err
	}
	return nil
}

// ListVisible returns live announcements for everyone, the given year or any of groupIDs,
// highest priority first.
func (r *AnnouncementRepository) ListVisible(ctx context.Context, year int, groupIDs []uuid.UUID, now time.Time) ([]entity.Announcement, error) {
	ids := make(pq.StringArray, len(groupIDs))
	for i, id := range groupIDs {
		ids[i] = id.String()
	}

	list := []entity.Announcement{}
	query := `
		SELECT ` + announcementColumns + `
		FROM announcements
		WHERE (expires_at IS NULL OR expires_at > $1)
		  AND (audience = 'all'
		       OR (audience = 'year' AND target_year = $2)
		       OR (audience = 'group' AND target_id = ANY($3::UUID[])))
		ORDER BY CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, created_at DESC
	`
	if err := r.db.SelectContext(ctx, &list, query, now, year, ids); err != nil {
		logger.Error("AnnouncementRepository:ListVisible", err)
		return nil, err
	}
	return list, nil
}
