package repository

import (
	"campusflow/core/database"
	"campusflow/core/logger"
	"campusflow/modules/event/entity"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows approved, listable events. Zero fields are ignored.
type ListFilter struct {
	Category     string
	LocationType string
	From         *time.Time
	To           *time.Time
	RSVPUserID   *uuid.UUID
	Limit        int
}

type EventRepositoryInterface interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter) ([]entity.Event, error)
	ListByStatus(ctx context.Context, status string) ([]entity.Event, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error)
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error
	SetCover(ctx context.Context, id uuid.UUID, url string) error

	GetRSVP(ctx context.Context, eventID, userID uuid.UUID) (*entity.EventRSVP, error)
	ChangeRSVP(ctx context.Context, eventID, userID uuid.UUID, next string) (*entity.RSVPChange, error)
	ListRSVPsByUser(ctx context.Context, userID uuid.UUID) ([]entity.UserRSVP, error)
	ListGoingUserIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error)
}

const eventColumns = `id, title, description, category, starts_at, ends_at, location_type, location_value,
	visibility, group_id, host_id, host_name, capacity, attendee_count, interested_count, status, featured,
	cover_url, created_at, updated_at`

type EventRepository struct {
	db database.IDatabase
}

func NewEventRepository(db database.IDatabase) EventRepositoryInterface {
	return &EventRepository{db: db}
}

func prefixed(alias string) string {
	cols := strings.Split(eventColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

func (r *EventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (id, title, description, category, starts_at, ends_at, location_type, location_value,
			visibility, group_id, host_id, host_name, capacity, attendee_count, interested_count, status, featured,
			cover_url, created_at, updated_at)
		VALUES (:id, :title, :description, :category, :starts_at, :ends_at, :location_type, :location_value,
			:visibility, :group_id, :host_id, :host_name, :capacity, :attendee_count, :interested_count, :status, :featured,
			:cover_url, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		logger.Error("EventRepository:Create", err)
		return err
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	var event entity.Event
	if err := r.db.GetContext(ctx, &event, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetByID", err)
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) Update(ctx context.Context, event *entity.Event) error {
	event.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE events SET title = :title, description = :description, category = :category,
			starts_at = :starts_at, ends_at = :ends_at, location_type = :location_type,
			location_value = :location_value, visibility = :visibility, capacity = :capacity,
			status = :status, updated_at = :updated_at
		WHERE id = :id
	`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		logger.Error("EventRepository:Update", err)
		return err
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		logger.Error("EventRepository:Delete", err)
		return err
	}
	return nil
}

// List returns approved public and group events ordered by start time.
func (r *EventRepository) List(ctx context.Context, filter ListFilter) ([]entity.Event, error) {
	conditions := []string{
		"e.status = 'approved'",
		"e.visibility IN ('public', 'group')",
	}
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.Category != "" {
		add("e.category = $%d", filter.Category)
	}
	if filter.LocationType != "" {
		add("e.location_type = $%d", filter.LocationType)
	}
	if filter.From != nil {
		add("e.starts_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("e.starts_at <= $%d", *filter.To)
	}
	if filter.RSVPUserID != nil {
		add("EXISTS (SELECT 1 FROM event_rsvps r WHERE r.event_id = e.id AND r.user_id = $%d)", *filter.RSVPUserID)
	}

	query := `SELECT ` + prefixed("e") + ` FROM events e WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY e.starts_at ASC, e.created_at ASC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var events []entity.Event
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		logger.Error("EventRepository:List", err)
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) ListByStatus(ctx context.Context, status string) ([]entity.Event, error) {
	var events []entity.Event
	query := `SELECT ` + eventColumns + ` FROM events WHERE status = $1 ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &events, query, status); err != nil {
		logger.Error("EventRepository:ListByStatus", err)
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM events WHERE status = $1`, status); err != nil {
		logger.Error("EventRepository:CountByStatus", err)
		return 0, err
	}
	return count, nil
}

// TransitionStatus is a compare-and-set; it reports false when the event was not in from.
func (r *EventRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
	var updated uuid.UUID
	query := `UPDATE events SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2 RETURNING id`
	if err := r.db.GetContext(ctx, &updated, query, id, from, to); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		logger.Error("EventRepository:TransitionStatus", err)
		return false, err
	}
	return true, nil
}

func (r *EventRepository) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	if err := r.db.ExecContext(ctx, `UPDATE events SET featured = $2, updated_at = NOW() WHERE id = $1`, id, featured); err != nil {
		logger.Error("EventRepository:SetFeatured", err)
		return err
	}
	return nil
}

func (r *EventRepository) SetCover(ctx context.Context, id uuid.UUID, url string) error {
	if err := r.db.ExecContext(ctx, `UPDATE events SET cover_url = $2, updated_at = NOW() WHERE id = $1`, id, url); err != nil {
		logger.Error("EventRepository:SetCover", err)
		return err
	}
	return nil
}

func (r *EventRepository) GetRSVP(ctx context.Context, eventID, userID uuid.UUID) (*entity.EventRSVP, error) {
	var rsvp entity.EventRSVP
	query := `SELECT id, event_id, user_id, status, created_at, updated_at FROM event_rsvps WHERE event_id = $1 AND user_id = $2`
	if err := r.db.GetContext(ctx, &rsvp, query, eventID, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetRSVP", err)
		return nil, err
	}
	return &rsvp, nil
}

// ChangeRSVP moves the user's RSVP to next ("" removes it) and adjusts the event
// counters in the same transaction. The event row is locked for the duration.
func (r *EventRepository) ChangeRSVP(ctx context.Context, eventID, userID uuid.UUID, next string) (*entity.RSVPChange, error) {
	change := &entity.RSVPChange{Next: next}

	err := r.db.WithTx(ctx, func(tx database.Querier) error {
		var event entity.Event
		if err := tx.GetContext(ctx, &event, `SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, eventID); err != nil {
			if err == sql.ErrNoRows {
				return entity.ErrEventNotFound
			}
			return err
		}

		err := tx.GetContext(ctx, &change.Prev, `SELECT status FROM event_rsvps WHERE event_id = $1 AND user_id = $2`, eventID, userID)
		if err != nil && err != sql.ErrNoRows {
			return err
		}

		going, interested, err := entity.PlanRSVP(&event, change.Prev, next)
		if err != nil {
			return err
		}
		change.AttendeeCount = event.AttendeeCount
		change.InterestedCount = event.InterestedCount
		if change.Prev == next {
			return nil
		}

		if next == "" {
			if _, err := tx.ExecContext(ctx, `DELETE FROM event_rsvps WHERE event_id = $1 AND user_id = $2`, eventID, userID); err != nil {
				return err
			}
		} else {
			upsert := `
				INSERT INTO event_rsvps (id, event_id, user_id, status, created_at, updated_at)
				VALUES ($1, $2, $3, $4, NOW(), NOW())
				ON CONFLICT (event_id, user_id) DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()
			`
			if _, err := tx.ExecContext(ctx, upsert, uuid.New(), eventID, userID, next); err != nil {
				return err
			}
		}

		counters := `
			UPDATE events
			SET attendee_count = GREATEST(attendee_count + $2, 0),
				interested_count = GREATEST(interested_count + $3, 0),
				updated_at = NOW()
			WHERE id = $1
			RETURNING attendee_count, interested_count
		`
		return tx.QueryRowxContext(ctx, counters, eventID, going, interested).Scan(&change.AttendeeCount, &change.InterestedCount)
	})
	if err != nil {
		if err != entity.ErrEventFull && err != entity.ErrEventNotFound {
			logger.Error("EventRepository:ChangeRSVP", err)
		}
		return nil, err
	}
	return change, nil
}

func (r *EventRepository) ListRSVPsByUser(ctx context.Context, userID uuid.UUID) ([]entity.UserRSVP, error) {
	var rows []entity.UserRSVP
	query := `
		SELECT ` + prefixed("e") + `, r.status AS rsvp_status
		FROM event_rsvps r
		JOIN events e ON e.id = r.event_id
		WHERE r.user_id = $1
		ORDER BY e.starts_at ASC
	`
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		logger.Error("EventRepository:ListRSVPsByUser", err)
		return nil, err
	}
	return rows, nil
}

func (r *EventRepository) ListGoingUserIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `SELECT user_id FROM event_rsvps WHERE event_id = $1 AND status = 'going'`
	if err := r.db.SelectContext(ctx, &ids, query, eventID); err != nil {
		logger.Error("EventRepository:ListGoingUserIDs", err)
		return nil, err
	}
	return ids, nil
}
