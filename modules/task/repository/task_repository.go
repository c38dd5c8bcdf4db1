package repository

import (
	"campusflow/core/database"
	"campusflow/core/logger"
	"campusflow/modules/task/entity"
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Task, error)
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Task, error)
	ListIncompleteDueBetween(ctx context.Context, from, to time.Time) ([]entity.Task, error)
}

const taskColumns = `id, user_id, title, notes, due_at, course, priority, completed, completed_at, reminder_at, created_at, updated_at`

type TaskRepository struct {
	db database.IDatabase
}

func NewTaskRepository(db database.IDatabase) TaskRepositoryInterface {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, title, notes, due_at, course, priority, completed, completed_at, reminder_at, created_at, updated_at)
		VALUES (:id, :user_id, :title, :notes, :due_at, :course, :priority, :completed, :completed_at, :reminder_at, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		logger.Error("TaskRepository:Create", err)
		return err
	}
	return nil
}

func (r *TaskRepository) get(ctx context.Context, query string, args ...any) (*entity.Task, error) {
	var task entity.Task
	if err := r.db.GetContext(ctx, &task, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TaskRepository:Get", err)
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	return r.get(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
}

// GetOwned hides other users' tasks behind a nil result.
func (r *TaskRepository) GetOwned(ctx context.Context, id, userID uuid.UUID) (*entity.Task, error) {
	return r.get(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
}

func (r *TaskRepository) Update(ctx context.Context, task *entity.Task) error {
	task.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE tasks SET title = :title, notes = :notes, due_at = :due_at, course = :course, priority = :priority,
			completed = :completed, completed_at = :completed_at, reminder_at = :reminder_at, updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id
	`
	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		logger.Error("TaskRepository:Update", err)
		return err
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	var deleted uuid.UUID
	err := r.db.GetContext(ctx, &deleted, `DELETE FROM tasks WHERE id = $1 AND user_id = $2 RETURNING id`, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		logger.Error("TaskRepository:Delete", err)
		return false, err
	}
	return true, nil
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Task, error) {
	var tasks []entity.Task
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY due_at ASC, created_at ASC`
	if err := r.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		logger.Error("TaskRepository:ListByUser", err)
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) ListIncompleteDueBetween(ctx context.Context, from, to time.Time) ([]entity.Task, error) {
	var tasks []entity.Task
	query := `
		SELECT ` + taskColumns + ` FROM tasks
		WHERE completed = FALSE AND due_at >= $1 AND due_at < $2
		ORDER BY user_id, due_at ASC
	`
	if err := r.db.SelectContext(ctx, &tasks, query, from, to); err != nil {
		logger.Error("TaskRepository:ListIncompleteDueBetween", err)
		return nil, err
	}
	return tasks, nil
}
