package service

import (
	"campusflow/core/constants"
	"campusflow/core/errors"
	"campusflow/core/logger"
	"campusflow/core/queue"
	"campusflow/core/utils"
	"campusflow/modules/task/dto"
	"campusflow/modules/task/entity"
	"campusflow/modules/task/mapper"
	"campusflow/modules/task/repository"
	"context"
	"time"

	"github.com/google/uuid"
)

type TaskService struct {
	repo      repository.TaskRepositoryInterface
	scheduler queue.Scheduler
	loc       *time.Location
	now       func() time.Time
}

func NewTaskService(repo repository.TaskRepositoryInterface, scheduler queue.Scheduler, loc *time.Location) *TaskService {
	if loc == nil {
		loc = time.UTC
	}
	return &TaskService{repo: repo, scheduler: scheduler, loc: loc, now: time.Now}
}

func (s *TaskService) syncReminder(ctx context.Context, task *entity.Task) {
	id := queue.TaskReminderID(task.ID.String())
	at, ok := ReminderTime(task, s.now())
	if task.Completed || !ok {
		if err := s.scheduler.Cancel(ctx, id); err != nil {
			logger.Error("TaskService:CancelReminder", err)
		}
		return
	}
	if err := s.scheduler.Schedule(ctx, queue.TypeTaskReminder, id, queue.TaskReminderPayload{TaskID: task.ID.String()}, at); err != nil {
		logger.Error("TaskService:ScheduleReminder", err)
	}
}

func (s *TaskService) CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	priority := req.Priority
	if priority == "" {
		priority = entity.PriorityMed
	}
	task := &entity.Task{
		UserID:     userID,
		Title:      utils.Sanitize(req.Title),
		Notes:      utils.Sanitize(req.Notes),
		DueAt:      req.DueAt.UTC(),
		Course:     utils.Sanitize(req.Course),
		Priority:   priority,
		ReminderAt: utcPtr(req.ReminderAt),
	}
	task.Touch()

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create task", err)
	}
	s.syncReminder(ctx, task)
	return mapper.ToTaskResponse(task), nil
}

func (s *TaskService) owned(ctx context.Context, userID, id uuid.UUID) (*entity.Task, *errors.AppError) {
	task, err := s.repo.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get task", err)
	}
	if task == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "task not found", nil)
	}
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, userID, id uuid.UUID) (*dto.TaskResponse, *errors.AppError) {
	task, appErr := s.owned(ctx, userID, id)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToTaskResponse(task), nil
}

func (s *TaskService) UpdateTask(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	task, appErr := s.owned(ctx, userID, id)
	if appErr != nil {
		return nil, appErr
	}

	if req.Title != nil {
		task.Title = utils.Sanitize(*req.Title)
	}
	if req.Notes != nil {
		task.Notes = utils.Sanitize(*req.Notes)
	}
	if req.DueAt != nil {
		task.DueAt = req.DueAt.UTC()
	}
	if req.Course != nil {
		task.Course = utils.Sanitize(*req.Course)
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.ReminderAt != nil {
		task.ReminderAt = utcPtr(req.ReminderAt)
	}
	if req.Completed != nil {
		s.setCompleted(task, *req.Completed)
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update task", err)
	}
	s.syncReminder(ctx, task)
	return mapper.ToTaskResponse(task), nil
}

func (s *TaskService) setCompleted(task *entity.Task, completed bool) {
	task.Completed = completed
	if completed {
		now := s.now().UTC()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}
}

// ToggleTask flips completion on the one task and returns it.
func (s *TaskService) ToggleTask(ctx context.Context, userID, id uuid.UUID) (*dto.TaskResponse, *errors.AppError) {
	task, appErr := s.owned(ctx, userID, id)
	if appErr != nil {
		return nil, appErr
	}
	s.setCompleted(task, !task.Completed)
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to toggle task", err)
	}
	s.syncReminder(ctx, task)
	return mapper.ToTaskResponse(task), nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, id uuid.UUID) *errors.AppError {
	deleted, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "failed to delete task", err)
	}
	if !deleted {
		return errors.NewAppError(errors.ErrNotFound, "task not found", nil)
	}
	if err := s.scheduler.Cancel(ctx, queue.TaskReminderID(id.String())); err != nil {
		logger.Error("TaskService:DeleteTask:CancelReminder", err)
	}
	return nil
}

func (s *TaskService) ListTasks(ctx context.Context, userID uuid.UUID, f dto.TaskFilter) ([]dto.TaskResponse, *errors.AppError) {
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list tasks", err)
	}
	return mapper.ToTaskResponses(Filter(tasks, f, s.now(), s.loc)), nil
}

func (s *TaskService) Upcoming(ctx context.Context, userID uuid.UUID) ([]dto.TaskResponse, *errors.AppError) {
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list tasks", err)
	}
	return mapper.ToTaskResponses(Upcoming(tasks, s.now(), s.loc)), nil
}

func (s *TaskService) Stats(ctx context.Context, userID uuid.UUID) (*dto.TaskStats, *errors.AppError) {
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list tasks", err)
	}
	stats := Stats(tasks, s.now(), s.loc)
	return &stats, nil
}

// Lookup is used by the reminder job; it returns nil when the task is gone.
func (s *TaskService) Lookup(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	return s.repo.GetByID(ctx, id)
}

// DueToday groups incomplete tasks due today by owner, for the daily digest.
func (s *TaskService) DueToday(ctx context.Context) (map[uuid.UUID][]entity.Task, error) {
	from := StartOfDay(s.now(), s.loc)
	tasks, err := s.repo.ListIncompleteDueBetween(ctx, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	out := map[uuid.UUID][]entity.Task{}
	for _, t := range tasks {
		out[t.UserID] = append(out[t.UserID], t)
	}
	return out, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
