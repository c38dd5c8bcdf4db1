package mapper

import (
	"campusflow/modules/task/dto"
	"campusflow/modules/task/entity"
)

func ToTaskResponse(t *entity.Task) *dto.TaskResponse {
	if t == nil {
		return nil
	}
	return &dto.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Notes:       t.Notes,
		DueAt:       t.DueAt,
		Course:      t.Course,
		Priority:    t.Priority,
		Completed:   t.Completed,
		CompletedAt: t.CompletedAt,
		ReminderAt:  t.ReminderAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func ToTaskResponses(tasks []entity.Task) []dto.TaskResponse {
	out := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, *ToTaskResponse(&tasks[i]))
	}
	return out
}
