package validator

import (
	"campusflow/core/constants"
	"campusflow/core/utils"
	"campusflow/core/validator"
	"campusflow/modules/task/dto"
	"fmt"
)

func checkTitle(result *validator.ValidationResult, title string) {
	clean := utils.Sanitize(title)
	if clean == "" {
		result.Add("title", "Title is required")
	} else if utils.CharLen(clean) > constants.MaxTaskTitleLength {
		result.Add("title", fmt.Sprintf("Must be at most %d characters", constants.MaxTaskTitleLength))
	}
}

func checkNotes(result *validator.ValidationResult, notes string) {
	if utils.CharLen(utils.Sanitize(notes)) > constants.MaxTaskNotesLength {
		result.Add("notes", fmt.Sprintf("Must be at most %d characters", constants.MaxTaskNotesLength))
	}
}

func ValidateCreateTask(req *dto.CreateTaskRequest) *validator.ValidationResult {
	result := validator.Struct(req)
	if req.Title != "" {
		checkTitle(result, req.Title)
	}
	checkNotes(result, req.Notes)
	return result
}

func ValidateUpdateTask(req *dto.UpdateTaskRequest) *validator.ValidationResult {
	result := validator.Struct(req)
	if req.Title != nil {
		checkTitle(result, *req.Title)
	}
	if req.Notes != nil {
		checkNotes(result, *req.Notes)
	}
	if req.DueAt != nil && req.DueAt.IsZero() {
		result.Add("due_at", "This field is required")
	}
	return result
}

func ValidateTaskFilter(f *dto.TaskFilter) *validator.ValidationResult {
	return validator.Struct(f)
}
