package validator

import (
	"campusflow/core/constants"
	"campusflow/core/utils"
	"campusflow/core/validator"
	"campusflow/modules/report/dto"
	"campusflow/modules/report/entity"
	"fmt"
)

func ValidateCreateReport(req *dto.CreateReportRequest) *validator.ValidationResult {
	result := validator.Struct(req)
	reason := utils.Sanitize(req.Reason)
	switch {
	case reason == "" && req.Reason != "":
		result.Add("reason", "Reason is required")
	case utils.CharLen(reason) > constants.MaxReportReasonLength:
		result.Add("reason", fmt.Sprintf("Must be at most %d characters", constants.MaxReportReasonLength))
	}
	return result
}

func ValidateReview(req *dto.ReviewRequest) *validator.ValidationResult {
	result := validator.Struct(req)
	if req.Action != "" && utils.Sanitize(req.Action) == "" {
		result.Add("action", "Action is required")
	}
	return result
}

func ValidateStatusFilter(status string) *validator.ValidationResult {
	result := &validator.ValidationResult{}
	switch status {
	case "", entity.StatusOpen, entity.StatusReviewed, entity.StatusClosed:
	default:
		result.Add("status", "Must be one of: open reviewed closed")
	}
	return result
}
