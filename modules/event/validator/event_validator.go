package validator

import (
	"campusflow/core/constants"
	"campusflow/core/utils"
	"campusflow/core/validator"
	"campusflow/modules/event/dto"
	"campusflow/modules/event/entity"
	"fmt"
	"time"
)

func checkTitle(result *validator.ValidationResult, title string) {
	clean := utils.Sanitize(title)
	if clean == "" {
		result.Add("title", "Title is required")
	} else if utils.CharLen(clean) > constants.MaxEventTitleLength {
		result.Add("title", fmt.Sprintf("Must be at most %d characters", constants.MaxEventTitleLength))
	}
}

func checkDescription(result *validator.ValidationResult, description string) {
	if utils.CharLen(utils.Sanitize(description)) > constants.MaxEventDescriptionLength {
		result.Add("description", fmt.Sprintf("Must be at most %d characters", constants.MaxEventDescriptionLength))
	}
}

func checkWindow(result *validator.ValidationResult, startsAt, endsAt time.Time) {
	if !startsAt.IsZero() && !endsAt.IsZero() && endsAt.Before(startsAt) {
		result.Add("ends_at", "Must not be before starts_at")
	}
}

func ValidateCreateEvent(req *dto.CreateEventRequest) *validator.ValidationResult {
	result := validator.Struct(req)
	if req.Title != "" {
		checkTitle(result, req.Title)
	}
	checkDescription(result, req.Description)
	checkWindow(result, req.StartsAt, req.EndsAt)
	if req.Visibility == entity.VisibilityGroup && req.GroupID == nil {
		result.Add("group_id", "Group events need a group_id")
	}
	return result
}

func ValidateUpdateEvent(req *dto.UpdateEventRequest) *validator.ValidationResult {
	result := validator.Struct(req)
	if req.Title != nil {
		checkTitle(result, *req.Title)
	}
	if req.Description != nil {
		checkDescription(result, *req.Description)
	}
	if req.StartsAt != nil && req.EndsAt != nil {
		checkWindow(result, *req.StartsAt, *req.EndsAt)
	}
	return result
}

func ValidateEventFilter(f *dto.EventFilter) *validator.ValidationResult {
	result := validator.Struct(f)
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		result.Add("to", "Must not be before from")
	}
	return result
}

func ValidateRSVP(req *dto.RSVPRequest) *validator.ValidationResult {
	return validator.Struct(req)
}

func ValidateFeature(req *dto.FeatureRequest) *validator.ValidationResult {
	return validator.Struct(req)
}
