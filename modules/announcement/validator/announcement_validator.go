package validator

import (
	"campusflow/core/utils"
	"campusflow/core/validator"
	"campusflow/modules/announcement/dto"
	"campusflow/modules/announcement/entity"
	"strings"
)

func ValidateCreateAnnouncement(req *dto.CreateAnnouncementRequest) *validator.ValidationResult {
	result := validator.Struct(req)
	if req.Title != "" && utils.Sanitize(req.Title) == "" {
		result.Add("title", "Title is required")
	}
	if req.Body != "" && strings.TrimSpace(req.Body) == "" {
		result.Add("body", "Body is required")
	}
	switch req.Audience {
	case entity.AudienceGroup:
		if req.TargetID == "" {
			result.Add("target_id", "Required when audience is group")
		}
	case entity.AudienceYear:
		if req.TargetYear == nil {
			result.Add("target_year", "Required when audience is year")
		}
	}
	return result
}
