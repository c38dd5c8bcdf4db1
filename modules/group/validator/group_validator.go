package validator

import (
	"campusflow/core/utils"
	"campusflow/core/validator"
	"campusflow/modules/group/dto"
)

const maxGroupNameLength = 80

func checkName(result *validator.ValidationResult, name string) {
	clean := utils.Sanitize(name)
	switch {
	case clean == "":
		result.Add("name", "Name is required")
	case utils.CharLen(clean) > maxGroupNameLength:
		result.Add("name", "Must be at most 80 characters")
	}
}

func ValidateGroupRequest(req *dto.GroupRequest) *validator.ValidationResult {
	result := validator.Struct(req)
	if req.Name != "" {
		checkName(result, req.Name)
	}
	return result
}

func ValidateUpdateGroup(req *dto.UpdateGroupRequest) *validator.ValidationResult {
	result := validator.Struct(req)
	if req.Name != nil {
		checkName(result, *req.Name)
	}
	return result
}

func ValidateGroupType(groupType string) *validator.ValidationResult {
	result := &validator.ValidationResult{}
	if groupType != "" && groupType != "society" && groupType != "study" {
		result.Add("type", "Must be one of: society study")
	}
	return result
}
