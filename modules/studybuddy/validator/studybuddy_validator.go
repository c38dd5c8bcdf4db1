package validator

import (
	"campusflow/core/validator"
	"campusflow/modules/studybuddy/dto"
)

func ValidateCreateRequest(req *dto.CreateRequest) *validator.ValidationResult {
	return validator.Struct(req)
}
