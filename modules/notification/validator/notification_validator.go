package validator

import (
	"campusflow/core/validator"
	"campusflow/modules/notification/dto"
)

func ValidateMarkAsRead(req *dto.MarkAsReadRequest) *validator.ValidationResult {
	return validator.Struct(req)
}
