package validator

import (
	"campusflow/core/constants"
	"campusflow/core/utils"
	"campusflow/core/validator"
	"campusflow/modules/user/dto"
	"fmt"
)

func ValidateUpdateProfile(req *dto.UpdateProfileRequest) *validator.ValidationResult {
	result := validator.Struct(req)
	if req.Name != nil {
		name := utils.Sanitize(*req.Name)
		if name == "" {
			result.Add("name", "Name cannot be empty")
		} else if utils.CharLen(name) > 60 {
			result.Add("name", "Must be at most 60 characters")
		}
	}
	if req.Bio != nil && utils.CharLen(utils.Sanitize(*req.Bio)) > constants.MaxBioLength {
		result.Add("bio", fmt.Sprintf("Must be at most %d characters", constants.MaxBioLength))
	}
	return result
}

func ValidatePushToken(req *dto.PushTokenRequest) *validator.ValidationResult {
	return validator.Struct(req)
}
