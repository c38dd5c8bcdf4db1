package validator

import (
	"campusflow/core/constants"
	"campusflow/core/utils"
	"campusflow/core/validator"
	"campusflow/modules/chat/dto"
	"fmt"
	"strings"
)

func ValidateOpenDM(req *dto.OpenDMRequest) *validator.ValidationResult {
	return validator.Struct(req)
}

func ValidateSendMessage(req *dto.SendMessageRequest) *validator.ValidationResult {
	result := &validator.ValidationResult{}
	text := strings.TrimSpace(req.Text)
	switch {
	case text == "":
		result.Add("text", "Message text is required")
	case utils.CharLen(text) > constants.MaxMessageLength:
		result.Add("text", fmt.Sprintf("Must be at most %d characters", constants.MaxMessageLength))
	}
	return result
}

func ValidateMessageQuery(q *dto.MessageQuery) *validator.ValidationResult {
	return validator.Struct(q)
}
