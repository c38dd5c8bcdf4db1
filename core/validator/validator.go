package validator

import (
	"campusflow/core/constants"
	"campusflow/core/controller"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

	once     sync.Once
	instance *validator.Validate
)

type ValidationResult struct {
	Errors []controller.ValidationError `json:"errors"`
}

func (r *ValidationResult) HasError() bool {
	return len(r.Errors) > 0
}

func (r *ValidationResult) Add(field, message string) {
	r.Errors = append(r.Errors, controller.NewValidationError(field, message))
}

// Details is the value rendered under "details" in a 400 response.
func (r *ValidationResult) Details() controller.ValidationDetails {
	return controller.ValidationDetails{Errors: r.Errors}
}

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
			return IsEmail(fl.Field().String())
		})
		_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			return IsClock(fl.Field().String())
		})
		_ = v.RegisterValidation("uuid_list", func(fl validator.FieldLevel) bool {
			list, ok := fl.Field().Interface().([]string)
			if !ok {
				return false
			}
			for _, s := range list {
				if _, err := uuid.Parse(s); err != nil {
					return false
				}
			}
			return true
		})
		instance = v
	})
	return instance
}

func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func IsClock(s string) bool {
	return clockPattern.MatchString(s)
}

// ValidatePassword returns the user facing message for a weak password, or "".
func ValidatePassword(password string) string {
	if len([]rune(password)) < constants.MinPasswordLength {
		return fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength)
	}
	return ""
}

// Struct runs tag based validation and collects one message per failing field.
func Struct(s any) *ValidationResult {
	result := &ValidationResult{}
	err := get().Struct(s)
	if err == nil {
		return result
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		result.Add("body", "Invalid input")
		return result
	}
	for _, fe := range fieldErrs {
		result.Add(fe.Field(), message(fe))
	}
	return result
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "loose_email", "email":
		return "Please enter a valid email address"
	case "hhmm":
		return "Must be a time in HH:MM format"
	case "uuid", "uuid4", "uuid_list":
		return "Must be a valid id"
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "gte", "gtefield":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	default:
		return "Invalid value"
	}
}
