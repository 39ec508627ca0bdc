package validator

import (
	"fmt"
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	hasSpecialRgx = regexp.MustCompile(`[!@#$%^&*]`)
	phoneRgx      = regexp.MustCompile(`^\+[1-9]\d{6,14}$`)
	seatLetterRgx = regexp.MustCompile(`^[A-Z]$`)
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("password", validatePassword)
	validator.RegisterValidation("e164_phone", validatePhone)
	validator.RegisterValidation("seat_letter", validateSeatLetter)

	return validator
}

// validatePhone accepts E.164 numbers only; the phone is the login identity,
// so normalization happens on the client side.
func validatePhone(fl validator.FieldLevel) bool {
	return phoneRgx.MatchString(fl.Field().String())
}

func validateSeatLetter(fl validator.FieldLevel) bool {
	return seatLetterRgx.MatchString(fl.Field().String())
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 || len(password) > 25 {
		return false
	}

	containsUpper, containsLower, containsDigit, containsSpecial := false, false, false, false

	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			containsUpper = true
		case unicode.IsLower(ch):
			containsLower = true
		case unicode.IsDigit(ch):
			containsDigit = true
		case hasSpecialRgx.MatchString(string(ch)):
			containsSpecial = true
		}
	}

	return containsUpper && containsLower && containsDigit && containsSpecial
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must contain at least %s items or characters", err.Param())
	case "max":
		return fmt.Sprintf("must contain at most %s items or characters", err.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "alpha":
		return "must contain only letters"
	case "e164_phone":
		return "must be a phone number in E.164 format, e.g. +905551234567"
	case "seat_letter":
		return "must be a single uppercase row letter"
	case "password":
		return "must be 8 to 25 characters long and include at least one uppercase letter, one lowercase letter, " +
			"one number, and one special character (!@#$%^&*)"
	default:
		return "is invalid"
	}
}
