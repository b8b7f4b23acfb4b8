package domain

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	FieldName  = "name"
	FieldEmail = "email"
	FieldPhone = "phone"
)

// ProfileFieldOrder is the fixed collection order for incomplete profiles.
var ProfileFieldOrder = []string{FieldName, FieldEmail, FieldPhone}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^(?:\+91[\-\s]?|0)?[6-9]\d{9}$`)
)

// ValidationError reports a rejected profile value. The session stays on the
// same field until a valid value arrives.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateProfileField checks value for the given field and returns the
// normalized form to store.
func ValidateProfileField(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	switch field {
	case FieldName:
		if value == "" {
			return "", &ValidationError{Field: FieldName, Reason: "name must not be empty"}
		}
		return value, nil
	case FieldEmail:
		if !emailPattern.MatchString(value) {
			return "", &ValidationError{Field: FieldEmail, Reason: "expected an address like name@example.com"}
		}
		return value, nil
	case FieldPhone:
		compact := strings.ReplaceAll(value, " ", "")
		if !phonePattern.MatchString(compact) {
			return "", &ValidationError{Field: FieldPhone, Reason: "expected a 10-digit mobile number"}
		}
		return compact, nil
	default:
		return "", fmt.Errorf("unknown profile field %q", field)
	}
}

// PromptForField is the chat prompt asking the candidate for a field.
func PromptForField(field string) string {
	switch field {
	case FieldName:
		return "Before we begin, what is your full name?"
	case FieldEmail:
		return "Thanks! What email address can we reach you at?"
	case FieldPhone:
		return "Almost there. What is your phone number?"
	default:
		return fmt.Sprintf("Please provide your %s.", field)
	}
}

// RepromptForField is the chat prompt after a rejected value.
func RepromptForField(field, reason string) string {
	return fmt.Sprintf("That doesn't look like a valid %s (%s). Please try again.", field, reason)
}
