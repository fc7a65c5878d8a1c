package display

import (
	"strings"

	"task-list/internal/errors"
	"task-list/internal/validation"
)

// ErrorMessage returns the text shown to the user for err. Missing draft
// fields are listed by name so they can be filled in and resubmitted.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	if ve, ok := validation.AsValidationError(err); ok {
		if onlyRequired(ve) {
			return "Please fill in all fields: " + strings.Join(ve.Fields(), ", ")
		}
		return ve.GetUserFriendlyMessage()
	}

	if _, ok := errors.AsAppError(err); ok {
		return errors.GetUserMessage(err)
	}

	return err.Error()
}

func onlyRequired(ve *validation.ValidationError) bool {
	for _, fe := range ve.Errors {
		if fe.Type != validation.ErrorTypeRequired {
			return false
		}
	}
	return ve.HasErrors()
}
