package validation

import (
	"task-list/internal/domain"
)

// Field names reported in validation errors.
const (
	FieldName     = "name"
	FieldDueDate  = "due date"
	FieldPriority = "priority"
	FieldStatus   = "status"
)

// TaskValidator provides validation for task drafts before they are added
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// ValidateDraft checks that the name and due date are present and that
// priority and status hold known values. Every failing field is reported.
func (tv *TaskValidator) ValidateDraft(draft domain.Draft) error {
	validationError := NewValidationError()

	if !tv.validator.IsNonEmptyString(draft.Name) {
		validationError.AddRequiredError(FieldName)
	}

	if !tv.validator.IsSetDate(draft.DueDate) {
		validationError.AddRequiredError(FieldDueDate)
	}

	if !draft.Priority.IsValid() {
		validationError.AddInvalidValueError(FieldPriority, draft.Priority, "must be one of high, medium, low")
	}

	if !draft.Status.IsValid() {
		validationError.AddInvalidValueError(FieldStatus, draft.Status, "must be complete or incomplete")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// CleanName returns the task name with surrounding whitespace removed.
func (tv *TaskValidator) CleanName(name string) string {
	return tv.validator.TrimAndValidateString(name)
}
