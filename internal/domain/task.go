package domain

import (
	"slices"
	"strings"
	"time"

	"task-list/internal/errors"
)

// DateLayout is the default layout for due dates entered and shown as text.
const DateLayout = "2006-01-02"

// Priority is the urgency of a task. Lower rank sorts first.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every priority in rank order.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// Rank returns 1 for high, 2 for medium, 3 for low and 0 for unknown values.
func (p Priority) Rank() int {
	return slices.Index(Priorities(), p) + 1
}

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	return p.Rank() != 0
}

// Next cycles high -> medium -> low -> high. Unknown values start at high.
func (p Priority) Next() Priority {
	all := Priorities()
	return all[p.Rank()%len(all)]
}

// ParsePriority parses a priority name, ignoring case and surrounding whitespace.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", errors.NewInvalidInputError("priority", s, "must be one of high, medium, low")
	}
	return p, nil
}

// Status is the completion state of a task.
type Status string

const (
	StatusIncomplete Status = "incomplete"
	StatusComplete   Status = "complete"
)

// IsValid reports whether s is one of the two known statuses.
func (s Status) IsValid() bool {
	return s == StatusComplete || s == StatusIncomplete
}

// Toggle flips complete and incomplete.
func (s Status) Toggle() Status {
	if s == StatusComplete {
		return StatusIncomplete
	}
	return StatusComplete
}

// ParseStatus parses a status name, ignoring case and surrounding whitespace.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", errors.NewInvalidInputError("status", s, "must be complete or incomplete")
	}
	return st, nil
}

// Task represents a task in the domain model.
// This is a pure domain model without database-specific concerns.
type Task struct {
	ID       int64
	Name     string
	Priority Priority
	DueDate  time.Time
	Status   Status
}

// IsComplete reports whether the task has been marked complete.
func (t Task) IsComplete() bool {
	return t.Status == StatusComplete
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return strings.TrimSpace(t.Name) != "" &&
		!t.DueDate.IsZero() &&
		t.Priority.IsValid() &&
		t.Status.IsValid()
}

// String returns the task name for display purposes.
func (t Task) String() string {
	return t.Name
}

// ParseDate parses a calendar date with the given layout. The result is
// midnight UTC so that dates compare by day only.
func ParseDate(s, layout string) (time.Time, error) {
	if layout == "" {
		layout = DateLayout
	}
	parsed, err := time.ParseInLocation(layout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, errors.NewInvalidInputError("due date", s, "expected format "+layout)
	}
	return NormalizeDate(parsed), nil
}

// NormalizeDate drops the clock part of t, keeping its calendar date in UTC.
func NormalizeDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
