package domain

import (
	"cmp"
	"strings"

	"task-list/internal/errors"
)

// FilterMode selects tasks by status before sorting.
type FilterMode string

const (
	FilterAll        FilterMode = "all"
	FilterComplete   FilterMode = "complete"
	FilterIncomplete FilterMode = "incomplete"
)

// Matches reports whether task passes the filter.
func (f FilterMode) Matches(task Task) bool {
	switch f {
	case FilterComplete:
		return task.Status == StatusComplete
	case FilterIncomplete:
		return task.Status == StatusIncomplete
	default:
		return true
	}
}

// IsValid reports whether f is a known filter mode.
func (f FilterMode) IsValid() bool {
	return f == FilterAll || f == FilterComplete || f == FilterIncomplete
}

// Next cycles all -> complete -> incomplete -> all.
func (f FilterMode) Next() FilterMode {
	switch f {
	case FilterAll:
		return FilterComplete
	case FilterComplete:
		return FilterIncomplete
	default:
		return FilterAll
	}
}

// ParseFilterMode parses a filter mode name, ignoring case.
func ParseFilterMode(s string) (FilterMode, error) {
	f := FilterMode(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", errors.NewInvalidInputError("filter", s, "must be one of all, complete, incomplete")
	}
	return f, nil
}

// SortMode is the ordering key applied to the filtered view.
type SortMode string

const (
	SortByPriority SortMode = "priority"
	SortByDueDate  SortMode = "dueDate"
)

// Compare orders a before b (negative), after b (positive) or as a tie (zero).
func (s SortMode) Compare(a, b Task) int {
	switch s {
	case SortByDueDate:
		return a.DueDate.Compare(b.DueDate)
	default:
		return cmp.Compare(a.Priority.Rank(), b.Priority.Rank())
	}
}

// IsValid reports whether s is a known sort mode.
func (s SortMode) IsValid() bool {
	return s == SortByPriority || s == SortByDueDate
}

// Next toggles between priority and due date ordering.
func (s SortMode) Next() SortMode {
	if s == SortByPriority {
		return SortByDueDate
	}
	return SortByPriority
}

// ParseSortMode parses a sort mode. "dueDate", "due-date", "due_date" and
// "due" all select due date ordering.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "priority":
		return SortByPriority, nil
	case "duedate", "due-date", "due_date", "due":
		return SortByDueDate, nil
	default:
		return "", errors.NewInvalidInputError("sort", s, "must be priority or dueDate")
	}
}
