// Package display renders task fields for people, shared by the shell and
// the terminal UI.
package display

import (
	"time"

	"github.com/dustin/go-humanize"

	"task-list/internal/domain"
)

// Formatter renders due dates and statuses.
type Formatter struct {
	DateFormat  string
	RelativeDue bool
}

// NewFormatter creates a Formatter. An empty layout means YYYY-MM-DD.
func NewFormatter(dateFormat string, relativeDue bool) *Formatter {
	if dateFormat == "" {
		dateFormat = domain.DateLayout
	}
	return &Formatter{DateFormat: dateFormat, RelativeDue: relativeDue}
}

// Due formats a due date, followed by its distance from now when relative
// display is on.
func (f *Formatter) Due(due, now time.Time) string {
	if due.IsZero() {
		return "-"
	}
	formatted := due.Format(f.DateFormat)
	if !f.RelativeDue {
		return formatted
	}
	return formatted + " (" + RelativeDue(due, now) + ")"
}

// RelativeDue describes due against the calendar day of now: "today",
// "2 days from now", "1 day ago".
func RelativeDue(due, now time.Time) string {
	today := domain.NormalizeDate(now)
	due = domain.NormalizeDate(due)
	if due.Equal(today) {
		return "today"
	}
	return humanize.RelTime(due, today, "ago", "from now")
}

// StatusMark renders a status as a checkbox.
func StatusMark(status domain.Status) string {
	if status == domain.StatusComplete {
		return "[x]"
	}
	return "[ ]"
}

// Count renders "1 task" or "3 tasks" with thousands separators.
func Count(n int) string {
	if n == 1 {
		return "1 task"
	}
	return humanize.Comma(int64(n)) + " tasks"
}
