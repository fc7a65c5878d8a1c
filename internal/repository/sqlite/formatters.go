package sqlite

import (
	"time"
)

// dateLayout is the TEXT form of a due date in the tasks table
const dateLayout = "2006-01-02"

// FormatDateForDB formats a due date as YYYY-MM-DD for storage
func FormatDateForDB(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// ParseDateFromDB parses a stored due date back to UTC midnight
func ParseDateFromDB(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}
