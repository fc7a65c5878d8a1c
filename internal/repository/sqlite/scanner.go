package sqlite

import (
	"fmt"

	"task-list/internal/repository"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...any) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*repository.Task, error) {
	task := &repository.Task{}
	var dueDate string

	err := scanner.Scan(
		&task.ID,
		&task.Name,
		&task.Priority,
		&dueDate,
		&task.Status,
	)
	if err != nil {
		return nil, err
	}

	task.DueDate, err = ParseDateFromDB(dueDate)
	if err != nil {
		return nil, fmt.Errorf("task %d has malformed due date %q: %w", task.ID, dueDate, err)
	}

	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*repository.Task, error) {
	tasks := []*repository.Task{}
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
