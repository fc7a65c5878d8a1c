package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"

	"task-list/internal/errors"
	"task-list/internal/repository"
)

// HandleDatabaseError converts database errors to structured app errors
func HandleDatabaseError(operation string, err error) error {
	return errors.NewDatabaseError(operation, err)
}

// ValidateRowsAffected reports a task not found when a statement touched no rows
func ValidateRowsAffected(result sql.Result, id int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return HandleDatabaseError("get rows affected", err)
	}
	if rows == 0 {
		return errors.NewTaskNotFoundError(id)
	}
	return nil
}

// Execute runs a statement whose result is not inspected
func Execute(ctx context.Context, db *sql.DB, operation string, query string, args ...any) error {
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return HandleDatabaseError(operation, err)
	}
	return nil
}

// ExecuteWithLastInsertID executes a query and returns the last insert ID
func ExecuteWithLastInsertID(ctx context.Context, db *sql.DB, query string, args ...any) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, HandleDatabaseError("execute query", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, HandleDatabaseError("get last insert ID", err)
	}

	return id, nil
}

// ExecuteWithRowsAffected executes a statement against one task id and
// reports not found when nothing matched
func ExecuteWithRowsAffected(ctx context.Context, db *sql.DB, query string, id int64, args ...any) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return HandleDatabaseError("execute query", err)
	}

	return ValidateRowsAffected(result, id)
}

// QuerySingleTask executes a query that returns one task row
func QuerySingleTask(ctx context.Context, db *sql.DB, query string, id int64) (*repository.Task, error) {
	row := db.QueryRowContext(ctx, query, id)
	task, err := ScanTask(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewTaskNotFoundError(id)
		}
		return nil, HandleDatabaseError("scan task", err)
	}
	return task, nil
}

// QueryMultiple executes a query that returns multiple rows and scans them
func QueryMultiple[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Rows) ([]*T, error), entityType string, args ...any) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("query "+entityType, err)
	}
	defer rows.Close()

	results, err := scanFunc(rows)
	if err != nil {
		return nil, HandleDatabaseError("scan "+entityType, err)
	}

	return results, nil
}

// QueryInt executes a query returning a single integer column
func QueryInt(ctx context.Context, db *sql.DB, operation string, query string, args ...any) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, HandleDatabaseError(operation, err)
	}
	return n, nil
}
