// Package sqlite implements the task collection on an in-memory SQLite
// database.
package sqlite

import (
	"context"
	"database/sql"

	"task-list/internal/errors"
	"task-list/internal/repository"
	"task-list/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// memoryDSN keeps the database private to this process. Every connection to
// ":memory:" opens its own database, so the pool is held to one connection.
const memoryDSN = ":memory:"

// SQLiteRepository implements repository.Repository
type SQLiteRepository struct {
	db *sql.DB
}

// New opens a fresh in-memory database and builds the schema
func New(ctx context.Context) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection, discarding every task
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateTask inserts a task and stores the assigned id on it
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *repository.Task) error {
	query := `
	INSERT INTO tasks (name, priority, due_date, status)
	VALUES (?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query, task.Name, task.Priority, FormatDateForDB(task.DueDate), task.Status)
	if err != nil {
		return err
	}

	task.ID = id
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*repository.Task, error) {
	query := `
	SELECT id, name, priority, due_date, status
	FROM tasks
	WHERE id = ?`

	return QuerySingleTask(ctx, r.db, query, id)
}

// ListTasks retrieves all tasks in insertion order
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*repository.Task, error) {
	query := `
	SELECT id, name, priority, due_date, status
	FROM tasks
	ORDER BY id ASC`

	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
}

// CountTasks returns the number of stored tasks
func (r *SQLiteRepository) CountTasks(ctx context.Context) (int, error) {
	return QueryInt(ctx, r.db, "count tasks", `SELECT COUNT(*) FROM tasks`)
}

// UpdateTaskStatus replaces the status of a task
func (r *SQLiteRepository) UpdateTaskStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE tasks SET status = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, id, status, id)
}

// DeleteTask deletes a task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, id, id)
}

// DeleteAllTasks empties the table. AUTOINCREMENT keeps ids from being reused.
func (r *SQLiteRepository) DeleteAllTasks(ctx context.Context) error {
	return Execute(ctx, r.db, "delete all tasks", `DELETE FROM tasks`)
}
