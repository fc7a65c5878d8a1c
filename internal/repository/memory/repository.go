// Package memory keeps the task collection in a plain slice.
package memory

import (
	"context"

	"task-list/internal/errors"
	"task-list/internal/repository"
)

// MemoryRepository implements repository.Repository on a slice kept in
// insertion order
type MemoryRepository struct {
	tasks  []repository.Task
	lastID int64
}

// New creates an empty in-memory repository
func New() *MemoryRepository {
	return &MemoryRepository{}
}

// Close releases nothing; the collection lives only as long as the value
func (r *MemoryRepository) Close() error {
	return nil
}

// CreateTask appends a task and assigns it the next id
func (r *MemoryRepository) CreateTask(ctx context.Context, task *repository.Task) error {
	if err := ctx.Err(); err != nil {
		return errors.NewDatabaseError("create task", err)
	}

	r.lastID++
	task.ID = r.lastID
	r.tasks = append(r.tasks, *task)
	return nil
}

// GetTask retrieves a task by ID
func (r *MemoryRepository) GetTask(ctx context.Context, id int64) (*repository.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewDatabaseError("get task", err)
	}

	i := r.indexOf(id)
	if i < 0 {
		return nil, errors.NewTaskNotFoundError(id)
	}
	task := r.tasks[i]
	return &task, nil
}

// ListTasks returns copies of all tasks in insertion order
func (r *MemoryRepository) ListTasks(ctx context.Context) ([]*repository.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewDatabaseError("list tasks", err)
	}

	tasks := make([]*repository.Task, len(r.tasks))
	for i := range r.tasks {
		task := r.tasks[i]
		tasks[i] = &task
	}
	return tasks, nil
}

// CountTasks returns the collection size
func (r *MemoryRepository) CountTasks(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.NewDatabaseError("count tasks", err)
	}
	return len(r.tasks), nil
}

// UpdateTaskStatus replaces the status of a task
func (r *MemoryRepository) UpdateTaskStatus(ctx context.Context, id int64, status string) error {
	if err := ctx.Err(); err != nil {
		return errors.NewDatabaseError("update task status", err)
	}

	i := r.indexOf(id)
	if i < 0 {
		return errors.NewTaskNotFoundError(id)
	}
	r.tasks[i].Status = status
	return nil
}

// DeleteTask removes a task, keeping the order of the rest
func (r *MemoryRepository) DeleteTask(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return errors.NewDatabaseError("delete task", err)
	}

	i := r.indexOf(id)
	if i < 0 {
		return errors.NewTaskNotFoundError(id)
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	return nil
}

// DeleteAllTasks empties the collection. Ids keep counting up.
func (r *MemoryRepository) DeleteAllTasks(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.NewDatabaseError("delete all tasks", err)
	}
	r.tasks = nil
	return nil
}

func (r *MemoryRepository) indexOf(id int64) int {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
