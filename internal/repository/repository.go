// Package repository defines the task collection contract shared by the
// volatile backends.
package repository

import (
	"context"
	"time"
)

// Task is a stored task record
type Task struct {
	ID       int64
	Name     string
	Priority string
	DueDate  time.Time
	Status   string
}

// Repository holds the ordered task collection. Records come back in
// insertion order and are copies owned by the caller.
type Repository interface {
	// Create operations
	CreateTask(ctx context.Context, task *Task) error

	// Read operations
	GetTask(ctx context.Context, id int64) (*Task, error)
	ListTasks(ctx context.Context) ([]*Task, error)
	CountTasks(ctx context.Context) (int, error)

	// Update operations
	UpdateTaskStatus(ctx context.Context, id int64, status string) error

	// Delete operations
	DeleteTask(ctx context.Context, id int64) error
	DeleteAllTasks(ctx context.Context) error

	// Utility
	Close() error
}
