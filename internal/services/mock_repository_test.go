package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"task-list/internal/repository"
)

// MockRepository is a testify mock of repository.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateTask(ctx context.Context, task *repository.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockRepository) GetTask(ctx context.Context, id int64) (*repository.Task, error) {
	args := m.Called(ctx, id)
	if task := args.Get(0); task != nil {
		return task.(*repository.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListTasks(ctx context.Context) ([]*repository.Task, error) {
	args := m.Called(ctx)
	if tasks := args.Get(0); tasks != nil {
		return tasks.([]*repository.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) CountTasks(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) UpdateTaskStatus(ctx context.Context, id int64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRepository) DeleteTask(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) DeleteAllTasks(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}
