package services

import (
	"context"
	"log/slog"
	"strings"

	"task-list/internal/domain"
	"task-list/internal/errors"
	"task-list/internal/repository"
	"task-list/internal/validation"
)

// TaskStore owns the task collection and every mutation of it
type TaskStore struct {
	repo          repository.Repository
	mapper        *domain.TaskMapper
	taskValidator *validation.TaskValidator
	logger        *slog.Logger
}

// NewTaskStore creates a TaskStore over repo. A nil logger discards output.
func NewTaskStore(repo repository.Repository, logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TaskStore{
		repo:          repo,
		mapper:        domain.NewTaskMapper(),
		taskValidator: validation.NewTaskValidator(),
		logger:        logger.With("component", "task_store"),
	}
}

// Add appends a task built from draft and resets the draft. An empty priority
// or status takes the draft default. When a required field is missing the
// collection and the draft are left untouched and a validation error listing
// the fields is returned.
func (s *TaskStore) Add(ctx context.Context, draft *domain.Draft) (*domain.Task, error) {
	if draft == nil {
		return nil, errors.NewValidationError("missing task draft", nil)
	}

	clean := withDefaults(*draft)
	if err := s.taskValidator.ValidateDraft(clean); err != nil {
		ve, _ := validation.AsValidationError(err)
		message := "missing or invalid fields"
		if ve != nil {
			message += ": " + strings.Join(ve.Fields(), ", ")
		}
		s.logger.DebugContext(ctx, "rejected task draft", "error", err)
		return nil, errors.NewValidationError(message, err)
	}

	clean.Name = s.taskValidator.CleanName(clean.Name)

	record := s.mapper.DraftToRecord(clean)
	if err := s.repo.CreateTask(ctx, &record); err != nil {
		return nil, err
	}

	task := s.mapper.FromRecord(record)
	draft.Reset()

	s.logger.InfoContext(ctx, "task added", "id", task.ID, "priority", task.Priority)
	return &task, nil
}

// ToggleStatus flips the status of the task with id. Unknown ids are ignored.
func (s *TaskStore) ToggleStatus(ctx context.Context, id int64) error {
	record, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return s.ignoreNotFound(ctx, "toggle", id, err)
	}

	next := domain.Status(record.Status).Toggle()
	if err := s.repo.UpdateTaskStatus(ctx, id, string(next)); err != nil {
		return s.ignoreNotFound(ctx, "toggle", id, err)
	}

	s.logger.InfoContext(ctx, "task status toggled", "id", id, "status", next)
	return nil
}

// Remove deletes the task with id, keeping the order of the rest. Unknown ids
// are ignored.
func (s *TaskStore) Remove(ctx context.Context, id int64) error {
	if err := s.repo.DeleteTask(ctx, id); err != nil {
		return s.ignoreNotFound(ctx, "remove", id, err)
	}

	s.logger.InfoContext(ctx, "task removed", "id", id)
	return nil
}

// RemoveAll empties the collection
func (s *TaskStore) RemoveAll(ctx context.Context) error {
	if err := s.repo.DeleteAllTasks(ctx); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "all tasks removed")
	return nil
}

// FilteredAndSorted returns the tasks matching filter, stably ordered by sortMode.
// The collection itself is never reordered.
func (s *TaskStore) FilteredAndSorted(ctx context.Context, filter domain.FilterMode, sortMode domain.SortMode) ([]domain.Task, error) {
	if !filter.IsValid() {
		return nil, errors.NewInvalidInputError("filter", filter, "must be all, complete or incomplete")
	}
	if !sortMode.IsValid() {
		return nil, errors.NewInvalidInputError("sort", sortMode, "must be priority or dueDate")
	}

	tasks, err := s.Tasks(ctx)
	if err != nil {
		return nil, err
	}

	return sortTasks(filterTasks(tasks, filter), sortMode), nil
}

// Tasks returns every task in insertion order
func (s *TaskStore) Tasks(ctx context.Context) ([]domain.Task, error) {
	records, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.FromRecordSlice(records), nil
}

// Count returns the number of tasks in the collection
func (s *TaskStore) Count(ctx context.Context) (int, error) {
	return s.repo.CountTasks(ctx)
}

func (s *TaskStore) ignoreNotFound(ctx context.Context, operation string, id int64, err error) error {
	if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		s.logger.DebugContext(ctx, "no task with id", "operation", operation, "id", id)
		return nil
	}
	return err
}

// withDefaults fills an unset priority or status from NewDraft
func withDefaults(draft domain.Draft) domain.Draft {
	defaults := domain.NewDraft()
	if draft.Priority == "" {
		draft.Priority = defaults.Priority
	}
	if draft.Status == "" {
		draft.Status = defaults.Status
	}
	return draft
}
