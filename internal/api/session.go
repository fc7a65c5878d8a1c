// Package api exposes the task list to presentation layers through a Session
// that owns the store, the draft being composed and the current view.
package api

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"task-list/internal/domain"
	"task-list/internal/services"
)

// Options configure a new Session. Zero values fall back to the defaults.
type Options struct {
	Filter          domain.FilterMode
	Sort            domain.SortMode
	InputDateFormat string
	Logger          *slog.Logger
}

// Session is the UI state of one task list: the store, the draft and the
// filter and sort applied to the view.
type Session struct {
	id          string
	store       *services.TaskStore
	draft       domain.Draft
	filter      domain.FilterMode
	sort        domain.SortMode
	inputLayout string
	logger      *slog.Logger
}

// NewSession creates a Session over store.
func NewSession(store *services.TaskStore, opts Options) *Session {
	if !opts.Filter.IsValid() {
		opts.Filter = domain.FilterAll
	}
	if !opts.Sort.IsValid() {
		opts.Sort = domain.SortByPriority
	}
	if opts.InputDateFormat == "" {
		opts.InputDateFormat = domain.DateLayout
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	id := uuid.NewString()
	return &Session{
		id:          id,
		store:       store,
		draft:       domain.NewDraft(),
		filter:      opts.Filter,
		sort:        opts.Sort,
		inputLayout: opts.InputDateFormat,
		logger:      opts.Logger.With("session", id),
	}
}

// ID returns the session identifier attached to its log records.
func (s *Session) ID() string {
	return s.id
}

// Draft returns a copy of the draft being composed.
func (s *Session) Draft() domain.Draft {
	return s.draft
}

// InputDateFormat returns the layout SetDueDate expects.
func (s *Session) InputDateFormat() string {
	return s.inputLayout
}

// SetName replaces the draft name.
func (s *Session) SetName(name string) {
	s.draft.Name = name
}

// SetPriority sets the draft priority from its name.
func (s *Session) SetPriority(text string) error {
	p, err := domain.ParsePriority(text)
	if err != nil {
		return err
	}
	s.draft.Priority = p
	return nil
}

// CyclePriority moves the draft priority to the next one and returns it.
func (s *Session) CyclePriority() domain.Priority {
	s.draft.Priority = s.draft.Priority.Next()
	return s.draft.Priority
}

// SetDueDate parses text with the input layout. Empty text clears the date.
func (s *Session) SetDueDate(text string) error {
	if strings.TrimSpace(text) == "" {
		s.draft.DueDate = time.Time{}
		return nil
	}

	due, err := domain.ParseDate(text, s.inputLayout)
	if err != nil {
		return err
	}
	s.draft.DueDate = due
	return nil
}

// SetStatus sets the status a submitted task starts with.
func (s *Session) SetStatus(text string) error {
	st, err := domain.ParseStatus(text)
	if err != nil {
		return err
	}
	s.draft.Status = st
	return nil
}

// ResetDraft discards the draft being composed.
func (s *Session) ResetDraft() {
	s.draft.Reset()
}

// Submit adds the draft as a new task. On success the draft is reset; on a
// validation error it is kept for correction.
func (s *Session) Submit(ctx context.Context) (*domain.Task, error) {
	task, err := s.store.Add(ctx, &s.draft)
	if err != nil {
		s.logger.DebugContext(ctx, "submit failed", "error", err)
		return nil, err
	}
	return task, nil
}

// Toggle flips the status of the task with id.
func (s *Session) Toggle(ctx context.Context, id int64) error {
	return s.store.ToggleStatus(ctx, id)
}

// Remove deletes the task with id.
func (s *Session) Remove(ctx context.Context, id int64) error {
	return s.store.Remove(ctx, id)
}

// RemoveAll deletes every task.
func (s *Session) RemoveAll(ctx context.Context) error {
	return s.store.RemoveAll(ctx)
}

// Filter returns the current filter mode.
func (s *Session) Filter() domain.FilterMode {
	return s.filter
}

// Sort returns the current sort mode.
func (s *Session) Sort() domain.SortMode {
	return s.sort
}

// SetFilter selects the filter mode by name.
func (s *Session) SetFilter(text string) error {
	f, err := domain.ParseFilterMode(text)
	if err != nil {
		return err
	}
	s.filter = f
	return nil
}

// SetSort selects the sort mode by name.
func (s *Session) SetSort(text string) error {
	m, err := domain.ParseSortMode(text)
	if err != nil {
		return err
	}
	s.sort = m
	return nil
}

// CycleFilter advances to the next filter mode and returns it.
func (s *Session) CycleFilter() domain.FilterMode {
	s.filter = s.filter.Next()
	return s.filter
}

// CycleSort advances to the next sort mode and returns it.
func (s *Session) CycleSort() domain.SortMode {
	s.sort = s.sort.Next()
	return s.sort
}

// View returns the tasks under the current filter and sort.
func (s *Session) View(ctx context.Context) ([]domain.Task, error) {
	return s.store.FilteredAndSorted(ctx, s.filter, s.sort)
}

// HasTasks reports whether the collection holds any task, regardless of filter.
func (s *Session) HasTasks(ctx context.Context) (bool, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
