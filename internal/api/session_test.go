package api

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-list/internal/domain"
	"task-list/internal/errors"
	"task-list/internal/repository/memory"
	"task-list/internal/services"
	"task-list/internal/validation"
)

func newTestSession(t *testing.T, opts Options) *Session {
	t.Helper()
	return NewSession(services.NewTaskStore(memory.New(), nil), opts)
}

func TestNewSession_Defaults(t *testing.T) {
	session := newTestSession(t, Options{})

	assert.Equal(t, domain.FilterAll, session.Filter())
	assert.Equal(t, domain.SortByPriority, session.Sort())
	assert.Equal(t, domain.NewDraft(), session.Draft())
	assert.Equal(t, domain.DateLayout, session.InputDateFormat())
	_, err := uuid.Parse(session.ID())
	assert.NoError(t, err)
}

func TestNewSession_Options(t *testing.T) {
	session := newTestSession(t, Options{
		Filter:          domain.FilterIncomplete,
		Sort:            domain.SortByDueDate,
		InputDateFormat: "02/01/2006",
	})

	assert.Equal(t, domain.FilterIncomplete, session.Filter())
	assert.Equal(t, domain.SortByDueDate, session.Sort())

	require.NoError(t, session.SetDueDate("20/04/2024"))
	assert.Equal(t, time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC), session.Draft().DueDate)
}

func TestSession_DraftEdits(t *testing.T) {
	tests := []struct {
		name      string
		edit      func(s *Session) error
		check     func(t *testing.T, d domain.Draft)
		expectErr bool
	}{
		{
			name:  "priority by name",
			edit:  func(s *Session) error { return s.SetPriority("HIGH") },
			check: func(t *testing.T, d domain.Draft) { assert.Equal(t, domain.PriorityHigh, d.Priority) },
		},
		{
			name:      "unknown priority",
			edit:      func(s *Session) error { return s.SetPriority("urgent") },
			check:     func(t *testing.T, d domain.Draft) { assert.Equal(t, domain.PriorityLow, d.Priority) },
			expectErr: true,
		},
		{
			name:  "due date",
			edit:  func(s *Session) error { return s.SetDueDate("2024-05-01") },
			check: func(t *testing.T, d domain.Draft) { assert.False(t, d.DueDate.IsZero()) },
		},
		{
			name: "empty due date clears",
			edit: func(s *Session) error {
				if err := s.SetDueDate("2024-05-01"); err != nil {
					return err
				}
				return s.SetDueDate("  ")
			},
			check: func(t *testing.T, d domain.Draft) { assert.True(t, d.DueDate.IsZero()) },
		},
		{
			name:      "malformed due date",
			edit:      func(s *Session) error { return s.SetDueDate("May 1st") },
			check:     func(t *testing.T, d domain.Draft) { assert.True(t, d.DueDate.IsZero()) },
			expectErr: true,
		},
		{
			name:  "status",
			edit:  func(s *Session) error { return s.SetStatus("complete") },
			check: func(t *testing.T, d domain.Draft) { assert.Equal(t, domain.StatusComplete, d.Status) },
		},
		{
			name:      "unknown status",
			edit:      func(s *Session) error { return s.SetStatus("done") },
			check:     func(t *testing.T, d domain.Draft) { assert.Equal(t, domain.StatusIncomplete, d.Status) },
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := newTestSession(t, Options{})

			err := tt.edit(session)

			if tt.expectErr {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
			} else {
				assert.NoError(t, err)
			}
			tt.check(t, session.Draft())
		})
	}
}

func TestSession_CyclePriority(t *testing.T) {
	session := newTestSession(t, Options{})

	assert.Equal(t, domain.PriorityHigh, session.CyclePriority())
	assert.Equal(t, domain.PriorityMedium, session.CyclePriority())
	assert.Equal(t, domain.PriorityLow, session.CyclePriority())
}

func TestSession_Submit(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(t, Options{})

	session.SetName("Write report")
	_, err := session.Submit(ctx)
	require.Error(t, err)
	ve, ok := validation.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{validation.FieldDueDate}, ve.Fields())
	assert.Equal(t, "Write report", session.Draft().Name, "draft kept after validation failure")

	require.NoError(t, session.SetDueDate("2024-05-01"))
	require.NoError(t, session.SetPriority("high"))
	task, err := session.Submit(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Write report", task.Name)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.Equal(t, domain.NewDraft(), session.Draft(), "draft reset after submit")

	has, err := session.HasTasks(ctx)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestSession_ViewFollowsFilterAndSort(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(t, Options{})

	session.SetName("Write report")
	require.NoError(t, session.SetPriority("high"))
	require.NoError(t, session.SetDueDate("2024-05-01"))
	a, err := session.Submit(ctx)
	require.NoError(t, err)

	session.SetName("Buy milk")
	require.NoError(t, session.SetDueDate("2024-04-20"))
	b, err := session.Submit(ctx)
	require.NoError(t, err)

	view, err := session.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID, b.ID}, []int64{view[0].ID, view[1].ID})

	require.NoError(t, session.SetSort("dueDate"))
	view, err = session.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID, a.ID}, []int64{view[0].ID, view[1].ID})

	require.NoError(t, session.Toggle(ctx, a.ID))
	require.NoError(t, session.SetFilter("incomplete"))
	view, err = session.View(ctx)
	require.NoError(t, err)
	require.Len(t, view, 1)
	assert.Equal(t, b.ID, view[0].ID)

	require.NoError(t, session.Remove(ctx, b.ID))
	view, err = session.View(ctx)
	require.NoError(t, err)
	assert.Empty(t, view)

	has, err := session.HasTasks(ctx)
	require.NoError(t, err)
	assert.True(t, has, "the completed task is still in the collection")

	require.NoError(t, session.RemoveAll(ctx))
	has, err = session.HasTasks(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestSession_FilterAndSortModes(t *testing.T) {
	session := newTestSession(t, Options{})

	assert.Error(t, session.SetFilter("done"))
	assert.Equal(t, domain.FilterAll, session.Filter())
	assert.Error(t, session.SetSort("name"))
	assert.Equal(t, domain.SortByPriority, session.Sort())

	assert.Equal(t, domain.FilterComplete, session.CycleFilter())
	assert.Equal(t, domain.FilterIncomplete, session.CycleFilter())
	assert.Equal(t, domain.FilterAll, session.CycleFilter())
	assert.Equal(t, domain.SortByDueDate, session.CycleSort())
	assert.Equal(t, domain.SortByPriority, session.CycleSort())
}

func TestSession_ResetDraft(t *testing.T) {
	session := newTestSession(t, Options{})
	session.SetName("half typed")
	require.NoError(t, session.SetPriority("medium"))

	session.ResetDraft()

	assert.Equal(t, domain.NewDraft(), session.Draft())
}
