package sqlite

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockScanner struct {
	values []any
	err    error
}

func (m *mockScanner) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = m.values[i].(int64)
		case *string:
			*p = m.values[i].(string)
		}
	}
	return nil
}

type mockRows struct {
	rows  [][]any
	index int
	err   error
}

func (m *mockRows) Next() bool {
	m.index++
	return m.index <= len(m.rows)
}

func (m *mockRows) Scan(dest ...any) error {
	return (&mockScanner{values: m.rows[m.index-1]}).Scan(dest...)
}

func (m *mockRows) Err() error {
	return m.err
}

func TestScanTask(t *testing.T) {
	tests := []struct {
		name      string
		scanner   *mockScanner
		expectErr bool
	}{
		{
			name:    "valid row",
			scanner: &mockScanner{values: []any{int64(7), "Buy milk", "high", "2024-05-01", "complete"}},
		},
		{
			name:      "malformed date",
			scanner:   &mockScanner{values: []any{int64(7), "Buy milk", "high", "May 1", "complete"}},
			expectErr: true,
		},
		{
			name:      "scan error",
			scanner:   &mockScanner{err: errors.New("boom")},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := ScanTask(tt.scanner)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(7), task.ID)
			assert.Equal(t, "Buy milk", task.Name)
			assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), task.DueDate)
		})
	}
}

func TestScanTasks(t *testing.T) {
	rows := &mockRows{rows: [][]any{
		{int64(1), "a", "low", "2024-05-01", "incomplete"},
		{int64(2), "b", "high", "2024-04-01", "complete"},
	}}

	tasks, err := ScanTasks(rows)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "b", tasks[1].Name)

	_, err = ScanTasks(&mockRows{err: errors.New("cursor failed")})
	assert.EqualError(t, err, "cursor failed")
}

func TestDateRoundTrip(t *testing.T) {
	due := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	parsed, err := ParseDateFromDB(FormatDateForDB(due))
	require.NoError(t, err)
	assert.Equal(t, due, parsed)
	assert.Equal(t, "2024-02-29", FormatDateForDB(due))
}
