package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-list/internal/api"
	"task-list/internal/repository/memory"
	"task-list/internal/repository/sqlite"
	"task-list/internal/services"
)

func newTestApp(t *testing.T, opts AppOptions) (*App, *bytes.Buffer) {
	t.Helper()
	store := services.NewTaskStore(memory.New(), nil)
	session := api.NewSession(store, api.Options{})
	out := &bytes.Buffer{}
	return NewApp(session, out, opts), out
}

func runScript(t *testing.T, app *App, lines ...string) {
	t.Helper()
	script := strings.Join(lines, "\n") + "\n"
	require.NoError(t, app.RunShell(context.Background(), strings.NewReader(script)))
}

// rows returns the whitespace separated fields of each output line
func rows(out string) [][]string {
	var result [][]string
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		result = append(result, strings.Fields(line))
	}
	return result
}

func TestApp_AddAndListScenario(t *testing.T) {
	app, out := newTestApp(t, AppOptions{})

	runScript(t, app,
		"# two tasks, second added after fixing its due date",
		"name A",
		"priority high",
		"due 2024-01-01",
		"add",
		"",
		"add B",
		"due 2023-12-31",
		"add",
		"list",
	)

	assert.Equal(t, [][]string{
		{"Added", "task", "1:", "A"},
		{"Error:", "Please", "fill", "in", "all", "fields:", "due", "date"},
		{"Added", "task", "2:", "B"},
		{"ID", "STATUS", "PRIORITY", "DUE", "NAME"},
		{"1", "[", "]", "high", "2024-01-01", "A"},
		{"2", "[", "]", "low", "2023-12-31", "B"},
		{"2", "tasks", "(filter:", "all,", "sort:", "priority)"},
	}, rows(out.String()))
}

func TestApp_SortFilterAndToggle(t *testing.T) {
	app, out := newTestApp(t, AppOptions{})

	runScript(t, app,
		"name A", "priority high", "due 2024-01-01", "add",
		"name B", "due 2023-12-31", "add",
	)
	out.Reset()

	runScript(t, app, "sort dueDate", "list")
	lines := rows(out.String())
	require.Len(t, lines, 4)
	assert.Equal(t, "B", lines[1][len(lines[1])-1])
	assert.Equal(t, "A", lines[2][len(lines[2])-1])
	out.Reset()

	runScript(t, app, "toggle 1", "filter complete", "list")
	lines = rows(out.String())
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"1", "[x]", "high", "2024-01-01", "A"}, lines[1])
	assert.Equal(t, []string{"1", "task", "(filter:", "complete,", "sort:", "dueDate)"}, lines[2])
	out.Reset()

	runScript(t, app, "toggle 1", "list")
	assert.Equal(t, "No tasks available.\n", out.String())
}

func TestApp_RemoveAndClear(t *testing.T) {
	app, out := newTestApp(t, AppOptions{})

	runScript(t, app, "clear")
	assert.Equal(t, "No tasks to remove\n", out.String())
	out.Reset()

	runScript(t, app,
		"due 2024-01-01",
		"add A",
		"due 2024-01-02",
		"add B",
		"remove 99",
		"rm 1",
		"ls",
	)
	lines := rows(out.String())
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"2", "[", "]", "low", "2024-01-02", "B"}, lines[3])
	out.Reset()

	runScript(t, app, "clear", "list")
	assert.Equal(t, "Removed all tasks\nNo tasks available.\n", out.String())
}

func TestApp_DraftCommands(t *testing.T) {
	app, out := newTestApp(t, AppOptions{})

	runScript(t, app, "draft")
	assert.Equal(t, "Name:     -\nPriority: low\nDue:      -\nStatus:   incomplete\n", out.String())
	out.Reset()

	runScript(t, app,
		"name Write report",
		"priority MEDIUM",
		"due 2024-03-05",
		"status complete",
		"draft",
	)
	assert.Equal(t, "Name:     Write report\nPriority: medium\nDue:      2024-03-05\nStatus:   complete\n", out.String())
	out.Reset()

	runScript(t, app, "due -", "draft reset", "draft")
	assert.Equal(t, "Draft cleared\nName:     -\nPriority: low\nDue:      -\nStatus:   incomplete\n", out.String())
}

func TestApp_ExportCSV(t *testing.T) {
	app, out := newTestApp(t, AppOptions{})

	runScript(t, app,
		"priority high", "due 2024-01-01", "add Buy milk, eggs",
		"due 2024-02-01", "add Call mom",
	)
	out.Reset()

	runScript(t, app, "export csv")
	assert.Equal(t,
		"id,name,priority,due_date,status\n"+
			"1,\"Buy milk, eggs\",high,2024-01-01,incomplete\n"+
			"2,Call mom,low,2024-02-01,incomplete\n",
		out.String())
}

func TestApp_RelativeDue(t *testing.T) {
	original := timeNow
	timeNow = func() time.Time { return time.Date(2024, time.January, 1, 15, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { timeNow = original })

	app, out := newTestApp(t, AppOptions{DisplayDateFormat: "02/01/2006", RelativeDue: true})

	runScript(t, app, "due 2024-01-03", "add A", "due 2024-01-01", "add B")
	out.Reset()

	runScript(t, app, "list")
	assert.Contains(t, out.String(), "03/01/2024 (2 days from now)")
	assert.Contains(t, out.String(), "01/01/2024 (today)")
}

func TestApp_Errors(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{"unknown command", "frobnicate", "Error: invalid input for command: unknown command, try help\n"},
		{"bad id", "toggle abc", "Error: invalid input for id: must be a whole number\n"},
		{"missing id", "remove", "Error: invalid input for command: usage: remove <id>\n"},
		{"priority without value", "priority", "Error: invalid input for command: usage: priority <high|medium|low>\n"},
		{"bad priority", "priority urgent", "Error: invalid input for priority: must be one of high, medium, low\n"},
		{"bad filter", "filter done", "Error: invalid input for filter: must be one of all, complete, incomplete\n"},
		{"bad export format", "export pdf", "Error: invalid input for format: unsupported format\n"},
		{"empty draft", "add", "Error: Please fill in all fields: name, due date\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out := newTestApp(t, AppOptions{})
			runScript(t, app, tt.line)
			assert.Equal(t, tt.expected, out.String())
		})
	}
}

func TestApp_QuitStopsReading(t *testing.T) {
	app, out := newTestApp(t, AppOptions{})

	runScript(t, app, "filter", "quit", "sort")
	assert.Equal(t, "Filter: all\n", out.String())
}

func TestApp_Prompt(t *testing.T) {
	app, out := newTestApp(t, AppOptions{Prompt: "tl> "})

	runScript(t, app, "sort", "exit")
	assert.Equal(t, "tl> Sort: priority\ntl> ", out.String())
}

func TestApp_Run(t *testing.T) {
	app, out := newTestApp(t, AppOptions{Timeout: time.Second})

	require.NoError(t, app.Run(context.Background(), []string{"filter", "incomplete"}))
	require.NoError(t, app.Run(context.Background(), []string{"filter"}))
	assert.Equal(t, "Filter: incomplete\n", out.String())

	err := app.Run(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Commands:")
}

func TestApp_BackendFailureIsLogged(t *testing.T) {
	repo, err := sqlite.New(context.Background())
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	logs := &bytes.Buffer{}
	session := api.NewSession(services.NewTaskStore(repo, nil), api.Options{})
	out := &bytes.Buffer{}
	app := NewApp(session, out, AppOptions{Logger: slog.New(slog.NewTextHandler(logs, nil))})

	runScript(t, app, "list", "filter")

	assert.Equal(t, "Error: The task list backend failed. Please try again.\nFilter: all\n", out.String())
	assert.Contains(t, logs.String(), "command failed")
	assert.Contains(t, logs.String(), "command=list")
	assert.Contains(t, logs.String(), "backend_failure=true")
	assert.Contains(t, logs.String(), "error_code=DATABASE_ERROR")
}

func TestApp_UserErrorsAreNotLogged(t *testing.T) {
	logs := &bytes.Buffer{}
	session := api.NewSession(services.NewTaskStore(memory.New(), nil), api.Options{})
	app := NewApp(session, &bytes.Buffer{}, AppOptions{Logger: slog.New(slog.NewTextHandler(logs, nil))})

	runScript(t, app, "add", "toggle x", "bogus")

	assert.Empty(t, logs.String())
}
