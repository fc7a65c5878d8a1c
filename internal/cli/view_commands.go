package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"task-list/internal/display"
	"task-list/internal/domain"
	"task-list/internal/errors"
)

// FilterCommand selects which tasks list shows
type FilterCommand struct {
	app *App
}

// NewFilterCommand creates a new filter command handler
func NewFilterCommand(app *App) *FilterCommand {
	return &FilterCommand{app: app}
}

// Execute runs the filter command. Without arguments it prints the current mode.
func (c *FilterCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(c.app.out, "Filter: %s\n", c.app.session.Filter())
		return nil
	}
	if len(args) > 1 {
		return errors.NewInvalidInputError("command", "filter", "usage: filter <all|complete|incomplete>")
	}
	return c.app.session.SetFilter(args[0])
}

// SortCommand selects the list order
type SortCommand struct {
	app *App
}

// NewSortCommand creates a new sort command handler
func NewSortCommand(app *App) *SortCommand {
	return &SortCommand{app: app}
}

// Execute runs the sort command. Without arguments it prints the current mode.
func (c *SortCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(c.app.out, "Sort: %s\n", c.app.session.Sort())
		return nil
	}
	if len(args) > 1 {
		return errors.NewInvalidInputError("command", "sort", "usage: sort <priority|dueDate>")
	}
	return c.app.session.SetSort(args[0])
}

// ListCommand prints the current view
type ListCommand struct {
	app *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	tasks, err := c.app.session.View(ctx)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Fprintln(c.app.out, "No tasks available.")
		return nil
	}

	return c.printTasks(tasks)
}

// printTasks prints one row per task:
// ID  STATUS  PRIORITY  DUE  NAME
func (c *ListCommand) printTasks(tasks []domain.Task) error {
	now := c.app.now()
	w := tabwriter.NewWriter(c.app.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tDUE\tNAME")
	for _, task := range tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			task.ID,
			display.StatusMark(task.Status),
			task.Priority,
			c.app.formatter.Due(task.DueDate, now),
			task.Name,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(c.app.out, "%s (filter: %s, sort: %s)\n", display.Count(len(tasks)), c.app.session.Filter(), c.app.session.Sort())
	return nil
}

// ExportCommand writes the current view in a machine readable format
type ExportCommand struct {
	app *App
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{app: app}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "export", "usage: export csv")
	}

	switch strings.ToLower(args[0]) {
	case "csv":
		return c.exportCSV(ctx)
	default:
		return errors.NewInvalidInputError("format", args[0], "unsupported format").WithContext("supported", "csv")
	}
}

// exportCSV writes the current view with ISO dates
func (c *ExportCommand) exportCSV(ctx context.Context) error {
	tasks, err := c.app.session.View(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(c.app.out)

	header := []string{"id", "name", "priority", "due_date", "status"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, task := range tasks {
		row := []string{
			strconv.FormatInt(task.ID, 10),
			task.Name,
			string(task.Priority),
			task.DueDate.Format(domain.DateLayout),
			string(task.Status),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
