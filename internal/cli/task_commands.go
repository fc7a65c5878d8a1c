package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"task-list/internal/api"
	"task-list/internal/errors"
)

// AddCommand adds the draft as a task
type AddCommand struct {
	session *api.Session
	out     io.Writer
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{session: app.session, out: app.out}
}

// Execute runs the add command. Arguments, when given, replace the draft name.
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		c.session.SetName(strings.Join(args, " "))
	}

	task, err := c.session.Submit(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Added task %d: %s\n", task.ID, task.Name)
	return nil
}

// ToggleCommand flips a task between complete and incomplete
type ToggleCommand struct {
	session *api.Session
}

// NewToggleCommand creates a new toggle command handler
func NewToggleCommand(app *App) *ToggleCommand {
	return &ToggleCommand{session: app.session}
}

// Execute runs the toggle command. Unknown ids change nothing.
func (c *ToggleCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseTaskID("toggle", args)
	if err != nil {
		return err
	}
	return c.session.Toggle(ctx, id)
}

// RemoveCommand deletes a task
type RemoveCommand struct {
	session *api.Session
}

// NewRemoveCommand creates a new remove command handler
func NewRemoveCommand(app *App) *RemoveCommand {
	return &RemoveCommand{session: app.session}
}

// Execute runs the remove command. Unknown ids change nothing.
func (c *RemoveCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseTaskID("remove", args)
	if err != nil {
		return err
	}
	return c.session.Remove(ctx, id)
}

// ClearCommand deletes every task
type ClearCommand struct {
	session *api.Session
	out     io.Writer
}

// NewClearCommand creates a new clear command handler
func NewClearCommand(app *App) *ClearCommand {
	return &ClearCommand{session: app.session, out: app.out}
}

// Execute runs the clear command
func (c *ClearCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "clear", "usage: clear")
	}

	has, err := c.session.HasTasks(ctx)
	if err != nil {
		return err
	}
	if !has {
		fmt.Fprintln(c.out, "No tasks to remove")
		return nil
	}

	if err := c.session.RemoveAll(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Removed all tasks")
	return nil
}

func parseTaskID(command string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.NewInvalidInputError("command", command, "usage: "+command+" <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, errors.NewInvalidInputError("id", args[0], "must be a whole number")
	}
	return id, nil
}
