package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"task-list/internal/api"
	"task-list/internal/domain"
	"task-list/internal/errors"
)

// NameCommand sets the draft name
type NameCommand struct {
	session *api.Session
}

// NewNameCommand creates a new name command handler
func NewNameCommand(app *App) *NameCommand {
	return &NameCommand{session: app.session}
}

// Execute runs the name command
func (c *NameCommand) Execute(ctx context.Context, args []string) error {
	c.session.SetName(strings.Join(args, " "))
	return nil
}

// PriorityCommand sets the draft priority
type PriorityCommand struct {
	session *api.Session
}

// NewPriorityCommand creates a new priority command handler
func NewPriorityCommand(app *App) *PriorityCommand {
	return &PriorityCommand{session: app.session}
}

// Execute runs the priority command
func (c *PriorityCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "priority", "usage: priority <"+priorityChoices()+">")
	}
	return c.session.SetPriority(args[0])
}

// priorityChoices renders the priorities as "high|medium|low"
func priorityChoices() string {
	names := make([]string, 0, len(domain.Priorities()))
	for _, p := range domain.Priorities() {
		names = append(names, string(p))
	}
	return strings.Join(names, "|")
}

// DueCommand sets or clears the draft due date
type DueCommand struct {
	session *api.Session
}

// NewDueCommand creates a new due command handler
func NewDueCommand(app *App) *DueCommand {
	return &DueCommand{session: app.session}
}

// Execute runs the due command. "-" clears the date.
func (c *DueCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "due", "usage: due <"+c.session.InputDateFormat()+"|->")
	}

	text := strings.Join(args, " ")
	if text == "-" {
		text = ""
	}
	return c.session.SetDueDate(text)
}

// StatusCommand sets the status the draft is added with
type StatusCommand struct {
	session *api.Session
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{session: app.session}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "status", "usage: status <complete|incomplete>")
	}
	return c.session.SetStatus(args[0])
}

// DraftCommand shows or resets the draft
type DraftCommand struct {
	app *App
}

// NewDraftCommand creates a new draft command handler
func NewDraftCommand(app *App) *DraftCommand {
	return &DraftCommand{app: app}
}

// Execute runs the draft command
func (c *DraftCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 1 && strings.EqualFold(args[0], "reset") {
		c.app.session.ResetDraft()
		fmt.Fprintln(c.app.out, "Draft cleared")
		return nil
	}
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "draft", "usage: draft [reset]")
	}
	return c.printDraft(c.app.out)
}

func (c *DraftCommand) printDraft(w io.Writer) error {
	draft := c.app.session.Draft()
	name := draft.Name
	if strings.TrimSpace(name) == "" {
		name = "-"
	}

	fmt.Fprintf(w, "Name:     %s\n", name)
	fmt.Fprintf(w, "Priority: %s\n", draft.Priority)
	fmt.Fprintf(w, "Due:      %s\n", c.app.formatter.Due(draft.DueDate, c.app.now()))
	fmt.Fprintf(w, "Status:   %s\n", draft.Status)
	return nil
}
