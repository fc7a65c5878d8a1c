package cli

import (
	"context"
	"fmt"
)

// HelpCommand prints the command list
type HelpCommand struct {
	app      *App
	registry *CommandRegistry
}

// NewHelpCommand creates a new help command handler
func NewHelpCommand(app *App, registry *CommandRegistry) *HelpCommand {
	return &HelpCommand{app: app, registry: registry}
}

// Execute runs the help command
func (c *HelpCommand) Execute(ctx context.Context, args []string) error {
	fmt.Fprint(c.app.out, c.registry.GetUsage())
	return nil
}

// QuitCommand ends the shell
type QuitCommand struct{}

// Execute runs the quit command
func (QuitCommand) Execute(ctx context.Context, args []string) error {
	return errQuit
}
