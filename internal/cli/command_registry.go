package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"task-list/internal/errors"
)

// Command represents a shell command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

type registeredCommand struct {
	command Command
	usage   string
	summary string
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]registeredCommand
	aliases  map[string]string
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]registeredCommand),
		aliases:  make(map[string]string),
	}

	// Draft
	registry.Register("name", "name <text>", "set the draft name", NewNameCommand(app))
	registry.Register("priority", "priority <"+priorityChoices()+">", "set the draft priority", NewPriorityCommand(app))
	registry.Register("due", "due <date|->", "set or clear the draft due date", NewDueCommand(app))
	registry.Register("status", "status <complete|incomplete>", "set the draft status", NewStatusCommand(app))
	registry.Register("draft", "draft [reset]", "show or discard the draft", NewDraftCommand(app))

	// Tasks
	registry.Register("add", "add [name...]", "add the draft as a task", NewAddCommand(app))
	registry.Register("toggle", "toggle <id>", "flip a task between complete and incomplete", NewToggleCommand(app))
	registry.Register("remove", "remove <id>", "delete a task", NewRemoveCommand(app))
	registry.Register("clear", "clear", "delete every task", NewClearCommand(app))

	// View
	registry.Register("filter", "filter <all|complete|incomplete>", "choose which tasks list shows", NewFilterCommand(app))
	registry.Register("sort", "sort <priority|dueDate>", "choose the list order", NewSortCommand(app))
	registry.Register("list", "list", "show tasks under the current filter and sort", NewListCommand(app))
	registry.Register("export", "export csv", "write the current view as CSV", NewExportCommand(app))

	// Shell
	registry.Register("help", "help", "show this help", NewHelpCommand(app, registry))
	registry.Register("quit", "quit", "leave the shell", QuitCommand{})
	registry.Alias("exit", "quit")
	registry.Alias("rm", "remove")
	registry.Alias("ls", "list")

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name, usage, summary string, command Command) {
	r.commands[name] = registeredCommand{command: command, usage: usage, summary: summary}
}

// Alias makes alias run the command registered as name
func (r *CommandRegistry) Alias(alias, name string) {
	r.aliases[alias] = name
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	name := strings.ToLower(commandName)
	if target, ok := r.aliases[name]; ok {
		name = target
	}

	registered, exists := r.commands[name]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command, try help")
	}
	return registered.command.Execute(ctx, args)
}

// GetUsage returns the usage text for the shell
func (r *CommandRegistry) GetUsage() string {
	names := make([]string, 0, len(r.commands))
	width := 0
	for name, registered := range r.commands {
		names = append(names, name)
		width = max(width, len(registered.usage))
	}
	slices.Sort(names)

	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, name := range names {
		registered := r.commands[name]
		fmt.Fprintf(&b, "  %-*s  %s\n", width, registered.usage, registered.summary)
	}
	return b.String()
}
