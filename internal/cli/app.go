package cli

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"task-list/internal/api"
	"task-list/internal/display"
	"task-list/internal/errors"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// errQuit ends the shell loop
var errQuit = stderrors.New("quit")

// AppOptions configure the shell
type AppOptions struct {
	DisplayDateFormat string
	RelativeDue       bool
	Timeout           time.Duration
	Prompt            string
	Logger            *slog.Logger
}

// App represents the interactive shell over one session
type App struct {
	session      *api.Session
	registry     *CommandRegistry
	out          io.Writer
	formatter    *display.Formatter
	errorHandler *ErrorHandler
	logger       *slog.Logger
	timeout      time.Duration
	prompt       string
}

// NewApp creates a new shell writing to out
func NewApp(session *api.Session, out io.Writer, opts AppOptions) *App {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	app := &App{
		session:      session,
		out:          out,
		formatter:    display.NewFormatter(opts.DisplayDateFormat, opts.RelativeDue),
		errorHandler: NewErrorHandler(),
		logger:       opts.Logger,
		timeout:      opts.Timeout,
		prompt:       opts.Prompt,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// Run executes one command: args[0] names it, the rest are its arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	return a.registry.Execute(ctx, args[0], args[1:])
}

// RunShell reads commands from in, one per line, until quit or end of input.
// Blank lines and lines starting with # are skipped. A failing command is
// reported and the loop continues.
func (a *App) RunShell(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	a.printPrompt()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			a.printPrompt()
			continue
		}

		err := a.Run(ctx, strings.Fields(line))
		if stderrors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			a.report(ctx, line, err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		a.printPrompt()
	}

	return scanner.Err()
}

func (a *App) report(ctx context.Context, line string, err error) {
	if errors.ShouldLogError(err) {
		attrs := []any{"command", line, "error", err, "backend_failure", a.errorHandler.IsDatabaseError(err)}
		if appErr, ok := errors.AsAppError(err); ok {
			attrs = append(attrs, appErr.LogAttrs()...)
		} else {
			attrs = append(attrs, "error_code", a.errorHandler.GetErrorCode(err))
		}
		a.logger.ErrorContext(ctx, "command failed", attrs...)
	}
	fmt.Fprintf(a.out, "Error: %s\n", a.errorHandler.Message(err))
}

func (a *App) printPrompt() {
	if a.prompt != "" {
		fmt.Fprint(a.out, a.prompt)
	}
}

// now returns the clock used for relative due dates
func (a *App) now() time.Time {
	return timeNow()
}
