package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"task-list/internal/api"
	"task-list/internal/config"
	"task-list/internal/logging"
	"task-list/internal/services"
	"task-list/internal/tui"
)

// ShellPrompt is printed before each command when stdin is a terminal
const ShellPrompt = "tl> "

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config
	logger *logging.Logger
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand() *RootCommand {
	root := &RootCommand{}

	root.cmd = &cobra.Command{
		Use:   "tl",
		Short: "An in-memory task list",
		Long: `Task List (tl) keeps a list of tasks for the length of one session.

Tasks have a name, a priority (high, medium, low) and a due date, and are
either complete or incomplete. Nothing is written to disk: the list is gone
when the program exits.

EXAMPLES:
  tl                                       # Start the line shell
  tl tui                                   # Start the full screen interface
  tl --sort dueDate --filter incomplete    # Start with a different view
  printf 'add Buy milk\nlist\n' | tl       # Script the shell

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > .env > config file > defaults

  The config file is TOML, read from ~/.config/tl/config.toml or TL_CONFIG.

    TL_STORE_BACKEND                       memory or sqlite (default: memory)
    TL_DATE_INPUT_FORMAT                   Due date input layout (default: 2006-01-02)
    TL_DATE_DISPLAY_FORMAT                 Due date display layout (default: 2006-01-02)
    TL_DISPLAY_RELATIVE_DUE                Show "3 days from now" next to dates (default: false)
    TL_DEFAULT_FILTER                      all, complete or incomplete (default: all)
    TL_DEFAULT_SORT                        priority or dueDate (default: priority)
    TL_LOG_LEVEL                           debug, info, warn or error (default: warn)
    TL_LOG_FORMAT                          text or json (default: text)
    TL_LOG_OUTPUT                          stderr, stdout, discard or a file path (default: stderr)
    TL_APP_TIMEOUT                         Per command timeout (default: 10s)
    TL_APP_VERBOSE                         Log at info level (default: false)
    TL_DEBUG                               Log at debug level`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
		RunE: root.runShell,
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	defer r.closeLogger()
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs sets the arguments used instead of os.Args
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// SetIn sets the stream commands are read from
func (r *RootCommand) SetIn(in io.Reader) {
	r.cmd.SetIn(in)
}

// SetOut sets the stream command output is written to
func (r *RootCommand) SetOut(out io.Writer) {
	r.cmd.SetOut(out)
}

// SetErr sets the stream cobra writes usage errors to
func (r *RootCommand) SetErr(out io.Writer) {
	r.cmd.SetErr(out)
}

// Config returns the configuration loaded for the last run
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Sources
	flags.String("config", "", "Config file path (overrides TL_CONFIG)")
	flags.String("env-file", ".env", "Dotenv file path")

	// Store configuration
	flags.String("backend", "", "Collection backend, memory or sqlite (overrides TL_STORE_BACKEND)")

	// Display configuration
	flags.String("date-format", "", "Due date input layout (overrides TL_DATE_INPUT_FORMAT)")
	flags.String("display-date-format", "", "Due date display layout (overrides TL_DATE_DISPLAY_FORMAT)")
	flags.Bool("relative-due", false, "Show relative due dates (overrides TL_DISPLAY_RELATIVE_DUE)")

	// View defaults
	flags.String("filter", "", "Starting filter (overrides TL_DEFAULT_FILTER)")
	flags.String("sort", "", "Starting sort (overrides TL_DEFAULT_SORT)")

	// Logging configuration
	flags.String("log-level", "", "Log level (overrides TL_LOG_LEVEL)")
	flags.String("log-format", "", "Log format, text or json (overrides TL_LOG_FORMAT)")
	flags.String("log-output", "", "Log destination (overrides TL_LOG_OUTPUT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Per command timeout (overrides TL_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TL_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Start the line shell (default)",
		Long: `Read commands from standard input, one per line, until quit or end of input.

Blank lines and lines starting with # are ignored, so a script can be piped in.
Type help inside the shell for the list of commands.`,
		Args: cobra.NoArgs,
		RunE: r.runShell,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the full screen interface",
		Long: `Start the full screen interface.

Logs are discarded unless --log-output names a file, so they do not
draw over the screen.`,
		Args: cobra.NoArgs,
		RunE: r.runTUI,
	}

	r.cmd.AddCommand(shellCmd, tuiCmd)
}

// setup loads the configuration and opens the logger before any command runs
func (r *RootCommand) setup(cmd *cobra.Command) error {
	loader := config.NewLoader()
	flags := cmd.Flags()

	if path, _ := flags.GetString("config"); path != "" {
		loader.WithConfigPath(path)
	}
	if flags.Changed("env-file") {
		path, _ := flags.GetString("env-file")
		loader.WithEnvFile(path)
	}

	cfg, err := loader.LoadWithOverrides(overridesFromFlags(cmd))
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	r.config = cfg

	opts := cfg.LoggerOptions()
	if cmd.Name() == "tui" && logging.IsTerminalOutput(opts.Output) {
		opts.Output = "discard"
	}
	logger, err := logging.New(opts)
	if err != nil {
		return err
	}
	r.closeLogger()
	r.logger = logger

	return nil
}

// overridesFromFlags collects the flags set on the command line
func overridesFromFlags(cmd *cobra.Command) *config.ConfigOverrides {
	flags := cmd.Flags()
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	boolFlag := func(name string) *bool {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetBool(name)
		return &v
	}

	overrides.Backend = stringFlag("backend")
	overrides.InputDateFormat = stringFlag("date-format")
	overrides.DisplayDateFormat = stringFlag("display-date-format")
	overrides.RelativeDue = boolFlag("relative-due")
	overrides.Filter = stringFlag("filter")
	overrides.Sort = stringFlag("sort")
	overrides.LogLevel = stringFlag("log-level")
	overrides.LogFormat = stringFlag("log-format")
	overrides.LogOutput = stringFlag("log-output")
	overrides.Verbose = boolFlag("verbose")

	if flags.Changed("app-timeout") {
		timeout, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &timeout
	}

	return overrides
}

// newSession opens the configured backend and builds a session over it.
// The returned function closes the backend.
func (r *RootCommand) newSession(ctx context.Context) (*api.Session, func(), error) {
	repo, err := config.CreateRepository(ctx, r.config)
	if err != nil {
		return nil, nil, err
	}

	store := services.NewTaskStore(repo, r.logger.Logger)
	session := api.NewSession(store, api.Options{
		Filter:          r.config.DefaultFilter(),
		Sort:            r.config.DefaultSort(),
		InputDateFormat: r.config.Display.InputDateFormat,
		Logger:          r.logger.Logger,
	})
	r.logger.DebugContext(ctx, "session started",
		"session", session.ID(),
		"backend", r.config.Store.Backend,
	)

	closeRepo := func() {
		if err := repo.Close(); err != nil {
			r.logger.ErrorContextf(ctx, "close backend: %v", err)
		}
	}
	return session, closeRepo, nil
}

func (r *RootCommand) runShell(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	session, closeRepo, err := r.newSession(ctx)
	if err != nil {
		return err
	}
	defer closeRepo()

	in := cmd.InOrStdin()
	prompt := ""
	if isTerminal(in) {
		prompt = ShellPrompt
	}

	app := NewApp(session, cmd.OutOrStdout(), AppOptions{
		DisplayDateFormat: r.config.Display.DisplayDateFormat,
		RelativeDue:       r.config.Display.RelativeDue,
		Timeout:           r.config.Application.Timeout,
		Prompt:            prompt,
		Logger:            r.logger.Logger,
	})
	return app.RunShell(ctx, in)
}

func (r *RootCommand) runTUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	session, closeRepo, err := r.newSession(ctx)
	if err != nil {
		return err
	}
	defer closeRepo()

	return tui.Run(ctx, session, cmd.InOrStdin(), cmd.OutOrStdout(), tui.Options{
		DisplayDateFormat: r.config.Display.DisplayDateFormat,
		RelativeDue:       r.config.Display.RelativeDue,
	})
}

func (r *RootCommand) closeLogger() {
	if r.logger != nil {
		_ = r.logger.Close()
		r.logger = nil
	}
}

// isTerminal reports whether in is an interactive terminal
func isTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
