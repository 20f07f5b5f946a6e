package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"todopad/backend"
	_ "todopad/backend/file"
	_ "todopad/backend/memory"
	_ "todopad/backend/sqlite"
	"todopad/internal/config"
	"todopad/internal/store"
	"todopad/internal/theme"
	"todopad/internal/todo"
	"todopad/internal/tui"
	"todopad/internal/utils"
)

// Version and Commit are set at build time
var (
	Version = "dev"
	Commit  = "unknown"
)

// Result codes for CLI output (used in no-prompt mode)
const (
	ResultActionCompleted = "ACTION_COMPLETED"
	ResultInfoOnly        = "INFO_ONLY"
	ResultError           = "ERROR"
)

// Config holds the invocation settings that are not read from the config file
type Config struct {
	NoPrompt     bool
	Verbose      bool
	OutputFormat string
	ConfigPath   string    // Path to config file (for testing)
	DBPath       string    // Storage path override (for testing)
	Backend      string    // Storage backend override (for testing)
	Stdin        io.Reader // Prompt input; os.Stdin when nil
}

// Execute runs the CLI with the given arguments and IO writers
func Execute(args []string, stdout, stderr io.Writer, cfg *Config) int {
	rootCmd, a := newRoot(stdout, stderr, cfg)

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		if containsJSONFlag(args) || a.jsonOutput() {
			outputErrorJSON(err, stdout)
		} else {
			_, _ = fmt.Fprintln(stderr, "Error:", err)
			if a.cli.NoPrompt {
				_, _ = fmt.Fprintln(stdout, ResultError)
			}
		}
		return 1
	}
	return 0
}

// containsJSONFlag checks if args contain --json flag
func containsJSONFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--json" {
			return true
		}
	}
	return false
}

// app is the resolved state shared by the subcommands of one invocation
type app struct {
	cli    *Config
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
}

// newRoot creates the root command with injectable IO
func newRoot(stdout, stderr io.Writer, cfg *Config) (*cobra.Command, *app) {
	if cfg == nil {
		cfg = &Config{}
	}
	a := &app{cli: cfg, stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:     "todopad",
		Short:   "A small to-do list for the terminal",
		Long:    "todopad keeps a to-do list in a local store. Run 'todopad tui' for the interactive app.",
		Version: Version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file")
	cmd.PersistentFlags().String("db", "", "Storage path (database file or directory)")
	cmd.PersistentFlags().String("backend", "", "Storage backend ("+strings.Join(backend.Names(), ", ")+")")
	cmd.PersistentFlags().BoolP("no-prompt", "y", false, "Disable interactive prompts")
	cmd.PersistentFlags().BoolP("verbose", "V", false, "Enable verbose/debug output")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")

	cmd.AddCommand(newTUICmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newAddCmd(a))
	cmd.AddCommand(newToggleCmd(a))
	cmd.AddCommand(newRemoveCmd(a))
	cmd.AddCommand(newEditCmd(a))
	cmd.AddCommand(newShowCmd(a))
	cmd.AddCommand(newResetCmd(a))
	cmd.AddCommand(newVersionCmd(a))

	return cmd, a
}

// setup loads the config file and applies flag overrides
func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	dbPath, _ := flags.GetString("db")
	backendName, _ := flags.GetString("backend")
	noPrompt, _ := flags.GetBool("no-prompt")
	verbose, _ := flags.GetBool("verbose")
	jsonOutput, _ := flags.GetBool("json")

	if configPath == "" {
		configPath = a.cli.ConfigPath
	}
	if dbPath == "" {
		dbPath = a.cli.DBPath
	}
	if backendName == "" {
		backendName = a.cli.Backend
	}
	outputFormat := a.cli.OutputFormat
	if jsonOutput {
		outputFormat = "json"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg.ApplyFlags(backendName, dbPath, verbose || a.cli.Verbose, outputFormat)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if noPrompt || cfg.NoPrompt {
		a.cli.NoPrompt = true
	}
	a.cfg = cfg

	logger := utils.GetLogger()
	logger.SetOutput(a.stderr)
	logger.SetVerbose(cfg.Logging.Verbose)
	utils.Debugf("config: backend=%s path=%s theme=%s", cfg.Storage.Backend, cfg.StoragePath(), cfg.Theme)
	return nil
}

func (a *app) jsonOutput() bool {
	return a.cfg != nil && a.cfg.IsJSON()
}

func (a *app) stdin() io.Reader {
	if a.cli.Stdin != nil {
		return a.cli.Stdin
	}
	return os.Stdin
}

// openStore opens the configured backend
func (a *app) openStore() (backend.KVStore, error) {
	name := a.cfg.Storage.Backend
	path := a.cfg.StoragePath()

	if name == config.BackendSQLite && path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("could not create data directory: %w", err)
		}
	}

	kv, err := backend.Open(name, path)
	if err != nil {
		var unknown *backend.UnknownBackendError
		if errors.As(err, &unknown) {
			return nil, utils.ErrBackendNotConfigured(unknown.Name)
		}
		return nil, fmt.Errorf("open %s store: %w", name, err)
	}
	return kv, nil
}

// openService opens the store and runs the start-up policy. Unlike the
// interactive app, commands refuse to continue when the store cannot be
// read, so a damaged store is never overwritten from the command line.
func (a *app) openService(ctx context.Context) (*todo.Service, func(), error) {
	kv, err := a.openStore()
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = kv.Close() }

	svc := todo.NewService(store.New(kv), todo.Options{Seed: a.cfg.IsSeedEnabled()})
	if _, err := svc.Load(ctx); err != nil {
		closeFn()
		if errors.Is(err, store.ErrMalformed) {
			return nil, nil, utils.WrapWithSuggestion(err,
				fmt.Sprintf("Fix the %q entry in %s, or run 'todopad reset' to start over", store.TodoAppKey, a.cfg.StoragePath()))
		}
		return nil, nil, err
	}
	return svc, closeFn, nil
}

func (a *app) done() {
	if a.cli.NoPrompt && !a.jsonOutput() {
		_, _ = fmt.Fprintln(a.stdout, ResultActionCompleted)
	}
}

func (a *app) infoOnly() {
	if a.cli.NoPrompt && !a.jsonOutput() {
		_, _ = fmt.Fprintln(a.stdout, ResultInfoOnly)
	}
}

// newTUICmd creates the 'tui' subcommand
func newTUICmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			open, _ := cmd.Flags().GetString("open")
			route, err := tui.ParseRoute(open)
			if err != nil {
				return err
			}

			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("tui requires an interactive terminal")
			}

			defer a.logToFile()()

			kv, err := a.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = kv.Close() }()

			svc := todo.NewService(store.New(kv), todo.Options{Seed: a.cfg.IsSeedEnabled()})
			ts := theme.NewState(theme.Initial(a.cfg.Theme))
			return tui.Run(cmd.Context(), svc, ts, tui.WithRoute(route))
		},
	}
	cmd.Flags().String("open", "/", "Start on a route: / or /todos/{id}")
	return cmd
}

// logToFile sends log output to the configured log file while the
// interactive app owns the terminal. The returned func restores stderr.
func (a *app) logToFile() func() {
	logPath := a.cfg.Logging.File
	if logPath == "" {
		logPath = utils.DefaultLogPath()
	}
	logger := utils.GetLogger()
	if err := logger.LogToFile(logPath); err != nil {
		_, _ = fmt.Fprintln(a.stderr, "Warning:", err)
	}
	return func() {
		logger.Close()
		logger.SetOutput(a.stderr)
	}
}

// newListCmd creates the 'ls' subcommand
func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := a.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			return a.doList(svc.Items(cmd.Context()))
		},
	}
}

func (a *app) doList(items todo.Collection) error {
	if a.jsonOutput() {
		return outputListJSON(items, a.stdout)
	}

	if len(items) == 0 {
		_, _ = fmt.Fprintln(a.stdout, "No todos.")
	}
	for _, t := range items {
		_, _ = fmt.Fprintln(a.stdout, formatTodo(t))
	}
	a.infoOnly()
	return nil
}

// newAddCmd creates the 'add' subcommand
func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			if err := utils.ValidateTitle(title, todo.MaxTitleLength); err != nil {
				return err
			}

			svc, closeFn, err := a.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			added, _, err := svc.Add(cmd.Context(), title)
			if err != nil {
				return err
			}
			return a.report("add", added, "Added todo")
		},
	}
}

// newToggleCmd creates the 'toggle' subcommand
func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Flip a todo between open and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := utils.ParseTodoID(args[0])
			if err != nil {
				return err
			}

			svc, closeFn, err := a.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			ok, err := svc.Toggle(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !ok {
				return utils.ErrTodoNotFound(id)
			}

			t, _ := todo.NewList(svc.Items(cmd.Context())).Find(id)
			verb := "Reopened todo"
			if t.Completed {
				verb = "Completed todo"
			}
			return a.report("toggle", t, verb)
		},
	}
}

// newRemoveCmd creates the 'rm' subcommand
func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := utils.ParseTodoID(args[0])
			if err != nil {
				return err
			}

			svc, closeFn, err := a.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			t, found := todo.NewList(svc.Items(cmd.Context())).Find(id)
			if !found {
				return utils.ErrTodoNotFound(id)
			}

			if !a.cli.NoPrompt && !a.jsonOutput() {
				prompt := fmt.Sprintf("Delete todo %d %q?", t.ID, t.Title)
				if !utils.PromptYesNoWithReader(prompt, a.stdin(), a.stdout) {
					_, _ = fmt.Fprintln(a.stdout, "Cancelled.")
					return nil
				}
			}

			if _, err := svc.Remove(cmd.Context(), id); err != nil {
				return err
			}
			return a.report("delete", t, "Deleted todo")
		},
	}
}

// newEditCmd creates the 'edit' subcommand
func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> [title...]",
		Short: "Change the title of a todo",
		Long: "Change the title of a todo. Without a title the new one is read from the terminal.\n" +
			"Editing an id that does not exist stores a new todo under that id.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := utils.ParseTodoID(args[0])
			if err != nil {
				return err
			}

			svc, closeFn, err := a.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			draft, found, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !found {
				utils.Warnf("todo %d does not exist; saving creates it", id)
				draft = todo.Todo{ID: id}
			}

			title := strings.Join(args[1:], " ")
			if title == "" {
				if a.cli.NoPrompt || a.jsonOutput() {
					return utils.ErrEmptyTitle()
				}
				title, err = utils.PromptLineWithReader(fmt.Sprintf("New title for %q: ", draft.Title), a.stdin(), a.stdout)
				if err != nil {
					return err
				}
			}
			if err := utils.ValidateTitle(title, todo.MaxTitleLength); err != nil {
				return err
			}

			draft.Title = title
			if err := svc.SaveEdit(cmd.Context(), draft); err != nil {
				return err
			}
			return a.report("edit", draft, "Saved todo")
		},
	}
}

// newShowCmd creates the 'show' subcommand
func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := utils.ParseTodoID(args[0])
			if err != nil {
				return err
			}

			svc, closeFn, err := a.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			t, found, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !found {
				return utils.ErrTodoNotFound(id)
			}

			if a.jsonOutput() {
				return writeJSON(a.stdout, showResponse{Todo: t, Result: ResultInfoOnly})
			}
			_, _ = fmt.Fprintln(a.stdout, formatTodo(t))
			a.infoOnly()
			return nil
		},
	}
}

// newResetCmd creates the 'reset' subcommand. It removes the stored list
// without reading it, so it also recovers from a malformed value.
func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Remove all stored todos",
		Long:  "Remove the stored todo list. The next start begins from the seed list unless seed is disabled.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cli.NoPrompt && !a.jsonOutput() {
				prompt := fmt.Sprintf("Remove all todos from %s?", a.cfg.StoragePath())
				if !utils.PromptYesNoWithReader(prompt, a.stdin(), a.stdout) {
					_, _ = fmt.Fprintln(a.stdout, "Cancelled.")
					return nil
				}
			}

			kv, err := a.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = kv.Close() }()

			if err := store.New(kv).Reset(cmd.Context()); err != nil {
				return err
			}
			if a.jsonOutput() {
				return writeJSON(a.stdout, resetResponse{Action: "reset", Result: ResultActionCompleted})
			}
			_, _ = fmt.Fprintln(a.stdout, "Removed stored todos")
			a.done()
			return nil
		},
	}
}

// newVersionCmd creates the 'version' subcommand
func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _ = fmt.Fprintf(a.stdout, "todopad\nVersion: %s\nCommit: %s\n", Version, Commit)
			return nil
		},
	}
}

// report prints the outcome of a change
func (a *app) report(action string, t todo.Todo, verb string) error {
	if a.jsonOutput() {
		return writeJSON(a.stdout, actionResponse{Action: action, Todo: t, Result: ResultActionCompleted})
	}
	_, _ = fmt.Fprintf(a.stdout, "%s %d: %s\n", verb, t.ID, t.Title)
	a.done()
	return nil
}

// formatTodo renders one line of list output
func formatTodo(t todo.Todo) string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %3d  %s", mark, t.ID, t.Title)
}

type listResponse struct {
	Todos  todo.Collection `json:"todos"`
	Count  int             `json:"count"`
	Result string          `json:"result"`
}

type actionResponse struct {
	Action string    `json:"action"`
	Todo   todo.Todo `json:"todo"`
	Result string    `json:"result"`
}

type resetResponse struct {
	Action string `json:"action"`
	Result string `json:"result"`
}

type showResponse struct {
	Todo   todo.Todo `json:"todo"`
	Result string    `json:"result"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Code   int    `json:"code"`
	Result string `json:"result"`
}

// outputListJSON outputs todos in JSON format
func outputListJSON(items todo.Collection, stdout io.Writer) error {
	if items == nil {
		items = todo.Collection{}
	}
	return writeJSON(stdout, listResponse{Todos: items, Count: len(items), Result: ResultInfoOnly})
}

func writeJSON(w io.Writer, v interface{}) error {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, string(jsonBytes))
	return nil
}

// outputErrorJSON outputs error in JSON format
func outputErrorJSON(err error, stdout io.Writer) {
	response := errorResponse{
		Error:  err.Error(),
		Code:   1,
		Result: ResultError,
	}

	jsonBytes, _ := json.Marshal(response)
	_, _ = fmt.Fprintln(stdout, string(jsonBytes))
}
