package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/internal/api"
	"github.com/iksnae/studymind/internal/config"
	"github.com/iksnae/studymind/internal/prefs"
)

const (
	flagBackend = "backend"
	flagUser    = "user"
	flagState   = "state"
)

// app is the state shared by the commands of one invocation
type app struct {
	cfg    *config.Config
	paths  internal.StatePaths
	store  *internal.Storage
	prefs  *prefs.Prefs
	client *api.Client
}

// loadConfig resolves the configuration for cmd, binding the global flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.New()
	for key, flag := range map[string]string{
		config.KeyBackendURL: flagBackend,
		config.KeyUserID:     flagUser,
		config.KeyStatePath:  flagState,
	} {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind --%s: %w", flag, err)
			}
		}
	}
	return config.Load(v, configFile)
}

// openApp loads the configuration and opens the state database
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.File != "" {
		internal.LogDebug("Using config file %s", cfg.File)
	}

	paths, err := internal.GetStatePaths(cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get state paths: %w", err)
	}

	db, err := internal.OpenDatabase(paths.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	store := internal.NewStorage(db, paths.DatabasePath)

	p, err := prefs.Load(store)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	internal.LogDebug("Backend %s, user %s, state %s", cfg.BackendURL, cfg.UserID, paths.DatabasePath)
	return &app{
		cfg:    cfg,
		paths:  paths,
		store:  store,
		prefs:  p,
		client: api.New(cfg.BackendURL, cfg.ClientOptions()...),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		internal.LogWarn("Failed to close state database: %v", err)
	}
}

// commandContext is cancelled on interrupt
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt)
}

// printResult writes backend output, rendered as markdown when writing to a
// terminal with markdown enabled
func (a *app) printResult(w io.Writer, text string) {
	text = strings.TrimSpace(text)
	if a.cfg.Markdown && w == os.Stdout && internal.IsTerminal() {
		style := "light"
		if a.prefs.Dark() {
			style = "dark"
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(internal.TerminalWidth(100)-4),
			glamour.WithEmoji(),
		)
		if err == nil {
			if out, err := r.Render(text); err == nil {
				fmt.Fprint(w, out)
				return
			}
		}
	}
	fmt.Fprintln(w, text)
}

// readInput returns the joined args, or the contents of file when set
func readInput(args []string, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}

// failure words a panel error the way the panels show it
type failure struct{ err error }

func (f *failure) Error() string {
	return strings.TrimPrefix(api.Describe(f.err), "Error: ")
}

func (f *failure) Unwrap() error {
	return f.err
}

func panelError(err error) error {
	if err == nil {
		return nil
	}
	return &failure{err: err}
}

// saveOutput runs a panel's save and reports the saved path
func saveOutput(cmd *cobra.Command, save func(context.Context) (string, error)) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	var path string
	err := internal.ShowProgress(ctx, "Saving", func() error {
		var err error
		path, err = save(ctx)
		return err
	})
	if err != nil {
		return panelError(err)
	}
	internal.PrintSuccess(fmt.Sprintf("Saved to %s", path))
	return nil
}
