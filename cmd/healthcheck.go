package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/internal/api"
	"github.com/iksnae/studymind/internal/panel"
)

var (
	healthcheckVerbose bool
	healthcheckTimeout time.Duration
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// endpointCheck is one backend request run by the healthcheck
type endpointCheck struct {
	name string
	run  func(ctx context.Context) error
	err  error
	took time.Duration
}

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check the configuration, local state and backend",
	Long: `Check the health of studymind by verifying:
  • Configuration (backend URL, user id, config file)
  • Local state database (preferences and conversation archive)
  • Backend reachability (history and tone endpoints)

This command is useful for debugging connection problems.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, sectionStyle.Render("🔍 StudyMind Health Check"))
		fmt.Fprintln(out)

		// Step 1: configuration
		fmt.Fprintln(out, infoStyle.Render("Step 1: Loading configuration..."))
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Invalid configuration:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Fprintln(out, successStyle.Render("✅ Configuration loaded"))
		if healthcheckVerbose {
			file := cfg.File
			if file == "" {
				file = "(none)"
			}
			fmt.Fprintf(out, "   Config file: %s\n", file)
			fmt.Fprintf(out, "   Backend: %s\n", cfg.BackendURL)
			fmt.Fprintf(out, "   User: %s\n", cfg.UserID)
		}
		fmt.Fprintln(out)

		// Step 2: local state
		fmt.Fprintln(out, infoStyle.Render("Step 2: Checking local state..."))
		stateOK, conversations := checkState(out, cfg.StatePath)
		fmt.Fprintln(out)

		// Step 3: backend
		fmt.Fprintln(out, infoStyle.Render("Step 3: Contacting backend..."))
		client := api.New(cfg.BackendURL, cfg.ClientOptions()...)
		checks := []*endpointCheck{
			{name: "GET /history", run: client.Ping},
			{name: "GET /tone/" + cfg.UserID, run: func(ctx context.Context) error {
				_, err := client.GetTone(ctx, cfg.UserID)
				return err
			}},
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()
		if healthcheckTimeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, healthcheckTimeout)
			defer cancel()
		}
		backendErr := runChecks(ctx, checks)
		for _, p := range checks {
			if p.err != nil {
				fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("❌ %s:", p.name)), api.Reason(p.err))
				continue
			}
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ %s", p.name)), dateStyle.Render(p.took.Round(time.Millisecond).String()))
		}
		if healthcheckVerbose {
			fmt.Fprintln(out, "   Endpoints used:")
			for _, e := range panel.Endpoints() {
				fmt.Fprintf(out, "   %-5s %-16s %s\n", e.Method, e.Endpoint, e.Label)
			}
		}
		fmt.Fprintln(out)

		// Summary
		fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
		fmt.Fprintln(out)

		switch {
		case stateOK && backendErr == nil:
			fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("   • Backend: %s", cfg.BackendURL)))
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("   • Conversations: %d saved", conversations)))
			return nil
		case stateOK:
			fmt.Fprintln(out, errorStyle.Render("❌ Health check failed"))
			fmt.Fprintf(out, "   • Cannot reach the backend at %s\n", cfg.BackendURL)
			fmt.Fprintln(out, "   • Check that the StudyMind service is running, or pass --backend")
			return fmt.Errorf("health check failed: %s", api.Describe(backendErr))
		default:
			fmt.Fprintln(out, errorStyle.Render("❌ Health check failed"))
			fmt.Fprintln(out, "   • Cannot open the local state database")
			return fmt.Errorf("health check failed: local state unavailable")
		}
	},
}

// checkState opens the state database and counts the archived conversations
func checkState(out io.Writer, custom string) (bool, int) {
	paths, err := internal.GetStatePaths(custom)
	if err != nil {
		fmt.Fprintln(out, errorStyle.Render("❌ Failed to resolve state path:"), err)
		return false, 0
	}
	existed := paths.DatabaseExists()
	db, err := internal.OpenDatabase(paths.DatabasePath)
	if err != nil {
		fmt.Fprintln(out, errorStyle.Render("❌ Failed to open state database:"), err)
		return false, 0
	}
	store := internal.NewStorage(db, paths.DatabasePath)
	defer func() { _ = store.Close() }()

	convs, err := store.ListConversations(0)
	if err != nil {
		fmt.Fprintln(out, errorStyle.Render("❌ Failed to read conversation archive:"), err)
		return false, 0
	}

	if existed {
		fmt.Fprintln(out, successStyle.Render("✅ State database found"))
	} else {
		fmt.Fprintln(out, warningStyle.Render("⚠️  State database created"))
	}
	if healthcheckVerbose {
		fmt.Fprintf(out, "   Database: %s\n", paths.DatabasePath)
		fmt.Fprintf(out, "   Conversations: %d\n", len(convs))
	}
	return true, len(convs)
}

// runChecks runs every check concurrently and returns the first failure.
// Each check keeps its own result.
func runChecks(ctx context.Context, checks []*endpointCheck) error {
	var g errgroup.Group
	for _, p := range checks {
		g.Go(func() error {
			start := time.Now()
			p.err = p.run(ctx)
			p.took = time.Since(start)
			return p.err
		})
	}
	return g.Wait()
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVarP(&healthcheckVerbose, "verbose", "v", false, "Show detailed diagnostic information")
	healthcheckCmd.Flags().DurationVar(&healthcheckTimeout, "timeout", 10*time.Second, "Give up on the backend after this long")
}
