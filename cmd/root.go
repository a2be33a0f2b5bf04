package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iksnae/studymind/internal"
)

var (
	verbose    bool
	configFile string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "studymind",
	Short: "StudyMind AI, your study companion in the terminal",
	Long: `StudyMind AI is a study companion backed by the StudyMind service.

Chat about your study material, turn it into summaries, quizzes, flashcards
and explanations, generate lecture content and slides, grade answers, fill
admin templates and find project ideas.

Features:
  • Interactive chat with markdown rendering and a conversation sidebar
  • Summaries, quizzes, flashcards and explanations of any text or file
  • Lecture content, slides and quizzes for instructors
  • Per-user response tone kept on the backend
  • Local archive of past conversations, exportable as JSONL, Markdown, YAML or JSON

Quick Start:
  studymind chat                          # Open the interactive chat
  studymind generate summarize notes.txt  # Summarize a file
  studymind sessions                      # List saved conversations
  studymind export --format md            # Export conversations as Markdown

Configuration is read from flags, STUDYMIND_* environment variables,
./studymind.yaml or ~/.studymind.yaml, in that order.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	pf.StringVar(&configFile, "config", "", "Config file (default ./studymind.yaml or ~/.studymind.yaml)")
	pf.String(flagBackend, "", "Backend base URL (default http://127.0.0.1:5000)")
	pf.String(flagUser, "", "User id sent with chat and tone requests (default default_user)")
	pf.String(flagState, "", "Custom state location (path to database file or state directory)")
	rootCmd.SilenceUsage = true
}
