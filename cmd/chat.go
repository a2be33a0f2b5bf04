package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/internal/chat"
	"github.com/iksnae/studymind/internal/tone"
	"github.com/iksnae/studymind/internal/ui"
)

var (
	chatFile         string
	chatConversation string
)

var (
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	replyErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Chat with StudyMind",
	Long: `Chat with your study companion.

Without a message (and without --file) the interactive chat opens. Inside it,
type /help for the slash commands: /summarize, /quiz, /flashcards, /explain,
/tone, /file, /open, /new, /theme and /sidebar.

With a message, one turn is sent and the reply printed. Use --conversation to
continue an archived conversation and --file to ask about a PDF or text file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()

		var conv *chat.Conversation
		if chatConversation != "" {
			rec, err := a.store.LoadConversation(chatConversation)
			if err != nil {
				return fmt.Errorf("%w (use 'studymind sessions' to see saved conversations)", err)
			}
			conv = chat.Restore(a.client, a.cfg.UserID, rec)
		}

		if len(args) == 0 && chatFile == "" {
			return runShell(ctx, a, conv)
		}

		if conv == nil {
			conv = chat.New(a.client, a.cfg.UserID)
		}
		message := strings.Join(args, " ")
		if chatFile == "" && strings.TrimSpace(message) == "" {
			return fmt.Errorf("message is empty")
		}

		err = internal.ShowProgress(ctx, "StudyMind is typing...", func() error {
			if chatFile != "" {
				return conv.SendFile(ctx, chatFile, message)
			}
			return conv.SendUserText(ctx, message)
		})
		if err != nil {
			return err
		}

		if err := a.store.SaveConversation(conv.Record()); err != nil {
			internal.LogWarn("Failed to save conversation: %v", err)
		}

		msgs := conv.Messages()
		reply := msgs[len(msgs)-1]
		if reply.IsError {
			fmt.Fprintln(cmd.OutOrStdout(), replyErrorStyle.Render(reply.Content))
		} else {
			a.printResult(cmd.OutOrStdout(), reply.Content)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), hintStyle.Render(fmt.Sprintf("Continue with: studymind chat --conversation %s", conv.ID())))
		return nil
	},
}

// runShell opens the interactive chat. Logging goes to a file meanwhile.
func runShell(ctx context.Context, a *app, conv *chat.Conversation) error {
	if a.paths.LogPath != "" {
		logFile, err := os.OpenFile(a.paths.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		internal.SetLogOutput(logFile)
		defer func() {
			internal.SetLogOutput(os.Stderr)
			_ = logFile.Close()
		}()
	}

	return ui.Run(ctx, ui.Options{
		Backend:      a.client,
		Tone:         tone.NewStore(a.client, a.cfg.UserID, nil),
		Prefs:        a.prefs,
		Archive:      a.store,
		UserID:       a.cfg.UserID,
		Markdown:     a.cfg.Markdown,
		Conversation: conv,
	})
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVarP(&chatFile, "file", "f", "", "Upload a PDF or text file and ask about it")
	chatCmd.Flags().StringVarP(&chatConversation, "conversation", "c", "", "Continue an archived conversation by id")
}
