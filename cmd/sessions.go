package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/iksnae/studymind/internal"
)

var (
	sessionsLimit  int
	sessionsDelete string
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var sessionsCmd = &cobra.Command{
	Use:     "sessions",
	Aliases: []string{"list", "ls"},
	Short:   "List saved conversations",
	Long: `List the conversations archived on this machine, most recent first.

Continue one with 'studymind chat --conversation <id>', print it with
'studymind show <id>' or remove it with --delete.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if sessionsDelete != "" {
			if err := a.store.DeleteConversation(sessionsDelete); err != nil {
				return err
			}
			internal.PrintSuccess(fmt.Sprintf("Deleted conversation %s", sessionsDelete))
			return nil
		}

		convs, err := a.store.ListConversations(sessionsLimit)
		if err != nil {
			return fmt.Errorf("failed to list conversations: %w", err)
		}
		records := make(map[string]int, len(convs))
		for _, c := range convs {
			rec, err := a.store.LoadConversation(c.ID)
			if err != nil {
				internal.LogDebug("Failed to count messages of %s: %v", c.ID, err)
				continue
			}
			records[c.ID] = len(rec.Messages)
		}

		displayConversations(cmd.OutOrStdout(), convs, records, time.Now())
		return nil
	},
}

func displayConversations(out io.Writer, convs []internal.Conversation, counts map[string]int, now time.Time) {
	if len(convs) == 0 {
		fmt.Fprintln(out, headerStyle.Render("📋 No saved conversations"))
		return
	}

	header := headerStyle.Render(fmt.Sprintf("📋 Found %d conversation(s)", len(convs)))
	fmt.Fprintln(out, header)
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)

	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Title")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Updated")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 90))

	for _, c := range convs {
		title := internal.Preview(c.Title, 50)
		if title == "" {
			title = "Untitled"
		}

		msgCount := countStyle.Render(strconv.Itoa(counts[c.ID]))

		updated := dateStyle.Render("-")
		if !c.UpdatedAt.IsZero() {
			updated = dateStyle.Render(humanize.RelTime(c.UpdatedAt, now, "ago", "from now"))
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", idStyle.Render(c.ID), title, msgCount, updated)
	}

	_ = w.Flush()
	fmt.Fprintln(out)
	fmt.Fprintln(out, idStyle.Render("💡 Tip: Use the ID (e.g., ")+
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(convs[0].ID)+
		idStyle.Render(") with `studymind show <id>` or `studymind chat --conversation <id>`"))
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "n", 0, "Show at most this many conversations")
	sessionsCmd.Flags().StringVar(&sessionsDelete, "delete", "", "Delete the conversation with this id")
}
