package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/internal/tone"
)

var toneCmd = &cobra.Command{
	Use:   "tone",
	Short: "Show or change the response tone",
	Long: `Show the response tone the backend uses for you, with the available tones.

Use 'studymind tone set <tone>' to change it. Without a tone name an
interactive menu opens.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()

		current := tone.NewStore(a.client, a.cfg.UserID, nil).Load(ctx)

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Current tone: %s\n\n", titleStyle.Render(string(current)))
		for _, t := range internal.Tones {
			marker := "  "
			if t == current {
				marker = "▸ "
			}
			fmt.Fprintf(w, "%s%-13s %s\n", marker, t, dateStyle.Render(t.Description()))
		}
		return nil
	},
}

var toneSetCmd = &cobra.Command{
	Use:       "set [tone]",
	Short:     "Change the response tone",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: toneNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()

		store := tone.NewStore(a.client, a.cfg.UserID, nil)
		store.Load(ctx)

		var t internal.Tone
		if len(args) == 1 {
			t = internal.Tone(args[0])
		} else {
			if !internal.IsTerminal() {
				return fmt.Errorf("no tone given (available: %s)", strings.Join(toneNames(), ", "))
			}
			t, err = selectTone(store.Current())
			if err != nil {
				return err
			}
		}

		changed, err := store.Change(ctx, t)
		if err != nil {
			if errors.Is(err, tone.ErrUnknownTone) {
				return fmt.Errorf("%w (available: %s)", err, strings.Join(toneNames(), ", "))
			}
			return panelError(err)
		}
		if !changed {
			internal.PrintInfo(fmt.Sprintf("Tone is already %s", store.Current()))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), tone.Announcement(store.Current()))
		return nil
	},
}

// selectTone shows the interactive tone menu starting at current
func selectTone(current internal.Tone) (internal.Tone, error) {
	start := 0
	for i, t := range internal.Tones {
		if t == current {
			start = i
		}
	}
	prompt := promptui.Select{
		Label: "Response tone",
		Items: internal.Tones,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "▸ {{ . | cyan }}",
			Inactive: "  {{ . }}",
			Selected: "Tone: {{ . | green }}",
			Details:  `{{ .Description | faint }}`,
		},
		CursorPos: start,
		Size:      len(internal.Tones),
	}
	_, result, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("tone selection cancelled: %w", err)
	}
	return internal.Tone(result), nil
}

func toneNames() []string {
	names := make([]string, len(internal.Tones))
	for i, t := range internal.Tones {
		names[i] = string(t)
	}
	return names
}

func init() {
	rootCmd.AddCommand(toneCmd)
	toneCmd.AddCommand(toneSetCmd)
}
