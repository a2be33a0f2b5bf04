package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/internal/api"
	"github.com/iksnae/studymind/internal/panel"
)

// the working material survives between invocations in the state database
const (
	keyContentLecture = "content.lecture"
	keyContentSlides  = "content.slides"
)

var (
	contentDifficulty string
	contentSlides     bool
	contentSave       bool
	contentFile       string
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Generate lecture material and slides",
	Long: `Generate lecture material for a topic, turn it into slides, simplify or
expand it, and save it on the backend.

The current material is kept between commands:

  studymind content create "Binary search trees" --difficulty intermediate
  studymind content slides
  studymind content adjust simplify
  studymind content save

The stored context text (see 'studymind context') is appended to the topic.`,
}

var contentCreateCmd = &cobra.Command{
	Use:   "create <topic or source text>",
	Short: "Generate lecture material",
	RunE: func(cmd *cobra.Command, args []string) error {
		difficulty, err := internal.ParseDifficulty(contentDifficulty)
		if err != nil {
			return err
		}
		input, err := readInput(args, contentFile)
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()

		c := panel.NewContent(a.client, a.prefs, a.cfg.UserID)
		var saved string
		steps := []internal.ProgressStep{{
			Message: "Generating lecture material",
			Fn: func() error {
				_, err := c.Create(ctx, panel.ContentForm{Input: input, Difficulty: difficulty})
				return err
			},
		}}
		if contentSlides {
			steps = append(steps, internal.ProgressStep{
				Message: "Creating slides",
				Fn: func() error {
					_, err := c.MakeSlides(ctx)
					return err
				},
			})
		}
		if contentSave {
			steps = append(steps, internal.ProgressStep{
				Message: "Saving",
				Fn: func() error {
					var err error
					saved, err = c.Save(ctx)
					return err
				},
			})
		}

		err = internal.ShowProgressWithSteps(ctx, steps)
		if storeErr := storeContent(a, c); storeErr != nil {
			internal.LogWarn("Failed to keep content: %v", storeErr)
		}
		if err != nil {
			return panelError(err)
		}

		a.printResult(cmd.OutOrStdout(), c.Base())
		if saved != "" {
			internal.PrintSuccess(fmt.Sprintf("Saved to %s", saved))
		}
		return nil
	},
}

var contentSlidesCmd = &cobra.Command{
	Use:   "slides",
	Short: "Turn the current lecture material into slides",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContent(cmd, "Creating slides", func(ctx context.Context, c *panel.Content) (string, error) {
			return c.MakeSlides(ctx)
		})
	},
}

var contentAdjustCmd = &cobra.Command{
	Use:       "adjust <simplify|expand>",
	Short:     "Simplify or expand the current material",
	Long:      `Simplify or expand the current slides, or the lecture material when there are no slides.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(api.AdjustSimplify), string(api.AdjustExpand)},
	RunE: func(cmd *cobra.Command, args []string) error {
		action, err := api.ParseAdjustAction(args[0])
		if err != nil {
			return err
		}
		return withContent(cmd, fmt.Sprintf("Adjusting (%s)", action), func(ctx context.Context, c *panel.Content) (string, error) {
			return c.Adjust(ctx, action)
		})
	},
}

var contentSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the current material on the backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()

		c, err := loadContent(a)
		if err != nil {
			return err
		}
		var saved string
		err = internal.ShowProgress(ctx, "Saving", func() error {
			var err error
			saved, err = c.Save(ctx)
			return err
		})
		if err != nil {
			return panelError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), saved)
		return nil
	},
}

var contentShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current material",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := loadContent(a)
		if err != nil {
			return err
		}
		if c.Base() == "" {
			internal.PrintInfo("No material yet. Start with 'studymind content create <topic>'")
			return nil
		}
		a.printResult(cmd.OutOrStdout(), c.Base())
		return nil
	},
}

// withContent restores the material, runs step and keeps the result
func withContent(cmd *cobra.Command, message string, step func(context.Context, *panel.Content) (string, error)) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	c, err := loadContent(a)
	if err != nil {
		return err
	}

	var out string
	err = internal.ShowProgress(ctx, message, func() error {
		var err error
		out, err = step(ctx, c)
		return err
	})
	if err != nil {
		return panelError(err)
	}
	if err := storeContent(a, c); err != nil {
		return err
	}
	a.printResult(cmd.OutOrStdout(), out)
	return nil
}

func loadContent(a *app) (*panel.Content, error) {
	c := panel.NewContent(a.client, a.prefs, a.cfg.UserID)
	lecture, _, err := a.store.Get(keyContentLecture)
	if err != nil {
		return nil, err
	}
	slides, _, err := a.store.Get(keyContentSlides)
	if err != nil {
		return nil, err
	}
	c.SetLecture(lecture)
	c.SetSlides(slides)
	return c, nil
}

func storeContent(a *app, c *panel.Content) error {
	if err := a.store.Set(keyContentLecture, c.Lecture()); err != nil {
		return err
	}
	return a.store.Set(keyContentSlides, c.SlidesText())
}

func init() {
	rootCmd.AddCommand(contentCmd)
	contentCmd.AddCommand(contentCreateCmd, contentSlidesCmd, contentAdjustCmd, contentSaveCmd, contentShowCmd)

	contentCreateCmd.Flags().StringVarP(&contentDifficulty, "difficulty", "d", string(internal.DifficultyBeginner), "Difficulty (beginner, intermediate, advanced)")
	contentCreateCmd.Flags().StringVarP(&contentFile, "file", "f", "", "Read the source text from a file")
	contentCreateCmd.Flags().BoolVar(&contentSlides, "slides", false, "Also create slides")
	contentCreateCmd.Flags().BoolVar(&contentSave, "save", false, "Save the result on the backend")
}
