package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/internal/api"
	"github.com/iksnae/studymind/internal/panel"
)

var (
	gradeQuestion   string
	gradeAnswer     string
	gradeAnswerFile string
	gradeCode       bool
	gradeEdit       string
	gradeEditFile   string
)

var (
	gradeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	gradeSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62"))
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Grade an answer to a question",
	Long: `Grade a student's answer, or code with --code.

The backend returns a grade, feedback, detected issues and strengths. Pass
--edit (or --edit-file) to resubmit with instructor-edited feedback.

Examples:
  studymind grade --question "What is a stack?" --answer "A LIFO structure"
  studymind grade --code --question "Reverse a list" --answer-file solution.py
  studymind grade -q "What is a stack?" -a "LIFO" --edit "Good, mention push/pop"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		answer := gradeAnswer
		if gradeAnswerFile != "" {
			data, err := os.ReadFile(gradeAnswerFile)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", gradeAnswerFile, err)
			}
			answer = string(data)
		}
		form := panel.GradingForm{Question: gradeQuestion, Answer: answer, IsCode: gradeCode}
		if err := form.Validate(); err != nil {
			return err
		}

		edit := gradeEdit
		if gradeEditFile != "" {
			data, err := os.ReadFile(gradeEditFile)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", gradeEditFile, err)
			}
			edit = string(data)
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()

		g := panel.NewGrading(a.client)
		var res *api.GradeResult
		err = internal.ShowProgress(ctx, "Grading", func() error {
			var err error
			res, err = g.Grade(ctx, form)
			return err
		})
		if err != nil {
			return panelError(err)
		}

		if strings.TrimSpace(edit) != "" {
			g.SetEditedFeedback(edit)
			err = internal.ShowProgress(ctx, "Saving edited feedback", func() error {
				var err error
				res, err = g.SaveEdit(ctx, form)
				return err
			})
			if err != nil {
				return panelError(err)
			}
		}

		printGrade(cmd.OutOrStdout(), res)
		return nil
	},
}

func printGrade(w io.Writer, res *api.GradeResult) {
	if res.Grade != nil {
		fmt.Fprintln(w, gradeStyle.Render(fmt.Sprintf("Grade: %g", *res.Grade)))
	} else {
		fmt.Fprintln(w, gradeStyle.Render("Grade: n/a"))
	}
	if res.Feedback != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, gradeSectionStyle.Render("Feedback"))
		fmt.Fprintln(w, res.Feedback)
	}
	printList(w, "Detected issues", res.DetectedIssues)
	printList(w, "Strengths", res.Strengths)
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, gradeSectionStyle.Render(title))
	for _, item := range items {
		fmt.Fprintf(w, "  • %s\n", item)
	}
}

func init() {
	rootCmd.AddCommand(gradeCmd)
	gradeCmd.Flags().StringVarP(&gradeQuestion, "question", "q", "", "The question or assignment")
	gradeCmd.Flags().StringVarP(&gradeAnswer, "answer", "a", "", "The answer to grade")
	gradeCmd.Flags().StringVar(&gradeAnswerFile, "answer-file", "", "Read the answer from a file")
	gradeCmd.Flags().BoolVar(&gradeCode, "code", false, "Grade the answer as code")
	gradeCmd.Flags().StringVar(&gradeEdit, "edit", "", "Instructor-edited feedback to save with the grade")
	gradeCmd.Flags().StringVar(&gradeEditFile, "edit-file", "", "Read the edited feedback from a file")
}
