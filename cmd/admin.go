package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/internal/panel"
)

var (
	adminVars []string
	adminSave bool
	adminList bool
)

var adminCmd = &cobra.Command{
	Use:   "admin <template>",
	Short: "Fill an administrative template",
	Long: `Fill one of the administrative templates (syllabus, announcement,
grading rubric, ...). Each template starts from its default variables; override
them with --var key=value.

Examples:
  studymind admin --list
  studymind admin syllabus --var course_name="Intro to Go" --var weeks=10 --save`,
	Args: func(cmd *cobra.Command, args []string) error {
		if adminList {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	ValidArgs: panel.AdminTemplateNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminList {
			printTemplates(cmd)
			return nil
		}

		form := panel.NewAdminForm(args[0])
		if err := form.Validate(); err != nil {
			return err
		}
		for _, kv := range adminVars {
			key, value, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("invalid --var %q, expected key=value", kv)
			}
			if err := form.Set(strings.TrimSpace(key), value); err != nil {
				return err
			}
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()

		admin := panel.NewAdmin(a.client)
		var out string
		err = internal.ShowProgress(ctx, fmt.Sprintf("Filling %s", form.Template), func() error {
			var err error
			out, err = admin.Run(ctx, form)
			return err
		})
		if err != nil {
			return panelError(err)
		}
		a.printResult(cmd.OutOrStdout(), out)

		if adminSave {
			return saveOutput(cmd, admin.Save)
		}
		return nil
	},
}

func printTemplates(cmd *cobra.Command) {
	w := cmd.OutOrStdout()
	for _, name := range panel.AdminTemplateNames() {
		fmt.Fprintln(w, headerStyle.Render(name))
		vars := panel.AdminTemplates[name]
		keys := make([]string, 0, len(vars))
		for k := range vars {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s = %q\n", k, vars[k])
		}
	}
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.Flags().StringArrayVar(&adminVars, "var", nil, "Template variable as key=value (repeatable)")
	adminCmd.Flags().BoolVar(&adminSave, "save", false, "Save the result on the backend")
	adminCmd.Flags().BoolVarP(&adminList, "list", "l", false, "List the templates and their default variables")
}
