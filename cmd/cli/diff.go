package cli

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

func newDiffCommand(a *app) *cobra.Command {
	var (
		file    string
		context int
	)

	cmd := &cobra.Command{
		Use:   "diff <scope> <other>",
		Short: "Show how two scopes resolve differently",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dumps [2]string
			for i, name := range args {
				s, err := a.scope(name, file)
				if err != nil {
					return err
				}
				if dumps[i], err = dumpYAML(resolvedValues(s)); err != nil {
					return err
				}
			}

			diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        difflib.SplitLines(dumps[0]),
				B:        difflib.SplitLines(dumps[1]),
				FromFile: args[0],
				ToFile:   args[1],
				Context:  context,
			})
			if err != nil {
				return fmt.Errorf("failed to diff scopes: %w", err)
			}
			if diff == "" {
				cmd.PrintErrln("scopes resolve identically")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), diff)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "theme document name (default from THEMEKIT_THEME_FILE)")
	cmd.Flags().IntVarP(&context, "context", "U", 3, "lines of context")
	return cmd
}
