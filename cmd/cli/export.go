package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCommand(a *app) *cobra.Command {
	var (
		file string
		out  string
	)

	cmd := &cobra.Command{
		Use:   "export <scope>",
		Short: "Write a scope with every inherited value filled in",
		Long: `Write a scope as a standalone document: values the scope inherits from
the default scope and its global style are copied in.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.scope(args[0], file)
			if err != nil {
				return err
			}
			doc := map[string]any{s.Name(): resolvedValues(s)}

			if out == "" {
				text, err := dumpYAML(doc)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			}

			if err := a.toolkit.Files.WriteObjectAsYAML(out, doc); err != nil {
				return fmt.Errorf("failed to export %s: %w", s.Name(), err)
			}
			cmd.PrintErrf("exported %s to %s\n", s.Name(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "theme document name (default from THEMEKIT_THEME_FILE)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default stdout)")
	return cmd
}
