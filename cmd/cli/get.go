package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newGetCommand(a *app) *cobra.Command {
	var (
		file string
		kind string
	)

	cmd := &cobra.Command{
		Use:   "get <scope> <key>",
		Short: "Print one value as the scope resolves it",
		Long: `Print one value as the scope resolves it, falling back through the
document's default scope. --type selects the coercion applied to the value.

Examples:
  themekit get dark tintColor --type color
  themekit get settingsPanel.title text
  themekit get dark content --type insets`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, ok := formatters[kind]
			if !ok {
				return fmt.Errorf("unknown --type %q (want one of %s)", kind, strings.Join(formatterNames(), ", "))
			}

			path := strings.Split(args[0], ".")
			scope, err := a.scope(path[0], file)
			if err != nil {
				return err
			}
			for _, label := range path[1:] {
				inner := scope.InnerScope(label)
				if inner == nil {
					return fmt.Errorf("scope %q has no nested scope %q", scope.Name(), label)
				}
				scope = inner
			}

			out, err := format(scope, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "theme document name (default from THEMEKIT_THEME_FILE)")
	cmd.Flags().StringVarP(&kind, "type", "t", "raw", "coercion to apply")
	return cmd
}
