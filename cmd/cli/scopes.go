package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScopesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scopes [file]",
		Short: "List the top-level scopes of a theme document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) == 1 {
				file = args[0]
			}

			store := a.toolkit.Resolver.Store(file)
			if store.Source() == "" {
				cmd.PrintErrln("no theme document found")
				return nil
			}
			cmd.PrintErrf("source: %s\n", store.Source())

			def := store.Default()
			for _, s := range store.Scopes() {
				if s == def {
					fmt.Fprintf(cmd.OutOrStdout(), "%s (default)\n", s.Name())
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), s.Name())
			}
			return nil
		},
	}
}
