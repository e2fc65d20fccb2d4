package cli

import (
	"os"

	"github.com/kcaldas/themekit/internal/di"
	"github.com/kcaldas/themekit/pkg/version"
)

// Execute runs the CLI with all commands
func Execute() {
	RootCmd.SetVersionTemplate(version.GetInfo().String() + "\n")
	err := RootCmd.Execute()
	di.Shutdown()
	if err != nil {
		// Cobra already prints the error, just exit with error code
		os.Exit(1)
	}
}
