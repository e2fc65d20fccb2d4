package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kcaldas/themekit/internal/di"
	"github.com/kcaldas/themekit/pkg/config"
	"github.com/kcaldas/themekit/pkg/logging"
	"github.com/kcaldas/themekit/pkg/theme"
	"github.com/kcaldas/themekit/pkg/version"
)

// Providers build command dependencies once flags are parsed. Every command
// gets a Toolkit; only watch builds the Runtime.
type Providers struct {
	Toolkit func() (*di.Toolkit, error)
	Runtime func() (*di.Runtime, error)
}

type app struct {
	providers Providers
	toolkit   *di.Toolkit
	verbose   bool
	quiet     bool
	envFiles  []string
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = NewRootCommand(Providers{Toolkit: di.ProvideToolkit, Runtime: di.ProvideRuntime})

// NewRootCommand assembles the themekit command tree around providers.
func NewRootCommand(providers Providers) *cobra.Command {
	a := &app{providers: providers}

	cmd := &cobra.Command{
		Use:   "themekit",
		Short: "Inspect and live-reload theme documents",
		Long: `themekit resolves named scopes of a YAML or JSON theme document, with
fallback to the document's default scope, and can watch an externally edited
copy of the document for changes.`,
		Version:           version.Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output (debug level)")
	cmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "quiet output (errors only)")
	cmd.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "dotenv files to load before reading configuration (default .env)")

	cmd.AddCommand(
		newScopesCommand(a),
		newGetCommand(a),
		newDiffCommand(a),
		newExportCommand(a),
		newWatchCommand(a),
		newVersionCommand(),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(a.envFiles...); err != nil {
		return err
	}

	settings, err := config.LoadSettings(config.NewConfigManager())
	if err != nil {
		return err
	}

	// Configure logger based on flags
	level := logging.ParseLevel(settings.LogLevel)
	switch {
	case a.quiet:
		level = slog.LevelError
	case a.verbose:
		level = slog.LevelDebug
	}
	format := logging.FormatText
	if settings.LogJSON {
		format = logging.FormatJSON
	}
	logging.SetGlobalLogger(logging.NewLogger(logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	}))

	tk, err := a.providers.Toolkit()
	if err != nil {
		return fmt.Errorf("failed to initialize themekit: %w", err)
	}
	a.toolkit = tk
	logging.NewComponentLogger("cli").Debug("toolkit ready",
		"build", version.GetInfo(),
		"data_dir", tk.Settings.DataDir,
		"theme_file", tk.Resolver.DefaultFile)
	return nil
}

// runtime builds the watcher, bus and facade for a live-reloading command.
func (a *app) runtime() (*di.Runtime, error) {
	rt, err := a.providers.Runtime()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize themekit: %w", err)
	}
	logging.NewComponentLogger("cli").Debug("runtime ready", "theme_path", rt.Settings.ThemePath)
	return rt, nil
}

// scope resolves name in file, reporting a missing scope as an error.
func (a *app) scope(name, file string) (*theme.Scope, error) {
	s := a.toolkit.Resolver.CurrentScope(name, file)
	if s == nil {
		if file == "" {
			file = a.toolkit.Resolver.DefaultFile
		}
		return nil, fmt.Errorf("scope %q not found in theme %q", name, file)
	}
	return s, nil
}
