//go:build wireinject

package di

import (
	"github.com/google/wire"
	"github.com/kcaldas/themekit/pkg/config"
	"github.com/kcaldas/themekit/pkg/events"
	"github.com/kcaldas/themekit/pkg/fileops"
	"github.com/kcaldas/themekit/pkg/logging"
	"github.com/kcaldas/themekit/pkg/themable"
	"github.com/kcaldas/themekit/pkg/theme"
	"github.com/kcaldas/themekit/pkg/watcher"
)

// Shared event bus instance
var eventBus = events.NewEventBus()

// Wire providers for event bus system

func ProvideEventBus() events.EventBus {
	return eventBus
}

func ProvidePublisher() events.Publisher {
	return eventBus
}

func ProvideSubscriber() events.Subscriber {
	return eventBus
}

// Shutdown stops the shared bus. Reload events published afterwards are
// dropped.
func Shutdown() {
	eventBus.Shutdown()
}

// ProvideLogger hands out the process logger configured by the CLI.
func ProvideLogger() logging.Logger {
	return logging.GetGlobalLogger()
}

// ProvideWatcherConfig maps settings onto the watcher. The copy lands in the
// data directory the resolver reads first.
func ProvideWatcherConfig(settings config.Settings) watcher.Config {
	return watcher.Config{
		Path:     settings.ThemePath,
		DataDir:  settings.DataDir,
		Debounce: settings.Debounce,
	}
}

func ProvideResolver(settings config.Settings, logger logging.Logger) *themable.Resolver {
	return themable.NewResolver(settings.Locations(), settings.ThemeFile, theme.WithLogger(logger))
}

// Toolkit is what one-shot commands need: no bus and no watcher.
type Toolkit struct {
	Settings config.Settings
	Files    fileops.Manager
	Resolver *themable.Resolver
}

// Runtime is everything a live-reloading process needs. Build it once: it
// owns the only watcher.
type Runtime struct {
	Settings config.Settings
	Files    fileops.Manager
	Bus      events.EventBus
	Resolver *themable.Resolver
	Watcher  *watcher.Watcher
	Facade   *themable.Facade
}

var settingsSet = wire.NewSet(config.NewConfigManager, config.LoadSettings)

// Wire injectors

// ProvideRuntime is an injector function - Wire will generate the implementation
func ProvideRuntime() (*Runtime, error) {
	wire.Build(
		settingsSet,
		ProvideLogger,
		ProvideEventBus,
		ProvidePublisher,
		ProvideSubscriber,
		fileops.NewFileOpsManager,
		ProvideWatcherConfig,
		watcher.New,
		ProvideResolver,
		themable.NewFacade,
		wire.Struct(new(Runtime), "*"),
	)
	return nil, nil
}

// ProvideToolkit builds settings, file operations and a resolver for commands
// that read the theme once.
func ProvideToolkit() (*Toolkit, error) {
	wire.Build(
		settingsSet,
		ProvideLogger,
		fileops.NewFileOpsManager,
		ProvideResolver,
		wire.Struct(new(Toolkit), "*"),
	)
	return nil, nil
}
