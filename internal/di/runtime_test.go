package di

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kcaldas/themekit/pkg/config"
	"github.com/kcaldas/themekit/pkg/events"
	"github.com/kcaldas/themekit/pkg/themable"
	"github.com/kcaldas/themekit/pkg/theme"
	"github.com/kcaldas/themekit/pkg/watcher"
)

type statusBar struct {
	mu   sync.Mutex
	text string
}

func (s *statusBar) ThemeChildren() []themable.Child { return nil }
func (s *statusBar) RecognizedKeys() []string        { return []string{"text"} }

func (s *statusBar) Apply(scope *theme.Scope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = scope.NonNilString("text")
}

func (s *statusBar) current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

func setEnv(t *testing.T) (src, dataDir string) {
	t.Helper()
	srcDir := t.TempDir()
	dataDir = t.TempDir()
	src = filepath.Join(srcDir, "theme.yaml")

	t.Setenv(config.EnvThemePath, src)
	t.Setenv(config.EnvDataDir, dataDir)
	t.Setenv(config.EnvThemeFile, "theme")
	t.Setenv(config.EnvBundleDir, filepath.Join(srcDir, "no-bundle"))
	t.Setenv(config.EnvDebounceMs, "50")
	return src, dataDir
}

func TestProvideRuntime_Wiring(t *testing.T) {
	src, dataDir := setEnv(t)

	rt, err := ProvideRuntime()
	require.NoError(t, err)

	assert.Equal(t, src, rt.Settings.ThemePath)
	assert.Equal(t, src, rt.Watcher.Path())
	assert.Equal(t, watcher.Idle, rt.Watcher.State())
	assert.Equal(t, "theme", rt.Resolver.DefaultFile)
	assert.Equal(t, dataDir, rt.Resolver.Locations.DataDir)
	assert.Nil(t, rt.Resolver.Locations.Bundle)
	assert.NotNil(t, rt.Files)
	assert.NotNil(t, rt.Facade)
}

func TestProvideRuntime_SharesOneBus(t *testing.T) {
	setEnv(t)

	first, err := ProvideRuntime()
	require.NoError(t, err)
	second, err := ProvideRuntime()
	require.NoError(t, err)

	bus, ok := first.Bus.(*events.InMemoryBus)
	require.True(t, ok)
	assert.Same(t, bus, second.Bus)
	assert.Same(t, bus, ProvidePublisher())
	assert.Same(t, bus, ProvideSubscriber())
}

func TestProvideToolkit(t *testing.T) {
	_, dataDir := setEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "theme.yaml"), []byte("statusBar:\n  text: ready\n"), 0o644))

	tk, err := ProvideToolkit()
	require.NoError(t, err)
	assert.Equal(t, dataDir, tk.Settings.DataDir)
	assert.NotNil(t, tk.Files)
	assert.Equal(t, "ready", tk.Resolver.CurrentScope("statusBar", "").NonNilString("text"))
}

func TestRuntime_ReloadReachesConsumers(t *testing.T) {
	src, dataDir := setEnv(t)
	require.NoError(t, os.WriteFile(src, []byte("statusBar:\n  text: before\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "theme.yaml"), []byte("statusBar:\n  text: before\n"), 0o644))

	rt, err := ProvideRuntime()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, rt.Watcher.Run(ctx))
	}()
	defer func() {
		cancel()
		<-done
	}()
	require.Eventually(t, func() bool { return rt.Watcher.State() == watcher.Armed }, 3*time.Second, 10*time.Millisecond)

	bar := &statusBar{}
	unregister := rt.Facade.Register(bar)
	defer unregister()
	assert.Equal(t, "before", bar.current())

	require.NoError(t, os.WriteFile(src, []byte("statusBar:\n  text: after\n"), 0o644))
	assert.Eventually(t, func() bool { return bar.current() == "after" }, 3*time.Second, 10*time.Millisecond)
}
