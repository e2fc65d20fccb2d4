package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"

	"github.com/kcaldas/themekit/pkg/theme"
)

// Environment keys read by LoadSettings.
const (
	EnvThemePath  = "THEMEKIT_THEME_PATH"
	EnvThemeFile  = "THEMEKIT_THEME_FILE"
	EnvDataDir    = "THEMEKIT_DATA_DIR"
	EnvBundleDir  = "THEMEKIT_BUNDLE_DIR"
	EnvDebounceMs = "THEMEKIT_DEBOUNCE_MS"
	EnvLogLevel   = "THEMEKIT_LOG_LEVEL"
	EnvLogJSON    = "THEMEKIT_LOG_JSON"
)

// Defaults used when the environment leaves a setting unset.
const (
	DefaultThemeFile  = "theme"
	DefaultDataDir    = "~/.themekit"
	DefaultBundleDir  = "themes"
	DefaultDebounceMs = 100
	DefaultLogLevel   = "info"
)

// Settings is the resolved runtime configuration.
type Settings struct {
	// ThemePath is the externally edited document to watch. Empty disables
	// live reload.
	ThemePath string
	ThemeFile string
	DataDir   string
	BundleDir string
	Debounce  time.Duration
	LogLevel  string
	// LogJSON switches log output from text to JSON lines.
	LogJSON   bool
}

// LoadDotEnv loads variables from the given .env files (default ".env") into
// the environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// LoadSettings reads Settings through m, expanding a leading ~ in paths.
func LoadSettings(m Manager) (Settings, error) {
	s := Settings{
		ThemeFile: m.GetStringWithDefault(EnvThemeFile, DefaultThemeFile),
		BundleDir: m.GetStringWithDefault(EnvBundleDir, DefaultBundleDir),
		LogLevel:  m.GetStringWithDefault(EnvLogLevel, DefaultLogLevel),
		LogJSON:   m.GetBoolWithDefault(EnvLogJSON, false),
	}

	debounceMs := m.GetIntWithDefault(EnvDebounceMs, DefaultDebounceMs)
	if debounceMs <= 0 {
		debounceMs = DefaultDebounceMs
	}
	s.Debounce = time.Duration(debounceMs) * time.Millisecond

	var err error
	if s.ThemePath, err = homedir.Expand(m.GetStringWithDefault(EnvThemePath, "")); err != nil {
		return Settings{}, fmt.Errorf("invalid %s: %w", EnvThemePath, err)
	}
	if s.DataDir, err = homedir.Expand(m.GetStringWithDefault(EnvDataDir, DefaultDataDir)); err != nil {
		return Settings{}, fmt.Errorf("invalid %s: %w", EnvDataDir, err)
	}
	if s.BundleDir, err = homedir.Expand(s.BundleDir); err != nil {
		return Settings{}, fmt.Errorf("invalid %s: %w", EnvBundleDir, err)
	}
	return s, nil
}

// Locations returns where the theme store looks for documents. A bundle
// directory that does not exist is left out.
func (s Settings) Locations() theme.Locations {
	loc := theme.Locations{DataDir: s.DataDir}
	if s.BundleDir != "" {
		if info, err := os.Stat(s.BundleDir); err == nil && info.IsDir() {
			loc.Bundle = os.DirFS(s.BundleDir)
		}
	}
	return loc
}
