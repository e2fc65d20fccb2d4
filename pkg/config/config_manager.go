package config

import (
	"os"
	"strconv"
	"strings"
)

// Manager reads typed settings, falling back to a default when a key is unset
// or cannot be parsed.
type Manager interface {
	GetStringWithDefault(key, defaultValue string) string
	GetIntWithDefault(key string, defaultValue int) int
	GetBoolWithDefault(key string, defaultValue bool) bool
}

// EnvManager reads settings from the process environment. Values are trimmed,
// so a key set to whitespace counts as unset.
type EnvManager struct {
	lookup func(string) (string, bool)
}

// NewConfigManager creates a manager over the process environment.
func NewConfigManager() Manager {
	return &EnvManager{lookup: os.LookupEnv}
}

func (m *EnvManager) value(key string) (string, bool) {
	v, ok := m.lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// GetStringWithDefault returns key's value, or defaultValue when it is unset.
func (m *EnvManager) GetStringWithDefault(key, defaultValue string) string {
	if v, ok := m.value(key); ok {
		return v
	}
	return defaultValue
}

// GetIntWithDefault returns key's value as a decimal int, or defaultValue when
// it is unset or not an integer.
func (m *EnvManager) GetIntWithDefault(key string, defaultValue int) int {
	v, ok := m.value(key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

// GetBoolWithDefault accepts the forms strconv.ParseBool does (1, t, true,
// 0, f, false, ...) and returns defaultValue for anything else.
func (m *EnvManager) GetBoolWithDefault(key string, defaultValue bool) bool {
	v, ok := m.value(key)
	if !ok {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}
