// Package themable resolves the scope a consumer asks for and keeps applying
// it to the consumer's children each time the theme document is reloaded.
package themable

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kcaldas/themekit/pkg/theme"
)

// Applier maps a resolved scope onto one owned object.
type Applier interface {
	Apply(scope *theme.Scope)
	// RecognizedKeys lists the scope keys Apply reads.
	RecognizedKeys() []string
}

// Child is a labeled themeable object. Label names the nested mapping of the
// consumer's scope that is applied to Target.
type Child struct {
	Label  string
	Target Applier
}

// Themable is a consumer with an ordered set of children. A Themable that is
// also an Applier receives the whole composed scope before its children.
type Themable interface {
	ThemeChildren() []Child
}

// Named overrides the scope name derived from the consumer's type.
type Named interface {
	ThemeName() string
}

// Filed overrides the resolver's default theme file.
type Filed interface {
	ThemeFile() string
}

// DeclaredName returns t's ThemeName when it is Named and non-empty, else the
// type name without package or pointer, e.g. "SettingsPanel" for
// *ui.SettingsPanel.
func DeclaredName(t any) string {
	if n, ok := t.(Named); ok {
		if name := n.ThemeName(); name != "" {
			return name
		}
	}
	name := strings.TrimLeft(fmt.Sprintf("%T", t), "*")
	// generic instantiations print their type arguments
	if i := strings.Index(name, "["); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// DeclaredFile returns t's ThemeFile when it is Filed and non-empty, else
// fallback.
func DeclaredFile(t any, fallback string) string {
	if f, ok := t.(Filed); ok {
		if file := f.ThemeFile(); file != "" {
			return file
		}
	}
	return fallback
}

// UnknownKeys returns scope's own keys that are neither recognized nor
// reserved, sorted. Reserved keys are fontSize, globalStyle and any key ending
// in "Attributes"; other coercions consume them implicitly.
func UnknownKeys(scope *theme.Scope, recognized []string) []string {
	if scope == nil {
		return nil
	}
	known := make(map[string]struct{}, len(recognized))
	for _, k := range recognized {
		known[k] = struct{}{}
	}

	var unknown []string
	for _, k := range scope.Keys() {
		if _, ok := known[k]; ok || isReserved(k) {
			continue
		}
		unknown = append(unknown, k)
	}
	sort.Strings(unknown)
	return unknown
}

func isReserved(key string) bool {
	return key == theme.FontSizeKey ||
		key == theme.GlobalStyleKey ||
		strings.HasSuffix(key, theme.AttributesSuffix)
}
