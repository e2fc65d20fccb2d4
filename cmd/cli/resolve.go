package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/kcaldas/themekit/pkg/theme"
)

// resolvedValues flattens s and its parent chain into one mapping. Nearer
// scopes win.
func resolvedValues(s *theme.Scope) map[string]any {
	var chain []*theme.Scope
	for cur := s; cur != nil; cur = cur.Parent() {
		chain = append(chain, cur)
	}
	out := make(map[string]any)
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].Values() {
			out[k] = v
		}
	}
	return out
}

func dumpYAML(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	return string(data), nil
}

type formatter func(s *theme.Scope, key string) (string, error)

var formatters = map[string]formatter{
	"raw": func(s *theme.Scope, key string) (string, error) {
		v, ok := s.Get(key)
		if !ok {
			return "", fmt.Errorf("key %q not found in scope %q", key, s.Name())
		}
		if _, nested := v.(map[string]any); nested {
			out, err := dumpYAML(v)
			return strings.TrimRight(out, "\n"), err
		}
		return fmt.Sprint(v), nil
	},
	"string": func(s *theme.Scope, key string) (string, error) {
		return s.NonNilString(key), nil
	},
	"bool": func(s *theme.Scope, key string) (string, error) {
		return fmt.Sprint(s.Bool(key)), nil
	},
	"int": func(s *theme.Scope, key string) (string, error) {
		return fmt.Sprint(s.Int(key)), nil
	},
	"float": func(s *theme.Scope, key string) (string, error) {
		return fmt.Sprint(s.Double(key)), nil
	},
	"duration": func(s *theme.Scope, key string) (string, error) {
		return s.TimeInterval(key).String(), nil
	},
	"color": func(s *theme.Scope, key string) (string, error) {
		c, err := s.LookupColor(key)
		if err != nil {
			return "", err
		}
		if c.A < 1 {
			return fmt.Sprintf("%s alpha=%.3f", c.Hex(), c.A), nil
		}
		return c.Hex(), nil
	},
	"font": func(s *theme.Scope, key string) (string, error) {
		return s.Font(key).String(), nil
	},
	"alignment": func(s *theme.Scope, key string) (string, error) {
		return s.TextAlignment(key).String(), nil
	},
	"border": func(s *theme.Scope, key string) (string, error) {
		return s.BorderStyle(key).String(), nil
	},
	"separator": func(s *theme.Scope, key string) (string, error) {
		return s.SeparatorStyle(key).String(), nil
	},
	"case": func(s *theme.Scope, key string) (string, error) {
		return s.TextCase(key).String(), nil
	},
	"insets": func(s *theme.Scope, key string) (string, error) {
		return fmt.Sprintf("%+v", s.EdgeInsets(key)), nil
	},
	"point": func(s *theme.Scope, key string) (string, error) {
		return fmt.Sprintf("%+v", s.Point(key)), nil
	},
	"size": func(s *theme.Scope, key string) (string, error) {
		return fmt.Sprintf("%+v", s.Size(key)), nil
	},
	"animation": func(s *theme.Scope, key string) (string, error) {
		a := s.AnimationSpecifier(key)
		return fmt.Sprintf("duration=%s delay=%s curve=%s", a.Duration, a.Delay, a.Curve), nil
	},
	"attributes": func(s *theme.Scope, key string) (string, error) {
		attrs, ok := s.TextAttributes(key)
		if !ok {
			return "", fmt.Errorf("no text attributes at %q in scope %q", key, s.Name())
		}
		var parts []string
		if attrs.Font != nil {
			parts = append(parts, "font="+attrs.Font.String())
		}
		if attrs.Foreground != nil {
			parts = append(parts, "foreground="+attrs.Foreground.Hex())
		}
		if attrs.Background != nil {
			parts = append(parts, "background="+attrs.Background.Hex())
		}
		return strings.Join(parts, " "), nil
	},
}

func formatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
