// Package theme resolves named, hierarchical style values. A Scope is one named
// subtree of a theme document with fallback to a parent Scope; typed getters
// coerce loosely typed document values and never fail on missing keys.
package theme

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kcaldas/themekit/pkg/logging"
)

// Keys with meaning to the resolver itself rather than to a consumer property.
const (
	GlobalStyleKey   = "globalStyle"
	FontSizeSuffix   = "Size"
	FontSizeKey      = "font" + FontSizeSuffix
	AttributesSuffix = "Attributes"
)

// Option configures the environment shared by a Store and the Scopes it builds.
type Option func(*env)

type env struct {
	log   logging.Logger
	fonts FontCatalog
}

func newEnv(opts []Option) *env {
	e := &env{fonts: AnyFont{}}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	e.log = logging.OrDisabled(e.log)
	return e
}

// WithLogger routes coercion and loading diagnostics to l.
func WithLogger(l logging.Logger) Option {
	return func(e *env) { e.log = l }
}

// WithFontCatalog decides which font names resolve to themselves; others fall
// back to the system font.
func WithFontCatalog(c FontCatalog) Option {
	return func(e *env) {
		if c != nil {
			e.fonts = c
		}
	}
}

// Scope is an immutable named mapping with an optional fallback parent. The
// color and font caches are the only mutable state and are safe for
// concurrent first-populate.
type Scope struct {
	name   string
	values map[string]any
	parent *Scope
	env    *env

	colors sync.Map // key -> colorResult
	fonts  sync.Map // key -> Font
}

// NewScope builds a Scope over values. The map is not copied and must not be
// modified afterwards. Without options the Scope shares its parent's
// environment.
func NewScope(name string, values map[string]any, parent *Scope, opts ...Option) *Scope {
	var e *env
	if len(opts) == 0 && parent != nil {
		e = parent.env
	} else {
		e = newEnv(opts)
	}
	return newScope(name, values, parent, e)
}

func newScope(name string, values map[string]any, parent *Scope, e *env) *Scope {
	if values == nil {
		values = map[string]any{}
	}
	return &Scope{name: name, values: values, parent: parent, env: e}
}

// Name returns the scope name.
func (s *Scope) Name() string {
	return s.name
}

// Parent returns the fallback scope, or nil.
func (s *Scope) Parent() *Scope {
	return s.parent
}

func (s *Scope) String() string {
	if s.parent == nil {
		return fmt.Sprintf("Scope(%s)", s.name)
	}
	return fmt.Sprintf("Scope(%s -> %s)", s.name, s.parent.name)
}

// Get returns the value for key from this scope, else from the parent chain.
func (s *Scope) Get(key string) (any, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Has reports whether Get would find key.
func (s *Scope) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Keys returns this scope's own keys, sorted. Parent keys are not included.
func (s *Scope) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns a shallow copy of this scope's own mapping.
func (s *Scope) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// InnerScope returns the nested mapping at key as a Scope named key. The inner
// scope falls back to this scope's parent, not to this scope.
func (s *Scope) InnerScope(key string) *Scope {
	v, ok := s.Get(key)
	if !ok {
		return nil
	}
	m, ok := asMap(v)
	if !ok {
		return nil
	}
	return newScope(key, m, s.parent, s.env)
}

// RemoveKeys returns a copy of s without the given own keys. The parent chain
// is untouched, so removed keys may still resolve through it.
func (s *Scope) RemoveKeys(keys ...string) *Scope {
	values := s.Values()
	for _, k := range keys {
		delete(values, k)
	}
	return newScope(s.name, values, s.parent, s.env)
}

// MergeOverlay returns a Scope with other's mapping overlaid by s's own keys;
// s wins on collision and keeps its name and parent. A nil other returns s.
func (s *Scope) MergeOverlay(other *Scope) *Scope {
	if other == nil {
		return s
	}
	values := other.Values()
	for k, v := range s.values {
		values[k] = v
	}
	return newScope(s.name, values, s.parent, s.env)
}

// ComposeGlobalStyle overlays the style named by s's globalStyle key under s.
// lookup is consulted first (typically Store.ScopeNamed); when it yields
// nothing the style is taken from s's own nested mapping of that name.
func ComposeGlobalStyle(s *Scope, lookup func(name string) *Scope) *Scope {
	if s == nil {
		return nil
	}
	name, ok := s.LookupString(GlobalStyleKey)
	if !ok || name == "" {
		return s
	}

	var overlay *Scope
	if lookup != nil {
		overlay = lookup(name)
	}
	if overlay == nil {
		overlay = s.InnerScope(name)
	}
	if overlay == nil {
		s.env.log.Debug("global style not found", "scope", s.name, "style", name)
	}
	return s.MergeOverlay(overlay)
}

// asMap accepts both decoded mapping shapes yaml can produce.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		return normalizeMap(m), true
	default:
		return nil, false
	}
}

// normalize rewrites map[any]any nodes into map[string]any, recursively.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, inner := range t {
			t[k] = normalize(inner)
		}
		return t
	case map[any]any:
		return normalizeMap(t)
	case []any:
		for i, inner := range t {
			t[i] = normalize(inner)
		}
		return t
	default:
		return v
	}
}

func normalizeMap(m map[any]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[fmt.Sprint(k)] = normalize(v)
	}
	return out
}
