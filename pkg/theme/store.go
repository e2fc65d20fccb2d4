package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultScopeName is matched case-insensitively against top-level entries to
// pick the scope every other scope falls back to.
const DefaultScopeName = "default"

// documentExtensions are tried in order when a filename has no extension.
var documentExtensions = []string{".yaml", ".yml", ".json"}

// Locations are the two places a theme document may live: a writable
// directory holding local overrides, and a read-only bundle of defaults.
type Locations struct {
	DataDir string
	Bundle  fs.FS
}

// Store is the immutable set of top-level scopes of one loaded document.
type Store struct {
	scopes []*Scope
	def    *Scope
	source string
}

// NewStore loads filename from loc.DataDir, falling back to loc.Bundle. When
// neither yields a readable document the store is empty.
func NewStore(filename string, loc Locations, opts ...Option) *Store {
	e := newEnv(opts)

	doc, source, err := readDocument(filename, loc)
	if err != nil {
		e.log.Warn("theme document unavailable, using empty store", "file", filename, "error", err)
		return &Store{}
	}

	st := buildStore(doc, e)
	st.source = source
	e.log.Debug("theme document loaded", "source", source, "scopes", len(st.scopes))
	return st
}

// NewStoreFromDocument builds a store from an already decoded document.
func NewStoreFromDocument(doc map[string]any, opts ...Option) *Store {
	return buildStore(doc, newEnv(opts))
}

// ParseDocument decodes YAML or JSON theme text into a document mapping.
func ParseDocument(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse theme document: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	normalize(doc)
	return doc, nil
}

func buildStore(doc map[string]any, e *env) *Store {
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)

	st := &Store{}
	var defName string
	for _, name := range names {
		if strings.EqualFold(name, DefaultScopeName) {
			if m, ok := asMap(doc[name]); ok {
				st.def = newScope(name, m, nil, e)
				defName = name
				break
			}
		}
	}

	for _, name := range names {
		if st.def != nil && name == defName {
			st.scopes = append(st.scopes, st.def)
			continue
		}
		m, ok := asMap(doc[name])
		if !ok {
			e.log.Warn("skipping top-level entry that is not a mapping", "scope", name)
			continue
		}
		st.scopes = append(st.scopes, newScope(name, m, st.def, e))
	}
	return st
}

// ScopeNamed returns the top-level scope with exactly this name, or nil.
func (st *Store) ScopeNamed(name string) *Scope {
	for _, s := range st.scopes {
		if s.name == name {
			return s
		}
	}
	return nil
}

// Default returns the default scope, or nil when the document has none.
func (st *Store) Default() *Scope {
	return st.def
}

// Scopes returns the top-level scopes sorted by name.
func (st *Store) Scopes() []*Scope {
	out := make([]*Scope, len(st.scopes))
	copy(out, st.scopes)
	return out
}

// Names returns the top-level scope names, sorted.
func (st *Store) Names() []string {
	names := make([]string, len(st.scopes))
	for i, s := range st.scopes {
		names[i] = s.name
	}
	return names
}

// Source is the path the document was read from; empty for an empty store or
// one built from a decoded document.
func (st *Store) Source() string {
	return st.source
}

// CandidateNames lists the file names tried for filename, in order.
func CandidateNames(filename string) []string {
	if filename == "" {
		return nil
	}
	if filepath.Ext(filename) != "" {
		return []string{filename}
	}
	names := make([]string, len(documentExtensions))
	for i, ext := range documentExtensions {
		names[i] = filename + ext
	}
	return names
}

func readDocument(filename string, loc Locations) (map[string]any, string, error) {
	candidates := CandidateNames(filename)
	if len(candidates) == 0 {
		return nil, "", errors.New("no theme file name given")
	}

	var errs []error
	if loc.DataDir != "" {
		for _, name := range candidates {
			p := filepath.Join(loc.DataDir, name)
			doc, err := readFile(os.ReadFile, p)
			if err == nil {
				return doc, p, nil
			}
			errs = append(errs, err)
		}
	}

	if loc.Bundle != nil {
		for _, name := range candidates {
			p := path.Clean(filepath.ToSlash(name))
			doc, err := readFile(func(n string) ([]byte, error) { return fs.ReadFile(loc.Bundle, n) }, p)
			if err == nil {
				return doc, "bundle:" + p, nil
			}
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		return nil, "", errors.New("no theme locations configured")
	}
	return nil, "", errors.Join(errs...)
}

func readFile(read func(string) ([]byte, error), p string) (map[string]any, error) {
	data, err := read(p)
	if err != nil {
		return nil, err
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return doc, nil
}
