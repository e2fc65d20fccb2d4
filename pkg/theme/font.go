package theme

import "fmt"

// DefaultFontSize applies when a font's size key is absent or zero.
const DefaultFontSize = 15.0

// SystemFontName names the platform default font.
const SystemFontName = "system"

// Font is a resolved font face and point size.
type Font struct {
	Name   string
	Size   float64
	System bool
}

// SystemFont returns the platform default font at size.
func SystemFont(size float64) Font {
	return Font{Name: SystemFontName, Size: size, System: true}
}

func (f Font) String() string {
	return fmt.Sprintf("%s %gpt", f.Name, f.Size)
}

// FontCatalog reports which font names are installed.
type FontCatalog interface {
	Has(name string) bool
}

// AnyFont treats every name as available.
type AnyFont struct{}

func (AnyFont) Has(string) bool { return true }

// FontSet is a fixed catalog of available names.
type FontSet map[string]struct{}

// NewFontSet builds a catalog from names.
func NewFontSet(names ...string) FontSet {
	set := make(FontSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func (fs FontSet) Has(name string) bool {
	_, ok := fs[name]
	return ok
}

// Font reads the face name at key and the size at key+"Size". An empty or
// unavailable name resolves to the system font. Results are cached per key.
func (s *Scope) Font(key string) Font {
	if cached, ok := s.fonts.Load(key); ok {
		return cached.(Font)
	}

	size := s.Double(key + FontSizeSuffix)
	if size == 0 {
		size = DefaultFontSize
	}

	var font Font
	name, _ := s.LookupString(key)
	switch {
	case name == "":
		font = SystemFont(size)
	case !s.env.fonts.Has(name):
		s.env.log.Debug("font unavailable, using system font", "scope", s.name, "key", key, "font", name)
		font = SystemFont(size)
	default:
		font = Font{Name: name, Size: size}
	}

	actual, _ := s.fonts.LoadOrStore(key, font)
	return actual.(Font)
}
