package theme

// TextAttributes are the typed styling attributes of an AttributedText.
// Nil fields were not specified.
type TextAttributes struct {
	Font       *Font
	Foreground *Color
	Background *Color
}

// IsZero reports whether no attribute is set.
func (a TextAttributes) IsZero() bool {
	return a.Font == nil && a.Foreground == nil && a.Background == nil
}

// AttributedText is a string with optional styling attributes.
type AttributedText struct {
	Text       string
	Attributes TextAttributes
}

// AttributedText reads the text at key and the attribute mapping at
// key+"Attributes".
func (s *Scope) AttributedText(key string) AttributedText {
	attrs, _ := s.TextAttributes(key + AttributesSuffix)
	return AttributedText{Text: s.NonNilString(key), Attributes: attrs}
}

// TextAttributes translates the nested mapping held directly by this scope at
// key; the parent chain is not consulted. Recognized sub-keys are font,
// foregroundColor and backgroundColor; fontSize modifies font. Other sub-keys
// are reported and skipped.
func (s *Scope) TextAttributes(key string) (TextAttributes, bool) {
	m, ok := asMap(s.values[key])
	if !ok {
		return TextAttributes{}, false
	}

	inner := newScope(key, m, nil, s.env)
	var attrs TextAttributes
	for _, k := range inner.Keys() {
		switch k {
		case "font":
			f := inner.Font(k)
			attrs.Font = &f
		case "foregroundColor":
			c := inner.Color(k)
			attrs.Foreground = &c
		case "backgroundColor":
			c := inner.Color(k)
			attrs.Background = &c
		case FontSizeKey:
		default:
			s.env.log.Warn("text attribute not supported", "scope", s.name, "key", key, "attribute", k)
		}
	}
	return attrs, true
}
