package theme

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TextAlignment is the horizontal alignment of text.
type TextAlignment int

const (
	AlignLeft TextAlignment = iota
	AlignCenter
	AlignRight
	AlignNatural
	AlignJustified
)

var textAlignmentNames = []string{"left", "center", "right", "natural", "justified"}

func (a TextAlignment) String() string { return enumName(textAlignmentNames, int(a)) }

// SeparatorStyle is the style of the rule drawn between table rows.
type SeparatorStyle int

const (
	SeparatorSingleLine SeparatorStyle = iota
	SeparatorSingleLineEtched
	SeparatorNone
)

var separatorStyleNames = []string{"singleLine", "singleLineEtched", "none"}

func (s SeparatorStyle) String() string { return enumName(separatorStyleNames, int(s)) }

// BorderStyle is the border drawn around a text field.
type BorderStyle int

const (
	BorderNone BorderStyle = iota
	BorderLine
	BorderBezel
	BorderRoundedRect
)

var borderStyleNames = []string{"none", "line", "bezel", "roundedRect"}

func (b BorderStyle) String() string { return enumName(borderStyleNames, int(b)) }

// AnimationCurve is the timing function of an animation.
type AnimationCurve int

const (
	CurveEaseInOut AnimationCurve = iota
	CurveEaseIn
	CurveEaseOut
	CurveLinear
)

var animationCurveNames = []string{"easeInOut", "easeIn", "easeOut", "linear"}

func (c AnimationCurve) String() string { return enumName(animationCurveNames, int(c)) }

// TextCase is a case transform applied to displayed text.
type TextCase int

const (
	TextCaseNone TextCase = iota
	TextCaseUpper
	TextCaseLower
)

var textCaseNames = []string{"none", "uppercase", "lowercase"}

func (c TextCase) String() string { return enumName(textCaseNames, int(c)) }

// Apply transforms text according to c.
func (c TextCase) Apply(text string) string {
	switch c {
	case TextCaseUpper:
		return cases.Upper(language.Und).String(text)
	case TextCaseLower:
		return cases.Lower(language.Und).String(text)
	default:
		return text
	}
}

// TextAlignment reads an alignment name; unknown or missing is AlignLeft.
func (s *Scope) TextAlignment(key string) TextAlignment {
	return TextAlignment(s.enumValue(key, textAlignmentNames, int(AlignLeft)))
}

// SeparatorStyle reads a separator name; unknown or missing is SeparatorSingleLine.
func (s *Scope) SeparatorStyle(key string) SeparatorStyle {
	return SeparatorStyle(s.enumValue(key, separatorStyleNames, int(SeparatorSingleLine)))
}

// BorderStyle reads a border name; unknown or missing is BorderNone.
func (s *Scope) BorderStyle(key string) BorderStyle {
	return BorderStyle(s.enumValue(key, borderStyleNames, int(BorderNone)))
}

// AnimationCurve reads a curve name; unknown or missing is CurveEaseInOut.
func (s *Scope) AnimationCurve(key string) AnimationCurve {
	return AnimationCurve(s.enumValue(key, animationCurveNames, int(CurveEaseInOut)))
}

// TextCase reads a transform name; unknown or missing is TextCaseNone.
func (s *Scope) TextCase(key string) TextCase {
	return TextCase(s.enumValue(key, textCaseNames, int(TextCaseNone)))
}

// enumValue matches the string at key against names without regard to case.
func (s *Scope) enumValue(key string, names []string, fallback int) int {
	text, ok := s.LookupString(key)
	if !ok {
		return fallback
	}

	fold := cases.Fold()
	want := fold.String(text)
	for i, name := range names {
		if fold.String(name) == want {
			return i
		}
	}
	return fallback
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "unknown"
	}
	return names[i]
}
