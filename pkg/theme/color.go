package theme

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrColorFormat is wrapped by every ColorParseError.
var ErrColorFormat = errors.New("malformed color")

// ColorParseError reports hex color text that is not #RRGGBB or #AARRGGBB.
type ColorParseError struct {
	Input  string
	Reason string
}

func (e *ColorParseError) Error() string {
	return fmt.Sprintf("theme: invalid color %q: %s", e.Input, e.Reason)
}

func (e *ColorParseError) Unwrap() error {
	return ErrColorFormat
}

// Color is a straight (non-premultiplied) RGBA color with components in [0,1].
type Color struct {
	R, G, B, A float64
}

// Black is returned for missing, empty and unrecognized color values.
var Black = Color{A: 1}

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(clamp01(c.A)*0xffff + 0.5)
	r = uint32(clamp01(c.R)*clamp01(c.A)*0xffff + 0.5)
	g = uint32(clamp01(c.G)*clamp01(c.A)*0xffff + 0.5)
	b = uint32(clamp01(c.B)*clamp01(c.A)*0xffff + 0.5)
	return r, g, b, a
}

// Hex formats the color as #rrggbb, dropping alpha.
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// Lipgloss converts the color for terminal rendering. Alpha is ignored.
func (c Color) Lipgloss() lipgloss.Color {
	return lipgloss.Color(c.Hex())
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%g,%g,%g,%g)", c.R*255, c.G*255, c.B*255, c.A)
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

// ParseColor parses "#RRGGBB", "#AARRGGBB" or "rgb(r,g,b[,a])". Empty text and
// text in any other notation yield Black without error; malformed hex text
// yields a *ColorParseError.
func ParseColor(text string) (Color, error) {
	switch {
	case text == "":
		return Black, nil
	case strings.HasPrefix(text, "#"):
		return parseHexColor(text)
	case strings.HasPrefix(text, "rgb"):
		return parseRGBColor(text), nil
	default:
		return Black, nil
	}
}

func parseHexColor(text string) (Color, error) {
	digits := strings.TrimSpace(text[1:])
	if len(digits) != 6 && len(digits) != 8 {
		return Black, &ColorParseError{Input: text, Reason: fmt.Sprintf("want 6 or 8 hex digits, got %d", len(digits))}
	}

	var bytes [4]uint8
	for i := 0; i < len(digits); i += 2 {
		n, err := strconv.ParseUint(digits[i:i+2], 16, 8)
		if err != nil {
			return Black, &ColorParseError{Input: text, Reason: fmt.Sprintf("bad hex pair %q", digits[i:i+2])}
		}
		bytes[i/2] = uint8(n)
	}

	if len(digits) == 8 {
		return Color{
			A: float64(bytes[0]) / 255,
			R: float64(bytes[1]) / 255,
			G: float64(bytes[2]) / 255,
			B: float64(bytes[3]) / 255,
		}, nil
	}
	return Color{
		R: float64(bytes[0]) / 255,
		G: float64(bytes[1]) / 255,
		B: float64(bytes[2]) / 255,
		A: 1,
	}, nil
}

// parseRGBColor scans positionally: each component starts at the next digit
// and runs to the next punctuation mark. Missing components read as 0 and a
// missing alpha as 1. Components are clamped to [0, 1].
func parseRGBColor(text string) Color {
	sc := &textScanner{text: text}

	sc.skipUntil(unicode.IsDigit)
	red := sc.takeUntil(unicode.IsPunct)
	sc.skipUntil(unicode.IsDigit)
	green := sc.takeUntil(unicode.IsPunct)
	sc.skipUntil(unicode.IsDigit)
	blue := sc.takeUntil(unicode.IsPunct)
	sc.skipUntil(unicode.IsDigit)

	alpha, ok := leadingFloat(sc.rest())
	if !ok {
		alpha = 1
	}

	r, _ := leadingFloat(red)
	g, _ := leadingFloat(green)
	b, _ := leadingFloat(blue)
	return Color{R: clamp01(r / 255), G: clamp01(g / 255), B: clamp01(b / 255), A: clamp01(alpha)}
}

type textScanner struct {
	text string
	pos  int
}

func (sc *textScanner) skipUntil(stop func(rune) bool) {
	for sc.pos < len(sc.text) {
		r, w := utf8.DecodeRuneInString(sc.text[sc.pos:])
		if stop(r) {
			return
		}
		sc.pos += w
	}
}

func (sc *textScanner) takeUntil(stop func(rune) bool) string {
	start := sc.pos
	sc.skipUntil(stop)
	return sc.text[start:sc.pos]
}

func (sc *textScanner) rest() string {
	return sc.text[sc.pos:]
}

// leadingFloat parses the longest decimal prefix of s, ignoring leading spaces.
func leadingFloat(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

type colorResult struct {
	color Color
	err   error
}

// LookupColor parses the string at key, caching the outcome per key. A
// malformed hex value returns Black with a *ColorParseError.
func (s *Scope) LookupColor(key string) (Color, error) {
	if cached, ok := s.colors.Load(key); ok {
		res := cached.(colorResult)
		return res.color, res.err
	}

	text, _ := s.LookupString(key)
	c, err := ParseColor(text)
	if err != nil {
		s.env.log.Warn("color value rejected", "scope", s.name, "key", key, "error", err)
	}
	actual, _ := s.colors.LoadOrStore(key, colorResult{color: c, err: err})
	res := actual.(colorResult)
	return res.color, res.err
}

// Color is LookupColor with parse errors downgraded to Black.
func (s *Scope) Color(key string) Color {
	c, err := s.LookupColor(key)
	if err != nil {
		return Black
	}
	return c
}
