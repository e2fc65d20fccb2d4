// Package style binds resolved theme scopes to lipgloss styles for terminal
// output.
package style

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/kcaldas/themekit/pkg/theme"
)

// Keys read by Box. Padding and margin are edge insets, so they are spelled
// with Top, Left, Bottom and Right suffixes in the document.
const (
	KeyForeground  = "foregroundColor"
	KeyBackground  = "backgroundColor"
	KeyBorderColor = "borderColor"
	KeyBorderStyle = "borderStyle"
	KeyPadding     = "padding"
	KeyMargin      = "margin"
	KeyAlignment   = "textAlignment"
	KeyBold        = "bold"
	KeyItalic      = "italic"
	KeyUnderline   = "underline"
	KeyWidth       = "width"
	KeyTextCase    = "textCase"
)

var insetSuffixes = []string{"Top", "Left", "Bottom", "Right"}

// Box is a themeable lipgloss style. Apply and Render may be called from
// different goroutines.
type Box struct {
	mu       sync.RWMutex
	style    lipgloss.Style
	textCase theme.TextCase
}

// NewBox returns a box with an empty style.
func NewBox() *Box {
	return &Box{style: lipgloss.NewStyle()}
}

// RecognizedKeys lists the keys Apply reads.
func (b *Box) RecognizedKeys() []string {
	keys := []string{
		KeyForeground, KeyBackground, KeyBorderColor, KeyBorderStyle,
		KeyAlignment, KeyBold, KeyItalic, KeyUnderline, KeyWidth, KeyTextCase,
	}
	for _, prefix := range []string{KeyPadding, KeyMargin} {
		for _, suffix := range insetSuffixes {
			keys = append(keys, prefix+suffix)
		}
	}
	return keys
}

// Apply rebuilds the style from scope. Colors are only set when the scope
// defines them, so an unset color stays the terminal default rather than
// black.
func (b *Box) Apply(scope *theme.Scope) {
	st := lipgloss.NewStyle().
		Bold(scope.Bool(KeyBold)).
		Italic(scope.Bool(KeyItalic)).
		Underline(scope.Bool(KeyUnderline)).
		Align(position(scope.TextAlignment(KeyAlignment)))

	if scope.Has(KeyForeground) {
		st = st.Foreground(scope.Color(KeyForeground).Lipgloss())
	}
	if scope.Has(KeyBackground) {
		st = st.Background(scope.Color(KeyBackground).Lipgloss())
	}

	if border, ok := borderFor(scope.BorderStyle(KeyBorderStyle)); ok {
		st = st.Border(border)
		if scope.Has(KeyBorderColor) {
			st = st.BorderForeground(scope.Color(KeyBorderColor).Lipgloss())
		}
	}

	p := scope.EdgeInsets(KeyPadding)
	st = st.Padding(cells(p.Top), cells(p.Right), cells(p.Bottom), cells(p.Left))
	m := scope.EdgeInsets(KeyMargin)
	st = st.Margin(cells(m.Top), cells(m.Right), cells(m.Bottom), cells(m.Left))

	if w := scope.Int(KeyWidth); w > 0 {
		st = st.Width(w)
	}

	b.mu.Lock()
	b.style = st
	b.textCase = scope.TextCase(KeyTextCase)
	b.mu.Unlock()
}

// Style returns a copy of the current style.
func (b *Box) Style() lipgloss.Style {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.style
}

// Render styles text with the current style and text case.
func (b *Box) Render(text string) string {
	b.mu.RLock()
	st, tc := b.style, b.textCase
	b.mu.RUnlock()
	return st.Render(tc.Apply(text))
}

func position(a theme.TextAlignment) lipgloss.Position {
	switch a {
	case theme.AlignCenter:
		return lipgloss.Center
	case theme.AlignRight:
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}

func borderFor(bs theme.BorderStyle) (lipgloss.Border, bool) {
	switch bs {
	case theme.BorderLine:
		return lipgloss.NormalBorder(), true
	case theme.BorderBezel:
		return lipgloss.ThickBorder(), true
	case theme.BorderRoundedRect:
		return lipgloss.RoundedBorder(), true
	default:
		return lipgloss.Border{}, false
	}
}

func cells(f float64) int {
	if f <= 0 {
		return 0
	}
	return int(f + 0.5)
}
