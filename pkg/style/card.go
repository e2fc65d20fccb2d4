package style

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kcaldas/themekit/pkg/themable"
	"github.com/kcaldas/themekit/pkg/theme"
)

// Card is a titled block of text. Its scope styles the frame; nested "title"
// and "body" mappings style the two parts.
type Card struct {
	Name  string
	Frame *Box
	Title *Box
	Body  *Box
}

// NewCard creates a card resolved from the scope called name. An empty name
// resolves the scope "Card".
func NewCard(name string) *Card {
	return &Card{Name: name, Frame: NewBox(), Title: NewBox(), Body: NewBox()}
}

// ThemeName implements themable.Named.
func (c *Card) ThemeName() string {
	return c.Name
}

// ThemeChildren implements themable.Themable.
func (c *Card) ThemeChildren() []themable.Child {
	return []themable.Child{
		{Label: "title", Target: c.Title},
		{Label: "body", Target: c.Body},
	}
}

// Apply styles the frame from the card's whole scope.
func (c *Card) Apply(scope *theme.Scope) {
	c.Frame.Apply(scope)
}

// RecognizedKeys implements themable.Applier.
func (c *Card) RecognizedKeys() []string {
	return c.Frame.RecognizedKeys()
}

// Render joins the styled title above the styled body inside the frame. The
// frame's text case is not applied to the already styled parts.
func (c *Card) Render(title, body string) string {
	inner := lipgloss.JoinVertical(lipgloss.Left, c.Title.Render(title), c.Body.Render(body))
	return c.Frame.Style().Render(inner)
}
