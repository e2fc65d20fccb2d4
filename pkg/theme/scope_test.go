package theme

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChain() (root, mid, leaf *Scope) {
	root = NewScope("default", map[string]any{
		"tint":       "#00FF00",
		"cornerSize": 4,
		"shared":     "root",
		"header": map[string]any{
			"textColor": "#FFFFFF",
		},
	}, nil)
	mid = NewScope("dark", map[string]any{
		"shared": "mid",
		"panel": map[string]any{
			"backgroundColor": "#101010",
		},
	}, root)
	leaf = NewScope("leaf", map[string]any{"own": true}, mid)
	return root, mid, leaf
}

func TestScope_GetFallsBackThroughParents(t *testing.T) {
	root, mid, leaf := newChain()

	v, ok := mid.Get("shared")
	require.True(t, ok)
	assert.Equal(t, "mid", v)

	v, ok = mid.Get("tint")
	require.True(t, ok)
	assert.Equal(t, "#00FF00", v)

	// two levels deep
	v, ok = leaf.Get("cornerSize")
	require.True(t, ok)
	assert.Equal(t, 4, v)

	_, ok = root.Get("own")
	assert.False(t, ok)
	_, ok = leaf.Get("missing")
	assert.False(t, ok)
	assert.True(t, leaf.Has("shared"))
}

func TestScope_InnerScopeSkipsContainer(t *testing.T) {
	root, mid, _ := newChain()

	panel := mid.InnerScope("panel")
	require.NotNil(t, panel)
	assert.Equal(t, "panel", panel.Name())
	assert.Same(t, root, panel.Parent())
	assert.NotSame(t, mid, panel.Parent())

	// "shared" lives on mid, which the inner scope does not see
	v, _ := panel.Get("shared")
	assert.Equal(t, "root", v)
}

func TestScope_InnerScopeFromParentMapping(t *testing.T) {
	_, mid, _ := newChain()

	header := mid.InnerScope("header")
	require.NotNil(t, header)
	assert.Equal(t, "#FFFFFF", header.NonNilString("textColor"))
}

func TestScope_InnerScopeRequiresMapping(t *testing.T) {
	_, mid, _ := newChain()

	assert.Nil(t, mid.InnerScope("shared"))
	assert.Nil(t, mid.InnerScope("missing"))
}

func TestScope_InnerScopeAcceptsAnyKeyedMaps(t *testing.T) {
	s := NewScope("s", map[string]any{
		"box": map[any]any{"width": 3},
	}, nil)

	box := s.InnerScope("box")
	require.NotNil(t, box)
	assert.Equal(t, 3, box.Int("width"))
}

func TestScope_RemoveKeys(t *testing.T) {
	root, mid, _ := newChain()

	trimmed := mid.RemoveKeys("shared", "nothing")
	assert.Equal(t, "dark", trimmed.Name())
	assert.Same(t, root, trimmed.Parent())
	assert.Equal(t, []string{"panel"}, trimmed.Keys())

	// removed own key now resolves through the parent
	assert.Equal(t, "root", trimmed.NonNilString("shared"))
	// source scope untouched
	assert.Equal(t, "mid", mid.NonNilString("shared"))
}

func TestScope_MergeOverlayReceiverWins(t *testing.T) {
	root, _, _ := newChain()
	a := NewScope("a", map[string]any{"k": "a", "onlyA": 1}, root)
	b := NewScope("b", map[string]any{"k": "b", "onlyB": 2, "tint": "#000000"}, nil)

	merged := a.MergeOverlay(b)
	assert.Equal(t, "a", merged.Name())
	assert.Same(t, root, merged.Parent())
	assert.Equal(t, "a", merged.NonNilString("k"))
	assert.Equal(t, 1, merged.Int("onlyA"))
	assert.Equal(t, 2, merged.Int("onlyB"))
	// b's own key beats a's parent
	assert.Equal(t, "#000000", merged.NonNilString("tint"))

	assert.Same(t, a, a.MergeOverlay(nil))
}

func TestComposeGlobalStyle(t *testing.T) {
	styles := map[string]*Scope{
		"brand": NewScope("brand", map[string]any{"textColor": "#FF0000", "title": "brand"}, nil),
	}
	lookup := func(name string) *Scope { return styles[name] }

	t.Run("named top-level style", func(t *testing.T) {
		s := NewScope("screen", map[string]any{"globalStyle": "brand", "title": "own"}, nil)
		got := ComposeGlobalStyle(s, lookup)
		assert.Equal(t, "#FF0000", got.NonNilString("textColor"))
		assert.Equal(t, "own", got.NonNilString("title"))
	})

	t.Run("falls back to nested style", func(t *testing.T) {
		s := NewScope("screen", map[string]any{
			"globalStyle": "local",
			"local":       map[string]any{"textColor": "#0000FF"},
		}, nil)
		got := ComposeGlobalStyle(s, lookup)
		assert.Equal(t, "#0000FF", got.NonNilString("textColor"))
	})

	t.Run("missing style leaves scope alone", func(t *testing.T) {
		s := NewScope("screen", map[string]any{"globalStyle": "nope"}, nil)
		assert.Same(t, s, ComposeGlobalStyle(s, lookup))
	})

	t.Run("no global style", func(t *testing.T) {
		s := NewScope("screen", map[string]any{}, nil)
		assert.Same(t, s, ComposeGlobalStyle(s, nil))
		assert.Nil(t, ComposeGlobalStyle(nil, nil))
	})
}

func TestScope_MissingKeysReturnDefaults(t *testing.T) {
	_, _, leaf := newChain()

	assert.False(t, leaf.Bool("nope"))
	assert.Equal(t, 0, leaf.Int("nope"))
	assert.Equal(t, float32(0), leaf.Float("nope"))
	assert.Equal(t, 0.0, leaf.Double("nope"))
	assert.Equal(t, time.Duration(0), leaf.TimeInterval("nope"))
	assert.Equal(t, "", leaf.NonNilString("nope"))
	_, ok := leaf.LookupString("nope")
	assert.False(t, ok)
	assert.Equal(t, Black, leaf.Color("nope"))
	assert.Equal(t, SystemFont(DefaultFontSize), leaf.Font("nope"))
	assert.Equal(t, AlignLeft, leaf.TextAlignment("nope"))
	assert.Equal(t, SeparatorSingleLine, leaf.SeparatorStyle("nope"))
	assert.Equal(t, BorderNone, leaf.BorderStyle("nope"))
	assert.Equal(t, CurveEaseInOut, leaf.AnimationCurve("nope"))
	assert.Equal(t, TextCaseNone, leaf.TextCase("nope"))
	assert.Equal(t, EdgeInsets{}, leaf.EdgeInsets("nope"))
	assert.Equal(t, Point{}, leaf.Point("nope"))
	assert.Equal(t, Size{}, leaf.Size("nope"))
	assert.Equal(t, AttributedText{}, leaf.AttributedText("nope"))
}

func TestScope_TypedGettersRejectWrongTypes(t *testing.T) {
	s := NewScope("s", map[string]any{
		"flag":   "true",
		"count":  "3",
		"name":   42,
		"nested": map[string]any{},
	}, nil)

	assert.False(t, s.Bool("flag"))
	assert.Equal(t, 0, s.Int("count"))
	assert.Equal(t, 0.0, s.Double("count"))
	_, ok := s.LookupString("name")
	assert.False(t, ok)
	assert.Equal(t, AlignLeft, s.TextAlignment("name"))
	assert.Equal(t, Black, s.Color("nested"))
}

func TestScope_Numbers(t *testing.T) {
	s := NewScope("s", map[string]any{
		"int":      7,
		"float":    2.75,
		"seconds":  0.25,
		"negative": -1.9,
	}, nil)

	assert.Equal(t, 7, s.Int("int"))
	assert.Equal(t, 7.0, s.Double("int"))
	assert.Equal(t, 2, s.Int("float"))
	assert.Equal(t, float32(2.75), s.Float("float"))
	assert.Equal(t, -1, s.Int("negative"))
	assert.Equal(t, 250*time.Millisecond, s.TimeInterval("seconds"))
}

func TestScope_Geometry(t *testing.T) {
	s := NewScope("s", map[string]any{
		"paddingLeft": 1, "paddingTop": 2, "paddingRight": 3, "paddingBottom": 4.5,
		"offsetX": 10, "offsetY": -2,
		"iconWidth": 16, "iconHeight": 24,
	}, nil)

	assert.Equal(t, EdgeInsets{Top: 2, Left: 1, Bottom: 4.5, Right: 3}, s.EdgeInsets("padding"))
	assert.Equal(t, Point{X: 10, Y: -2}, s.Point("offset"))
	assert.Equal(t, Size{Width: 16, Height: 24}, s.Size("icon"))
}

func TestScope_Enumerations(t *testing.T) {
	s := NewScope("s", map[string]any{
		"align":     "CENTER",
		"justified": "Justified",
		"separator": "singleLineEtched",
		"sepNone":   "NONE",
		"border":    "roundedrect",
		"curve":     "Linear",
		"case":      "UpperCase",
		"lower":     "lowercase",
		"bogus":     "sideways",
	}, nil)

	assert.Equal(t, AlignCenter, s.TextAlignment("align"))
	assert.Equal(t, AlignJustified, s.TextAlignment("justified"))
	assert.Equal(t, AlignLeft, s.TextAlignment("bogus"))
	assert.Equal(t, SeparatorSingleLineEtched, s.SeparatorStyle("separator"))
	assert.Equal(t, SeparatorNone, s.SeparatorStyle("sepNone"))
	assert.Equal(t, BorderRoundedRect, s.BorderStyle("border"))
	assert.Equal(t, CurveLinear, s.AnimationCurve("curve"))
	assert.Equal(t, CurveEaseInOut, s.AnimationCurve("bogus"))
	assert.Equal(t, TextCaseUpper, s.TextCase("case"))
	assert.Equal(t, TextCaseLower, s.TextCase("lower"))

	assert.Equal(t, "HELLO", TextCaseUpper.Apply("hello"))
	assert.Equal(t, "hello", TextCaseLower.Apply("HeLLo"))
	assert.Equal(t, "MiXed", TextCaseNone.Apply("MiXed"))
	assert.Equal(t, "roundedRect", BorderRoundedRect.String())
	assert.Equal(t, "unknown", TextAlignment(99).String())
}

func TestScope_AnimationSpecifier(t *testing.T) {
	s := NewScope("s", map[string]any{
		"fadeDuration": 0.5,
		"fadeDelay":    1,
		"fadeCurve":    "easeOut",
	}, nil)

	assert.Equal(t, AnimationSpecifier{
		Duration: 500 * time.Millisecond,
		Delay:    time.Second,
		Curve:    CurveEaseOut,
	}, s.AnimationSpecifier("fade"))
}

func TestScope_Font(t *testing.T) {
	s := NewScope("s", map[string]any{
		"titleFont":     "Menlo",
		"titleFontSize": 22,
		"bodyFont":      "Comic Sans",
		"emptyFont":     "",
		"emptyFontSize": 9,
	}, nil, WithFontCatalog(NewFontSet("Menlo")))

	assert.Equal(t, Font{Name: "Menlo", Size: 22}, s.Font("titleFont"))
	assert.Equal(t, SystemFont(DefaultFontSize), s.Font("bodyFont"))
	assert.Equal(t, SystemFont(9), s.Font("emptyFont"))
	assert.True(t, s.Font("bodyFont").System)
}

func TestScope_AttributedText(t *testing.T) {
	s := NewScope("s", map[string]any{
		"title": "Hello",
		"titleAttributes": map[string]any{
			"font":            "Menlo",
			"fontSize":        18,
			"foregroundColor": "#FF0000",
			"backgroundColor": "rgb(0,0,255)",
			"kerning":         2,
		},
		"plain": "no attributes",
	}, nil)

	got := s.AttributedText("title")
	assert.Equal(t, "Hello", got.Text)
	require.NotNil(t, got.Attributes.Font)
	assert.Equal(t, Font{Name: "Menlo", Size: 18}, *got.Attributes.Font)
	require.NotNil(t, got.Attributes.Foreground)
	assert.Equal(t, Color{R: 1, A: 1}, *got.Attributes.Foreground)
	require.NotNil(t, got.Attributes.Background)
	assert.Equal(t, Color{B: 1, A: 1}, *got.Attributes.Background)

	plain := s.AttributedText("plain")
	assert.Equal(t, "no attributes", plain.Text)
	assert.True(t, plain.Attributes.IsZero())
}

func TestScope_AttributesIgnoreParentChain(t *testing.T) {
	parent := NewScope("default", map[string]any{
		"titleAttributes": map[string]any{"foregroundColor": "#FF0000"},
	}, nil)
	child := NewScope("child", map[string]any{"title": "x"}, parent)

	_, ok := child.TextAttributes("titleAttributes")
	assert.False(t, ok)
	assert.True(t, child.AttributedText("title").Attributes.IsZero())
}

func TestScope_ConcurrentCacheFill(t *testing.T) {
	s := NewScope("s", map[string]any{
		"tint":     "#336699",
		"bodyFont": "Menlo",
	}, nil)

	var wg sync.WaitGroup
	colors := make([]Color, 32)
	fonts := make([]Font, 32)
	for i := range colors {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			colors[i] = s.Color("tint")
			fonts[i] = s.Font("bodyFont")
		}(i)
	}
	wg.Wait()

	for i := range colors {
		assert.Equal(t, colors[0], colors[i])
		assert.Equal(t, fonts[0], fonts[i])
	}
}

func TestScope_String(t *testing.T) {
	root, mid, _ := newChain()
	assert.Equal(t, "Scope(default)", root.String())
	assert.Equal(t, "Scope(dark -> default)", mid.String())
}
