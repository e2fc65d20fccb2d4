package theme

import "time"

// EdgeInsets are distances inset from each edge of a rectangle.
type EdgeInsets struct {
	Top, Left, Bottom, Right float64
}

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Size is a 2D extent.
type Size struct {
	Width, Height float64
}

// EdgeInsets reads key+"Left", key+"Top", key+"Right" and key+"Bottom".
func (s *Scope) EdgeInsets(key string) EdgeInsets {
	return EdgeInsets{
		Top:    s.Double(key + "Top"),
		Left:   s.Double(key + "Left"),
		Bottom: s.Double(key + "Bottom"),
		Right:  s.Double(key + "Right"),
	}
}

// Point reads key+"X" and key+"Y".
func (s *Scope) Point(key string) Point {
	return Point{X: s.Double(key + "X"), Y: s.Double(key + "Y")}
}

// Size reads key+"Width" and key+"Height".
func (s *Scope) Size(key string) Size {
	return Size{Width: s.Double(key + "Width"), Height: s.Double(key + "Height")}
}

// AnimationSpecifier describes how a change should be animated.
type AnimationSpecifier struct {
	Duration time.Duration
	Delay    time.Duration
	Curve    AnimationCurve
}

// AnimationSpecifier reads key+"Duration", key+"Delay" (seconds) and
// key+"Curve".
func (s *Scope) AnimationSpecifier(key string) AnimationSpecifier {
	return AnimationSpecifier{
		Duration: s.TimeInterval(key + "Duration"),
		Delay:    s.TimeInterval(key + "Delay"),
		Curve:    s.AnimationCurve(key + "Curve"),
	}
}
