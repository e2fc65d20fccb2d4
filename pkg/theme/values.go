package theme

import (
	"math"
	"time"
)

// Bool returns the boolean at key; anything else is false.
func (s *Scope) Bool(key string) bool {
	v, _ := s.Get(key)
	b, ok := v.(bool)
	return ok && b
}

// LookupString returns the string at key. ok is false when the key is missing
// or holds a non-string value.
func (s *Scope) LookupString(key string) (string, bool) {
	v, _ := s.Get(key)
	str, ok := v.(string)
	return str, ok
}

// NonNilString returns the string at key, or "".
func (s *Scope) NonNilString(key string) string {
	str, _ := s.LookupString(key)
	return str
}

// Int returns the number at key truncated to an int, or 0.
func (s *Scope) Int(key string) int {
	v, _ := s.Get(key)
	f, ok := asFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

// Float returns the number at key as float32, or 0.
func (s *Scope) Float(key string) float32 {
	return float32(s.Double(key))
}

// Double returns the number at key, or 0.
func (s *Scope) Double(key string) float64 {
	v, _ := s.Get(key)
	f, _ := asFloat(v)
	return f
}

// TimeInterval reads a number of seconds at key.
func (s *Scope) TimeInterval(key string) time.Duration {
	return time.Duration(s.Double(key) * float64(time.Second))
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
