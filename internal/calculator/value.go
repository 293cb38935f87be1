package calculator

// Value is an indicator output that may be undefined. Indicators leave their
// leading warm-up bars undefined instead of emitting a sentinel number, so
// callers cannot accidentally do arithmetic on a placeholder.
type Value struct {
	v  float64
	ok bool
}

// Defined wraps a computed indicator value.
func Defined(v float64) Value { return Value{v: v, ok: true} }

// Undefined returns the marker for a not-yet-computable value.
func Undefined() Value { return Value{} }

// Defined reports whether the value was computed.
func (v Value) Defined() bool { return v.ok }

// Float returns the numeric value and whether it is defined.
func (v Value) Float() (float64, bool) { return v.v, v.ok }

// MustFloat returns the numeric value, panicking if it is undefined.
// Only for use after an explicit Defined check.
func (v Value) MustFloat() float64 {
	if !v.ok {
		panic("calculator: undefined indicator value")
	}
	return v.v
}
