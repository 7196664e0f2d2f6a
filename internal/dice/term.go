package dice

import "fmt"

// Term is one signed addend of an expression: a constant when Count is 0,
// otherwise Count dice of Sides faces
type Term struct {
	Sign     int
	Count    int
	Sides    int
	Constant int
}

// IsConstant reports whether the term rolls no dice
func (t Term) IsConstant() bool {
	return t.Count == 0
}

// Min returns the lowest signed value of the term
func (t Term) Min() int {
	if t.IsConstant() {
		return t.Sign * t.Constant
	}
	if t.Sign < 0 {
		return -t.Count * t.Sides
	}
	return t.Count
}

// Max returns the highest signed value of the term
func (t Term) Max() int {
	if t.IsConstant() {
		return t.Sign * t.Constant
	}
	if t.Sign < 0 {
		return -t.Count
	}
	return t.Count * t.Sides
}

// String renders the term in canonical form, e.g. "3D6", "-2", "-1D4"
func (t Term) String() string {
	sign := ""
	if t.Sign < 0 {
		sign = "-"
	}
	if t.IsConstant() {
		return fmt.Sprintf("%s%d", sign, t.Constant)
	}
	return fmt.Sprintf("%s%dD%d", sign, t.Count, t.Sides)
}
