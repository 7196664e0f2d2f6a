package dice

import (
	"fmt"
	"strings"
)

// TermResult is the outcome of a single term within a roll
type TermResult struct {
	Term     Term
	Rolls    []int
	Subtotal int
}

// Result is one evaluation of an Expression.
//
// Total == DiceTotal + Modifier, where DiceTotal is the signed sum of every
// die and Modifier the signed sum of every constant.
type Result struct {
	Notation  string
	Terms     []TermResult
	DiceTotal int
	Modifier  int
	Total     int
}

// Dice returns every individual die value in term order
func (r *Result) Dice() []int {
	var out []int
	for _, t := range r.Terms {
		out = append(out, t.Rolls...)
	}
	return out
}

// String returns an audit line such as "2D6+6 → [4 5] +6 = 15"
func (r *Result) String() string {
	values := r.Dice()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("%s → [%s] %+d = %d", r.Notation, strings.Join(parts, " "), r.Modifier, r.Total)
}
