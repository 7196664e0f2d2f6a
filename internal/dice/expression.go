// Package dice parses and rolls dice expressions such as "3D6", "2D6+6",
// "D100" and "4D4-1".
//
// An expression is a sum of terms. A term is either an integer constant or
// [count]D<sides>, where count defaults to 1. A minus sign negates the term
// that follows it. Expressions are validated once by Parse and can then be
// rolled any number of times; each Roll draws fresh dice.
package dice

import (
	"math"
	"strconv"
	"strings"

	rpgdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/coc-api/internal/errors"
)

const (
	// MaxDicePerTerm caps the count of a single term
	MaxDicePerTerm = 1000

	// MaxSides caps the faces of a single die
	MaxSides = 10000

	// MaxConstant caps the absolute value of a constant term
	MaxConstant = 1_000_000

	// MaxTotal bounds the absolute total of an expression so every total
	// fits an int32 on the wire
	MaxTotal = math.MaxInt32
)

// Roller is the randomness source used to roll dice
type Roller = rpgdice.Roller

// Expression is a parsed dice expression. It is immutable and safe to roll
// from multiple goroutines as long as its Roller is.
type Expression struct {
	notation string
	terms    []Term
	roller   Roller
}

// Option configures Parse
type Option func(*Expression)

// WithRoller sets the roller used by Roll
func WithRoller(r Roller) Option {
	return func(e *Expression) {
		if r != nil {
			e.roller = r
		}
	}
}

// Parse validates notation and returns the expression it describes.
// Malformed terms fail here rather than at roll time.
func Parse(notation string, opts ...Option) (*Expression, error) {
	if strings.TrimSpace(notation) == "" {
		return nil, errors.InvalidArgument("dice notation is required")
	}

	// "-" becomes a separator that keeps its sign, "+" a plain separator
	normalized := strings.ReplaceAll(notation, "-", "|-")
	normalized = strings.ReplaceAll(normalized, "+", "|")
	raw := strings.Split(normalized, "|")

	// a leading "-" produces an empty first piece which is not a term
	if strings.HasPrefix(strings.TrimSpace(notation), "-") {
		raw = raw[1:]
	}

	terms := make([]Term, 0, len(raw))
	bound := 0
	for _, piece := range raw {
		term, err := parseTerm(piece)
		if err != nil {
			return nil, err.WithMeta("notation", notation)
		}

		// each term is at most MaxDicePerTerm*MaxSides, so bound cannot overflow
		// before it passes MaxTotal
		bound += max(abs(term.Min()), abs(term.Max()))
		if bound > MaxTotal {
			return nil, termError(piece, "expression total exceeds "+strconv.Itoa(MaxTotal)).
				WithMeta("notation", notation)
		}
		terms = append(terms, term)
	}

	expr := &Expression{
		notation: notation,
		terms:    terms,
		roller:   rpgdice.DefaultRoller,
	}
	for _, opt := range opts {
		opt(expr)
	}

	return expr, nil
}

// MustParse is Parse for notations known to be valid; it panics on error
func MustParse(notation string, opts ...Option) *Expression {
	expr, err := Parse(notation, opts...)
	if err != nil {
		panic("dice: MustParse(" + strconv.Quote(notation) + "): " + err.Error())
	}
	return expr
}

func parseTerm(piece string) (Term, *errors.Error) {
	text := strings.TrimSpace(piece)
	sign := 1
	if strings.HasPrefix(text, "-") {
		sign = -1
		text = strings.TrimSpace(text[1:])
	}

	if text == "" {
		return Term{}, termError(piece, "empty term")
	}

	parts := strings.Split(strings.ToUpper(text), "D")
	switch len(parts) {
	case 1:
		value, err := strconv.Atoi(parts[0])
		if err != nil {
			return Term{}, termError(piece, "constant is not an integer")
		}
		if abs(value) > MaxConstant {
			return Term{}, termError(piece, "constant exceeds "+strconv.Itoa(MaxConstant))
		}
		return Term{Sign: sign, Constant: value}, nil

	case 2:
		count := 1
		if countText := strings.TrimSpace(parts[0]); countText != "" {
			n, err := strconv.Atoi(countText)
			if err != nil {
				return Term{}, termError(piece, "dice count is not an integer")
			}
			count = n
		}

		sides, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return Term{}, termError(piece, "die sides is not an integer")
		}

		if count < 1 {
			return Term{}, termError(piece, "dice count must be positive")
		}
		if count > MaxDicePerTerm {
			return Term{}, termError(piece, "dice count exceeds "+strconv.Itoa(MaxDicePerTerm))
		}
		if sides < 1 {
			return Term{}, termError(piece, "die sides must be positive")
		}
		if sides > MaxSides {
			return Term{}, termError(piece, "die sides exceed "+strconv.Itoa(MaxSides))
		}

		return Term{Sign: sign, Count: count, Sides: sides}, nil

	default:
		return Term{}, termError(piece, "more than one die separator")
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func termError(term, reason string) *errors.Error {
	return errors.InvalidArgumentf("invalid dice term %q: %s", strings.TrimSpace(term), reason).
		WithMeta("term", strings.TrimSpace(term))
}

// String returns the notation the expression was parsed from
func (e *Expression) String() string {
	return e.notation
}

// Terms returns a copy of the parsed terms in order
func (e *Expression) Terms() []Term {
	out := make([]Term, len(e.terms))
	copy(out, e.terms)
	return out
}

// Min returns the lowest total the expression can produce
func (e *Expression) Min() int {
	total := 0
	for _, t := range e.terms {
		total += t.Min()
	}
	return total
}

// Max returns the highest total the expression can produce
func (e *Expression) Max() int {
	total := 0
	for _, t := range e.terms {
		total += t.Max()
	}
	return total
}

// Roll evaluates every term with the expression's roller. Each call draws
// new dice. The only failure is a roller error or a roller value outside
// [1, sides].
func (e *Expression) Roll() (*Result, error) {
	result := &Result{
		Notation: e.notation,
		Terms:    make([]TermResult, 0, len(e.terms)),
	}

	for _, term := range e.terms {
		tr := TermResult{Term: term}

		if term.IsConstant() {
			tr.Subtotal = term.Sign * term.Constant
			result.Modifier += tr.Subtotal
		} else {
			rolls, err := e.roller.RollN(term.Count, term.Sides)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to roll %s", term)
			}
			if len(rolls) != term.Count {
				return nil, errors.Internalf("roller returned %d values for %s", len(rolls), term)
			}
			for _, v := range rolls {
				if v < 1 || v > term.Sides {
					return nil, errors.Internalf("roller returned %d for a d%d", v, term.Sides).
						WithMeta("term", term.String())
				}
				tr.Subtotal += term.Sign * v
			}
			tr.Rolls = rolls
			result.DiceTotal += tr.Subtotal
		}

		result.Terms = append(result.Terms, tr)
	}

	result.Total = result.DiceTotal + result.Modifier
	return result, nil
}
