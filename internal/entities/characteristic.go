package entities

import (
	"fmt"

	"github.com/KirkDiggler/coc-api/internal/dice"
	"github.com/KirkDiggler/coc-api/internal/errors"
)

// CharacteristicCode identifies one of an investigator's characteristics
type CharacteristicCode string

// Characteristic codes
const (
	Strength     CharacteristicCode = "STR"
	Constitution CharacteristicCode = "CON"
	Dexterity    CharacteristicCode = "DEX"
	Size         CharacteristicCode = "SIZ"
	Appearance   CharacteristicCode = "APP"
	Intelligence CharacteristicCode = "INT"
	Power        CharacteristicCode = "POW"
	Education    CharacteristicCode = "EDU"
)

// AllCharacteristics lists every code in sheet order
var AllCharacteristics = []CharacteristicCode{
	Strength, Constitution, Dexterity, Size, Appearance, Intelligence, Power, Education,
}

var characteristicDescriptions = map[CharacteristicCode]string{
	Strength:     "Strength",
	Constitution: "Constitution",
	Dexterity:    "Dexterity",
	Size:         "Size",
	Appearance:   "Appearance",
	Intelligence: "Intelligence",
	Power:        "Power",
	Education:    "Education",
}

// Description returns the long name of the code, or the code itself when unknown
func (c CharacteristicCode) Description() string {
	if d, ok := characteristicDescriptions[c]; ok {
		return d
	}
	return string(c)
}

// Valid reports whether c is a known characteristic
func (c CharacteristicCode) Valid() bool {
	_, ok := characteristicDescriptions[c]
	return ok
}

// ParseCharacteristicCode validates a code such as "STR"
func ParseCharacteristicCode(s string) (CharacteristicCode, error) {
	code := CharacteristicCode(s)
	if !code.Valid() {
		return "", errors.InvalidArgumentf("unknown characteristic %q", s)
	}
	return code, nil
}

// Difficulty is the level a check is made at
type Difficulty int

// Difficulty levels, from easiest to hardest
const (
	DifficultyRegular Difficulty = iota
	DifficultyHard
	DifficultyExtreme
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyRegular:
		return "regular"
	case DifficultyHard:
		return "hard"
	case DifficultyExtreme:
		return "extreme"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// ParseDifficulty maps "regular", "hard" and "extreme" to a Difficulty
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range []Difficulty{DifficultyRegular, DifficultyHard, DifficultyExtreme} {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, errors.InvalidArgumentf("unknown difficulty %q", s)
}

// percentileDie is the d100 drawn when a check has no value
const percentileDie = 100

// Characteristic is a named base value with its hard (half) and extreme
// (fifth) thresholds. Half and fifth only change through SetBase, so they
// never go stale. The zero value is "not yet set" and refuses checks.
type Characteristic struct {
	Code CharacteristicCode

	base  int
	half  int
	fifth int
	set   bool
}

// NewCharacteristic creates a characteristic with its base already set
func NewCharacteristic(code CharacteristicCode, base int) *Characteristic {
	c := &Characteristic{Code: code}
	c.SetBase(base)
	return c
}

// SetBase assigns the base value and recomputes half and fifth
func (c *Characteristic) SetBase(base int) {
	c.base = base
	c.half = base / 2
	c.fifth = base / 5
	c.set = true
}

// IsSet reports whether a base value has been assigned
func (c *Characteristic) IsSet() bool { return c.set }

// Base returns the base value
func (c *Characteristic) Base() int { return c.base }

// Regular is the regular success threshold, i.e. the base
func (c *Characteristic) Regular() int { return c.base }

// Half is the hard success threshold
func (c *Characteristic) Half() int { return c.half }

// Fifth is the extreme success threshold
func (c *Characteristic) Fifth() int { return c.fifth }

// Description returns the long name of the characteristic
func (c *Characteristic) Description() string { return c.Code.Description() }

// Threshold returns the value a check at d must not exceed
func (c *Characteristic) Threshold(d Difficulty) (int, error) {
	if !c.set {
		return 0, errors.FailedPreconditionf("characteristic %s is not set", c.Code).
			WithMeta("characteristic", string(c.Code))
	}

	switch d {
	case DifficultyRegular:
		return c.base, nil
	case DifficultyHard:
		return c.half, nil
	case DifficultyExtreme:
		return c.fifth, nil
	default:
		return 0, errors.InvalidArgumentf("unknown difficulty %d", int(d))
	}
}

// Check reports whether value succeeds at difficulty d
func (c *Characteristic) Check(d Difficulty, value int) (bool, error) {
	threshold, err := c.Threshold(d)
	if err != nil {
		return false, err
	}
	return value <= threshold, nil
}

// IsRegular reports whether value <= base
func (c *Characteristic) IsRegular(value int) (bool, error) {
	return c.Check(DifficultyRegular, value)
}

// IsHard reports whether value <= half
func (c *Characteristic) IsHard(value int) (bool, error) {
	return c.Check(DifficultyHard, value)
}

// IsExtreme reports whether value <= fifth
func (c *Characteristic) IsExtreme(value int) (bool, error) {
	return c.Check(DifficultyExtreme, value)
}

// CheckResult records how a check was resolved
type CheckResult struct {
	Code       CharacteristicCode
	Difficulty Difficulty
	Threshold  int
	Value      int
	Rolled     bool
	Success    bool
}

// Resolve checks value at d and returns the full record
func (c *Characteristic) Resolve(d Difficulty, value int) (*CheckResult, error) {
	threshold, err := c.Threshold(d)
	if err != nil {
		return nil, err
	}
	return &CheckResult{
		Code:       c.Code,
		Difficulty: d,
		Threshold:  threshold,
		Value:      value,
		Success:    value <= threshold,
	}, nil
}

// RollCheck draws a d100 from roller and checks it at d
func (c *Characteristic) RollCheck(d Difficulty, roller dice.Roller) (*CheckResult, error) {
	// an unset characteristic never consumes a roll
	if _, err := c.Threshold(d); err != nil {
		return nil, err
	}

	value, err := roller.Roll(percentileDie)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll d100")
	}

	result, err := c.Resolve(d, value)
	if err != nil {
		return nil, err
	}
	result.Rolled = true
	return result, nil
}

// String renders e.g. "Strength/STR(R: 50 H:25 F: 10)"
func (c *Characteristic) String() string {
	if !c.set {
		return fmt.Sprintf("%s/%s(Not yet set)", c.Description(), c.Code)
	}
	return fmt.Sprintf("%s/%s(R: %d H:%d F: %d)", c.Description(), c.Code, c.base, c.half, c.fifth)
}
