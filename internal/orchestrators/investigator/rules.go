package investigator

import (
	"github.com/KirkDiggler/coc-api/internal/entities"
)

// CharacteristicMultiplier scales a rolled characteristic to its percentile base
const CharacteristicMultiplier = 5

// Rule is how one characteristic is generated
type Rule struct {
	Code     entities.CharacteristicCode
	Notation string
}

var rules = []Rule{
	{Code: entities.Strength, Notation: "3D6"},
	{Code: entities.Constitution, Notation: "3D6"},
	{Code: entities.Size, Notation: "2D6+6"},
	{Code: entities.Dexterity, Notation: "3D6"},
	{Code: entities.Appearance, Notation: "3D6"},
	{Code: entities.Intelligence, Notation: "2D6+6"},
	{Code: entities.Power, Notation: "3D6"},
	{Code: entities.Education, Notation: "2D6+6"},
}

// Rules returns the generation rule of every characteristic in roll order
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
