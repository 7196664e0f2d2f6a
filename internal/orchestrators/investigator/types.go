package investigator

import (
	"github.com/KirkDiggler/coc-api/internal/dice"
	"github.com/KirkDiggler/coc-api/internal/entities"
)

// CreateInvestigatorInput describes the investigator to generate.
// Overrides replace the dice result of a characteristic before it is scaled.
type CreateInvestigatorInput struct {
	FirstName  string
	Surname    string
	Gender     entities.Gender
	Occupation string
	Birthplace string
	Residence  string
	Age        int
	Era        entities.Era

	Overrides map[entities.CharacteristicCode]int
}

// CreateInvestigatorOutput holds the generated investigator and how each
// characteristic was produced
type CreateInvestigatorOutput struct {
	Investigator *entities.Investigator
	Rolls        []*CharacteristicRoll
}

// CharacteristicRoll records how one characteristic got its base
type CharacteristicRoll struct {
	Code     entities.CharacteristicCode
	Notation string

	// Raw is the dice total, or the override when Overridden
	Raw        int
	Overridden bool

	// Base is Raw * CharacteristicMultiplier
	Base int

	// Result is nil when Overridden
	Result *dice.Result
}

// SetCharacteristicsInput re-generates the characteristics of an investigator
type SetCharacteristicsInput struct {
	Investigator *entities.Investigator
	Overrides    map[entities.CharacteristicCode]int
}

// SetCharacteristicsOutput holds the updated investigator
type SetCharacteristicsOutput struct {
	Investigator *entities.Investigator
	Rolls        []*CharacteristicRoll
}

// CheckInput describes a characteristic check. A nil Value draws a D100.
type CheckInput struct {
	Investigator *entities.Investigator
	Code         entities.CharacteristicCode
	Difficulty   entities.Difficulty
	Value        *int
}

// CheckOutput holds the resolved check
type CheckOutput struct {
	Result *entities.CheckResult
}
