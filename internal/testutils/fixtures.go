package testutils

import (
	"github.com/KirkDiggler/coc-api/internal/entities"
)

// Investigator stages for testing
const (
	StageUnrolled = "unrolled"
	StagePartial  = "partial"
	StageComplete = "complete"

	// TestInvestigatorName is the default first name for test fixtures
	TestInvestigatorName = "Harvey"
)

// TestCharacteristics are the bases of a complete test investigator
var TestCharacteristics = map[entities.CharacteristicCode]int{
	entities.Strength:     50,
	entities.Constitution: 60,
	entities.Dexterity:    55,
	entities.Size:         65,
	entities.Appearance:   40,
	entities.Intelligence: 80,
	entities.Power:        70,
	entities.Education:    85,
}

// CreateTestInvestigator creates an investigator with every characteristic set
func CreateTestInvestigator(id string) *entities.Investigator {
	return CreateTestInvestigatorAtStage(id, StageComplete)
}

// CreateTestInvestigatorAtStage creates an investigator at various stages of generation.
// StagePartial sets STR only and leaves DEX present but unset.
func CreateTestInvestigatorAtStage(id string, stage string) *entities.Investigator {
	inv := &entities.Investigator{
		ID:         id,
		FirstName:  TestInvestigatorName,
		Surname:    "Walters",
		Gender:     entities.GenderMale,
		Occupation: "Journalist",
		Age:        42,
		Era:        entities.EraNineteenTwenties,
	}

	switch stage {
	case StagePartial:
		inv.SetCharacteristic(entities.Strength, TestCharacteristics[entities.Strength])
		inv.Characteristics[entities.Dexterity] = &entities.Characteristic{Code: entities.Dexterity}

	case StageComplete:
		for code, base := range TestCharacteristics {
			inv.SetCharacteristic(code, base)
		}
	}

	return inv
}
