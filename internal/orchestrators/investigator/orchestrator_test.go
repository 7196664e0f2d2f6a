package investigator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/coc-api/internal/entities"
	"github.com/KirkDiggler/coc-api/internal/errors"
	"github.com/KirkDiggler/coc-api/internal/orchestrators/investigator"
	"github.com/KirkDiggler/coc-api/internal/pkg/idgen"
	"github.com/KirkDiggler/coc-api/internal/testutils"
)

// one value per die in rule order: STR CON SIZ DEX APP INT POW EDU
var fullSheet = []int{
	1, 2, 3, // STR 6
	6, 6, 6, // CON 18
	1, 1, // SIZ 2+6
	3, 3, 3, // DEX 9
	2, 2, 2, // APP 6
	6, 6, // INT 12+6
	4, 4, 4, // POW 12
	5, 5, // EDU 10+6
}

type OrchestratorTestSuite struct {
	suite.Suite
	roller *testutils.SequenceRoller
	ctx    context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *OrchestratorTestSuite) newOrchestrator(values ...int) *investigator.Orchestrator {
	s.roller = testutils.NewSequenceRoller(values...)
	o, err := investigator.New(&investigator.Config{
		IDGenerator: idgen.NewSequential("inv"),
		Roller:      s.roller,
	})
	s.Require().NoError(err)
	return o
}

func (s *OrchestratorTestSuite) TestNewValidation() {
	_, err := investigator.New(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = investigator.New(&investigator.Config{})
	s.Require().Error(err)
	s.Contains(err.Error(), "IDGenerator")
	s.Contains(err.Error(), "Roller")
}

func (s *OrchestratorTestSuite) TestCreateInvestigator() {
	o := s.newOrchestrator(fullSheet...)

	out, err := o.CreateInvestigator(s.ctx, &investigator.CreateInvestigatorInput{
		FirstName:  "Harvey",
		Surname:    "Walters",
		Gender:     entities.GenderMale,
		Occupation: "Journalist",
		Age:        42,
		Era:        entities.EraNineteenTwenties,
	})
	s.Require().NoError(err)
	s.Zero(s.roller.Remaining())

	inv := out.Investigator
	s.Equal("inv_1", inv.GetID())
	s.Equal(entities.EntityTypeInvestigator, inv.GetType())
	s.Equal("Harvey Walters", inv.FullName())

	expected := map[entities.CharacteristicCode]int{
		entities.Strength:     30,
		entities.Constitution: 90,
		entities.Size:         40,
		entities.Dexterity:    45,
		entities.Appearance:   30,
		entities.Intelligence: 90,
		entities.Power:        60,
		entities.Education:    80,
	}
	s.Len(inv.Characteristics, len(expected))
	for code, base := range expected {
		c, err := inv.Characteristic(code)
		s.Require().NoError(err, code)
		s.Equal(base, c.Base(), code)
		s.Equal(base/2, c.Half(), code)
		s.Equal(base/5, c.Fifth(), code)
	}

	s.Require().Len(out.Rolls, 8)
	first := out.Rolls[0]
	s.Equal(entities.Strength, first.Code)
	s.Equal("3D6", first.Notation)
	s.Equal(6, first.Raw)
	s.Equal(30, first.Base)
	s.False(first.Overridden)
	s.Require().NotNil(first.Result)
	s.Equal([]int{1, 2, 3}, first.Result.Dice())
}

func (s *OrchestratorTestSuite) TestCreateInvestigatorWithOverrides() {
	// STR and EDU are overridden, so their dice are never rolled
	o := s.newOrchestrator(
		6, 6, 6,
		1, 1,
		3, 3, 3,
		2, 2, 2,
		6, 6,
		4, 4, 4,
	)

	out, err := o.CreateInvestigator(s.ctx, &investigator.CreateInvestigatorInput{
		FirstName: "Agatha",
		Overrides: map[entities.CharacteristicCode]int{
			entities.Strength:  10,
			entities.Education: 18,
		},
	})
	s.Require().NoError(err)
	s.Zero(s.roller.Remaining())

	str, err := out.Investigator.Characteristic(entities.Strength)
	s.Require().NoError(err)
	s.Equal(50, str.Base())

	edu, err := out.Investigator.Characteristic(entities.Education)
	s.Require().NoError(err)
	s.Equal(90, edu.Base())

	s.True(out.Rolls[0].Overridden)
	s.Nil(out.Rolls[0].Result)
	s.Equal(10, out.Rolls[0].Raw)
}

func (s *OrchestratorTestSuite) TestCreateInvestigatorRejectsBadOverrides() {
	o := s.newOrchestrator()

	testCases := []struct {
		name      string
		overrides map[entities.CharacteristicCode]int
		field     string
	}{
		{name: "below 3D6 minimum", overrides: map[entities.CharacteristicCode]int{entities.Strength: 2}, field: "STR"},
		{name: "above 2D6+6 maximum", overrides: map[entities.CharacteristicCode]int{entities.Education: 19}, field: "EDU"},
		{name: "below 2D6+6 minimum", overrides: map[entities.CharacteristicCode]int{entities.Size: 7}, field: "SIZ"},
		{name: "unknown code", overrides: map[entities.CharacteristicCode]int{"LUCK": 10}, field: "LUCK"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := o.CreateInvestigator(s.ctx, &investigator.CreateInvestigatorInput{
				FirstName: "Agatha",
				Overrides: tc.overrides,
			})
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.field)
		})
	}
}

func (s *OrchestratorTestSuite) TestCreateInvestigatorValidation() {
	o := s.newOrchestrator()

	_, err := o.CreateInvestigator(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = o.CreateInvestigator(s.ctx, &investigator.CreateInvestigatorInput{Age: -1})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "first_name")
	s.Contains(err.Error(), "age")
}

func (s *OrchestratorTestSuite) TestCreateInvestigatorRollerFailure() {
	o := s.newOrchestrator(1, 2)

	_, err := o.CreateInvestigator(s.ctx, &investigator.CreateInvestigatorInput{FirstName: "Agatha"})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
}

func (s *OrchestratorTestSuite) TestSetCharacteristicsReplacesValues() {
	o := s.newOrchestrator(fullSheet...)

	inv := &entities.Investigator{ID: "inv_9", FirstName: "Agatha"}
	inv.SetCharacteristic(entities.Strength, 85)

	out, err := o.SetCharacteristics(s.ctx, &investigator.SetCharacteristicsInput{Investigator: inv})
	s.Require().NoError(err)
	s.Same(inv, out.Investigator)

	str, err := inv.Characteristic(entities.Strength)
	s.Require().NoError(err)
	s.Equal(30, str.Base())
	s.Equal(15, str.Half())
	s.Equal(6, str.Fifth())
}

func (s *OrchestratorTestSuite) TestSetCharacteristicsLeavesInvestigatorOnFailure() {
	o := s.newOrchestrator()

	inv := &entities.Investigator{ID: "inv_9"}
	inv.SetCharacteristic(entities.Strength, 85)

	_, err := o.SetCharacteristics(s.ctx, &investigator.SetCharacteristicsInput{Investigator: inv})
	s.Require().Error(err)

	str, err := inv.Characteristic(entities.Strength)
	s.Require().NoError(err)
	s.Equal(85, str.Base())

	_, err = o.SetCharacteristics(s.ctx, &investigator.SetCharacteristicsInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestCheckWithValue() {
	o := s.newOrchestrator()

	inv := testutils.CreateTestInvestigator("inv_1")

	testCases := []struct {
		name       string
		difficulty entities.Difficulty
		value      int
		threshold  int
		success    bool
	}{
		{name: "regular at threshold", difficulty: entities.DifficultyRegular, value: 50, threshold: 50, success: true},
		{name: "regular above", difficulty: entities.DifficultyRegular, value: 51, threshold: 50, success: false},
		{name: "hard at threshold", difficulty: entities.DifficultyHard, value: 25, threshold: 25, success: true},
		{name: "hard above", difficulty: entities.DifficultyHard, value: 26, threshold: 25, success: false},
		{name: "extreme at threshold", difficulty: entities.DifficultyExtreme, value: 10, threshold: 10, success: true},
		{name: "extreme above", difficulty: entities.DifficultyExtreme, value: 11, threshold: 10, success: false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			value := tc.value
			out, err := o.Check(s.ctx, &investigator.CheckInput{
				Investigator: inv,
				Code:         entities.Strength,
				Difficulty:   tc.difficulty,
				Value:        &value,
			})
			s.Require().NoError(err)
			s.Equal(tc.threshold, out.Result.Threshold)
			s.Equal(tc.success, out.Result.Success)
			s.False(out.Result.Rolled)
		})
	}
}

func (s *OrchestratorTestSuite) TestCheckRollsWhenValueMissing() {
	o := s.newOrchestrator(7)

	inv := &entities.Investigator{ID: "inv_1"}
	inv.SetCharacteristic(entities.Power, 60)

	out, err := o.Check(s.ctx, &investigator.CheckInput{
		Investigator: inv,
		Code:         entities.Power,
		Difficulty:   entities.DifficultyExtreme,
	})
	s.Require().NoError(err)
	s.True(out.Result.Rolled)
	s.Equal(7, out.Result.Value)
	s.Equal(12, out.Result.Threshold)
	s.True(out.Result.Success)
}

func (s *OrchestratorTestSuite) TestCheckFailures() {
	o := s.newOrchestrator()

	inv := testutils.CreateTestInvestigatorAtStage("inv_1", testutils.StagePartial)

	_, err := o.Check(s.ctx, &investigator.CheckInput{Investigator: inv, Code: entities.Dexterity})
	s.True(errors.IsFailedPrecondition(err))

	_, err = o.Check(s.ctx, &investigator.CheckInput{Investigator: inv, Code: entities.Power})
	s.True(errors.IsNotFound(err))

	_, err = o.Check(s.ctx, &investigator.CheckInput{Code: entities.Strength})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestRules() {
	rules := investigator.Rules()
	s.Len(rules, len(entities.AllCharacteristics))

	seen := make(map[entities.CharacteristicCode]bool)
	for _, r := range rules {
		seen[r.Code] = true
	}
	for _, code := range entities.AllCharacteristics {
		s.True(seen[code], code)
	}
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
