// Package investigator generates investigators and resolves their
// characteristic checks
package investigator

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/coc-api/internal/dice"
	"github.com/KirkDiggler/coc-api/internal/entities"
	"github.com/KirkDiggler/coc-api/internal/errors"
	"github.com/KirkDiggler/coc-api/internal/pkg/idgen"
)

// Service defines the investigator operations
type Service interface {
	CreateInvestigator(ctx context.Context, input *CreateInvestigatorInput) (*CreateInvestigatorOutput, error)
	SetCharacteristics(ctx context.Context, input *SetCharacteristicsInput) (*SetCharacteristicsOutput, error)
	Check(ctx context.Context, input *CheckInput) (*CheckOutput, error)
}

// Config holds the dependencies for the investigator orchestrator
type Config struct {
	IDGenerator idgen.Generator
	Roller      dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

type compiledRule struct {
	Rule
	expr *dice.Expression
}

// Orchestrator implements Service
type Orchestrator struct {
	idGen  idgen.Generator
	roller dice.Roller
	rules  []compiledRule
}

var _ Service = (*Orchestrator)(nil)

// New creates an investigator orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	compiled := make([]compiledRule, len(rules))
	for i, r := range rules {
		compiled[i] = compiledRule{
			Rule: r,
			expr: dice.MustParse(r.Notation, dice.WithRoller(cfg.Roller)),
		}
	}

	return &Orchestrator{
		idGen:  cfg.IDGenerator,
		roller: cfg.Roller,
		rules:  compiled,
	}, nil
}

// CreateInvestigator builds a new investigator and generates every characteristic
func (o *Orchestrator) CreateInvestigator(ctx context.Context, input *CreateInvestigatorInput) (*CreateInvestigatorOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("first_name", input.FirstName, vb)
	if input.Gender != 0 && !input.Gender.Valid() {
		vb.Fieldf("gender", "unknown gender %d", int(input.Gender))
	}
	if input.Age < 0 {
		vb.Field("age", "must not be negative")
	}
	o.validateOverrides(input.Overrides, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	inv := &entities.Investigator{
		ID:         o.idGen.Generate(),
		FirstName:  input.FirstName,
		Surname:    input.Surname,
		Gender:     input.Gender,
		Occupation: input.Occupation,
		Birthplace: input.Birthplace,
		Residence:  input.Residence,
		Age:        input.Age,
		Era:        input.Era,
	}

	rolls, err := o.generate(inv, input.Overrides)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Investigator created",
		"investigator_id", inv.ID,
		"name", inv.FullName(),
		"overrides", len(input.Overrides),
	)

	return &CreateInvestigatorOutput{
		Investigator: inv,
		Rolls:        rolls,
	}, nil
}

// SetCharacteristics re-generates every characteristic of an existing investigator
func (o *Orchestrator) SetCharacteristics(ctx context.Context, input *SetCharacteristicsInput) (*SetCharacteristicsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Investigator == nil {
		return nil, errors.InvalidArgument("investigator is required")
	}

	vb := errors.NewValidationBuilder()
	o.validateOverrides(input.Overrides, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	rolls, err := o.generate(input.Investigator, input.Overrides)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Characteristics set",
		"investigator_id", input.Investigator.ID,
		"overrides", len(input.Overrides),
	)

	return &SetCharacteristicsOutput{
		Investigator: input.Investigator,
		Rolls:        rolls,
	}, nil
}

// Check resolves a characteristic check, drawing a D100 when no value is given
func (o *Orchestrator) Check(ctx context.Context, input *CheckInput) (*CheckOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Investigator == nil {
		return nil, errors.InvalidArgument("investigator is required")
	}

	characteristic, err := input.Investigator.Characteristic(input.Code)
	if err != nil {
		return nil, err
	}

	var result *entities.CheckResult
	if input.Value != nil {
		result, err = characteristic.Resolve(input.Difficulty, *input.Value)
	} else {
		result, err = characteristic.RollCheck(input.Difficulty, o.roller)
	}
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "Characteristic check",
		"investigator_id", input.Investigator.ID,
		"characteristic", string(result.Code),
		"difficulty", result.Difficulty.String(),
		"threshold", result.Threshold,
		"value", result.Value,
		"rolled", result.Rolled,
		"success", result.Success,
	)

	return &CheckOutput{Result: result}, nil
}

// validateOverrides records unknown codes and values the rule's dice could
// never produce
func (o *Orchestrator) validateOverrides(overrides map[entities.CharacteristicCode]int, vb *errors.ValidationBuilder) {
	for code, value := range overrides {
		rule, ok := o.rule(code)
		if !ok {
			vb.Field(string(code), "unknown characteristic")
			continue
		}
		errors.ValidateRange(string(code), value, rule.expr.Min(), rule.expr.Max(), vb)
	}
}

func (o *Orchestrator) rule(code entities.CharacteristicCode) (compiledRule, bool) {
	for _, r := range o.rules {
		if r.Code == code {
			return r, true
		}
	}
	return compiledRule{}, false
}

func (o *Orchestrator) generate(inv *entities.Investigator, overrides map[entities.CharacteristicCode]int) ([]*CharacteristicRoll, error) {
	rolls := make([]*CharacteristicRoll, 0, len(o.rules))
	for _, r := range o.rules {
		roll := &CharacteristicRoll{Code: r.Code, Notation: r.Notation}

		if value, ok := overrides[r.Code]; ok {
			roll.Raw = value
			roll.Overridden = true
		} else {
			result, err := r.expr.Roll()
			if err != nil {
				return nil, errors.Wrapf(err, "failed to roll %s", r.Code)
			}
			roll.Raw = result.Total
			roll.Result = result
		}

		roll.Base = roll.Raw * CharacteristicMultiplier
		rolls = append(rolls, roll)
	}

	// only touch the investigator once every roll succeeded
	for _, roll := range rolls {
		inv.SetCharacteristic(roll.Code, roll.Base)
	}

	return rolls, nil
}
