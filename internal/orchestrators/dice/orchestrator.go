// Package dice implements the dice orchestrator: it rolls dice expressions
// and records the results in per-entity roll sessions
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/coc-api/internal/orchestrators/dice Service

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/coc-api/internal/dice"
	"github.com/KirkDiggler/coc-api/internal/errors"
	"github.com/KirkDiggler/coc-api/internal/pkg/idgen"
	dicesession "github.com/KirkDiggler/coc-api/internal/repositories/dice_session"
)

// DefaultSessionTTL applies when RollDiceInput.TTL is zero
const DefaultSessionTTL = 15 * time.Minute

// Service defines the dice operations
type Service interface {
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)
	GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error)
	ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	DiceSessionRepo dicesession.Repository
	IDGenerator     idgen.Generator
	Roller          dice.Roller

	// SessionTTL overrides DefaultSessionTTL
	SessionTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.DiceSessionRepo == nil {
		vb.RequiredField("DiceSessionRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.SessionTTL < 0 {
		vb.Field("SessionTTL", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	diceSessionRepo dicesession.Repository
	idGen           idgen.Generator
	roller          dice.Roller
	sessionTTL      time.Duration
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.SessionTTL
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}

	return &orchestrator{
		diceSessionRepo: cfg.DiceSessionRepo,
		idGen:           cfg.IDGenerator,
		roller:          cfg.Roller,
		sessionTTL:      ttl,
	}, nil
}

func validateSessionKey(entityID, rollContext string) error {
	if entityID == "" {
		return errors.InvalidArgument("entity ID is required")
	}
	if rollContext == "" {
		return errors.InvalidArgument("context is required")
	}
	return nil
}

// RollDice rolls the notation and appends the result to the entity's session
// for the context, creating the session when there is none
func (o *orchestrator) RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSessionKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}
	if input.Notation == "" {
		return nil, errors.InvalidArgument("dice notation is required")
	}

	expr, err := dice.Parse(input.Notation, dice.WithRoller(o.roller))
	if err != nil {
		return nil, err
	}

	result, err := expr.Roll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll dice")
	}

	roll := toDiceRoll(o.idGen.Generate(), input.Description, result)

	getOutput, err := o.diceSessionRepo.Get(ctx, dicesession.GetInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})

	var session *dicesession.DiceSession
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, "failed to check for existing session")
		}

		ttl := input.TTL
		if ttl == 0 {
			ttl = o.sessionTTL
		}

		createOutput, err := o.diceSessionRepo.Create(ctx, dicesession.CreateInput{
			EntityID: input.EntityID,
			Context:  input.Context,
			Rolls:    []dicesession.DiceRoll{*roll},
			TTL:      ttl,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create dice session")
		}
		session = createOutput.Session
	} else {
		session = getOutput.Session
		session.Rolls = append(session.Rolls, *roll)

		if err := o.diceSessionRepo.Update(ctx, session); err != nil {
			return nil, errors.Wrap(err, "failed to update dice session")
		}
	}

	slog.InfoContext(ctx, "Dice rolled",
		"entity_id", input.EntityID,
		"context", input.Context,
		"roll", result.String(),
		"roll_id", roll.RollID,
	)

	return &RollDiceOutput{
		Roll:    roll,
		Session: session,
	}, nil
}

// GetRollSession retrieves an existing dice roll session
func (o *orchestrator) GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSessionKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	getOutput, err := o.diceSessionRepo.Get(ctx, dicesession.GetInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get dice session")
	}

	return &GetRollSessionOutput{
		Session: getOutput.Session,
	}, nil
}

// ClearRollSession removes a dice roll session
func (o *orchestrator) ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSessionKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	deleteOutput, err := o.diceSessionRepo.Delete(ctx, dicesession.DeleteInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete dice session")
	}

	slog.InfoContext(ctx, "Dice session cleared",
		"entity_id", input.EntityID,
		"context", input.Context,
		"rolls_deleted", deleteOutput.RollsDeleted,
	)

	return &ClearRollSessionOutput{
		RollsDeleted: deleteOutput.RollsDeleted,
	}, nil
}

// toDiceRoll narrows to int32; Parse keeps every total within dice.MaxTotal
func toDiceRoll(id, description string, result *dice.Result) *dicesession.DiceRoll {
	values := result.Dice()
	diceValues := make([]int32, len(values))
	for i, v := range values {
		diceValues[i] = int32(v)
	}

	return &dicesession.DiceRoll{
		RollID:      id,
		Notation:    result.Notation,
		Dice:        diceValues,
		Total:       int32(result.Total),
		Description: description,
		DiceTotal:   int32(result.DiceTotal),
		Modifier:    int32(result.Modifier),
	}
}
