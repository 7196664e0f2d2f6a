// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/coc-api/internal/errors"
	dicesession "github.com/KirkDiggler/coc-api/internal/repositories/dice_session"
	dicesessionmock "github.com/KirkDiggler/coc-api/internal/repositories/dice_session/mock"
)

// ExpectNewSession sets up a missing session that RollDice then creates.
// The created session echoes the create input and expires after its TTL.
func ExpectNewSession(
	ctx context.Context,
	repo *dicesessionmock.MockRepository,
	entityID, rollContext string,
	now time.Time,
) *gomock.Call {
	repo.EXPECT().
		Get(ctx, dicesession.GetInput{EntityID: entityID, Context: rollContext}).
		Return(nil, errors.NotFound("dice session not found"))

	return repo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input dicesession.CreateInput) (*dicesession.CreateOutput, error) {
			return &dicesession.CreateOutput{
				Session: &dicesession.DiceSession{
					EntityID:  input.EntityID,
					Context:   input.Context,
					Rolls:     input.Rolls,
					CreatedAt: now,
					ExpiresAt: now.Add(input.TTL),
				},
			}, nil
		})
}

// ExpectExistingSession sets up a live session that RollDice appends to
func ExpectExistingSession(
	ctx context.Context,
	repo *dicesessionmock.MockRepository,
	session *dicesession.DiceSession,
) *gomock.Call {
	repo.EXPECT().
		Get(ctx, dicesession.GetInput{EntityID: session.EntityID, Context: session.Context}).
		Return(&dicesession.GetOutput{Session: session}, nil)

	return repo.EXPECT().
		Update(ctx, session).
		Return(nil)
}
