// Package dicesession stores dice roll history grouped by entity and context
package dicesession

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=dicesessionmock github.com/KirkDiggler/coc-api/internal/repositories/dice_session Repository

// DiceSession is the roll history of one entity within one context
type DiceSession struct {
	// Entity that owns these rolls (e.g. "inv_123")
	EntityID string

	// Context groups related rolls (e.g. "characteristics", "sanity")
	Context string

	Rolls []DiceRoll

	CreatedAt time.Time
	ExpiresAt time.Time
}

// DiceRoll is one evaluated dice expression
type DiceRoll struct {
	RollID string

	// Notation that was rolled (e.g. "3D6", "2D6+6")
	Notation string

	// Individual die values in term order
	Dice []int32

	// DiceTotal + Modifier
	Total int32

	Description string

	// Signed sum of the dice
	DiceTotal int32

	// Signed sum of the constant terms
	Modifier int32
}

// CreateInput contains parameters for creating a dice session
type CreateInput struct {
	EntityID string
	Context  string
	Rolls    []DiceRoll
	TTL      time.Duration
}

// CreateOutput contains the created session
type CreateOutput struct {
	Session *DiceSession
}

// GetInput identifies a session
type GetInput struct {
	EntityID string
	Context  string
}

// GetOutput contains the session found
type GetOutput struct {
	Session *DiceSession
}

// DeleteInput identifies a session to delete
type DeleteInput struct {
	EntityID string
	Context  string
}

// DeleteOutput reports how many rolls were removed
type DeleteOutput struct {
	RollsDeleted int32
}

// Repository defines dice session storage
type Repository interface {
	// Create stores a new session, replacing any previous one for the same key
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get returns a live session or a NotFound error
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes a session
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// Update replaces the rolls of an existing live session
	Update(ctx context.Context, session *DiceSession) error
}
