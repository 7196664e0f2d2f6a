package dicesession

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/coc-api/internal/errors"
	"github.com/KirkDiggler/coc-api/internal/pkg/clock"
)

const (
	// DefaultTTL applies when CreateInput.TTL is zero
	DefaultTTL = 15 * time.Minute

	errSessionNil    = "session cannot be nil"
	errEntityIDEmpty = "entity ID cannot be empty"
	errContextEmpty  = "context cannot be empty"
	errNotFound      = "dice session not found"
)

// Config holds the dependencies of the in-memory repository
type Config struct {
	Clock clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

type sessionKey struct {
	entityID string
	context  string
}

// InMemoryRepository keeps sessions for the lifetime of the process.
// Expired sessions are treated as absent and pruned lazily.
type InMemoryRepository struct {
	mu    sync.Mutex
	clock clock.Clock
	store map[sessionKey]*DiceSession
}

// NewInMemory creates an in-memory dice session repository
func NewInMemory(cfg *Config) (*InMemoryRepository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &InMemoryRepository{
		clock: cfg.Clock,
		store: make(map[sessionKey]*DiceSession),
	}, nil
}

var _ Repository = (*InMemoryRepository)(nil)

func validateKey(entityID, rollContext string) error {
	if entityID == "" {
		return errors.InvalidArgument(errEntityIDEmpty)
	}
	if rollContext == "" {
		return errors.InvalidArgument(errContextEmpty)
	}
	return nil
}

// Create stores a new session with the given TTL
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	now := r.clock.Now()
	session := &DiceSession{
		EntityID:  input.EntityID,
		Context:   input.Context,
		Rolls:     cloneRolls(input.Rolls),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[sessionKey{input.EntityID, input.Context}] = session

	return &CreateOutput{Session: cloneSession(session)}, nil
}

// Get returns the live session for the key
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	key := sessionKey{input.EntityID, input.Context}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.live(key)
	if !ok {
		return nil, errors.NotFound(errNotFound).
			WithMeta("entity_id", input.EntityID).
			WithMeta("context", input.Context)
	}

	return &GetOutput{Session: cloneSession(session)}, nil
}

// Update replaces the rolls of a live session. CreatedAt and ExpiresAt are kept.
func (r *InMemoryRepository) Update(_ context.Context, session *DiceSession) error {
	if session == nil {
		return errors.InvalidArgument(errSessionNil)
	}
	if err := validateKey(session.EntityID, session.Context); err != nil {
		return err
	}

	key := sessionKey{session.EntityID, session.Context}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.live(key)
	if !ok {
		return errors.NotFound(errNotFound).
			WithMeta("entity_id", session.EntityID).
			WithMeta("context", session.Context)
	}

	existing.Rolls = cloneRolls(session.Rolls)
	return nil
}

// Delete removes a session and reports how many rolls it held
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateKey(input.EntityID, input.Context); err != nil {
		return nil, err
	}

	key := sessionKey{input.EntityID, input.Context}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.live(key)
	if !ok {
		return nil, errors.NotFound(errNotFound).
			WithMeta("entity_id", input.EntityID).
			WithMeta("context", input.Context)
	}

	delete(r.store, key)

	return &DeleteOutput{RollsDeleted: int32(len(session.Rolls))}, nil
}

// live returns an unexpired session, dropping it if it has expired.
// Callers hold r.mu for writing.
func (r *InMemoryRepository) live(key sessionKey) (*DiceSession, bool) {
	session, ok := r.store[key]
	if !ok {
		return nil, false
	}
	if !r.clock.Now().Before(session.ExpiresAt) {
		delete(r.store, key)
		return nil, false
	}
	return session, true
}

func cloneSession(s *DiceSession) *DiceSession {
	out := *s
	out.Rolls = cloneRolls(s.Rolls)
	return &out
}

func cloneRolls(rolls []DiceRoll) []DiceRoll {
	if rolls == nil {
		return nil
	}
	out := make([]DiceRoll, len(rolls))
	for i, roll := range rolls {
		out[i] = roll
		out[i].Dice = append([]int32(nil), roll.Dice...)
	}
	return out
}
