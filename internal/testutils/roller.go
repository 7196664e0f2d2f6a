package testutils

import (
	"fmt"
	"sync"

	rpgdice "github.com/KirkDiggler/rpg-toolkit/dice"
)

// SequenceRoller returns preset values in order. It fails when the sequence
// runs out or a value does not fit the requested die, so a test notices
// when it rolls more (or bigger) dice than it planned for.
type SequenceRoller struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewSequenceRoller creates a roller that yields values in order
func NewSequenceRoller(values ...int) *SequenceRoller {
	return &SequenceRoller{values: values}
}

var _ rpgdice.Roller = (*SequenceRoller)(nil)

// Roll returns the next preset value
func (r *SequenceRoller) Roll(size int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.take(size)
}

// RollN returns the next count preset values
func (r *SequenceRoller) RollN(count, size int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.take(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Remaining returns how many preset values have not been used
func (r *SequenceRoller) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.values) - r.next
}

func (r *SequenceRoller) take(size int) (int, error) {
	if r.next >= len(r.values) {
		return 0, fmt.Errorf("sequence roller exhausted after %d values", len(r.values))
	}
	v := r.values[r.next]
	if v < 1 || v > size {
		return 0, fmt.Errorf("sequence value %d does not fit a d%d", v, size)
	}
	r.next++
	return v, nil
}
