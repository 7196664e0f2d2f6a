package idgen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/coc-api/internal/pkg/idgen"
)

func TestUUIDGenerator(t *testing.T) {
	g := idgen.NewUUID("roll")
	a, b := g.Generate(), g.Generate()

	assert.True(t, strings.HasPrefix(a, "roll_"))
	assert.Len(t, a, len("roll_")+36)
	assert.NotEqual(t, a, b)

	assert.Len(t, idgen.NewUUID("").Generate(), 36)
}

func TestSequentialGenerator(t *testing.T) {
	g := idgen.NewSequential("inv")
	assert.Equal(t, "inv_1", g.Generate())
	assert.Equal(t, "inv_2", g.Generate())

	assert.Equal(t, "1", idgen.NewSequential("").Generate())
}
