package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	rpgdice "github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/coc-api/internal/config"
	"github.com/KirkDiggler/coc-api/internal/dice"
)

func TestInvestigatorCommandWithOverrides(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"investigator",
		"--first-name", "Agatha",
		"--surname", "Crane",
		"--gender", "female",
		"--seed", "42",
		"--set", "STR=10,CON=11,SIZ=12,DEX=13,APP=14,INT=15,POW=16,EDU=17",
		"--check", "str",
		"--difficulty", "hard",
	})

	require.NoError(t, rootCmd.Execute())

	text := out.String()
	assert.Contains(t, text, "Agatha Crane (inv_")
	assert.Contains(t, text, "A 1920s woman")
	assert.Contains(t, text, "3D6 set to 10")
	assert.Contains(t, text, "2D6+6 set to 17")
	assert.Contains(t, text, "seed: 42")
	assert.Contains(t, text, "hard STR check")
	assert.Contains(t, text, "against 25")
}

func TestInvestigatorCommandInstallsConfiguredLogger(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })
	t.Setenv("COC_API_LOG_LEVEL", "WARN")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"investigator",
		"--first-name", "Carl",
		"--seed", "7",
		"--set", "STR=10,CON=11,SIZ=12,DEX=13,APP=14,INT=15,POW=16,EDU=17",
		"--check", "pow",
		"--difficulty", "regular",
	})

	require.NoError(t, rootCmd.Execute())

	ctx := context.Background()
	assert.False(t, slog.Default().Enabled(ctx, slog.LevelInfo))
	assert.True(t, slog.Default().Enabled(ctx, slog.LevelWarn))
	assert.Contains(t, out.String(), "seed: 7")
}

func TestNewRoller(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.Equal(t, rpgdice.DefaultRoller, newRoller(logger, &config.Config{}))

	seeded, ok := newRoller(logger, &config.Config{Seed: 7}).(*dice.SeededRoller)
	require.True(t, ok)

	a, err := seeded.RollN(10, 6)
	require.NoError(t, err)
	b, err := dice.NewSeededRoller(7).RollN(10, 6)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
