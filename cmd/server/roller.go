package main

import (
	"log/slog"

	rpgdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/coc-api/internal/config"
	"github.com/KirkDiggler/coc-api/internal/dice"
)

// newRoller returns a seeded roller when cfg is deterministic, otherwise the
// toolkit's crypto roller
func newRoller(logger *slog.Logger, cfg *config.Config) dice.Roller {
	if !cfg.Deterministic() {
		logger.Debug("Using crypto roller")
		return rpgdice.DefaultRoller
	}
	logger.Info("Using seeded roller", "seed", cfg.Seed)
	return dice.NewSeededRoller(cfg.Seed)
}
