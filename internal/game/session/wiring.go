package session

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/sheetroll/internal/config"
	"github.com/cory-johannsen/sheetroll/internal/game/combat"
	"github.com/cory-johannsen/sheetroll/internal/game/dice"
	"github.com/cory-johannsen/sheetroll/internal/game/pool"
	"github.com/cory-johannsen/sheetroll/internal/game/skill"
)

// NewFromConfig loads the formula table and skill catalogue named in cfg,
// picks the dice source, and assembles a Controller.
//
// Precondition: cfg must have passed Validate; logger must be non-nil.
// Postcondition: Returns a ready Controller or the first loading error.
func NewFromConfig(cfg config.Config, logger *zap.Logger) (*Controller, error) {
	formulas := combat.DefaultFormulas()
	if cfg.Combat.FormulasFile != "" {
		var err error
		formulas, err = combat.LoadFormulas(cfg.Combat.FormulasFile)
		if err != nil {
			return nil, fmt.Errorf("loading formulas: %w", err)
		}
	}

	var names skill.NameLookup
	if cfg.Content.SkillsFile != "" {
		reg, err := skill.LoadRegistry(cfg.Content.SkillsFile)
		if err != nil {
			return nil, fmt.Errorf("loading skills: %w", err)
		}
		names = reg
	}

	tracking, err := combat.ParseTurnTracking(cfg.Combat.TurnTracking)
	if err != nil {
		return nil, err
	}

	src := dice.NewCryptoSource()
	if cfg.Dice.Seed != 0 {
		src = dice.NewSeededSource(cfg.Dice.Seed)
	}

	logger.Debug("session configured",
		zap.Int("formulas", formulas.Len()),
		zap.Bool("skill_catalogue", names != nil),
		zap.String("turn_tracking", tracking.String()),
		zap.Bool("seeded", cfg.Dice.Seed != 0),
	)

	return NewController(&Config{
		Builder: pool.NewBuilder(formulas, names),
		Roller:  dice.NewLoggedRoller(src, logger, cfg.Dice.HistorySize),
		Tracker: combat.NewTracker(tracking),
		Logger:  logger,
	})
}
