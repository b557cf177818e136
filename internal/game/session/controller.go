// Package session owns the per-user calculator and encounter state: the last
// roll preview, the roll history and the initiative tracker.
package session

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/sheetroll/internal/game/character"
	"github.com/cory-johannsen/sheetroll/internal/game/combat"
	"github.com/cory-johannsen/sheetroll/internal/game/dice"
	"github.com/cory-johannsen/sheetroll/internal/game/pool"
)

// ErrNoCalculation is returned by Roll before any successful Preview.
var ErrNoCalculation = errors.New("no roll calculated")

// Config holds the dependencies for a Controller.
type Config struct {
	Builder *pool.Builder
	Roller  *dice.Roller
	Tracker *combat.Tracker
	Logger  *zap.Logger
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	var missing []string
	if c.Builder == nil {
		missing = append(missing, "Builder")
	}
	if c.Roller == nil {
		missing = append(missing, "Roller")
	}
	if c.Tracker == nil {
		missing = append(missing, "Tracker")
	}
	if c.Logger == nil {
		missing = append(missing, "Logger")
	}
	if len(missing) > 0 {
		return fmt.Errorf("session config missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Controller is the single owner of calculator and combat state.
// Callers re-read state after each transition. It is not safe for concurrent use.
type Controller struct {
	builder *pool.Builder
	roller  *dice.Roller
	tracker *combat.Tracker
	logger  *zap.Logger

	last       *pool.Calculation
	lastResult *dice.Result
}

// NewController creates a Controller from cfg.
//
// Postcondition: Returns a Controller with no calculation, or a config error.
func NewController(cfg *Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Controller{
		builder: cfg.Builder,
		roller:  cfg.Roller,
		tracker: cfg.Tracker,
		logger:  cfg.Logger,
	}, nil
}

// Preview builds the calculation for req without rolling and makes it the
// current calculation. A failed build clears the current calculation.
//
// Postcondition: LastCalculation() returns the new calculation on success.
func (c *Controller) Preview(sheet character.Sheet, req pool.Request) (pool.Calculation, error) {
	calc, err := c.builder.Build(sheet, req)
	if err != nil {
		c.last = nil
		return pool.Calculation{}, err
	}
	c.last = &calc
	c.logger.Debug("roll preview",
		zap.String("character", calc.CharacterID),
		zap.String("context", calc.Context.Kind.String()),
		zap.String("description", calc.Description),
	)
	return calc, nil
}

// Roll rolls the current calculation's pool.
//
// Postcondition: Returns ErrNoCalculation when no preview is held; otherwise the
// result is the newest History entry.
func (c *Controller) Roll() (dice.Result, error) {
	if c.last == nil {
		return dice.Result{}, ErrNoCalculation
	}
	result := c.roller.Roll(c.last.Pool.Spec())
	c.lastResult = &result
	return result, nil
}

// RollRequest previews req and rolls it in a single call.
func (c *Controller) RollRequest(sheet character.Sheet, req pool.Request) (pool.Calculation, dice.Result, error) {
	calc, err := c.Preview(sheet, req)
	if err != nil {
		return pool.Calculation{}, dice.Result{}, err
	}
	result, err := c.Roll()
	return calc, result, err
}

// LastCalculation returns the current calculation, if any.
func (c *Controller) LastCalculation() (pool.Calculation, bool) {
	if c.last == nil {
		return pool.Calculation{}, false
	}
	return *c.last, true
}

// LastResult returns the most recent roll result, if any.
func (c *Controller) LastResult() (dice.Result, bool) {
	if c.lastResult == nil {
		return dice.Result{}, false
	}
	return *c.lastResult, true
}

// ClearCalculation discards the current calculation and result.
func (c *Controller) ClearCalculation() {
	c.last = nil
	c.lastResult = nil
}

// History returns the retained roll results, newest first.
func (c *Controller) History() []dice.Result {
	return c.roller.History().List()
}

// RollExpr rolls a free-form dice expression such as "2d20+3" outside any
// calculation. The result is recorded in History.
func (c *Controller) RollExpr(expr string) (dice.Result, error) {
	return c.roller.RollExpr(expr)
}
