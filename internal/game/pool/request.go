package pool

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/sheetroll/internal/game/combat"
	"github.com/cory-johannsen/sheetroll/internal/game/dice"
	"github.com/cory-johannsen/sheetroll/internal/game/stats"
)

var (
	// ErrNoStatsSelected is returned for a simple roll with no stats.
	ErrNoStatsSelected = errors.New("no stat selected")
	// ErrNoAttackType is returned for a combat roll with no attack type.
	ErrNoAttackType = errors.New("no attack type selected")
	// ErrUnknownStat is returned when a selected stat is not one of the fixed stats.
	ErrUnknownStat = errors.New("unknown stat")
	// ErrNegativeBonusDice is returned when bonus dice are below zero.
	ErrNegativeBonusDice = errors.New("bonus dice must not be negative")
	// ErrPoolTooLarge is returned when a request or built pool exceeds dice.MaxCount.
	ErrPoolTooLarge = errors.New("dice pool too large")
)

// Mode selects how the stat contributions are chosen.
type Mode int

const (
	// ModeSimple rolls over Request.Stats.
	ModeSimple Mode = iota
	// ModeCombat rolls over the formula for Request.AttackType and Request.Defense.
	ModeCombat
)

// Request is the caller's roll selection.
type Request struct {
	Mode Mode
	// Stats is used in ModeSimple; duplicates are ignored.
	Stats []stats.ID
	// AttackType and Defense are used in ModeCombat.
	AttackType combat.AttackType
	Defense    bool
	// Skills is the selected subset of skill ids; duplicates are ignored.
	Skills        []string
	BonusDice     int
	BonusModifier int
}

// Validate reports whether the selection may be calculated.
// Callers gate the roll action on it.
//
// Postcondition: Returns nil or an error wrapping one of the package sentinels.
func (r Request) Validate() error {
	if r.BonusDice < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeBonusDice, r.BonusDice)
	}
	if r.BonusDice > dice.MaxCount {
		return fmt.Errorf("%w: %d bonus dice, at most %d", ErrPoolTooLarge, r.BonusDice, dice.MaxCount)
	}
	switch r.Mode {
	case ModeSimple:
		if len(r.Stats) == 0 {
			return ErrNoStatsSelected
		}
		for _, id := range r.Stats {
			if !id.Valid() {
				return fmt.Errorf("%w: %q", ErrUnknownStat, id)
			}
		}
	case ModeCombat:
		if r.AttackType == "" {
			return ErrNoAttackType
		}
	default:
		return fmt.Errorf("unknown roll mode %d", r.Mode)
	}
	return nil
}

// Valid reports whether Validate returns nil.
func (r Request) Valid() bool {
	return r.Validate() == nil
}
