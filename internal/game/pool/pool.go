// Package pool assembles deterministic dice pools from a character's stats,
// selected skills and free-form bonuses. It never rolls.
package pool

import (
	"github.com/cory-johannsen/sheetroll/internal/game/combat"
	"github.com/cory-johannsen/sheetroll/internal/game/dice"
	"github.com/cory-johannsen/sheetroll/internal/game/skill"
	"github.com/cory-johannsen/sheetroll/internal/game/stats"
)

// Pool is the aggregated die count and modifier for one action.
//
// Invariant: TotalDice == BaseDice + SecondaryDice + SkillDice + BonusDice;
// TotalModifier is the sum of the stat modifiers and the bonus modifier.
type Pool struct {
	BaseDice      int
	SecondaryDice int
	SkillDice     int
	BonusDice     int
	TotalDice     int
	TotalModifier int
}

// NewPool sums the parts into a Pool.
//
// Postcondition: the Pool invariant holds.
func NewPool(base, secondary, skillDice, bonus, modifier int) Pool {
	return Pool{
		BaseDice:      base,
		SecondaryDice: secondary,
		SkillDice:     skillDice,
		BonusDice:     bonus,
		TotalDice:     base + secondary + skillDice + bonus,
		TotalModifier: modifier,
	}
}

// Spec returns the roller's view of the pool.
func (p Pool) Spec() dice.Spec {
	return dice.Spec{Count: p.TotalDice, Modifier: p.TotalModifier}
}

// Kind distinguishes the three roll contexts.
type Kind int

const (
	// KindSimple is a roll over an arbitrary set of stats.
	KindSimple Kind = iota
	KindAttack
	KindDefense
)

// String returns a human-readable context label.
func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindAttack:
		return "attack"
	case KindDefense:
		return "defense"
	default:
		return "unknown"
	}
}

// Context describes what a calculation is for.
type Context struct {
	Kind Kind
	// AttackType is set for KindAttack and KindDefense only.
	AttackType combat.AttackType
}

// Calculation is an immutable preview of a roll.
type Calculation struct {
	Context     Context
	CharacterID string
	Stats       []stats.Contribution
	Skills      []skill.Contribution
	Pool        Pool
	Description string
}
