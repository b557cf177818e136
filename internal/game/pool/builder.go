package pool

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/sheetroll/internal/game/character"
	"github.com/cory-johannsen/sheetroll/internal/game/combat"
	"github.com/cory-johannsen/sheetroll/internal/game/dice"
	"github.com/cory-johannsen/sheetroll/internal/game/skill"
	"github.com/cory-johannsen/sheetroll/internal/game/stats"
)

// Builder turns a Request and a character Sheet into a Calculation.
// It is pure: identical inputs always yield identical calculations.
type Builder struct {
	formulas *combat.FormulaTable
	names    skill.NameLookup
}

// NewBuilder returns a Builder resolving combat rolls through formulas and
// skill display names through names.
//
// Precondition: formulas must be non-nil; names may be nil.
func NewBuilder(formulas *combat.FormulaTable, names skill.NameLookup) *Builder {
	return &Builder{formulas: formulas, names: names}
}

// Build dispatches on req.Mode.
//
// Postcondition: Returns a Calculation whose pool fits dice.MaxCount, or the
// validation/formula error.
func (b *Builder) Build(sheet character.Sheet, req Request) (Calculation, error) {
	if err := req.Validate(); err != nil {
		return Calculation{}, err
	}
	var calc Calculation
	if req.Mode == ModeCombat {
		var err error
		if calc, err = b.combat(sheet, req); err != nil {
			return Calculation{}, err
		}
	} else {
		calc = b.simple(sheet, req)
	}
	if calc.Pool.TotalDice > dice.MaxCount {
		return Calculation{}, fmt.Errorf("%w: %d dice, at most %d", ErrPoolTooLarge, calc.Pool.TotalDice, dice.MaxCount)
	}
	return calc, nil
}

// Simple builds a pool over one or more stats.
//
// Precondition: req.Stats is non-empty.
// Postcondition: TotalDice == Σstat dice + Σskill dice + BonusDice and
// TotalModifier == Σstat modifiers + BonusModifier.
func (b *Builder) Simple(sheet character.Sheet, req Request) (Calculation, error) {
	req.Mode = ModeSimple
	return b.Build(sheet, req)
}

// Combat builds a pool over the primary and secondary stats of the formula for
// req.AttackType and req.Defense.
//
// Postcondition: exactly two stat contributions; returns an error wrapping
// combat.ErrFormulaNotFound when no formula matches.
func (b *Builder) Combat(sheet character.Sheet, req Request) (Calculation, error) {
	req.Mode = ModeCombat
	return b.Build(sheet, req)
}

func (b *Builder) simple(sheet character.Sheet, req Request) Calculation {
	var contribs []stats.Contribution
	seen := make(map[stats.ID]bool, len(req.Stats))
	statDice, statMod := 0, 0
	for _, id := range req.Stats {
		if seen[id] {
			continue
		}
		seen[id] = true
		c := stats.Contribute(id, sheet.Stat(id))
		contribs = append(contribs, c)
		statDice += c.Dice
		statMod += c.Modifier
	}
	skills, skillDice := b.skills(sheet, req.Skills)

	calc := Calculation{
		Context:     Context{Kind: KindSimple},
		CharacterID: sheet.ID,
		Stats:       contribs,
		Skills:      skills,
		Pool:        NewPool(statDice, 0, skillDice, req.BonusDice, statMod+req.BonusModifier),
	}
	calc.Description = describe("", calc)
	return calc
}

func (b *Builder) combat(sheet character.Sheet, req Request) (Calculation, error) {
	f, err := b.formulas.Lookup(req.AttackType, req.Defense)
	if err != nil {
		return Calculation{}, fmt.Errorf("building %s pool: %w", req.AttackType, err)
	}
	primary := stats.Contribute(f.Primary, sheet.Stat(f.Primary))
	secondary := stats.Contribute(f.Secondary, sheet.Stat(f.Secondary))
	skills, skillDice := b.skills(sheet, req.Skills)

	kind := KindAttack
	if req.Defense {
		kind = KindDefense
	}
	calc := Calculation{
		Context:     Context{Kind: kind, AttackType: f.AttackType},
		CharacterID: sheet.ID,
		Stats:       []stats.Contribution{primary, secondary},
		Skills:      skills,
		Pool:        NewPool(primary.Dice, secondary.Dice, skillDice, req.BonusDice,
			primary.Modifier+secondary.Modifier+req.BonusModifier),
	}
	calc.Description = describe(f.Label, calc)
	return calc, nil
}

func (b *Builder) skills(sheet character.Sheet, ids []string) ([]skill.Contribution, int) {
	var out []skill.Contribution
	seen := make(map[string]bool, len(ids))
	total := 0
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		lvl, _ := sheet.SkillLevel(id)
		c := skill.Contribute(id, lvl, b.names)
		out = append(out, c)
		total += c.Dice
	}
	return out, total
}

// describe renders e.g. "Physical Attack: Speed + Might + Swords 3 + 1 bonus die (6d20+5)".
func describe(label string, c Calculation) string {
	parts := make([]string, 0, len(c.Stats)+len(c.Skills)+1)
	for _, s := range c.Stats {
		parts = append(parts, s.Name)
	}
	for _, s := range c.Skills {
		parts = append(parts, fmt.Sprintf("%s %d", s.Name, s.Level))
	}
	switch {
	case c.Pool.BonusDice == 1:
		parts = append(parts, "1 bonus die")
	case c.Pool.BonusDice > 1:
		parts = append(parts, fmt.Sprintf("%d bonus dice", c.Pool.BonusDice))
	}
	desc := strings.Join(parts, " + ") + " (" + c.Pool.Spec().String() + ")"
	if label != "" {
		desc = label + ": " + desc
	}
	return desc
}
