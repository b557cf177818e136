// Package character defines the read contract the combat engine consumes for
// a character, and the adapter that loads it from sheet files.
package character

import "github.com/cory-johannsen/sheetroll/internal/game/stats"

// Sheet is the resolved combat view of a character.
// The engine reads it and never mutates it.
type Sheet struct {
	ID   string
	Name string
	// Stats holds the current value of each of the ten fixed stats.
	// Missing stats read as zero.
	Stats map[stats.ID]int
	// Skills maps skill id to level (0–10).
	Skills map[string]int
	// InitiativeModifier is added to the initiative d20.
	InitiativeModifier int
	// IsPlayer marks player characters in the initiative list.
	IsPlayer bool
}

// Stat returns the value of id; missing stats read as zero.
func (s Sheet) Stat(id stats.ID) int {
	return s.Stats[id]
}

// SkillLevel returns the level of skill id and whether the character has it.
func (s Sheet) SkillLevel(id string) (int, bool) {
	lvl, ok := s.Skills[id]
	return lvl, ok
}
