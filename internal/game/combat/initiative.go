package combat

import "github.com/cory-johannsen/sheetroll/internal/game/dice"

// RollInitiative rolls a d20 and adds modifier.
// Formula: d20 + initiative modifier.
//
// Precondition: src must be non-nil.
// Postcondition: Returns a value in [1+modifier, 20+modifier].
func RollInitiative(modifier int, src dice.Source) int {
	return src.Intn(dice.Sides) + 1 + modifier
}

// sortByInitiativeDesc sorts entries in place, highest initiative first.
// Entries with equal initiative keep their relative order.
func sortByInitiativeDesc(entries []Entry) {
	n := len(entries)
	for i := 1; i < n; i++ {
		for j := i; j > 0 && entries[j].Initiative > entries[j-1].Initiative; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
}
