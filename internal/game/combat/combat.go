// Package combat holds the combat formula table and the initiative tracker
// for a single encounter.
package combat

// Entry is one combatant in the initiative order.
type Entry struct {
	ID         string
	Name       string
	Initiative int
	IsPlayer   bool
	// CharacterID links the entry to a character sheet; empty for ad-hoc NPCs.
	CharacterID string
	// Current is derived from the tracker's turn pointer and cannot be set by callers.
	Current bool
}

// State is a read-only snapshot of an encounter.
type State struct {
	Active    bool
	Round     int
	TurnIndex int
	Entries   []Entry
}

// Current returns the entry whose turn it is.
//
// Postcondition: Returns (entry, true) when the list is non-empty, or (Entry{}, false).
func (s State) Current() (Entry, bool) {
	if s.TurnIndex < 0 || s.TurnIndex >= len(s.Entries) {
		return Entry{}, false
	}
	return s.Entries[s.TurnIndex], true
}
