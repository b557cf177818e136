package combat

import (
	"fmt"

	"github.com/google/uuid"
)

// TurnTracking selects how the turn pointer behaves when the list is re-sorted.
type TurnTracking int

const (
	// TrackIdentity keeps the same combatant current across insertions and removals.
	TrackIdentity TurnTracking = iota
	// TrackIndex keeps the same position current, so an insertion ahead of the
	// pointer hands the turn to a different combatant.
	TrackIndex
)

// ParseTurnTracking resolves "identity" or "index".
func ParseTurnTracking(s string) (TurnTracking, error) {
	switch s {
	case "identity", "":
		return TrackIdentity, nil
	case "index":
		return TrackIndex, nil
	default:
		return 0, fmt.Errorf("unknown turn tracking mode %q", s)
	}
}

// String returns the configuration name of the mode.
func (m TurnTracking) String() string {
	if m == TrackIndex {
		return "index"
	}
	return "identity"
}

// Tracker is the initiative state machine for one encounter.
// It is not safe for concurrent use; every method runs to completion and
// returns the resulting snapshot.
//
// Invariant: round >= 1; 0 <= turn < len(entries) or turn == 0 when empty;
// entries are ordered by descending initiative, ties in insertion order.
type Tracker struct {
	active   bool
	round    int
	turn     int
	entries  []Entry
	tracking TurnTracking
	newID    func() string
}

// NewTracker returns an inactive tracker with an empty list.
//
// Postcondition: State().Round == 1 and State().Active == false.
func NewTracker(tracking TurnTracking) *Tracker {
	return &Tracker{round: 1, tracking: tracking, newID: uuid.NewString}
}

// Start activates the encounter, keeping any entries already added.
//
// Postcondition: Active; Round == 1; TurnIndex == 0.
func (t *Tracker) Start() State {
	t.active = true
	t.round = 1
	t.turn = 0
	return t.State()
}

// End deactivates the encounter and clears the list.
//
// Postcondition: not Active; Round == 1; TurnIndex == 0; no entries.
func (t *Tracker) End() State {
	t.active = false
	t.entries = nil
	t.round = 1
	t.turn = 0
	return t.State()
}

// Add inserts e and re-sorts the list. An empty e.ID is replaced with a new UUID.
//
// Postcondition: the list contains e; ordering invariant holds.
func (t *Tracker) Add(e Entry) State {
	if e.ID == "" {
		e.ID = t.newID()
	}
	e.Current = false

	// The stable sort places e after every entry with equal or higher
	// initiative, so the current entry moves down one slot only when e
	// outranks it.
	shift := t.tracking == TrackIdentity && t.turn < len(t.entries) &&
		e.Initiative > t.entries[t.turn].Initiative
	t.entries = append(t.entries, e)
	sortByInitiativeDesc(t.entries)

	if shift {
		t.turn++
	}
	t.clampTurn()
	return t.State()
}

// Remove deletes the first entry with id. Unknown ids leave the state unchanged.
// A pointer left outside the list is reset to 0.
//
// Postcondition: no entry has ID == id.
func (t *Tracker) Remove(id string) State {
	idx := t.indexOf(id)
	if idx < 0 {
		return t.State()
	}
	t.entries = append(t.entries[:idx], t.entries[idx+1:]...)
	if t.tracking == TrackIdentity && idx < t.turn {
		t.turn--
	}
	t.clampTurn()
	return t.State()
}

// Next advances the turn pointer, starting a new round when it wraps.
// No-op on an empty list.
func (t *Tracker) Next() State {
	if len(t.entries) == 0 {
		return t.State()
	}
	t.turn = (t.turn + 1) % len(t.entries)
	if t.turn == 0 {
		t.round++
	}
	return t.State()
}

// Previous moves the turn pointer back, wrapping to the last entry and
// stepping the round back (never below 1). No-op on an empty list.
func (t *Tracker) Previous() State {
	if len(t.entries) == 0 {
		return t.State()
	}
	t.turn--
	if t.turn < 0 {
		t.turn = len(t.entries) - 1
		t.round = max(1, t.round-1)
	}
	return t.State()
}

// State returns a snapshot; mutating it does not affect the tracker.
//
// Postcondition: exactly one entry has Current == true when the list is non-empty.
func (t *Tracker) State() State {
	entries := make([]Entry, len(t.entries))
	copy(entries, t.entries)
	for i := range entries {
		entries[i].Current = i == t.turn
	}
	return State{
		Active:    t.active,
		Round:     t.round,
		TurnIndex: t.turn,
		Entries:   entries,
	}
}

// Tracking returns the turn-tracking mode.
func (t *Tracker) Tracking() TurnTracking { return t.tracking }

func (t *Tracker) indexOf(id string) int {
	for i, e := range t.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) clampTurn() {
	if t.turn < 0 || t.turn >= len(t.entries) {
		t.turn = 0
	}
}
