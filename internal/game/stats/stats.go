// Package stats converts raw character stat values into the die counts and
// flat modifiers used by every dice pool.
package stats

import "fmt"

// ID identifies one of the ten fixed character stats.
type ID string

const (
	Speed         ID = "speed"
	Might         ID = "might"
	Grit          ID = "grit"
	Knowledge     ID = "knowledge"
	Foresight     ID = "foresight"
	Astrology     ID = "astrology"
	Magiks        ID = "magiks"
	Determination ID = "determination"
	Charisma      ID = "charisma"
	Luck          ID = "luck"
)

const (
	// MinModifier is the floor applied to negative stat values.
	MinModifier = -4
	// MaxModifier is the ceiling applied to large stat values.
	MaxModifier = 10
	// MaxDice is the largest die count a single stat can contribute.
	MaxDice = 6
)

var names = map[ID]string{
	Speed:         "Speed",
	Might:         "Might",
	Grit:          "Grit",
	Knowledge:     "Knowledge",
	Foresight:     "Foresight",
	Astrology:     "Astrology",
	Magiks:        "Magiks",
	Determination: "Determination",
	Charisma:      "Charisma",
	Luck:          "Luck",
}

// All returns the ten stat identifiers in sheet order.
func All() []ID {
	return []ID{Speed, Might, Grit, Knowledge, Foresight, Astrology, Magiks, Determination, Charisma, Luck}
}

// Valid reports whether id is one of the ten fixed stats.
func (id ID) Valid() bool {
	_, ok := names[id]
	return ok
}

// Name returns the display name for id, or the raw id when unknown.
func (id ID) Name() string {
	if n, ok := names[id]; ok {
		return n
	}
	return string(id)
}

// Parse resolves a case-sensitive stat identifier.
//
// Postcondition: Returns a valid ID or a non-nil error.
func Parse(s string) (ID, error) {
	id := ID(s)
	if !id.Valid() {
		return "", fmt.Errorf("stats: unknown stat %q", s)
	}
	return id, nil
}

// ModifierFor returns the flat modifier for a stat value: floor(v/10),
// clamped to [MinModifier, MaxModifier].
//
// Postcondition: MinModifier <= result <= MaxModifier.
func ModifierFor(value int) int {
	if value < 0 {
		return max(MinModifier, floorDiv(value, 10))
	}
	return min(MaxModifier, value/10)
}

// DiceFor returns the number of d20s a stat value contributes.
// Negative values always contribute a single die.
//
// Postcondition: 1 <= result <= MaxDice.
func DiceFor(value int) int {
	if value < 0 {
		return 1
	}
	return min(MaxDice, 1+value/20)
}

// floorDiv divides rounding toward negative infinity; Go's / truncates.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Contribution is one stat's share of a dice pool.
type Contribution struct {
	ID       ID
	Name     string
	Value    int
	Dice     int
	Modifier int
}

// Contribute derives the Contribution for the stat id holding value.
//
// Postcondition: Dice == DiceFor(value) and Modifier == ModifierFor(value).
func Contribute(id ID, value int) Contribution {
	return Contribution{
		ID:       id,
		Name:     id.Name(),
		Value:    value,
		Dice:     DiceFor(value),
		Modifier: ModifierFor(value),
	}
}
