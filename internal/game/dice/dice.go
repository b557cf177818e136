// Package dice provides the randomness abstraction and the d20 pool roller
// used to resolve every check on a character sheet.
package dice

import (
	"errors"
	"fmt"
)

// Sides is the fixed die size; every die in every pool is a d20.
const Sides = 20

// MaxCount is the largest pool Parse accepts and Roll may be asked for.
const MaxCount = 1000

// ErrTooManyDice is returned for a pool larger than MaxCount.
var ErrTooManyDice = errors.New("too many dice")

// Spec is the shape of a built dice pool as seen by the roller.
type Spec struct {
	// Count is the number of d20s to roll. Zero is allowed.
	Count int
	// Modifier is the flat value added to the sum of the faces.
	Modifier int
}

// String renders the spec in "3d20+2" notation.
func (s Spec) String() string {
	if s.Modifier == 0 {
		return fmt.Sprintf("%dd%d", s.Count, Sides)
	}
	return fmt.Sprintf("%dd%d%+d", s.Count, Sides, s.Modifier)
}

// Result holds the full audit trail for a single pool roll.
//
// Invariant: Total == sum(Faces); Final == Total + Modifier.
type Result struct {
	Faces    []int
	Total    int
	Modifier int
	Final    int
	// Critical is true when at least one face shows 20.
	Critical bool
	// Fumble is true when the pool is non-empty and every face shows 1.
	Fumble bool
}

// Count returns the number of dice that were rolled.
func (r Result) Count() int { return len(r.Faces) }

// String returns a human-readable audit string in the format:
//
//	"3d20+2 → [4 20 7] +2 = 33 (critical)"
func (r Result) String() string {
	s := fmt.Sprintf("%s → %v %+d = %d",
		Spec{Count: len(r.Faces), Modifier: r.Modifier}, r.Faces, r.Modifier, r.Final)
	switch {
	case r.Critical:
		s += " (critical)"
	case r.Fumble:
		s += " (fumble)"
	}
	return s
}

// Source is the randomness provider for dice rolls.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
