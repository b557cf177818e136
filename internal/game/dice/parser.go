package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse parses pool notation into a Spec.
// Supported forms: "d20", "3d20", "3d20+2", "2d20-1", "0d20+4".
// The die size is optional in the count-only form "3" and must be 20 when given.
//
// Postcondition: Returns a Spec with 0 <= Count <= MaxCount or a descriptive
// error; an oversized count wraps ErrTooManyDice.
func Parse(expr string) (Spec, error) {
	raw := expr
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" {
		return Spec{}, fmt.Errorf("dice: empty expression")
	}

	// Find the first '+' or '-' that is not at position 0.
	modOffset := -1
	for i := 1; i < len(s); i++ {
		if s[i] == '+' || s[i] == '-' {
			modOffset = i
			break
		}
	}
	body, modStr := s, ""
	if modOffset >= 0 {
		body, modStr = s[:modOffset], s[modOffset:]
	}

	countStr := body
	if dIdx := strings.IndexByte(body, 'd'); dIdx >= 0 {
		countStr = body[:dIdx]
		sides, err := strconv.Atoi(body[dIdx+1:])
		if err != nil {
			return Spec{}, fmt.Errorf("dice: invalid die sides in %q: %w", raw, err)
		}
		if sides != Sides {
			return Spec{}, fmt.Errorf("dice: only d%d pools are supported, got d%d in %q", Sides, sides, raw)
		}
	}

	count := 1
	if countStr != "" {
		var err error
		count, err = strconv.Atoi(countStr)
		if err != nil {
			return Spec{}, fmt.Errorf("dice: invalid die count in %q: %w", raw, err)
		}
		if count < 0 {
			return Spec{}, fmt.Errorf("dice: invalid die count in %q: must be >= 0", raw)
		}
		if count > MaxCount {
			return Spec{}, fmt.Errorf("dice: %w in %q: at most %d", ErrTooManyDice, raw, MaxCount)
		}
	}

	modifier := 0
	if modStr != "" {
		var err error
		modifier, err = strconv.Atoi(modStr)
		if err != nil {
			return Spec{}, fmt.Errorf("dice: invalid modifier in %q: %w", raw, err)
		}
	}

	return Spec{Count: count, Modifier: modifier}, nil
}

// MustParse parses expr and panics on error. Useful for package-level constants.
//
// Precondition: expr must be valid pool notation.
func MustParse(expr string) Spec {
	s, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return s
}
