package dice

// Roll draws spec.Count d20s from src and classifies the outcome.
//
// Precondition: 0 <= spec.Count <= MaxCount; src must be non-nil when spec.Count > 0.
// Postcondition: len(result.Faces) == spec.Count, every face is in [1, 20],
// result.Final == result.Total + spec.Modifier. An empty pool is neither
// critical nor fumble.
func Roll(spec Spec, src Source) Result {
	n := max(spec.Count, 0)
	faces := make([]int, n)
	total := 0
	crit := false
	allOnes := n > 0
	for i := range faces {
		f := src.Intn(Sides) + 1
		faces[i] = f
		total += f
		if f == Sides {
			crit = true
		}
		if f != 1 {
			allOnes = false
		}
	}
	return Result{
		Faces:    faces,
		Total:    total,
		Modifier: spec.Modifier,
		Final:    total + spec.Modifier,
		Critical: crit,
		Fumble:   allOnes,
	}
}

// RollExpr parses expr and rolls it using src in a single call.
//
// Postcondition: Returns a Result or a parse error.
func RollExpr(expr string, src Source) (Result, error) {
	spec, err := Parse(expr)
	if err != nil {
		return Result{}, err
	}
	return Roll(spec, src), nil
}
