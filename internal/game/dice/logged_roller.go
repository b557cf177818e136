package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged pool rolling.
// All rolls are logged at debug level and kept in a bounded History.
type Roller struct {
	src     Source
	logger  *zap.Logger
	history *History
}

// NewLoggedRoller creates a Roller that rolls with src, logs each roll to
// logger and records the most recent historySize results.
//
// Precondition: src and logger must be non-nil; historySize >= 1.
func NewLoggedRoller(src Source, logger *zap.Logger, historySize int) *Roller {
	return &Roller{src: src, logger: logger, history: NewHistory(historySize)}
}

// Roll rolls spec, logs the result and appends it to the history.
//
// Postcondition: result is the newest History entry.
func (r *Roller) Roll(spec Spec) Result {
	result := Roll(spec, r.src)
	r.logger.Debug("dice roll",
		zap.String("pool", spec.String()),
		zap.Ints("faces", result.Faces),
		zap.Int("total", result.Total),
		zap.Int("modifier", result.Modifier),
		zap.Int("final", result.Final),
		zap.Bool("critical", result.Critical),
		zap.Bool("fumble", result.Fumble),
	)
	r.history.Add(result)
	return result
}

// RollExpr parses expr and rolls it, logging the result.
//
// Postcondition: Returns a Result or a parse error.
func (r *Roller) RollExpr(expr string) (Result, error) {
	spec, err := Parse(expr)
	if err != nil {
		return Result{}, err
	}
	return r.Roll(spec), nil
}

// History returns the roller's bounded roll history.
func (r *Roller) History() *History { return r.history }
