package utils

import (
	"time"

	"github.com/tillit-one/tillit"
)

// Logging is a decorator to log messages as they pass through.
type Logging struct{}

var _ tillit.Decorator = Logging{}

// NewLogging creates a Logging decorator.
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> warn, success -> debug.
func (r Logging) Check(ctx tillit.Context, store tillit.KVStore, tx tillit.Tx, next tillit.Checker) (*tillit.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	logCall(ctx, start, tx, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info.
func (r Logging) Deliver(ctx tillit.Context, store tillit.KVStore, tx tillit.Tx, next tillit.Deliverer) (*tillit.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	logCall(ctx, start, tx, err, false)
	return res, err
}

// logCall writes information about the time and result to the logger.
func logCall(ctx tillit.Context, start time.Time, tx tillit.Tx, err error, lowPrio bool) {
	logger := tillit.GetLogger(ctx)

	switch {
	case err != nil && lowPrio:
		logger.Warn().
			Str("path", tillit.GetPath(tx)).
			Dur("duration", time.Since(start)).
			Err(err).
			Msg("check failed")
	case err != nil:
		logger.Error().
			Str("path", tillit.GetPath(tx)).
			Dur("duration", time.Since(start)).
			Err(err).
			Msg("deliver failed")
	case lowPrio:
		logger.Debug().
			Str("path", tillit.GetPath(tx)).
			Dur("duration", time.Since(start)).
			Msg("check")
	default:
		logger.Info().
			Str("path", tillit.GetPath(tx)).
			Dur("duration", time.Since(start)).
			Msg("deliver")
	}
}
