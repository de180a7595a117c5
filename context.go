package tillit

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/tillit-one/tillit/errors"
)

// Context is just a type alias for the standard implementation. We use the
// context to pass block-level information (height, chain id, logger) from the
// application down to the handlers.
type Context = context.Context

type contextKey int

const (
	contextKeyHeight contextKey = iota
	contextKeyChainID
	contextKeyLogger
)

// DefaultLogger is used for every context that has not set anything itself.
var DefaultLogger = zerolog.Nop()

// WithHeight sets the block height for the lifetime of this context. The
// height may only be set once; the application owns this value, not the
// handlers.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("height already set")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height, if set.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// MustHeight returns the block height or an error if the application did not
// provide one. Handlers that gate behaviour on the chain clock must not
// silently default to zero.
func MustHeight(ctx Context) (int64, error) {
	val, ok := GetHeight(ctx)
	if !ok {
		return 0, errors.Wrap(errors.ErrHuman, "block height not set on context")
	}
	return val, nil
}

// WithChainID sets the chain id for the lifetime of this context.
func WithChainID(ctx Context, chainID string) Context {
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the chain id or an empty string.
func GetChainID(ctx Context) string {
	val, _ := ctx.Value(contextKeyChainID).(string)
	return val
}

// WithLogger attaches a logger to this context.
func WithLogger(ctx Context, logger zerolog.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the logger attached to this context, or DefaultLogger.
func GetLogger(ctx Context) zerolog.Logger {
	if logger, ok := ctx.Value(contextKeyLogger).(zerolog.Logger); ok {
		return logger
	}
	return DefaultLogger
}
