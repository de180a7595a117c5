package tillit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillit-one/tillit/errors"
)

func TestHeightContext(t *testing.T) {
	ctx := context.Background()

	_, ok := GetHeight(ctx)
	assert.False(t, ok)
	_, err := MustHeight(ctx)
	assert.True(t, errors.ErrHuman.Is(err))

	ctx = WithHeight(ctx, 42)
	height, ok := GetHeight(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(42), height)

	height, err = MustHeight(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), height)

	// the application owns the height, handlers cannot reset it
	assert.Panics(t, func() { WithHeight(ctx, 43) })
}

func TestChainIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", GetChainID(ctx))

	ctx = WithChainID(ctx, "tillit-local-1")
	assert.Equal(t, "tillit-local-1", GetChainID(ctx))
}
