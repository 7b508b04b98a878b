package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalPacer_SpacesCalls(t *testing.T) {
	const interval = 30 * time.Millisecond
	pacer := NewIntervalPacer(interval)

	start := time.Now()
	require.NoError(t, pacer.Pace(context.Background()))
	require.NoError(t, pacer.Pace(context.Background()))

	// Two paced calls take at least two intervals (the initial token is
	// drained at construction)
	assert.GreaterOrEqual(t, time.Since(start), 2*interval)
}

func TestIntervalPacer_CanceledContext(t *testing.T) {
	pacer := NewIntervalPacer(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := pacer.Pace(ctx)
	assert.Error(t, err)
}

func TestIntervalPacer_ZeroIntervalIsNop(t *testing.T) {
	pacer := NewIntervalPacer(0)

	start := time.Now()
	require.NoError(t, pacer.Pace(context.Background()))
	assert.Less(t, time.Since(start), 10*time.Millisecond)
}

func TestNopPacer(t *testing.T) {
	assert.NoError(t, NopPacer().Pace(context.Background()))
}
