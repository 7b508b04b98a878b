package notify

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lmgveerhoek/rescan/core/reconcile"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeSink records publishes and optionally fails.
type fakeSink struct {
	name      string
	err       error
	published int
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Publish(ctx context.Context, summary *reconcile.Summary) error {
	f.published++
	return f.err
}

func TestDispatcher_FansOutToAllSinks(t *testing.T) {
	a := &fakeSink{name: "a"}
	b := &fakeSink{name: "b"}

	d := NewDispatcher([]Sink{a, b}, time.Second, zap.NewNop())
	d.Dispatch(context.Background(), testSummary())

	assert.Equal(t, 1, a.published)
	assert.Equal(t, 1, b.published)
}

func TestDispatcher_SinkFailureDoesNotStopOthers(t *testing.T) {
	failing := &fakeSink{name: "failing", err: fmt.Errorf("boom")}
	ok := &fakeSink{name: "ok"}

	d := NewDispatcher([]Sink{failing, ok}, time.Second, zap.NewNop())

	// Dispatch never returns or panics on sink failure
	d.Dispatch(context.Background(), testSummary())

	assert.Equal(t, 1, failing.published)
	assert.Equal(t, 1, ok.published)
}

func TestDispatcher_DetachedFromRunCancellation(t *testing.T) {
	sink := &fakeSink{name: "a"}
	d := NewDispatcher([]Sink{sink}, time.Second, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // the run is over; its summary is still delivered

	d.Dispatch(ctx, testSummary())
	assert.Equal(t, 1, sink.published)
}

func TestDispatcher_NoSinks(t *testing.T) {
	d := NewDispatcher(nil, time.Second, zap.NewNop())
	d.Dispatch(context.Background(), testSummary())
}
