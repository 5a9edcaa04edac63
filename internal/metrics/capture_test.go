package metrics

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureCounters(t *testing.T) {
	var reg = prometheus.NewRegistry()
	var c = NewCapture(reg, "Middle")
	c.Observe(OutcomeAccepted)
	c.Observe(OutcomeAccepted)
	c.Observe(OutcomeMalformed)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Count(OutcomeAccepted)))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.Count(OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Count(OutcomeMalformed)))

	count, err := testutil.GatherAndCount(reg, "gesture_capture_lines_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	var none *Capture
	none.Observe(OutcomeAccepted)
}

func TestServeStopsWithContext(t *testing.T) {
	var ctx, cancel = context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, Serve(ctx, "127.0.0.1:0", prometheus.NewRegistry(), log.New(io.Discard, "", 0)))
}
