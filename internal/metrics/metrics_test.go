package metrics

import (
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordScan(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewRecorder(reg)

	r.RecordScan("watch", 0.25, 12, 2, 3, false)
	r.RecordScan("schedule", 0.10, 12, 0, 0, true)

	require.Equal(t, float64(12), testutil.ToFloat64(r.documentsSeen))
	require.Equal(t, float64(2), testutil.ToFloat64(r.issuesBySev.WithLabelValues("error")))
	require.Equal(t, float64(1), testutil.ToFloat64(r.scansTotal.WithLabelValues("watch", "success")))
	require.Equal(t, float64(1), testutil.ToFloat64(r.scansTotal.WithLabelValues("schedule", "failure")))

	// A failed scan must not overwrite the last good gauges.
	require.Equal(t, float64(3), testutil.ToFloat64(r.issuesBySev.WithLabelValues("warning")))
}

func TestRecordWatchEvent(t *testing.T) {
	r := NewRecorder(nil)
	r.RecordWatchEvent("write")
	r.RecordWatchEvent("write")
	require.Equal(t, float64(2), testutil.ToFloat64(r.watchEvents.WithLabelValues("write")))
}
