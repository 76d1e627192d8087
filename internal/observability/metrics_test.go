package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/x", 200, time.Millisecond)
	m.ObserveReadiness(50, nil)
	m.IncSnapshotCreated()
	m.IncEventPublished("snapshot.created", nil)
	m.IncEventReceived("snapshot.created")
	m.APIInflightInc()
	require.NoError(t, m.WritePrometheus(&bytes.Buffer{}))
}

func TestReadinessMetrics(t *testing.T) {
	m := New()
	m.ObserveReadiness(72.5, nil)
	m.ObserveReadiness(0, errors.New("boom"))
	m.IncSnapshotCreated()
	m.IncEventPublished("action.locked", nil)
	m.IncEventPublished("action.locked", errors.New("down"))

	assert.Equal(t, 1.0, m.readinessComputed.Value("ok"))
	assert.Equal(t, 1.0, m.readinessComputed.Value("error"))
	assert.Equal(t, uint64(1), m.readinessScore.Count())
	assert.Equal(t, 1.0, m.eventsPublished.Value("action.locked", "error"))
	m.IncEventReceived("action.locked")
	m.IncEventReceived("action.locked")
	assert.Equal(t, 2.0, m.eventsReceived.Value("action.locked"))

	var buf bytes.Buffer
	require.NoError(t, m.WritePrometheus(&buf))
	out := buf.String()
	assert.Contains(t, out, `cp_readiness_score_bucket{le="80"} 1`)
	assert.Contains(t, out, `cp_readiness_score_bucket{le="70"} 0`)
	assert.Contains(t, out, "cp_readiness_snapshots_created_total 1\n")
	assert.Contains(t, out, "# TYPE cp_api_requests_total counter")
}

func TestAPIMetricsOutputIsSorted(t *testing.T) {
	m := New()
	m.ObserveAPI("POST", "/api/b", 201, 30*time.Millisecond)
	m.ObserveAPI("GET", "/api/a", 200, 5*time.Millisecond)
	m.ObserveAPI("GET", "/api/a", 200, 5*time.Millisecond)
	m.APIInflightInc()
	m.APIInflightInc()
	m.APIInflightDec()

	var buf bytes.Buffer
	require.NoError(t, m.WritePrometheus(&buf))
	out := buf.String()
	a := strings.Index(out, `cp_api_requests_total{method="GET",route="/api/a",status="200"} 2`)
	b := strings.Index(out, `cp_api_requests_total{method="POST",route="/api/b",status="201"} 1`)
	require.GreaterOrEqual(t, a, 0)
	require.GreaterOrEqual(t, b, 0)
	assert.Less(t, a, b)
	assert.Contains(t, out, "cp_api_inflight_requests 1\n")
}

func TestLabelEscaping(t *testing.T) {
	assert.Equal(t, `{path="a\"b\\c\nd"}`, labelString([]string{"path"}, []string{"a\"b\\c\nd"}))
	assert.Equal(t, `{path="unknown"}`, labelString([]string{"path"}, nil))
	assert.Equal(t, `{a="x",le="1"}`, withLe(`{a="x"}`, "1"))
	assert.Equal(t, `{le="+Inf"}`, withLe("", "+Inf"))
}
