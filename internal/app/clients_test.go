package app

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/careerpulse-backend/internal/clients/redis"
	"github.com/yungbote/careerpulse-backend/internal/observability"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
)

func TestCountEventsByType(t *testing.T) {
	m := observability.New()
	handle := countEvents(logger.Nop(), m)
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	handle(redis.Event{Type: "snapshot.created", UserID: uuid.New(), At: at})
	handle(redis.Event{Type: "snapshot.created", UserID: uuid.New(), At: at})
	handle(redis.Event{Type: "action.locked", UserID: uuid.New(), At: at})

	var buf bytes.Buffer
	require.NoError(t, m.WritePrometheus(&buf))
	out := buf.String()
	assert.Contains(t, out, `cp_readiness_events_received_total{type="snapshot.created"} 2`+"\n")
	assert.Contains(t, out, `cp_readiness_events_received_total{type="action.locked"} 1`+"\n")
}

func TestCountEventsWithoutMetrics(t *testing.T) {
	assert.NotPanics(t, func() {
		countEvents(logger.Nop(), nil)(redis.Event{Type: "activity.recorded"})
	})
}

func TestStartForwarderWithoutBus(t *testing.T) {
	require.NoError(t, Clients{}.startForwarder(t.Context(), logger.Nop(), nil))
}
