package app

import (
	"context"
	"fmt"

	"github.com/yungbote/careerpulse-backend/internal/clients/redis"
	"github.com/yungbote/careerpulse-backend/internal/observability"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
)

type Clients struct {
	EventBus redis.EventBus
}

// wireClients connects the optional readiness event bus; without REDIS_ADDR
// events are not fanned out.
func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set; readiness events stay local")
		return Clients{}, nil
	}
	bus, err := redis.NewEventBus(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis event bus: %w", err)
	}
	return Clients{EventBus: bus}, nil
}

func (c Clients) startForwarder(ctx context.Context, log *logger.Logger, metrics *observability.Metrics) error {
	if c.EventBus == nil {
		return nil
	}
	return c.EventBus.StartForwarder(ctx, countEvents(log.With("component", "ReadinessEventForwarder"), metrics))
}

// countEvents tallies bus events by type so other instances' publishes show
// up in this process's metrics.
func countEvents(log *logger.Logger, metrics *observability.Metrics) func(redis.Event) {
	return func(ev redis.Event) {
		metrics.IncEventReceived(ev.Type)
		log.Debug("readiness event", "type", ev.Type, "user_id", ev.UserID, "at", ev.At)
	}
}

func (c Clients) Close() {
	if c.EventBus != nil {
		_ = c.EventBus.Close()
	}
}
