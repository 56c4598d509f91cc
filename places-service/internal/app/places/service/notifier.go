package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foodplaces/pkg/logger"
	"foodplaces/places-service/internal/app/places/entity"
	"foodplaces/places-service/internal/app/places/infrastructure"

	"github.com/google/uuid"
)

// notifier выполняет побочные эффекты изменений: событие в Kafka и
// инвалидацию кеша городов. Ошибки только логируются, запрос они не ломают
type notifier struct {
	cache     infrastructure.CityListCache
	publisher infrastructure.MessagePublisher
}

func (n notifier) changed(ctx context.Context, event *entity.PlaceEvent) {
	if n.cache != nil {
		if err := n.cache.Invalidate(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to invalidate cities cache")
		}
	}

	if event == nil || n.publisher == nil {
		return
	}
	if err := n.publish(ctx, *event); err != nil {
		logger.Warn().Err(err).
			Str("event_type", event.EventType).
			Str("city_id", event.CityID).
			Msg("failed to publish place event")
	}
}

func (n notifier) publish(ctx context.Context, event entity.PlaceEvent) error {
	event.EventID = uuid.NewString()
	event.Timestamp = time.Now().UTC()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal place event: %w", err)
	}

	if err := n.publisher.PublishMessage(ctx, event.Key(), data); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
