package infrastructure

import (
	"context"

	"foodplaces/places-service/internal/app/places/entity"
)

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// CityListCache - кеш страниц списка городов.
// Key фиксирует текущую версию кеша в ключе, Get и Set работают с этим ключом.
// Get возвращает nil, nil при промахе
type CityListCache interface {
	Key(ctx context.Context, key string) (string, error)
	Get(ctx context.Context, versionedKey string) (*entity.CityListResult, error)
	Set(ctx context.Context, versionedKey string, result *entity.CityListResult) error
	Invalidate(ctx context.Context) error
}
