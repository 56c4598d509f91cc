package service

import (
	"context"
	"net/url"
	"strings"

	"foodplaces/pkg/logger"
	"foodplaces/places-service/internal/app/places/entity"
	"foodplaces/places-service/internal/app/places/infrastructure"
	"foodplaces/places-service/internal/app/places/query"
	"foodplaces/places-service/internal/app/places/repository"
	"foodplaces/places-service/internal/app/places/util"
	"foodplaces/places-service/internal/app/places/validation"
)

// CityService обрабатывает бизнес-логику городов
// Координирует работу репозитория, Redis кеша списка и Kafka
type CityService struct {
	cityRepo  repository.CityRepository
	validator *validation.Validator
	cache     infrastructure.CityListCache
	notifier  notifier
}

// NewCityService создает новый сервис городов с внедрением зависимостей
func NewCityService(
	cityRepo repository.CityRepository,
	validator *validation.Validator,
	cache infrastructure.CityListCache,
	publisher infrastructure.MessagePublisher,
) *CityService {
	return &CityService{
		cityRepo:  cityRepo,
		validator: validator,
		cache:     cache,
		notifier:  notifier{cache: cache, publisher: publisher},
	}
}

// ListCities возвращает страницу городов. Пустой результат не ошибка:
// handler отвечает 404 вместе с пагинацией и эхом фильтров
func (s *CityService) ListCities(ctx context.Context, values url.Values) (*entity.CityListResult, error) {
	q := query.CityList(values)

	// ключ фиксируется до чтения из базы
	key := s.cacheKey(ctx, q.CacheKey())
	if key != "" {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to read cities cache")
		} else if cached != nil {
			return cached, nil
		}
	}

	cities, total, err := s.cityRepo.List(ctx, q)
	if err != nil {
		return nil, fromRepository(err, "list cities")
	}

	result := &entity.CityListResult{
		Cities:         cities,
		Pagination:     util.ComputePagination(total, q.Page),
		FiltersApplied: q.Applied,
	}

	if key != "" && len(cities) > 0 {
		if err := s.cache.Set(ctx, key, result); err != nil {
			logger.Warn().Err(err).Msg("failed to cache cities")
		}
	}

	return result, nil
}

// cacheKey возвращает "" если кеш выключен или недоступен
func (s *CityService) cacheKey(ctx context.Context, key string) string {
	if s.cache == nil {
		return ""
	}

	versioned, err := s.cache.Key(ctx, key)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read cities cache version")
		return ""
	}
	return versioned
}

// GetCity возвращает город; места раскрываются только при include_places=true
func (s *CityService) GetCity(ctx context.Context, rawID string, values url.Values) (*entity.CityDetail, error) {
	id, err := parseID("city", rawID)
	if err != nil {
		return nil, err
	}

	filter, err := query.CityPlaces(values)
	if err != nil {
		return nil, err
	}

	city, err := s.cityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "get city")
	}

	detail := &entity.CityDetail{
		Data: entity.CityData{
			ID:       city.ID.Hex(),
			CityID:   city.CityID,
			CityName: city.CityName,
		},
	}
	if !filter.Include {
		return detail, nil
	}

	places := filter.Apply(city.Places)
	detail.Data.Places = &places
	detail.Includes.Places = true
	detail.FiltersApplied = filter.Applied()

	return detail, nil
}

// CreateCity создает город вместе с переданными местами
func (s *CityService) CreateCity(ctx context.Context, req *entity.CreateCityRequest) (*entity.City, error) {
	if err := s.validator.CreateCity(req); err != nil {
		return nil, err
	}

	places, err := buildPlaces(req.Places)
	if err != nil {
		return nil, err
	}

	city := &entity.City{
		CityID:   strings.TrimSpace(req.CityID),
		CityName: strings.TrimSpace(req.CityName),
		Places:   places,
	}

	if err := s.cityRepo.Create(ctx, city); err != nil {
		return nil, fromRepository(err, "create city")
	}

	logger.Info().Str("city_id", city.ID.Hex()).Int("places", len(places)).Msg("city created")
	s.notifier.changed(ctx, nil)

	return city, nil
}

// UpdateCity меняет название и/или заменяет список мест целиком
func (s *CityService) UpdateCity(ctx context.Context, rawID string, req *entity.UpdateCityRequest) (*entity.UpdatedResponse, error) {
	id, err := parseID("city", rawID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.UpdateCity(req); err != nil {
		return nil, err
	}

	fs := newFieldSet()
	if req.CityName != nil {
		fs.add("city_name", strings.TrimSpace(*req.CityName))
	}
	if req.Places != nil {
		places, err := buildPlaces(*req.Places)
		if err != nil {
			return nil, err
		}
		fs.add("places", places)
	}

	if err := s.cityRepo.Update(ctx, id, fs.set); err != nil {
		return nil, fromRepository(err, "update city")
	}

	s.notifier.changed(ctx, nil)

	return &entity.UpdatedResponse{
		Message:       "City updated successfully",
		UpdatedFields: fs.fields,
	}, nil
}

// DeleteCity удаляет город вместе со всеми местами и отзывами
func (s *CityService) DeleteCity(ctx context.Context, rawID string) error {
	id, err := parseID("city", rawID)
	if err != nil {
		return err
	}

	if err := s.cityRepo.Delete(ctx, id); err != nil {
		return fromRepository(err, "delete city")
	}

	logger.Info().Str("city_id", id.Hex()).Msg("city deleted")
	s.notifier.changed(ctx, &entity.PlaceEvent{
		EventType: entity.EventCityDeleted,
		CityID:    id.Hex(),
	})

	return nil
}
