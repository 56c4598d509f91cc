package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"foodplaces/pkg/logger"
	"foodplaces/places-service/internal/app/places/entity"
	"foodplaces/places-service/internal/app/places/infrastructure"
	"foodplaces/places-service/internal/app/places/query"
	"foodplaces/places-service/internal/app/places/repository"
	"foodplaces/places-service/internal/app/places/util"
	"foodplaces/places-service/internal/app/places/validation"

	"go.mongodb.org/mongo-driver/bson"
)

// PlaceService обрабатывает бизнес-логику мест внутри города
type PlaceService struct {
	cityRepo  repository.CityRepository
	placeRepo repository.PlaceRepository
	validator *validation.Validator
	notifier  notifier
}

func NewPlaceService(
	cityRepo repository.CityRepository,
	placeRepo repository.PlaceRepository,
	validator *validation.Validator,
	cache infrastructure.CityListCache,
	publisher infrastructure.MessagePublisher,
) *PlaceService {
	return &PlaceService{
		cityRepo:  cityRepo,
		placeRepo: placeRepo,
		validator: validator,
		notifier:  notifier{cache: cache, publisher: publisher},
	}
}

// ListPlaces возвращает страницу мест города. Отсутствующий город - NotFound,
// существующий город без совпадений - пустой список
func (s *PlaceService) ListPlaces(ctx context.Context, rawCityID string, values url.Values) (*entity.PlaceListResult, error) {
	cityID, err := parseID("city", rawCityID)
	if err != nil {
		return nil, err
	}

	q, err := query.PlaceList(cityID, values)
	if err != nil {
		return nil, err
	}

	places, total, err := s.placeRepo.List(ctx, q)
	if err != nil {
		return nil, fromRepository(err, "list places")
	}

	if total == 0 {
		exists, err := s.cityRepo.Exists(ctx, cityID)
		if err != nil {
			return nil, fromRepository(err, "list places")
		}
		if !exists {
			return nil, fromRepository(repository.ErrCityNotFound, "list places")
		}
	}

	return &entity.PlaceListResult{
		Places:         places,
		Pagination:     util.ComputePagination(total, q.Page),
		FiltersApplied: q.Applied,
	}, nil
}

func (s *PlaceService) GetPlace(ctx context.Context, rawCityID, rawPlaceID string) (*entity.PlaceDetail, error) {
	cityID, placeID, err := parsePlacePath(rawCityID, rawPlaceID)
	if err != nil {
		return nil, err
	}

	place, err := s.placeRepo.GetByID(ctx, cityID, placeID)
	if err != nil {
		return nil, fromRepository(err, "get place")
	}

	return &entity.PlaceDetail{
		Data: *place,
		Links: entity.Links{
			City: cityLink(cityID.Hex()),
			Self: placeLink(cityID.Hex(), placeID.Hex()),
		},
	}, nil
}

// CreatePlace добавляет место в город. Адрес и координаты обязательны
func (s *PlaceService) CreatePlace(ctx context.Context, rawCityID string, req *entity.PlaceInput) (*entity.Place, error) {
	cityID, err := parseID("city", rawCityID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.CreatePlace(req); err != nil {
		return nil, err
	}

	place, err := buildPlace(req)
	if err != nil {
		return nil, err
	}

	if err := s.placeRepo.Add(ctx, cityID, &place); err != nil {
		return nil, fromRepository(err, "create place")
	}

	logger.Info().Str("city_id", cityID.Hex()).Str("place_id", place.ID.Hex()).Msg("place created")
	s.notifier.changed(ctx, &entity.PlaceEvent{
		EventType: entity.EventPlaceCreated,
		CityID:    cityID.Hex(),
		PlaceID:   place.ID.Hex(),
	})

	return &place, nil
}

// UpdatePlace применяет частичное обновление; отсутствующие поля не меняются
func (s *PlaceService) UpdatePlace(ctx context.Context, rawCityID, rawPlaceID string, req *entity.UpdatePlaceRequest) (*entity.UpdatedResponse, error) {
	cityID, placeID, err := parsePlacePath(rawCityID, rawPlaceID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.UpdatePlace(req); err != nil {
		return nil, err
	}

	fs, err := placeUpdateSet(req)
	if err != nil {
		return nil, err
	}
	if fs.empty() {
		return nil, validation.NewFieldError("body", "must contain at least one valid field to update")
	}

	if err := s.placeRepo.Update(ctx, cityID, placeID, fs.set); err != nil {
		return nil, fromRepository(err, "update place")
	}

	s.notifier.changed(ctx, nil)

	return &entity.UpdatedResponse{
		Message:       "Place updated successfully",
		UpdatedFields: fs.fields,
	}, nil
}

// UpdatePlaceStatus меняет операционный статус места
func (s *PlaceService) UpdatePlaceStatus(ctx context.Context, rawCityID, rawPlaceID string, req *entity.UpdatePlaceStatusRequest) (*entity.UpdatedResponse, error) {
	cityID, placeID, err := parsePlacePath(rawCityID, rawPlaceID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.PlaceStatus(req); err != nil {
		return nil, err
	}

	err = s.placeRepo.Update(ctx, cityID, placeID, bson.M{"info.status": req.Status})
	if errors.Is(err, repository.ErrNotModified) {
		return nil, newError(ErrNoChanges, fmt.Sprintf("Place status is already set to %s", req.Status), err)
	}
	if err != nil {
		return nil, fromRepository(err, "update place status")
	}

	s.notifier.changed(ctx, nil)

	return &entity.UpdatedResponse{
		Message:       fmt.Sprintf("Place status updated to %s", req.Status),
		UpdatedFields: []string{"info.status"},
	}, nil
}

// DeletePlace удаляет место вместе с его отзывами
func (s *PlaceService) DeletePlace(ctx context.Context, rawCityID, rawPlaceID string) error {
	cityID, placeID, err := parsePlacePath(rawCityID, rawPlaceID)
	if err != nil {
		return err
	}

	if err := s.placeRepo.Delete(ctx, cityID, placeID); err != nil {
		return fromRepository(err, "delete place")
	}

	logger.Info().Str("city_id", cityID.Hex()).Str("place_id", placeID.Hex()).Msg("place deleted")
	s.notifier.changed(ctx, &entity.PlaceEvent{
		EventType: entity.EventPlaceDeleted,
		CityID:    cityID.Hex(),
		PlaceID:   placeID.Hex(),
	})

	return nil
}
