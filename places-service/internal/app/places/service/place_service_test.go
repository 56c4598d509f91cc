package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"foodplaces/places-service/internal/app/places/entity"
	"foodplaces/places-service/internal/app/places/repository"
	"foodplaces/places-service/internal/app/places/repository/mocks"
	"foodplaces/places-service/internal/app/places/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type placeServiceMocks struct {
	cityRepo  *mocks.MockCityRepository
	placeRepo *mocks.MockPlaceRepository
	cache     *mocks.MockCityListCache
	publisher *mocks.MockMessagePublisher
}

func newPlaceServiceWithMocks() (*PlaceService, placeServiceMocks) {
	m := placeServiceMocks{
		cityRepo:  new(mocks.MockCityRepository),
		placeRepo: new(mocks.MockPlaceRepository),
		cache:     new(mocks.MockCityListCache),
		publisher: &mocks.MockMessagePublisher{Messages: make([][]byte, 0)},
	}
	m.cache.On("Invalidate", mock.Anything).Return(nil).Maybe()
	return NewPlaceService(m.cityRepo, m.placeRepo, validation.New(), m.cache, m.publisher), m
}

func placeInput(t *testing.T, body string) *entity.PlaceInput {
	t.Helper()
	var in entity.PlaceInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return &in
}

func TestListPlaces_Success(t *testing.T) {
	service, m := newPlaceServiceWithMocks()
	ctx := context.Background()
	cityID := primitive.NewObjectID()

	places := []entity.Place{placeRated("A", 4.2, "cafe")}
	m.placeRepo.On("List", ctx, mock.AnythingOfType("*query.PlaceListQuery")).Return(places, int64(1), nil)

	result, err := service.ListPlaces(ctx, cityID.Hex(), url.Values{"type": {"cafe"}, "sort_by": {"rating"}})

	require.NoError(t, err)
	assert.Len(t, result.Places, 1)
	assert.Equal(t, int64(1), result.Pagination.TotalItems)
	assert.Equal(t, "cafe", result.FiltersApplied.Type)
	m.cityRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestListPlaces_EmptyExistingCity(t *testing.T) {
	service, m := newPlaceServiceWithMocks()
	ctx := context.Background()
	cityID := primitive.NewObjectID()

	m.placeRepo.On("List", ctx, mock.Anything).Return([]entity.Place{}, int64(0), nil)
	m.cityRepo.On("Exists", ctx, cityID).Return(true, nil)

	result, err := service.ListPlaces(ctx, cityID.Hex(), url.Values{})

	require.NoError(t, err)
	assert.Empty(t, result.Places)
	assert.Equal(t, 0, result.Pagination.TotalPages)
}

func TestListPlaces_MissingCity(t *testing.T) {
	service, m := newPlaceServiceWithMocks()
	ctx := context.Background()
	cityID := primitive.NewObjectID()

	m.placeRepo.On("List", ctx, mock.Anything).Return([]entity.Place{}, int64(0), nil)
	m.cityRepo.On("Exists", ctx, cityID).Return(false, nil)

	result, err := service.ListPlaces(ctx, cityID.Hex(), url.Values{})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "City not found")
}

func TestListPlaces_InvalidFilter(t *testing.T) {
	service, m := newPlaceServiceWithMocks()

	_, err := service.ListPlaces(context.Background(), primitive.NewObjectID().Hex(), url.Values{"min_rating": {"high"}})

	assert.ErrorIs(t, err, ErrValidation)
	m.placeRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestGetPlace_Links(t *testing.T) {
	service, m := newPlaceServiceWithMocks()
	ctx := context.Background()
	cityID := primitive.NewObjectID()
	place := placeRated("A", 4, "cafe")

	m.placeRepo.On("GetByID", ctx, cityID, place.ID).Return(&place, nil)

	result, err := service.GetPlace(ctx, cityID.Hex(), place.ID.Hex())

	require.NoError(t, err)
	assert.Equal(t, place.ID, result.Data.ID)
	assert.Equal(t, "/api/cities/"+cityID.Hex(), result.Links.City)
	assert.Equal(t, "/api/cities/"+cityID.Hex()+"/places/"+place.ID.Hex(), result.Links.Self)
}

func TestGetPlace_InvalidPlaceID(t *testing.T) {
	service, _ := newPlaceServiceWithMocks()

	_, err := service.GetPlace(context.Background(), primitive.NewObjectID().Hex(), "xyz")

	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.EqualError(t, err, "Invalid place ID format")
}

func TestGetPlace_NotFound(t *testing.T) {
	service, m := newPlaceServiceWithMocks()
	ctx := context.Background()
	cityID, placeID := primitive.NewObjectID(), primitive.NewObjectID()

	m.placeRepo.On("GetByID", ctx, cityID, placeID).Return(nil, repository.ErrPlaceNotFound)

	_, err := service.GetPlace(ctx, cityID.Hex(), placeID.Hex())

	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Place not found")
}

func TestCreatePlace_Success(t *testing.T) {
	service, m := newPlaceServiceWithMocks()
	ctx := context.Background()
	cityID := primitive.NewObjectID()

	req := placeInput(t, `{
		"place_id": "P1",
		"info": {"name": " Cafe A ", "type": ["cafe"]},
		"location": {
			"address": {"street": "1 Main St", "city": "London", "postcode": "N1"},
			"coordinates": {"latitude": "51.5", "longitude": -0.12}
		},
		"business_hours": {"Monday": {"open": "08:00", "close": "18:00"}}
	}`)

	m.placeRepo.On("Add", ctx, cityID, mock.AnythingOfType("*entity.Place")).Return(nil)
	m.publisher.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	place, err := service.CreatePlace(ctx, cityID.Hex(), req)

	require.NoError(t, err)
	assert.False(t, place.ID.IsZero())
	assert.Equal(t, "Cafe A", place.Info.Name)
	assert.Equal(t, entity.InfoStatusOpen, place.Info.Status)
	assert.Equal(t, 51.5, place.Location.Coordinates.Latitude)
	assert.Equal(t, -0.12, place.Location.Coordinates.Longitude)
	assert.Contains(t, place.BusinessHours, "monday")
	assert.Equal(t, 0, place.Ratings.ReviewCount)
	assert.Empty(t, place.Ratings.RecentReviews)

	require.Len(t, m.publisher.Messages, 1)
	var event entity.PlaceEvent
	require.NoError(t, json.Unmarshal(m.publisher.Messages[0], &event))
	assert.Equal(t, entity.EventPlaceCreated, event.EventType)
	assert.Equal(t, place.ID.Hex(), event.PlaceID)
	assert.NotEmpty(t, event.EventID)
}

func TestCreatePlace_MissingCoordinates(t *testing.T) {
	service, m := newPlaceServiceWithMocks()

	req := placeInput(t, `{"place_id":"P1","info":{"name":"A","type":["cafe"]},"location":{"address":{"street":"x"}}}`)

	_, err := service.CreatePlace(context.Background(), primitive.NewObjectID().Hex(), req)

	assert.ErrorIs(t, err, ErrValidation)
	fe, ok := validation.AsFieldError(err)
	require.True(t, ok)
	assert.Equal(t, "location.coordinates", fe.Field)
	m.placeRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePlace_CityNotFound(t *testing.T) {
	service, m := newPlaceServiceWithMocks()
	ctx := context.Background()
	cityID := primitive.NewObjectID()

	req := placeInput(t, `{"place_id":"P1","info":{"name":"A","type":["cafe"]},
		"location":{"address":{"street":"x"},"coordinates":{"latitude":1,"longitude":2}}}`)
	m.placeRepo.On("Add", ctx, cityID, mock.Anything).Return(repository.ErrCityNotFound)

	_, err := service.CreatePlace(ctx, cityID.Hex(), req)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, m.publisher.Messages)
}

func TestCreatePlace_PublishErrorIgnored(t *testing.T) {
	service, m := newPlaceServiceWithMocks()
	ctx := context.Background()
	cityID := primitive.NewObjectID()

	req := placeInput(t, `{"place_id":"P1","info":{"name":"A","type":["cafe"]},
		"location":{"address":{"street":"x"},"coordinates":{"latitude":1,"longitude":2}}}`)
	m.placeRepo.On("Add", ctx, cityID, mock.Anything).Return(nil)
	m.publisher.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(errors.New("kafka error"))

	place, err := service.CreatePlace(ctx, cityID.Hex(), req)

	assert.NoError(t, err)
	assert.NotNil(t, place)
}

func TestUpdatePlace_Success(t *testing.T) {
	service, m := newPlaceServiceWithMocks()
	ctx := context.Background()
	cityID, placeID := primitive.NewObjectID(), primitive.NewObjectID()
	name := "Renamed"

	req := &entity.UpdatePlaceRequest{
		Info:           &entity.PlaceInfoPatch{Name: &name},
		ServiceOptions: map[string]map[string]bool{"dining": {"takeaway": true}},
	}
	expected := bson.M{"info.name": "Renamed", "service_options.dining.takeaway": true}
	m.placeRepo.On("Update", ctx, cityID, placeID, expected).Return(nil)

	result, err := service.UpdatePlace(ctx, cityID.Hex(), placeID.Hex(), req)

	require.NoError(t, err)
	assert.Equal(t, "Place updated successfully", result.Message)
	assert.Equal(t, []string{"info.name", "service_options.dining.takeaway"}, result.UpdatedFields)
	m.cache.AssertCalled(t, "Invalidate", ctx)
}

func TestUpdatePlace_NothingRecognised(t *testing.T) {
	service, m := newPlaceServiceWithMocks()

	req := &entity.UpdatePlaceRequest{
		ServiceOptions: map[string]map[string]bool{"dining": {"teleport": true}},
	}

	_, err := service.UpdatePlace(context.Background(), primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex(), req)

	assert.ErrorIs(t, err, ErrValidation)
	m.placeRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePlace_NoChanges(t *testing.T) {
	service, m := newPlaceServiceWithMocks()
	ctx := context.Background()
	cityID, placeID := primitive.NewObjectID(), primitive.NewObjectID()
	name := "Same"

	m.placeRepo.On("Update", ctx, cityID, placeID, mock.Anything).Return(repository.ErrNotModified)

	_, err := service.UpdatePlace(ctx, cityID.Hex(), placeID.Hex(), &entity.UpdatePlaceRequest{Info: &entity.PlaceInfoPatch{Name: &name}})

	assert.ErrorIs(t, err, ErrNoChanges)
}

func TestUpdatePlaceStatus(t *testing.T) {
	service, m := newPlaceServiceWithMocks()
	ctx := context.Background()
	cityID, placeID := primitive.NewObjectID(), primitive.NewObjectID()

	m.placeRepo.On("Update", ctx, cityID, placeID, bson.M{"info.status": "closed"}).Return(nil)

	result, err := service.UpdatePlaceStatus(ctx, cityID.Hex(), placeID.Hex(), &entity.UpdatePlaceStatusRequest{Status: "closed"})

	require.NoError(t, err)
	assert.Equal(t, "Place status updated to closed", result.Message)
}

func TestUpdatePlaceStatus_AlreadySet(t *testing.T) {
	service, m := newPlaceServiceWithMocks()
	ctx := context.Background()
	cityID, placeID := primitive.NewObjectID(), primitive.NewObjectID()

	m.placeRepo.On("Update", ctx, cityID, placeID, mock.Anything).Return(repository.ErrNotModified)

	_, err := service.UpdatePlaceStatus(ctx, cityID.Hex(), placeID.Hex(), &entity.UpdatePlaceStatusRequest{Status: "operational"})

	assert.ErrorIs(t, err, ErrNoChanges)
	assert.EqualError(t, err, "Place status is already set to operational")
}

func TestUpdatePlaceStatus_InvalidStatus(t *testing.T) {
	service, _ := newPlaceServiceWithMocks()

	_, err := service.UpdatePlaceStatus(context.Background(), primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex(),
		&entity.UpdatePlaceStatusRequest{Status: "open"})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeletePlace(t *testing.T) {
	service, m := newPlaceServiceWithMocks()
	ctx := context.Background()
	cityID, placeID := primitive.NewObjectID(), primitive.NewObjectID()

	m.placeRepo.On("Delete", ctx, cityID, placeID).Return(nil)
	m.publisher.On("PublishMessage", ctx, placeID.Hex(), mock.Anything).Return(nil)

	err := service.DeletePlace(ctx, cityID.Hex(), placeID.Hex())

	require.NoError(t, err)
	require.Len(t, m.publisher.Messages, 1)
	assert.Contains(t, string(m.publisher.Messages[0]), entity.EventPlaceDeleted)
}

func TestDeletePlace_NotFound(t *testing.T) {
	service, m := newPlaceServiceWithMocks()
	ctx := context.Background()
	cityID, placeID := primitive.NewObjectID(), primitive.NewObjectID()

	m.placeRepo.On("Delete", ctx, cityID, placeID).Return(repository.ErrPlaceNotFound)

	err := service.DeletePlace(ctx, cityID.Hex(), placeID.Hex())

	assert.ErrorIs(t, err, ErrNotFound)
}
