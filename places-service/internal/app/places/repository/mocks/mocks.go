package mocks

import (
	"context"
	"time"

	"foodplaces/places-service/internal/app/places/entity"
	"foodplaces/places-service/internal/app/places/query"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockCityRepository мок для CityRepository
type MockCityRepository struct {
	mock.Mock
}

func (m *MockCityRepository) List(ctx context.Context, q query.CityListQuery) ([]entity.City, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.City), args.Get(1).(int64), args.Error(2)
}

func (m *MockCityRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.City, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.City), args.Error(1)
}

func (m *MockCityRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCityRepository) Create(ctx context.Context, city *entity.City) error {
	args := m.Called(ctx, city)
	return args.Error(0)
}

func (m *MockCityRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	args := m.Called(ctx, id, set)
	return args.Error(0)
}

func (m *MockCityRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCityRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockPlaceRepository мок для PlaceRepository
type MockPlaceRepository struct {
	mock.Mock
}

func (m *MockPlaceRepository) List(ctx context.Context, q *query.PlaceListQuery) ([]entity.Place, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.Place), args.Get(1).(int64), args.Error(2)
}

func (m *MockPlaceRepository) GetByID(ctx context.Context, cityID, placeID primitive.ObjectID) (*entity.Place, error) {
	args := m.Called(ctx, cityID, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Place), args.Error(1)
}

func (m *MockPlaceRepository) Exists(ctx context.Context, cityID, placeID primitive.ObjectID) error {
	args := m.Called(ctx, cityID, placeID)
	return args.Error(0)
}

func (m *MockPlaceRepository) Add(ctx context.Context, cityID primitive.ObjectID, place *entity.Place) error {
	args := m.Called(ctx, cityID, place)
	return args.Error(0)
}

func (m *MockPlaceRepository) Update(ctx context.Context, cityID, placeID primitive.ObjectID, set bson.M) error {
	args := m.Called(ctx, cityID, placeID, set)
	return args.Error(0)
}

func (m *MockPlaceRepository) Delete(ctx context.Context, cityID, placeID primitive.ObjectID) error {
	args := m.Called(ctx, cityID, placeID)
	return args.Error(0)
}

func (m *MockPlaceRepository) RecomputeRatings(ctx context.Context, cityID, placeID primitive.ObjectID) (entity.RatingSummary, error) {
	args := m.Called(ctx, cityID, placeID)
	return args.Get(0).(entity.RatingSummary), args.Error(1)
}

func (m *MockPlaceRepository) RatingSnapshots(ctx context.Context) ([]entity.PlaceRatingSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PlaceRatingSnapshot), args.Error(1)
}

// MockReviewRepository мок для ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) List(ctx context.Context, q *query.ReviewListQuery) ([]entity.Review, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, cityID, placeID, reviewID primitive.ObjectID) (*entity.Review, error) {
	args := m.Called(ctx, cityID, placeID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewRepository) Add(ctx context.Context, cityID, placeID primitive.ObjectID, review *entity.Review) error {
	args := m.Called(ctx, cityID, placeID, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, cityID, placeID, reviewID primitive.ObjectID, set bson.M) error {
	args := m.Called(ctx, cityID, placeID, reviewID, set)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, cityID, placeID, reviewID primitive.ObjectID) error {
	args := m.Called(ctx, cityID, placeID, reviewID)
	return args.Error(0)
}

// MockUserRepository мок для UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockTokenRepository мок для TokenRepository
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) AddToBlacklist(ctx context.Context, token string, expiresAt time.Time) error {
	args := m.Called(ctx, token, expiresAt)
	return args.Error(0)
}

func (m *MockTokenRepository) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

// MockMessagePublisher мок для Kafka MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
	Messages [][]byte
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	m.Messages = append(m.Messages, value)
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockCityListCache мок для кеша списка городов
type MockCityListCache struct {
	mock.Mock
}

func (m *MockCityListCache) Key(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCityListCache) Get(ctx context.Context, key string) (*entity.CityListResult, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CityListResult), args.Error(1)
}

func (m *MockCityListCache) Set(ctx context.Context, key string, result *entity.CityListResult) error {
	args := m.Called(ctx, key, result)
	return args.Error(0)
}

func (m *MockCityListCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
