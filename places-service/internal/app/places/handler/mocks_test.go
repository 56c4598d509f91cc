package handler

import (
	"context"
	"net/url"

	"foodplaces/places-service/internal/app/places/entity"

	"github.com/stretchr/testify/mock"
)

type MockCityService struct {
	mock.Mock
}

func (m *MockCityService) ListCities(ctx context.Context, values url.Values) (*entity.CityListResult, error) {
	args := m.Called(ctx, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CityListResult), args.Error(1)
}

func (m *MockCityService) GetCity(ctx context.Context, cityID string, values url.Values) (*entity.CityDetail, error) {
	args := m.Called(ctx, cityID, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CityDetail), args.Error(1)
}

func (m *MockCityService) CreateCity(ctx context.Context, req *entity.CreateCityRequest) (*entity.City, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.City), args.Error(1)
}

func (m *MockCityService) UpdateCity(ctx context.Context, cityID string, req *entity.UpdateCityRequest) (*entity.UpdatedResponse, error) {
	args := m.Called(ctx, cityID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UpdatedResponse), args.Error(1)
}

func (m *MockCityService) DeleteCity(ctx context.Context, cityID string) error {
	args := m.Called(ctx, cityID)
	return args.Error(0)
}

type MockPlaceService struct {
	mock.Mock
}

func (m *MockPlaceService) ListPlaces(ctx context.Context, cityID string, values url.Values) (*entity.PlaceListResult, error) {
	args := m.Called(ctx, cityID, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PlaceListResult), args.Error(1)
}

func (m *MockPlaceService) GetPlace(ctx context.Context, cityID, placeID string) (*entity.PlaceDetail, error) {
	args := m.Called(ctx, cityID, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PlaceDetail), args.Error(1)
}

func (m *MockPlaceService) CreatePlace(ctx context.Context, cityID string, req *entity.PlaceInput) (*entity.Place, error) {
	args := m.Called(ctx, cityID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Place), args.Error(1)
}

func (m *MockPlaceService) UpdatePlace(ctx context.Context, cityID, placeID string, req *entity.UpdatePlaceRequest) (*entity.UpdatedResponse, error) {
	args := m.Called(ctx, cityID, placeID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UpdatedResponse), args.Error(1)
}

func (m *MockPlaceService) UpdatePlaceStatus(ctx context.Context, cityID, placeID string, req *entity.UpdatePlaceStatusRequest) (*entity.UpdatedResponse, error) {
	args := m.Called(ctx, cityID, placeID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UpdatedResponse), args.Error(1)
}

func (m *MockPlaceService) DeletePlace(ctx context.Context, cityID, placeID string) error {
	args := m.Called(ctx, cityID, placeID)
	return args.Error(0)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListReviews(ctx context.Context, cityID, placeID string, values url.Values) (*entity.ReviewListResult, error) {
	args := m.Called(ctx, cityID, placeID, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReviewListResult), args.Error(1)
}

func (m *MockReviewService) GetReview(ctx context.Context, cityID, placeID, reviewID string) (*entity.ReviewDetail, error) {
	args := m.Called(ctx, cityID, placeID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReviewDetail), args.Error(1)
}

func (m *MockReviewService) CreateReview(ctx context.Context, cityID, placeID string, req *entity.CreateReviewRequest) (*entity.ReviewCreatedResponse, error) {
	args := m.Called(ctx, cityID, placeID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReviewCreatedResponse), args.Error(1)
}

func (m *MockReviewService) UpdateReview(ctx context.Context, cityID, placeID, reviewID string, req *entity.UpdateReviewRequest) (*entity.UpdatedResponse, error) {
	args := m.Called(ctx, cityID, placeID, reviewID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UpdatedResponse), args.Error(1)
}

func (m *MockReviewService) DeleteReview(ctx context.Context, cityID, placeID, reviewID string) (*entity.RatingResponse, error) {
	args := m.Called(ctx, cityID, placeID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RatingResponse), args.Error(1)
}

func (m *MockReviewService) RecomputeRating(ctx context.Context, cityID, placeID string) (*entity.RatingResponse, error) {
	args := m.Called(ctx, cityID, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RatingResponse), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*entity.TokenResponse, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TokenResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) Verify(ctx context.Context, token string) (*entity.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Identity), args.Error(1)
}
