package handler

import (
	"context"
	"net/url"

	"foodplaces/places-service/internal/app/places/entity"
)

type CityServiceInterface interface {
	ListCities(ctx context.Context, values url.Values) (*entity.CityListResult, error)
	GetCity(ctx context.Context, cityID string, values url.Values) (*entity.CityDetail, error)
	CreateCity(ctx context.Context, req *entity.CreateCityRequest) (*entity.City, error)
	UpdateCity(ctx context.Context, cityID string, req *entity.UpdateCityRequest) (*entity.UpdatedResponse, error)
	DeleteCity(ctx context.Context, cityID string) error
}

type PlaceServiceInterface interface {
	ListPlaces(ctx context.Context, cityID string, values url.Values) (*entity.PlaceListResult, error)
	GetPlace(ctx context.Context, cityID, placeID string) (*entity.PlaceDetail, error)
	CreatePlace(ctx context.Context, cityID string, req *entity.PlaceInput) (*entity.Place, error)
	UpdatePlace(ctx context.Context, cityID, placeID string, req *entity.UpdatePlaceRequest) (*entity.UpdatedResponse, error)
	UpdatePlaceStatus(ctx context.Context, cityID, placeID string, req *entity.UpdatePlaceStatusRequest) (*entity.UpdatedResponse, error)
	DeletePlace(ctx context.Context, cityID, placeID string) error
}

type ReviewServiceInterface interface {
	ListReviews(ctx context.Context, cityID, placeID string, values url.Values) (*entity.ReviewListResult, error)
	GetReview(ctx context.Context, cityID, placeID, reviewID string) (*entity.ReviewDetail, error)
	CreateReview(ctx context.Context, cityID, placeID string, req *entity.CreateReviewRequest) (*entity.ReviewCreatedResponse, error)
	UpdateReview(ctx context.Context, cityID, placeID, reviewID string, req *entity.UpdateReviewRequest) (*entity.UpdatedResponse, error)
	DeleteReview(ctx context.Context, cityID, placeID, reviewID string) (*entity.RatingResponse, error)
	RecomputeRating(ctx context.Context, cityID, placeID string) (*entity.RatingResponse, error)
}

type AuthServiceInterface interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error)
	Login(ctx context.Context, username, password string) (*entity.TokenResponse, error)
	Logout(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (*entity.Identity, error)
}
