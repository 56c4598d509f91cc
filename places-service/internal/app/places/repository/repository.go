package repository

import (
	"context"
	"errors"
	"time"

	"foodplaces/places-service/internal/app/places/entity"
	"foodplaces/places-service/internal/app/places/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrCityNotFound   = errors.New("city not found")
	ErrPlaceNotFound  = errors.New("place not found")
	ErrReviewNotFound = errors.New("review not found")
	ErrNotModified    = errors.New("document matched but not modified")
	ErrDuplicateCity  = errors.New("city already exists")
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateUser  = errors.New("user already exists")
)

const serviceName = "places-service"

// CityRepository - корневые документы коллекции
type CityRepository interface {
	List(ctx context.Context, q query.CityListQuery) ([]entity.City, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.City, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	Create(ctx context.Context, city *entity.City) error
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

// PlaceRepository - места как элементы массива places. Пути в set
// указываются относительно документа места, например "info.name"
type PlaceRepository interface {
	List(ctx context.Context, q *query.PlaceListQuery) ([]entity.Place, int64, error)
	GetByID(ctx context.Context, cityID, placeID primitive.ObjectID) (*entity.Place, error)
	Exists(ctx context.Context, cityID, placeID primitive.ObjectID) error
	Add(ctx context.Context, cityID primitive.ObjectID, place *entity.Place) error
	Update(ctx context.Context, cityID, placeID primitive.ObjectID, set bson.M) error
	Delete(ctx context.Context, cityID, placeID primitive.ObjectID) error

	RecomputeRatings(ctx context.Context, cityID, placeID primitive.ObjectID) (entity.RatingSummary, error)
	RatingSnapshots(ctx context.Context) ([]entity.PlaceRatingSnapshot, error)
}

// ReviewRepository - отзывы внутри ratings.recent_reviews места.
// Агрегат рейтинга здесь не пересчитывается
type ReviewRepository interface {
	List(ctx context.Context, q *query.ReviewListQuery) ([]entity.Review, int64, error)
	GetByID(ctx context.Context, cityID, placeID, reviewID primitive.ObjectID) (*entity.Review, error)
	Add(ctx context.Context, cityID, placeID primitive.ObjectID, review *entity.Review) error
	Update(ctx context.Context, cityID, placeID, reviewID primitive.ObjectID, set bson.M) error
	Delete(ctx context.Context, cityID, placeID, reviewID primitive.ObjectID) error
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	EnsureIndexes(ctx context.Context) error
}

// TokenRepository - черный список отозванных токенов
type TokenRepository interface {
	AddToBlacklist(ctx context.Context, token string, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}
