package repository

import (
	"context"
	"fmt"

	"foodplaces/pkg/metrics"
	"foodplaces/places-service/internal/app/places/entity"
	"foodplaces/places-service/internal/app/places/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const reviewsPath = "ratings.recent_reviews"

type reviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository создает репозиторий отзывов
func NewReviewRepository(collection *mongo.Collection) ReviewRepository {
	return &reviewRepository{collection: collection}
}

func (r *reviewRepository) List(ctx context.Context, q *query.ReviewListQuery) ([]entity.Review, int64, error) {
	total, err := aggregateCount(ctx, r.collection, q.CountPipeline())
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entity.Review{}, 0, nil
	}

	reviews, err := r.aggregate(ctx, q.Pipeline())
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// GetByID при промахе уточняет, какого уровня иерархии нет
func (r *reviewRepository) GetByID(ctx context.Context, cityID, placeID, reviewID primitive.ObjectID) (*entity.Review, error) {
	reviews, err := r.aggregate(ctx, query.ReviewByID(cityID, placeID, reviewID))
	if err != nil {
		return nil, err
	}

	if len(reviews) == 0 {
		if err := locate(ctx, r.collection, cityID, placeID); err != nil {
			return nil, err
		}
		return nil, ErrReviewNotFound
	}

	return &reviews[0], nil
}

func (r *reviewRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]entity.Review, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpAggregate, r.collection.Name())

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		timer.Done(err)
		return nil, fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []entity.Review{}
	err = cursor.All(ctx, &reviews)
	timer.Done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return reviews, nil
}

// Add добавляет отзыв в конец списка отзывов места
func (r *reviewRepository) Add(ctx context.Context, cityID, placeID primitive.ObjectID, review *entity.Review) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, r.collection.Name())

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": cityID, "places._id": placeID},
		bson.M{"$push": bson.M{"places.$." + reviewsPath: review}},
	)
	timer.Done(err)
	if err != nil {
		return fmt.Errorf("failed to add review: %w", err)
	}

	if result.MatchedCount == 0 {
		return locate(ctx, r.collection, cityID, placeID)
	}

	return nil
}

// Update меняет поля отзыва через arrayFilters place и review
func (r *reviewRepository) Update(ctx context.Context, cityID, placeID, reviewID primitive.ObjectID, set bson.M) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, r.collection.Name())

	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"place._id": placeID},
			bson.M{"review._id": reviewID},
		},
	})

	result, err := r.collection.UpdateOne(ctx,
		reviewFilter(cityID, placeID, reviewID),
		bson.M{"$set": prefixed("places.$[place]."+reviewsPath+".$[review].", set)},
		opts,
	)
	timer.Done(err)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	if result.MatchedCount == 0 {
		return r.missing(ctx, cityID, placeID)
	}
	if result.ModifiedCount == 0 {
		return ErrNotModified
	}

	return nil
}

// Delete удаляет отзыв оператором $pull
func (r *reviewRepository) Delete(ctx context.Context, cityID, placeID, reviewID primitive.ObjectID) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, r.collection.Name())

	result, err := r.collection.UpdateOne(ctx,
		reviewFilter(cityID, placeID, reviewID),
		bson.M{"$pull": bson.M{"places.$." + reviewsPath: bson.M{"_id": reviewID}}},
	)
	timer.Done(err)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if result.MatchedCount == 0 {
		return r.missing(ctx, cityID, placeID)
	}

	return nil
}

func (r *reviewRepository) missing(ctx context.Context, cityID, placeID primitive.ObjectID) error {
	if err := locate(ctx, r.collection, cityID, placeID); err != nil {
		return err
	}
	return ErrReviewNotFound
}

// reviewFilter совпадает только если отзыв существует в указанном месте
func reviewFilter(cityID, placeID, reviewID primitive.ObjectID) bson.M {
	return bson.M{
		"_id": cityID,
		"places": bson.M{"$elemMatch": bson.M{
			"_id":                placeID,
			reviewsPath + "._id": reviewID,
		}},
	}
}
