package repository

import (
	"context"
	"errors"
	"fmt"

	"foodplaces/pkg/metrics"
	"foodplaces/places-service/internal/app/places/entity"
	"foodplaces/places-service/internal/app/places/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type placeRepository struct {
	collection *mongo.Collection
}

// NewPlaceRepository создает репозиторий мест. Каждое изменение - одна
// атомарная операция над документом города
func NewPlaceRepository(collection *mongo.Collection) PlaceRepository {
	return &placeRepository{collection: collection}
}

// List исполняет pipeline списка и отдельный pipeline подсчета
func (r *placeRepository) List(ctx context.Context, q *query.PlaceListQuery) ([]entity.Place, int64, error) {
	total, err := aggregateCount(ctx, r.collection, q.CountPipeline())
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entity.Place{}, 0, nil
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpAggregate, r.collection.Name())
	cursor, err := r.collection.Aggregate(ctx, q.Pipeline())
	if err != nil {
		timer.Done(err)
		return nil, 0, fmt.Errorf("failed to aggregate places: %w", err)
	}
	defer cursor.Close(ctx)

	places := []entity.Place{}
	err = cursor.All(ctx, &places)
	timer.Done(err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode places: %w", err)
	}

	return places, total, nil
}

// GetByID получает одно место проекцией $elemMatch
func (r *placeRepository) GetByID(ctx context.Context, cityID, placeID primitive.ObjectID) (*entity.Place, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpFind, r.collection.Name())

	opts := options.FindOne().SetProjection(bson.M{
		"places": bson.M{"$elemMatch": bson.M{"_id": placeID}},
	})

	var city entity.City
	err := r.collection.FindOne(ctx, bson.M{"_id": cityID}, opts).Decode(&city)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			timer.Done(nil)
			return nil, ErrCityNotFound
		}
		timer.Done(err)
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	timer.Done(nil)

	if len(city.Places) == 0 {
		return nil, ErrPlaceNotFound
	}

	return &city.Places[0], nil
}

// Exists возвращает ErrCityNotFound или ErrPlaceNotFound, если места нет
func (r *placeRepository) Exists(ctx context.Context, cityID, placeID primitive.ObjectID) error {
	return locate(ctx, r.collection, cityID, placeID)
}

// Add добавляет место в конец массива places города
func (r *placeRepository) Add(ctx context.Context, cityID primitive.ObjectID, place *entity.Place) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, r.collection.Name())

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": cityID},
		bson.M{"$push": bson.M{"places": place}},
	)
	timer.Done(err)
	if err != nil {
		return fmt.Errorf("failed to add place: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrCityNotFound
	}

	return nil
}

// Update применяет $set к полям места через позиционный оператор places.$
func (r *placeRepository) Update(ctx context.Context, cityID, placeID primitive.ObjectID, set bson.M) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, r.collection.Name())

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": cityID, "places._id": placeID},
		bson.M{"$set": prefixed("places.$.", set)},
	)
	timer.Done(err)
	if err != nil {
		return fmt.Errorf("failed to update place: %w", err)
	}

	if result.MatchedCount == 0 {
		return locate(ctx, r.collection, cityID, placeID)
	}
	if result.ModifiedCount == 0 {
		return ErrNotModified
	}

	return nil
}

// Delete удаляет место из массива places
func (r *placeRepository) Delete(ctx context.Context, cityID, placeID primitive.ObjectID) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, r.collection.Name())

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": cityID, "places._id": placeID},
		bson.M{"$pull": bson.M{"places": bson.M{"_id": placeID}}},
	)
	timer.Done(err)
	if err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}

	if result.MatchedCount == 0 {
		return locate(ctx, r.collection, cityID, placeID)
	}

	return nil
}

// RecomputeRatings пересчитывает агрегат места из его отзывов одной
// операцией findAndModify и возвращает записанное значение
func (r *placeRepository) RecomputeRatings(ctx context.Context, cityID, placeID primitive.ObjectID) (entity.RatingSummary, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, r.collection.Name())

	opts := options.FindOneAndUpdate().
		SetProjection(bson.M{"places": bson.M{"$elemMatch": bson.M{"_id": placeID}}}).
		SetReturnDocument(options.After)

	var doc struct {
		Places []struct {
			Ratings entity.RatingSummary `bson:"ratings"`
		} `bson:"places"`
	}
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": cityID, "places._id": placeID},
		query.RecomputeRatings(placeID),
		opts,
	).Decode(&doc)

	if errors.Is(err, mongo.ErrNoDocuments) {
		timer.Done(nil)
		if err := locate(ctx, r.collection, cityID, placeID); err != nil {
			return entity.RatingSummary{}, err
		}
		return entity.RatingSummary{}, ErrPlaceNotFound
	}
	timer.Done(err)
	if err != nil {
		return entity.RatingSummary{}, fmt.Errorf("failed to recompute ratings: %w", err)
	}

	if len(doc.Places) == 0 {
		return entity.RatingSummary{}, ErrPlaceNotFound
	}
	return doc.Places[0].Ratings, nil
}

// RatingSnapshots выгружает сохранённые агрегаты всех мест для сверки
func (r *placeRepository) RatingSnapshots(ctx context.Context) ([]entity.PlaceRatingSnapshot, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpAggregate, r.collection.Name())

	cursor, err := r.collection.Aggregate(ctx, query.RatingSnapshots())
	if err != nil {
		timer.Done(err)
		return nil, fmt.Errorf("failed to aggregate rating snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	snapshots := []entity.PlaceRatingSnapshot{}
	err = cursor.All(ctx, &snapshots)
	timer.Done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rating snapshots: %w", err)
	}

	return snapshots, nil
}
