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

type cityRepository struct {
	collection *mongo.Collection
}

// NewCityRepository создает репозиторий городов поверх коллекции businesses
func NewCityRepository(collection *mongo.Collection) CityRepository {
	return &cityRepository{collection: collection}
}

// EnsureIndexes создает уникальный индекс по city_id и индекс по places._id
func (r *cityRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "city_id", Value: 1}},
			Options: options.Index().SetName("city_id_idx").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "places._id", Value: 1}},
			Options: options.Index().SetName("places_id_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create city indexes: %w", err)
	}
	return nil
}

// List возвращает страницу городов и общее число совпадений
func (r *cityRepository) List(ctx context.Context, q query.CityListQuery) ([]entity.City, int64, error) {
	countTimer := metrics.NewDbTimer(serviceName, metrics.DbOpCount, r.collection.Name())
	total, err := r.collection.CountDocuments(ctx, q.Filter)
	countTimer.Done(err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count cities: %w", err)
	}
	if total == 0 {
		return []entity.City{}, 0, nil
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpFind, r.collection.Name())
	opts := options.Find().
		SetSort(q.Sort).
		SetSkip(q.Page.Skip()).
		SetLimit(q.Page.Limit())

	cursor, err := r.collection.Find(ctx, q.Filter, opts)
	if err != nil {
		timer.Done(err)
		return nil, 0, fmt.Errorf("failed to find cities: %w", err)
	}
	defer cursor.Close(ctx)

	cities := []entity.City{}
	err = cursor.All(ctx, &cities)
	timer.Done(err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode cities: %w", err)
	}

	return cities, total, nil
}

func (r *cityRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.City, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpFind, r.collection.Name())

	var city entity.City
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&city)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			timer.Done(nil)
			return nil, ErrCityNotFound
		}
		timer.Done(err)
		return nil, fmt.Errorf("failed to get city: %w", err)
	}
	timer.Done(nil)

	return &city, nil
}

func (r *cityRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpCount, r.collection.Name())

	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	timer.Done(err)
	if err != nil {
		return false, fmt.Errorf("failed to check city: %w", err)
	}

	return count > 0, nil
}

// Create вставляет город; повтор city_id нарушает уникальный индекс
func (r *cityRepository) Create(ctx context.Context, city *entity.City) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, r.collection.Name())

	if city.Places == nil {
		city.Places = []entity.Place{}
	}

	result, err := r.collection.InsertOne(ctx, city)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			timer.Done(nil)
			return ErrDuplicateCity
		}
		timer.Done(err)
		return fmt.Errorf("failed to create city: %w", err)
	}
	timer.Done(nil)

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		city.ID = oid
	}

	return nil
}

// Update применяет $set; совпадение без изменений возвращает ErrNotModified
func (r *cityRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, r.collection.Name())

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	timer.Done(err)
	if err != nil {
		return fmt.Errorf("failed to update city: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrCityNotFound
	}
	if result.ModifiedCount == 0 {
		return ErrNotModified
	}

	return nil
}

func (r *cityRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, r.collection.Name())

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	timer.Done(err)
	if err != nil {
		return fmt.Errorf("failed to delete city: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrCityNotFound
	}

	return nil
}
