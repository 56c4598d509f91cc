package repository

import (
	"context"
	"errors"
	"fmt"

	"foodplaces/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// locate определяет, какого уровня иерархии не хватает.
// nil означает, что город и место существуют
func locate(ctx context.Context, coll *mongo.Collection, cityID, placeID primitive.ObjectID) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpFind, coll.Name())

	var doc struct {
		Places []struct {
			ID primitive.ObjectID `bson:"_id"`
		} `bson:"places"`
	}
	opts := options.FindOne().SetProjection(bson.M{
		"_id":    1,
		"places": bson.M{"$elemMatch": bson.M{"_id": placeID}},
	})

	err := coll.FindOne(ctx, bson.M{"_id": cityID}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		timer.Done(nil)
		return ErrCityNotFound
	}
	timer.Done(err)
	if err != nil {
		return fmt.Errorf("failed to locate place: %w", err)
	}
	if len(doc.Places) == 0 {
		return ErrPlaceNotFound
	}
	return nil
}

// aggregateCount исполняет pipeline с финальной стадией $count
func aggregateCount(ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) (int64, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpCount, coll.Name())

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		timer.Done(err)
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		Total int64 `bson:"total"`
	}
	err = cursor.All(ctx, &result)
	timer.Done(err)
	if err != nil {
		return 0, fmt.Errorf("failed to decode count: %w", err)
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Total, nil
}

// prefixed переносит пути полей места под позиционный оператор
func prefixed(prefix string, set bson.M) bson.M {
	out := make(bson.M, len(set))
	for k, v := range set {
		out[prefix+k] = v
	}
	return out
}
