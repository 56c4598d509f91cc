package query

import (
	"net/url"
	"strings"

	"foodplaces/places-service/internal/app/places/entity"
	"foodplaces/places-service/internal/app/places/rating"
	"foodplaces/places-service/internal/app/places/util"
	"foodplaces/places-service/internal/app/places/validation"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const defaultPlaceSort = "name"

var placeSortPaths = map[string]string{
	"name":         "places.info.name",
	"rating":       "places.ratings.average_rating",
	"review_count": "places.ratings.review_count",
}

// PlaceListQuery - pipeline списка мест города
type PlaceListQuery struct {
	CityID  primitive.ObjectID
	Page    util.Page
	Applied entity.FiltersApplied

	conditions bson.A
	sort       bson.D
}

// PlaceList строит запрос мест города. Фильтры type, min_rating и флаги
// service_options.dining/meals объединяются через $and. Флаги принимают
// только "true"/"false", прочие значения игнорируются
func PlaceList(cityID primitive.ObjectID, values url.Values) (*PlaceListQuery, error) {
	q := &PlaceListQuery{CityID: cityID, Page: pageOf(values)}

	if placeType := strings.TrimSpace(values.Get("type")); placeType != "" {
		q.conditions = append(q.conditions, bson.M{"places.info.type": placeType})
		q.Applied.Type = placeType
	}

	if raw := strings.TrimSpace(values.Get("min_rating")); raw != "" {
		minRating, err := entity.ParseNumber(raw)
		if err != nil {
			return nil, validation.NewFieldError("min_rating", "must be a number")
		}
		q.conditions = append(q.conditions, bson.M{"places.ratings.average_rating": bson.M{"$gte": minRating}})
		q.Applied.MinRating = &minRating
	}

	for _, group := range entity.ServiceFilterGroups {
		for _, key := range group.Keys {
			var flag bool
			switch strings.ToLower(values.Get(key)) {
			case "true":
				flag = true
			case "false":
				flag = false
			default:
				continue
			}
			q.conditions = append(q.conditions, bson.M{"places." + group.Path(key): flag})
			if q.Applied.ServiceOptions == nil {
				q.Applied.ServiceOptions = map[string]map[string]bool{}
			}
			if q.Applied.ServiceOptions[group.Group] == nil {
				q.Applied.ServiceOptions[group.Group] = map[string]bool{}
			}
			q.Applied.ServiceOptions[group.Group][key] = flag
		}
	}

	field := values.Get("sort_by")
	path, ok := placeSortPaths[field]
	if !ok {
		field = defaultPlaceSort
		path = placeSortPaths[field]
	}
	order, dir := direction(values.Get("sort_order"), SortAsc)
	q.sort = bson.D{{Key: path, Value: dir}, {Key: "places._id", Value: 1}}
	q.Applied.Sort = entity.SortApplied{Field: field, Direction: order}

	return q, nil
}

func (q *PlaceListQuery) filterStages() mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": q.CityID}}},
		{{Key: "$unwind", Value: "$places"}},
	}
	if len(q.conditions) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"$and": q.conditions}}})
	}
	return pipeline
}

// Pipeline возвращает страницу мест, каждый элемент результата - документ места
func (q *PlaceListQuery) Pipeline() mongo.Pipeline {
	pipeline := append(q.filterStages(), bson.D{{Key: "$sort", Value: q.sort}})
	pipeline = paginate(pipeline, q.Page)
	return append(pipeline, bson.D{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$places"}}})
}

// CountPipeline повторяет стадии фильтрации без сортировки и пагинации
func (q *PlaceListQuery) CountPipeline() mongo.Pipeline {
	return withCount(q.filterStages())
}

// RecomputeRatings - update-pipeline, который пересчитывает агрегат места
// из его же отзывов внутри документа города. Чтение и запись - одна операция
func RecomputeRatings(placeID primitive.ObjectID) mongo.Pipeline {
	ratings := bson.M{"$mergeObjects": bson.A{"$$p.ratings", rating.SummaryExpr("$$p.ratings.recent_reviews")}}

	return mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"places": bson.M{"$map": bson.M{
				"input": "$places",
				"as":    "p",
				"in": bson.M{"$cond": bson.A{
					bson.M{"$eq": bson.A{"$$p._id", placeID}},
					bson.M{"$mergeObjects": bson.A{"$$p", bson.M{"ratings": ratings}}},
					"$$p",
				}},
			}},
		}}},
	}
}

// RatingSnapshots выгружает сохранённые агрегаты всех мест вместе с оценками отзывов
func RatingSnapshots() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$unwind", Value: "$places"}},
		{{Key: "$project", Value: bson.M{
			"_id":            0,
			"city_id":        "$_id",
			"place_id":       "$places._id",
			"average_rating": bson.M{"$ifNull": bson.A{"$places.ratings.average_rating", 0}},
			"review_count":   bson.M{"$ifNull": bson.A{"$places.ratings.review_count", 0}},
			"ratings":        bson.M{"$ifNull": bson.A{"$places.ratings.recent_reviews.rating", bson.A{}}},
		}}},
	}
}
