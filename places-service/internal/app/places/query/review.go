package query

import (
	"net/url"
	"strings"

	"foodplaces/places-service/internal/app/places/entity"
	"foodplaces/places-service/internal/app/places/util"
	"foodplaces/places-service/internal/app/places/validation"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const defaultReviewSort = "date_posted"

var reviewSortFields = []string{"date_posted", "rating"}

// ReviewListQuery - pipeline списка отзывов места
type ReviewListQuery struct {
	CityID  primitive.ObjectID
	PlaceID primitive.ObjectID
	Page    util.Page
	Applied entity.FiltersApplied

	filter bson.M
	sort   bson.D
}

// ReviewList строит запрос отзывов места. В отличие от списка городов
// неизвестное поле сортировки - ошибка валидации. Даты сравниваются как строки ISO
func ReviewList(cityID, placeID primitive.ObjectID, values url.Values) (*ReviewListQuery, error) {
	q := &ReviewListQuery{CityID: cityID, PlaceID: placeID, Page: pageOf(values), filter: bson.M{}}

	if raw := strings.TrimSpace(values.Get("min_rating")); raw != "" {
		minRating, err := validation.ValidateRating("min_rating", raw)
		if err != nil {
			return nil, err
		}
		q.filter["rating"] = bson.M{"$gte": minRating}
		q.Applied.MinRating = &minRating
	}

	dates := bson.M{}
	if start := strings.TrimSpace(values.Get("start_date")); start != "" {
		dates["$gte"] = start
		q.Applied.StartDate = start
	}
	if end := strings.TrimSpace(values.Get("end_date")); end != "" {
		dates["$lte"] = end
		q.Applied.EndDate = end
	}
	if len(dates) > 0 {
		q.filter["date_posted"] = dates
	}

	field := values.Get("sort_by")
	if field == "" {
		field = defaultReviewSort
	}
	if field != reviewSortFields[0] && field != reviewSortFields[1] {
		return nil, validation.NewFieldError("sort_by", "must be one of: "+strings.Join(reviewSortFields, ", "))
	}
	order, dir := direction(values.Get("sort_order"), SortDesc)
	q.sort = bson.D{{Key: field, Value: dir}, {Key: "_id", Value: 1}}
	q.Applied.Sort = entity.SortApplied{Field: field, Direction: order}

	return q, nil
}

func (q *ReviewListQuery) filterStages() mongo.Pipeline {
	pipeline := placeReviews(q.CityID, q.PlaceID)
	if len(q.filter) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: q.filter}})
	}
	return pipeline
}

// Pipeline возвращает страницу отзывов, элементы - документы отзывов
func (q *ReviewListQuery) Pipeline() mongo.Pipeline {
	pipeline := append(q.filterStages(), bson.D{{Key: "$sort", Value: q.sort}})
	return paginate(pipeline, q.Page)
}

func (q *ReviewListQuery) CountPipeline() mongo.Pipeline {
	return withCount(q.filterStages())
}

// ReviewByID находит один отзыв места
func ReviewByID(cityID, placeID, reviewID primitive.ObjectID) mongo.Pipeline {
	return append(placeReviews(cityID, placeID),
		bson.D{{Key: "$match", Value: bson.M{"_id": reviewID}}},
		bson.D{{Key: "$limit", Value: 1}},
	)
}

// placeReviews разворачивает отзывы одного места в отдельные документы
func placeReviews(cityID, placeID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": cityID}}},
		{{Key: "$unwind", Value: "$places"}},
		{{Key: "$match", Value: bson.M{"places._id": placeID}}},
		{{Key: "$unwind", Value: "$places.ratings.recent_reviews"}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$places.ratings.recent_reviews"}}},
	}
}
