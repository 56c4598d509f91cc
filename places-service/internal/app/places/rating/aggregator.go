// Package rating - единственный источник агрегата рейтинга места.
// Средняя оценка и количество отзывов всегда выводятся из списка отзывов,
// инкрементальные изменения счётчиков не используются.
package rating

import (
	"math"

	"foodplaces/places-service/internal/app/places/entity"

	"go.mongodb.org/mongo-driver/bson"
)

// Recompute считает агрегат по отзывам места
func Recompute(reviews []entity.Review) entity.RatingSummary {
	values := make([]float64, 0, len(reviews))
	for _, r := range reviews {
		values = append(values, r.Rating)
	}
	return FromValues(values)
}

// FromValues считает агрегат по списку оценок. Пустой список даёт 0/0
func FromValues(values []float64) entity.RatingSummary {
	if len(values) == 0 {
		return entity.RatingSummary{}
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return entity.RatingSummary{
		AverageRating: Round1(sum / float64(len(values))),
		ReviewCount:   len(values),
	}
}

// Round1 округляет до одного знака после запятой, половина уходит вверх.
// Формула совпадает с SummaryExpr
func Round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// SummaryExpr - тот же агрегат в виде выражения агрегации MongoDB.
// reviews - путь к массиву отзывов места, например "$$p.ratings.recent_reviews"
func SummaryExpr(reviews string) bson.M {
	avg := bson.M{"$avg": reviews + ".rating"}
	rounded := bson.M{"$divide": bson.A{
		bson.M{"$floor": bson.M{"$add": bson.A{bson.M{"$multiply": bson.A{avg, 10}}, 0.5}}},
		10,
	}}

	return bson.M{
		"average_rating": bson.M{"$ifNull": bson.A{rounded, 0.0}},
		"review_count":   bson.M{"$size": bson.M{"$ifNull": bson.A{reviews, bson.A{}}}},
	}
}

// IsStale сообщает, расходится ли сохранённый агрегат с пересчитанным
func IsStale(stored, actual entity.RatingSummary) bool {
	return stored.ReviewCount != actual.ReviewCount ||
		math.Abs(stored.AverageRating-actual.AverageRating) > 1e-9
}
