package query

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"foodplaces/places-service/internal/app/places/entity"
	"foodplaces/places-service/internal/app/places/util"
	"foodplaces/places-service/internal/app/places/validation"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const citySortField = "city_name"

// CityListQuery - фильтр, сортировка и страница для списка городов
type CityListQuery struct {
	Filter  bson.M
	Sort    bson.D
	Page    util.Page
	Applied entity.FiltersApplied
}

// CityList строит запрос списка городов. name - подстрока без учёта регистра,
// сортировка только по city_name: любое другое значение sort_by молча заменяется
func CityList(values url.Values) CityListQuery {
	filter := bson.M{}
	applied := entity.FiltersApplied{}

	if name := strings.TrimSpace(values.Get("name")); name != "" {
		filter["city_name"] = primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}
		applied.Name = name
	}

	order, dir := direction(values.Get("sort_order"), SortAsc)
	applied.Sort = entity.SortApplied{Field: citySortField, Direction: order}

	return CityListQuery{
		Filter:  filter,
		Sort:    bson.D{{Key: citySortField, Value: dir}, {Key: "_id", Value: 1}},
		Page:    pageOf(values),
		Applied: applied,
	}
}

// CacheKey однозначно описывает страницу списка для кеша
func (q CityListQuery) CacheKey() string {
	return fmt.Sprintf("name=%s&order=%s&pn=%d&ps=%d",
		url.QueryEscape(strings.ToLower(q.Applied.Name)), q.Applied.Sort.Direction, q.Page.Num, q.Page.Size)
}

// CityPlacesFilter отбирает места при получении города с include_places=true
type CityPlacesFilter struct {
	Include   bool
	MinRating float64
	MaxRating float64
	PlaceType string
}

// CityPlaces разбирает include_places, min_rating, max_rating и place_type.
// Границы рейтинга проверяются общим валидатором [0,5]
func CityPlaces(values url.Values) (CityPlacesFilter, error) {
	f := CityPlacesFilter{
		Include:   strings.EqualFold(values.Get("include_places"), "true"),
		MinRating: 0,
		MaxRating: 5,
		PlaceType: strings.TrimSpace(values.Get("place_type")),
	}

	if raw := values.Get("min_rating"); raw != "" {
		v, err := validation.ValidateRating("min_rating", raw)
		if err != nil {
			return f, err
		}
		f.MinRating = v
	}
	if raw := values.Get("max_rating"); raw != "" {
		v, err := validation.ValidateRating("max_rating", raw)
		if err != nil {
			return f, err
		}
		f.MaxRating = v
	}
	return f, nil
}

// Match проверяет место: рейтинг в [min,max] включительно и тег типа без учёта регистра
func (f CityPlacesFilter) Match(place entity.Place) bool {
	rating := place.Ratings.AverageRating
	if rating < f.MinRating || rating > f.MaxRating {
		return false
	}
	if f.PlaceType == "" {
		return true
	}
	for _, tag := range place.Info.Type {
		if strings.EqualFold(tag, f.PlaceType) {
			return true
		}
	}
	return false
}

// Apply возвращает места города, прошедшие фильтр, в исходном порядке
func (f CityPlacesFilter) Apply(places []entity.Place) []entity.Place {
	out := make([]entity.Place, 0, len(places))
	for _, p := range places {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Applied - эхо фильтров: границы по умолчанию не выводятся
func (f CityPlacesFilter) Applied() *entity.CityFilters {
	applied := &entity.CityFilters{}
	if f.MinRating > 0 {
		v := f.MinRating
		applied.MinRating = &v
	}
	if f.MaxRating < 5 {
		v := f.MaxRating
		applied.MaxRating = &v
	}
	if f.PlaceType != "" {
		v := f.PlaceType
		applied.PlaceType = &v
	}
	return applied
}
