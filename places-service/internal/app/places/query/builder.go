// Package query строит фильтры и aggregation pipeline для списков городов,
// мест и отзывов. Пакет не обращается к базе: репозиторий исполняет
// построенные спецификации, а эхо фильтров возвращается клиенту в ответе
package query

import (
	"net/url"
	"strings"

	"foodplaces/places-service/internal/app/places/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// direction переводит sort_order в направление сортировки MongoDB.
// Всё, кроме desc, считается asc
func direction(raw, fallback string) (string, int) {
	order := strings.ToLower(strings.TrimSpace(raw))
	if order == "" {
		order = fallback
	}
	if order == SortDesc {
		return SortDesc, -1
	}
	return SortAsc, 1
}

// pageOf разбирает параметры пагинации pn/ps
func pageOf(values url.Values) util.Page {
	return util.ParsePage(values.Get("pn"), values.Get("ps"))
}

func paginate(pipeline mongo.Pipeline, page util.Page) mongo.Pipeline {
	return append(pipeline,
		bson.D{{Key: "$skip", Value: page.Skip()}},
		bson.D{{Key: "$limit", Value: page.Limit()}},
	)
}

func withCount(pipeline mongo.Pipeline) mongo.Pipeline {
	return append(pipeline, bson.D{{Key: "$count", Value: "total"}})
}
