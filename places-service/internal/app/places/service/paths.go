package service

import (
	"foodplaces/places-service/internal/app/places/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const apiPrefix = "/api/cities/"

func cityLink(cityID string) string {
	return apiPrefix + cityID
}

func placeLink(cityID, placeID string) string {
	return cityLink(cityID) + "/places/" + placeID
}

func reviewLink(cityID, placeID, reviewID string) string {
	return placeLink(cityID, placeID) + "/reviews/" + reviewID
}

// parseID проверяет идентификатор из пути до любых обращений к хранилищу
func parseID(name, raw string) (primitive.ObjectID, error) {
	id, err := util.ParseIdentifier(raw)
	if err != nil {
		return id, newError(ErrInvalidFormat, "Invalid "+name+" ID format", err)
	}
	return id, nil
}

func parsePlacePath(rawCityID, rawPlaceID string) (cityID, placeID primitive.ObjectID, err error) {
	if cityID, err = parseID("city", rawCityID); err != nil {
		return
	}
	placeID, err = parseID("place", rawPlaceID)
	return
}

func parseReviewPath(rawCityID, rawPlaceID, rawReviewID string) (cityID, placeID, reviewID primitive.ObjectID, err error) {
	if cityID, placeID, err = parsePlacePath(rawCityID, rawPlaceID); err != nil {
		return
	}
	reviewID, err = parseID("review", rawReviewID)
	return
}
