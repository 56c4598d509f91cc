package service

import (
	"encoding/json"
	"testing"

	"foodplaces/places-service/internal/app/places/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func updateRequest(t *testing.T, body string) *entity.UpdatePlaceRequest {
	t.Helper()
	var req entity.UpdatePlaceRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

func TestPlaceUpdateSet_Paths(t *testing.T) {
	req := updateRequest(t, `{
		"info": {"name": "New", "status": "closed"},
		"location": {
			"address": {"postcode": "N2"},
			"coordinates": {"latitude": "10.5"}
		},
		"business_hours": {
			"Tuesday": {"open": "09:00", "close": "17:00"},
			"wednesday": {"open": "09:00"},
			"funday": {"open": "00:00", "close": "23:59"}
		},
		"amenities": {"facilities": {"wifi": true, "spa": true}},
		"menu_options": {"drinks": {"beer": false}},
		"media": {"photos": ["https://example.com/a.jpg"]}
	}`)

	fs, err := placeUpdateSet(req)

	require.NoError(t, err)
	assert.Equal(t, bson.M{
		"info.name":                     "New",
		"info.status":                   "closed",
		"location.address.postcode":     "N2",
		"location.coordinates.latitude": 10.5,
		"business_hours.tuesday":        entity.Hours{Open: "09:00", Close: "17:00"},
		"menu_options.drinks.beer":      false,
		"amenities.facilities.wifi":     true,
		"media.photos":                  []string{"https://example.com/a.jpg"},
	}, fs.set)
	assert.Equal(t, []string{
		"info.name",
		"info.status",
		"location.address.postcode",
		"location.coordinates.latitude",
		"business_hours.tuesday",
		"menu_options.drinks.beer",
		"amenities.facilities.wifi",
		"media.photos",
	}, fs.fields)
}

func TestPlaceUpdateSet_InvalidCoordinate(t *testing.T) {
	req := updateRequest(t, `{"location": {"coordinates": {"longitude": 200}}}`)

	_, err := placeUpdateSet(req)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestPlaceUpdateSet_Empty(t *testing.T) {
	fs, err := placeUpdateSet(updateRequest(t, `{"service_options": {"dining": {}}}`))

	require.NoError(t, err)
	assert.True(t, fs.empty())
}

func TestBuildPlace_Defaults(t *testing.T) {
	in := placeInput(t, `{"place_id":" P9 ","info":{"name":"Bar","type":["bar"]},"location":{}}`)

	place, err := buildPlace(in)

	require.NoError(t, err)
	assert.Equal(t, "P9", place.PlaceID)
	assert.Equal(t, entity.InfoStatusOpen, place.Info.Status)
	assert.Equal(t, entity.Ratings{RecentReviews: []entity.Review{}}, place.Ratings)
	assert.Equal(t, []string{}, place.Media.Photos)
	assert.Nil(t, place.BusinessHours)
}
