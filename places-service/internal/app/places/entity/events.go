package entity

import "time"

const (
	EventCityDeleted   = "CITY_DELETED"
	EventPlaceCreated  = "PLACE_CREATED"
	EventPlaceDeleted  = "PLACE_DELETED"
	EventReviewCreated = "REVIEW_CREATED"
	EventReviewUpdated = "REVIEW_UPDATED"
	EventReviewDeleted = "REVIEW_DELETED"
)

// PlaceEvent - событие об изменении города, места или отзыва для Kafka
type PlaceEvent struct {
	EventID   string         `json:"event_id"`
	EventType string         `json:"event_type"`
	CityID    string         `json:"city_id"`
	PlaceID   string         `json:"place_id,omitempty"`
	ReviewID  string         `json:"review_id,omitempty"`
	Rating    float64        `json:"rating,omitempty"`
	Ratings   *RatingSummary `json:"ratings,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Key - ключ партиционирования: события одного места попадают в одну партицию
func (e PlaceEvent) Key() string {
	if e.PlaceID != "" {
		return e.PlaceID
	}
	return e.CityID
}
