package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// City - корневой документ коллекции, владеет списком мест
type City struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	CityID   string             `json:"city_id" bson:"city_id"`
	CityName string             `json:"city_name" bson:"city_name"`
	Places   []Place            `json:"places" bson:"places"`
}

// Place - заведение, хранится элементом массива places внутри City
type Place struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id"`
	PlaceID        string             `json:"place_id" bson:"place_id"`
	Info           PlaceInfo          `json:"info" bson:"info"`
	Location       Location           `json:"location" bson:"location"`
	BusinessHours  map[string]Hours   `json:"business_hours,omitempty" bson:"business_hours,omitempty"`
	ServiceOptions ServiceOptions     `json:"service_options" bson:"service_options"`
	MenuOptions    MenuOptions        `json:"menu_options" bson:"menu_options"`
	Amenities      Amenities          `json:"amenities" bson:"amenities"`
	Ratings        Ratings            `json:"ratings" bson:"ratings"`
	Media          Media              `json:"media" bson:"media"`
}

type PlaceInfo struct {
	Name   string   `json:"name" bson:"name"`
	Type   []string `json:"type" bson:"type"`
	Status string   `json:"status" bson:"status"`
}

type Location struct {
	Address     Address     `json:"address" bson:"address"`
	Coordinates Coordinates `json:"coordinates" bson:"coordinates"`
}

type Address struct {
	Street      string `json:"street" bson:"street"`
	City        string `json:"city" bson:"city"`
	Postcode    string `json:"postcode" bson:"postcode"`
	FullAddress string `json:"full_address,omitempty" bson:"full_address,omitempty"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

type Hours struct {
	Open  string `json:"open" bson:"open"`
	Close string `json:"close" bson:"close"`
}

type ServiceOptions struct {
	Dining DiningOptions `json:"dining" bson:"dining"`
	Meals  MealOptions   `json:"meals" bson:"meals"`
}

type DiningOptions struct {
	DineIn         bool `json:"dine_in" bson:"dine_in"`
	Takeaway       bool `json:"takeaway" bson:"takeaway"`
	Reservations   bool `json:"reservations" bson:"reservations"`
	OutdoorSeating bool `json:"outdoor_seating" bson:"outdoor_seating"`
	GroupBookings  bool `json:"group_bookings" bson:"group_bookings"`
}

type MealOptions struct {
	Breakfast bool `json:"breakfast" bson:"breakfast"`
	Lunch     bool `json:"lunch" bson:"lunch"`
	Dinner    bool `json:"dinner" bson:"dinner"`
	Brunch    bool `json:"brunch" bson:"brunch"`
}

type MenuOptions struct {
	Food   FoodOptions  `json:"food" bson:"food"`
	Drinks DrinkOptions `json:"drinks" bson:"drinks"`
}

type FoodOptions struct {
	Vegetarian bool `json:"vegetarian" bson:"vegetarian"`
	KidsMenu   bool `json:"kids_menu" bson:"kids_menu"`
}

type DrinkOptions struct {
	Coffee    bool `json:"coffee" bson:"coffee"`
	Beer      bool `json:"beer" bson:"beer"`
	Wine      bool `json:"wine" bson:"wine"`
	Cocktails bool `json:"cocktails" bson:"cocktails"`
}

type Amenities struct {
	Facilities    Facilities    `json:"facilities" bson:"facilities"`
	Accessibility Accessibility `json:"accessibility" bson:"accessibility"`
}

type Facilities struct {
	Restrooms bool `json:"restrooms" bson:"restrooms"`
	Wifi      bool `json:"wifi" bson:"wifi"`
	Parking   bool `json:"parking" bson:"parking"`
}

type Accessibility struct {
	WheelchairAccess   bool `json:"wheelchair_access" bson:"wheelchair_access"`
	AccessibleRestroom bool `json:"accessible_restroom" bson:"accessible_restroom"`
	AccessibleSeating  bool `json:"accessible_seating" bson:"accessible_seating"`
}

// Ratings - агрегат рейтинга. average_rating и review_count всегда
// выводятся из recent_reviews пакетом rating, напрямую их не пишут
type Ratings struct {
	AverageRating float64  `json:"average_rating" bson:"average_rating"`
	ReviewCount   int      `json:"review_count" bson:"review_count"`
	RecentReviews []Review `json:"recent_reviews" bson:"recent_reviews"`
}

type Media struct {
	Photos []string `json:"photos" bson:"photos"`
}

// Review - отзыв, элемент массива ratings.recent_reviews места
type Review struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	ReviewID   string             `json:"review_id" bson:"review_id"`
	Rating     float64            `json:"rating" bson:"rating"`
	AuthorName string             `json:"author_name" bson:"author_name"`
	Content    string             `json:"content" bson:"content"`
	DatePosted string             `json:"date_posted" bson:"date_posted"` // ISO-8601, сравнивается как строка
	Language   string             `json:"language" bson:"language"`
	VisitDate  string             `json:"visit_date,omitempty" bson:"visit_date,omitempty"`
	Photos     []string           `json:"photos,omitempty" bson:"photos,omitempty"`
	Tags       []string           `json:"tags,omitempty" bson:"tags,omitempty"`
}

// RatingSummary - результат пересчёта агрегата
type RatingSummary struct {
	AverageRating float64 `json:"average_rating" bson:"average_rating"`
	ReviewCount   int     `json:"review_count" bson:"review_count"`
}

// PlaceRatingSnapshot - сохранённый агрегат места вместе с оценками его отзывов
type PlaceRatingSnapshot struct {
	CityID        primitive.ObjectID `bson:"city_id"`
	PlaceID       primitive.ObjectID `bson:"place_id"`
	AverageRating float64            `bson:"average_rating"`
	ReviewCount   int                `bson:"review_count"`
	Ratings       []float64          `bson:"ratings"`
}

// User - учётная запись для выдачи токенов
type User struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Username     string             `json:"username" bson:"username"`
	Email        string             `json:"email" bson:"email"`
	Name         string             `json:"name" bson:"name"`
	PasswordHash string             `json:"-" bson:"password"`
	Admin        bool               `json:"admin" bson:"admin"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}

// Identity - результат проверки токена
type Identity struct {
	Username string
	Admin    bool
}
