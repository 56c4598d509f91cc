package entity

// CreateCityRequest - запрос на создание города, места опциональны
type CreateCityRequest struct {
	CityID   string       `json:"city_id" validate:"required"`
	CityName string       `json:"city_name" validate:"required"`
	Places   []PlaceInput `json:"places" validate:"omitempty,dive"`
}

// UpdateCityRequest - частичное обновление; nil означает, что поле не передано
type UpdateCityRequest struct {
	CityName *string       `json:"city_name"`
	Places   *[]PlaceInput `json:"places"`
}

// PlaceInput - место в запросах создания города и места
type PlaceInput struct {
	PlaceID        string           `json:"place_id" validate:"required"`
	Info           *PlaceInfoInput  `json:"info" validate:"required"`
	Location       *LocationInput   `json:"location" validate:"required"`
	BusinessHours  map[string]Hours `json:"business_hours"`
	ServiceOptions *ServiceOptions  `json:"service_options"`
	MenuOptions    *MenuOptions     `json:"menu_options"`
	Amenities      *Amenities       `json:"amenities"`
	Media          *Media           `json:"media"`
}

type PlaceInfoInput struct {
	Name   string   `json:"name" validate:"required"`
	Type   []string `json:"type" validate:"required,min=1,dive,required"`
	Status string   `json:"status" validate:"omitempty,oneof=open closed temporary_closed"`
}

type LocationInput struct {
	Address     *Address          `json:"address"`
	Coordinates *CoordinatesInput `json:"coordinates"`
}

type CoordinatesInput struct {
	Latitude  Number `json:"latitude"`
	Longitude Number `json:"longitude"`
}

// UpdatePlaceRequest - частичное обновление места, применяются только переданные поля
type UpdatePlaceRequest struct {
	Info           *PlaceInfoPatch            `json:"info"`
	Location       *LocationPatch             `json:"location"`
	BusinessHours  map[string]HoursPatch      `json:"business_hours"`
	ServiceOptions map[string]map[string]bool `json:"service_options"`
	MenuOptions    map[string]map[string]bool `json:"menu_options"`
	Amenities      map[string]map[string]bool `json:"amenities"`
	Media          *Media                     `json:"media"`
}

type PlaceInfoPatch struct {
	Name   *string  `json:"name"`
	Type   []string `json:"type"`
	Status *string  `json:"status"`
}

type LocationPatch struct {
	Address     *AddressPatch     `json:"address"`
	Coordinates *CoordinatesInput `json:"coordinates"`
}

type AddressPatch struct {
	Street      *string `json:"street"`
	City        *string `json:"city"`
	Postcode    *string `json:"postcode"`
	FullAddress *string `json:"full_address"`
}

type HoursPatch struct {
	Open  *string `json:"open"`
	Close *string `json:"close"`
}

// UpdatePlaceStatusRequest - смена операционного статуса места
type UpdatePlaceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=operational closed temporary_closed"`
}

// CreateReviewRequest - новый отзыв; rating принимается числом или строкой
type CreateReviewRequest struct {
	Rating     Number   `json:"rating"`
	AuthorName string   `json:"author_name"`
	Content    string   `json:"content"`
	Language   string   `json:"language" validate:"omitempty,max=16"`
	VisitDate  string   `json:"visit_date" validate:"omitempty,isodate"`
	Photos     []string `json:"photos" validate:"omitempty,dive,url"`
	Tags       []string `json:"tags" validate:"omitempty,dive,required"`
}

// UpdateReviewRequest - частичное обновление отзыва
type UpdateReviewRequest struct {
	Rating     Number    `json:"rating"`
	AuthorName *string   `json:"author_name"`
	Content    *string   `json:"content"`
	Language   *string   `json:"language" validate:"omitempty,max=16"`
	VisitDate  *string   `json:"visit_date" validate:"omitempty,isodate"`
	Photos     *[]string `json:"photos" validate:"omitempty,dive,url"`
	Tags       *[]string `json:"tags" validate:"omitempty,dive,required"`
}

// RegisterRequest - регистрация пользователя
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	// Admin не проверяется: любой клиент может зарегистрироваться администратором
	Admin bool `json:"admin"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
