package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"foodplaces/places-service/internal/app/places/entity"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return ValidateDate(fl.Field().String()) == nil
	})

	return &Validator{validate: v}
}

// Struct проверяет теги validate и возвращает первую ошибку как FieldError
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return NewFieldError("body", "is invalid")
	}

	return fromValidatorError(validationErrors[0])
}

func fromValidatorError(fe validator.FieldError) *FieldError {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	out := NewFieldError(field, reasonFor(fe))
	if fe.Tag() == "isodate" {
		out.kind = ErrInvalidDate
	}
	return out
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return "must contain at least " + fe.Param() + " item(s)"
		}
		return "must be at least " + fe.Param() + " characters long"
	case "max":
		return "must be at most " + fe.Param() + " characters long"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "isodate":
		return "must match YYYY-MM-DD"
	default:
		return "is " + fe.Tag()
	}
}

// CreateCity проверяет город и вложенные места. Адрес и координаты мест
// здесь необязательны, но переданные координаты должны быть корректными
func (v *Validator) CreateCity(req *entity.CreateCityRequest) error {
	if err := v.Struct(req); err != nil {
		return err
	}
	if strings.TrimSpace(req.CityID) == "" {
		return NewFieldError("city_id", "is required")
	}
	if strings.TrimSpace(req.CityName) == "" {
		return NewFieldError("city_name", "is required")
	}
	return v.embeddedPlaces(req.Places)
}

func (v *Validator) UpdateCity(req *entity.UpdateCityRequest) error {
	if req.CityName == nil && req.Places == nil {
		return NewFieldError("body", "must contain city_name or places")
	}
	if req.CityName != nil && strings.TrimSpace(*req.CityName) == "" {
		return NewFieldError("city_name", "must be a non-empty string")
	}
	if req.Places != nil {
		for i := range *req.Places {
			if err := v.Struct(&(*req.Places)[i]); err != nil {
				fe, _ := AsFieldError(err)
				fe.Field = fmt.Sprintf("places[%d].%s", i, fe.Field)
				return fe
			}
		}
		return v.embeddedPlaces(*req.Places)
	}
	return nil
}

func (v *Validator) embeddedPlaces(places []entity.PlaceInput) error {
	for i := range places {
		prefix := fmt.Sprintf("places[%d].", i)
		p := &places[i]

		if err := placeInfo(p.Info, prefix); err != nil {
			return err
		}
		if p.Location.Coordinates != nil {
			if _, err := ParseCoordinates(p.Location.Coordinates, prefix+"location.coordinates"); err != nil {
				return err
			}
		}
	}
	return nil
}

// CreatePlace - строгая проверка нового места: адрес и координаты обязательны
func (v *Validator) CreatePlace(req *entity.PlaceInput) error {
	if err := v.Struct(req); err != nil {
		return err
	}
	if err := placeInfo(req.Info, ""); err != nil {
		return err
	}
	if req.Location.Address == nil {
		return NewFieldError("location.address", "is required")
	}
	if req.Location.Coordinates == nil {
		return NewFieldError("location.coordinates", "is required")
	}
	if _, err := ParseCoordinates(req.Location.Coordinates, "location.coordinates"); err != nil {
		return err
	}
	for day := range req.BusinessHours {
		if !contains(entity.Weekdays, strings.ToLower(day)) {
			return NewFieldError("business_hours."+day, "is not a day of the week")
		}
	}
	return nil
}

func placeInfo(info *entity.PlaceInfoInput, prefix string) error {
	if strings.TrimSpace(info.Name) == "" {
		return NewFieldError(prefix+"info.name", "must be a non-empty string")
	}
	for i, tag := range info.Type {
		if strings.TrimSpace(tag) == "" {
			return NewFieldError(fmt.Sprintf("%sinfo.type[%d]", prefix, i), "must be a non-empty string")
		}
	}
	return nil
}

// UpdatePlace проверяет только переданные поля
func (v *Validator) UpdatePlace(req *entity.UpdatePlaceRequest) error {
	if req.Info != nil {
		if req.Info.Name != nil && strings.TrimSpace(*req.Info.Name) == "" {
			return NewFieldError("info.name", "must be a non-empty string")
		}
		if req.Info.Type != nil {
			if len(req.Info.Type) == 0 {
				return NewFieldError("info.type", "must contain at least 1 item(s)")
			}
			for i, tag := range req.Info.Type {
				if strings.TrimSpace(tag) == "" {
					return NewFieldError(fmt.Sprintf("info.type[%d]", i), "must be a non-empty string")
				}
			}
		}
		if req.Info.Status != nil && !contains(entity.InfoStatuses, *req.Info.Status) {
			return NewFieldError("info.status", "must be one of: "+strings.Join(entity.InfoStatuses, ", "))
		}
	}
	if req.Location != nil && req.Location.Coordinates != nil {
		if _, err := ParsePartialCoordinates(req.Location.Coordinates, "location.coordinates"); err != nil {
			return err
		}
	}
	if req.Media != nil {
		for i, photo := range req.Media.Photos {
			if err := v.validate.Var(photo, "url"); err != nil {
				return NewFieldError(fmt.Sprintf("media.photos[%d]", i), "must be a valid URL")
			}
		}
	}
	return nil
}

// PlaceStatus проверяет операционный статус: operational, closed, temporary_closed
func (v *Validator) PlaceStatus(req *entity.UpdatePlaceStatusRequest) error {
	return v.Struct(req)
}

// CreateReview проверяет новый отзыв и возвращает разобранную оценку.
// Порядок проверок: rating, author_name, content
func (v *Validator) CreateReview(req *entity.CreateReviewRequest) (float64, error) {
	rating, err := ValidateReviewRating(req.Rating)
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(req.AuthorName) == "" {
		return 0, NewFieldError("author_name", "is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return 0, NewFieldError("content", "is required")
	}
	if err := v.Struct(req); err != nil {
		return 0, err
	}
	return rating, nil
}

// UpdateReview проверяет переданные поля отзыва; хотя бы одно поле обязательно
func (v *Validator) UpdateReview(req *entity.UpdateReviewRequest) error {
	if !req.Rating.IsSet() && req.AuthorName == nil && req.Content == nil &&
		req.Language == nil && req.VisitDate == nil && req.Photos == nil && req.Tags == nil {
		return NewFieldError("body", "must contain at least one field to update")
	}
	if req.Rating.IsSet() {
		if _, err := ValidateReviewRating(req.Rating); err != nil {
			return err
		}
	}
	if req.AuthorName != nil && strings.TrimSpace(*req.AuthorName) == "" {
		return NewFieldError("author_name", "must be a non-empty string")
	}
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		return NewFieldError("content", "must be a non-empty string")
	}
	return v.Struct(req)
}

// ValidateReviewRating - оценка отзыва при создании и изменении, диапазон [1,5]
func ValidateReviewRating(n entity.Number) (float64, error) {
	if !n.IsSet() {
		return 0, NewFieldError("rating", "is required")
	}
	value, err := n.Float64()
	if err != nil {
		return 0, NewFieldError("rating", "must be a number")
	}
	if value < 1 || value > 5 {
		return 0, NewFieldError("rating", "must be between 1 and 5")
	}
	return value, nil
}

// ValidateRating - общая проверка оценки из параметров запроса, диапазон [0,5]
func ValidateRating(field, raw string) (float64, error) {
	value, err := entity.ParseNumber(raw)
	if err != nil {
		return 0, NewFieldError(field, "must be a number")
	}
	if value < 0 || value > 5 {
		return 0, NewFieldError(field, "must be between 0 and 5")
	}
	return value, nil
}

// ValidateDate проверяет формат YYYY-MM-DD
func ValidateDate(raw string) error {
	if len(raw) != len(dateLayout) {
		return &FieldError{Field: "visit_date", Reason: "must match YYYY-MM-DD", kind: ErrInvalidDate}
	}
	if _, err := time.Parse(dateLayout, raw); err != nil {
		return &FieldError{Field: "visit_date", Reason: "must match YYYY-MM-DD", kind: ErrInvalidDate}
	}
	return nil
}

// ParseCoordinates требует обе координаты: широту в [-90,90] и долготу в [-180,180]
func ParseCoordinates(c *entity.CoordinatesInput, field string) (entity.Coordinates, error) {
	if !c.Latitude.IsSet() {
		return entity.Coordinates{}, coordinateError(field+".latitude", "is required")
	}
	if !c.Longitude.IsSet() {
		return entity.Coordinates{}, coordinateError(field+".longitude", "is required")
	}
	return ParsePartialCoordinates(c, field)
}

// ParsePartialCoordinates проверяет только переданные координаты
func ParsePartialCoordinates(c *entity.CoordinatesInput, field string) (entity.Coordinates, error) {
	var out entity.Coordinates

	if c.Latitude.IsSet() {
		lat, err := c.Latitude.Float64()
		if err != nil {
			return out, coordinateError(field+".latitude", "must be a number")
		}
		if lat < -90 || lat > 90 {
			return out, coordinateError(field+".latitude", "must be between -90 and 90")
		}
		out.Latitude = lat
	}

	if c.Longitude.IsSet() {
		lng, err := c.Longitude.Float64()
		if err != nil {
			return out, coordinateError(field+".longitude", "must be a number")
		}
		if lng < -180 || lng > 180 {
			return out, coordinateError(field+".longitude", "must be between -180 and 180")
		}
		out.Longitude = lng
	}

	return out, nil
}

func coordinateError(field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: reason, kind: ErrInvalidCoordinates}
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
