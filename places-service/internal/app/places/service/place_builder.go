package service

import (
	"strings"

	"foodplaces/places-service/internal/app/places/entity"
	"foodplaces/places-service/internal/app/places/util"
	"foodplaces/places-service/internal/app/places/validation"

	"go.mongodb.org/mongo-driver/bson"
)

// buildPlace собирает документ нового места из проверенного запроса:
// новый идентификатор, числовые координаты и структурные значения по умолчанию
func buildPlace(in *entity.PlaceInput) (entity.Place, error) {
	place := entity.Place{
		ID:      util.NewIdentifier(),
		PlaceID: strings.TrimSpace(in.PlaceID),
		Info: entity.PlaceInfo{
			Name:   strings.TrimSpace(in.Info.Name),
			Type:   in.Info.Type,
			Status: in.Info.Status,
		},
	}

	if in.Location.Address != nil {
		place.Location.Address = *in.Location.Address
	}
	if in.Location.Coordinates != nil {
		coords, err := validation.ParseCoordinates(in.Location.Coordinates, "location.coordinates")
		if err != nil {
			return place, err
		}
		place.Location.Coordinates = coords
	}

	if len(in.BusinessHours) > 0 {
		place.BusinessHours = make(map[string]entity.Hours, len(in.BusinessHours))
		for day, hours := range in.BusinessHours {
			place.BusinessHours[strings.ToLower(day)] = hours
		}
	}
	if in.ServiceOptions != nil {
		place.ServiceOptions = *in.ServiceOptions
	}
	if in.MenuOptions != nil {
		place.MenuOptions = *in.MenuOptions
	}
	if in.Amenities != nil {
		place.Amenities = *in.Amenities
	}
	if in.Media != nil {
		place.Media = *in.Media
	}

	entity.ApplyPlaceDefaults(&place)
	return place, nil
}

func buildPlaces(inputs []entity.PlaceInput) ([]entity.Place, error) {
	places := make([]entity.Place, 0, len(inputs))
	for i := range inputs {
		place, err := buildPlace(&inputs[i])
		if err != nil {
			return nil, err
		}
		places = append(places, place)
	}
	return places, nil
}

// fieldSet накапливает пути $set и имена изменяемых полей в порядке добавления
type fieldSet struct {
	set    bson.M
	fields []string
}

func newFieldSet() *fieldSet {
	return &fieldSet{set: bson.M{}}
}

func (f *fieldSet) add(path string, value interface{}) {
	if _, ok := f.set[path]; !ok {
		f.fields = append(f.fields, path)
	}
	f.set[path] = value
}

func (f *fieldSet) empty() bool {
	return len(f.set) == 0
}

// placeUpdateSet переводит частичное обновление в пути относительно места.
// Часы работы меняются только при наличии open и close, неизвестные дни и флаги пропускаются
func placeUpdateSet(req *entity.UpdatePlaceRequest) (*fieldSet, error) {
	fs := newFieldSet()

	if info := req.Info; info != nil {
		if info.Name != nil {
			fs.add("info.name", strings.TrimSpace(*info.Name))
		}
		if info.Type != nil {
			fs.add("info.type", info.Type)
		}
		if info.Status != nil {
			fs.add("info.status", *info.Status)
		}
	}

	if loc := req.Location; loc != nil {
		if addr := loc.Address; addr != nil {
			addString(fs, "location.address.street", addr.Street)
			addString(fs, "location.address.city", addr.City)
			addString(fs, "location.address.postcode", addr.Postcode)
			addString(fs, "location.address.full_address", addr.FullAddress)
		}
		if c := loc.Coordinates; c != nil {
			coords, err := validation.ParsePartialCoordinates(c, "location.coordinates")
			if err != nil {
				return nil, err
			}
			if c.Latitude.IsSet() {
				fs.add("location.coordinates.latitude", coords.Latitude)
			}
			if c.Longitude.IsSet() {
				fs.add("location.coordinates.longitude", coords.Longitude)
			}
		}
	}

	hours := make(map[string]entity.HoursPatch, len(req.BusinessHours))
	for day, h := range req.BusinessHours {
		hours[strings.ToLower(day)] = h
	}
	for _, day := range entity.Weekdays {
		h, ok := hours[day]
		if !ok || h.Open == nil || h.Close == nil {
			continue
		}
		fs.add("business_hours."+day, entity.Hours{Open: *h.Open, Close: *h.Close})
	}

	sections := map[string]map[string]map[string]bool{
		"service_options": req.ServiceOptions,
		"menu_options":    req.MenuOptions,
		"amenities":       req.Amenities,
	}
	for _, group := range entity.AllOptionGroups {
		flags := sections[group.Section][group.Group]
		for _, key := range group.Keys {
			if v, ok := flags[key]; ok {
				fs.add(group.Path(key), v)
			}
		}
	}

	if req.Media != nil && req.Media.Photos != nil {
		fs.add("media.photos", req.Media.Photos)
	}

	return fs, nil
}

func addString(fs *fieldSet, path string, value *string) {
	if value != nil {
		fs.add(path, *value)
	}
}
