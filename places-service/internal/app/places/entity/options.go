package entity

const (
	InfoStatusOpen            = "open"
	InfoStatusClosed          = "closed"
	InfoStatusTemporaryClosed = "temporary_closed"

	// Статусы для PATCH .../status. Набор отличается от info.status:
	// вместо open здесь operational
	OperationalStatusOperational     = "operational"
	OperationalStatusClosed          = "closed"
	OperationalStatusTemporaryClosed = "temporary_closed"

	DefaultReviewLanguage = "en"
)

var InfoStatuses = []string{InfoStatusOpen, InfoStatusClosed, InfoStatusTemporaryClosed}

var OperationalStatuses = []string{
	OperationalStatusOperational,
	OperationalStatusClosed,
	OperationalStatusTemporaryClosed,
}

var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// OptionGroup описывает группу булевых флагов места, например service_options.dining
type OptionGroup struct {
	Section string
	Group   string
	Keys    []string
}

// Path возвращает путь к флагу относительно документа места
func (g OptionGroup) Path(key string) string {
	return g.Section + "." + g.Group + "." + key
}

var (
	DiningGroup        = OptionGroup{"service_options", "dining", []string{"dine_in", "takeaway", "reservations", "outdoor_seating", "group_bookings"}}
	MealsGroup         = OptionGroup{"service_options", "meals", []string{"breakfast", "lunch", "dinner", "brunch"}}
	FoodGroup          = OptionGroup{"menu_options", "food", []string{"vegetarian", "kids_menu"}}
	DrinksGroup        = OptionGroup{"menu_options", "drinks", []string{"coffee", "beer", "wine", "cocktails"}}
	FacilitiesGroup    = OptionGroup{"amenities", "facilities", []string{"restrooms", "wifi", "parking"}}
	AccessibilityGroup = OptionGroup{"amenities", "accessibility", []string{"wheelchair_access", "accessible_restroom", "accessible_seating"}}
)

// ServiceFilterGroups - флаги, по которым можно фильтровать список мест
var ServiceFilterGroups = []OptionGroup{DiningGroup, MealsGroup}

// AllOptionGroups - все булевы флаги места в порядке секций документа
var AllOptionGroups = []OptionGroup{
	DiningGroup,
	MealsGroup,
	FoodGroup,
	DrinksGroup,
	FacilitiesGroup,
	AccessibilityGroup,
}

// ApplyPlaceDefaults заполняет структурные значения по умолчанию для нового места
func ApplyPlaceDefaults(place *Place) {
	if place.Info.Status == "" {
		place.Info.Status = InfoStatusOpen
	}
	place.Ratings = Ratings{
		AverageRating: 0,
		ReviewCount:   0,
		RecentReviews: []Review{},
	}
	if place.Media.Photos == nil {
		place.Media.Photos = []string{}
	}
}
