package entity

// Pagination - блок пагинации во всех списках
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	PageSize    int   `json:"page_size"`
	TotalItems  int64 `json:"total_items"`
}

type SortApplied struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// FiltersApplied - эхо применённых фильтров и сортировки для списков
type FiltersApplied struct {
	Name           string                     `json:"name,omitempty"`
	Type           string                     `json:"type,omitempty"`
	MinRating      *float64                   `json:"min_rating,omitempty"`
	ServiceOptions map[string]map[string]bool `json:"service_options,omitempty"`
	StartDate      string                     `json:"start_date,omitempty"`
	EndDate        string                     `json:"end_date,omitempty"`
	Sort           SortApplied                `json:"sort"`
}

type CityListResult struct {
	Cities         []City         `json:"cities"`
	Pagination     Pagination     `json:"pagination"`
	FiltersApplied FiltersApplied `json:"filters_applied"`
}

type PlaceListResult struct {
	Places         []Place        `json:"places"`
	Pagination     Pagination     `json:"pagination"`
	FiltersApplied FiltersApplied `json:"filters_applied"`
}

type ReviewListResult struct {
	Reviews        []Review       `json:"reviews"`
	Pagination     Pagination     `json:"pagination"`
	FiltersApplied FiltersApplied `json:"filters_applied"`
}

// CityDetail - ответ на получение одного города
type CityDetail struct {
	Data           CityData     `json:"data"`
	Includes       Includes     `json:"includes"`
	FiltersApplied *CityFilters `json:"filters_applied"`
}

type CityData struct {
	ID       string   `json:"_id"`
	CityID   string   `json:"city_id"`
	CityName string   `json:"city_name"`
	Places   *[]Place `json:"places,omitempty"`
}

type Includes struct {
	Places bool `json:"places"`
}

// CityFilters - эхо фильтров мест; границы по умолчанию выводятся как null
type CityFilters struct {
	MinRating *float64 `json:"min_rating"`
	MaxRating *float64 `json:"max_rating"`
	PlaceType *string  `json:"place_type"`
}

type Links struct {
	City  string `json:"city,omitempty"`
	Place string `json:"place,omitempty"`
	Self  string `json:"self"`
}

type PlaceDetail struct {
	Data  Place `json:"data"`
	Links Links `json:"links"`
}

type ReviewDetail struct {
	Data  Review `json:"data"`
	Links Links  `json:"links"`
}

// CreatedResponse - ответ на создание города или места
type CreatedResponse struct {
	Message string `json:"message"`
	CityID  string `json:"city_id,omitempty"`
	PlaceID string `json:"place_id,omitempty"`
}

type UpdatedResponse struct {
	Message       string         `json:"message"`
	UpdatedFields []string       `json:"updated_fields,omitempty"`
	Ratings       *RatingSummary `json:"ratings,omitempty"`
}

type ReviewRef struct {
	ID       string `json:"id"`
	ReviewID string `json:"review_id"`
}

type ReviewCreatedResponse struct {
	Message string        `json:"message"`
	Review  ReviewRef     `json:"review"`
	Ratings RatingSummary `json:"ratings"`
}

type RatingResponse struct {
	Message string        `json:"message"`
	Ratings RatingSummary `json:"ratings"`
}
