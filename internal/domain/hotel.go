package domain

type Hotel struct {
	ID               int64
	SourcePropertyID string
	Name             string
	ChainCode        string
	Address1         string
	Address2         *string
	AirportCode      string
	CityID           int64
	RegionID         int64
	ZipPostal        string
	PhoneNumber      string
	FaxNumber        *string
	Rating           float64
	Latitude         float64
	Longitude        float64
	SourceGroupCode  string
	ManagerID        *int64 // numeric FK; username is resolved at the edges

	// dashboard fields
	DistanceToAirport *float64
	RoomsNumber       *int
	FloorsNumber      *int
	HotelStars        *int
}

type City struct {
	ID      int64
	Name    string
	Country string
}

type Region struct {
	ID   int64
	Name string
}

// HotelView is a hotel joined with its city/region/manager display fields.
type HotelView struct {
	Hotel
	CityName        string
	Country         string
	RegionName      string
	ManagerUsername *string
	ManagerEmail    *string
}

// HotelPatch is a partial update; nil means "leave as is".
type HotelPatch struct {
	Name              *string
	ChainCode         *string
	Address1          *string
	Address2          *string
	AirportCode       *string
	CityID            *int64
	RegionID          *int64
	ZipPostal         *string
	PhoneNumber       *string
	FaxNumber         *string
	Rating            *float64
	Latitude          *float64
	Longitude         *float64
	SourceGroupCode   *string
	ManagerUsername   *string
	DistanceToAirport *float64
	RoomsNumber       *int
	FloorsNumber      *int
	HotelStars        *int
}

// HotelSummary is the grouped review-stats projection.
type HotelSummary struct {
	ID          int64
	Name        string
	City        string
	Manager     *string
	Rating      *float64
	ReviewCount int
}

// ManagerHotel is a row of the manager dashboard.
type ManagerHotel struct {
	ID                int64
	Name              string
	City              string
	Rating            *float64
	ReviewCount       int
	DistanceToAirport *float64
	RoomsNumber       *int
	FloorsNumber      *int
	HotelStars        *int
}

// Reassignment is the result of swapping a hotel's manager.
type Reassignment struct {
	Hotel           HotelView
	PreviousManager *string
	NewManager      string
}

type HotelsPage struct {
	Items []HotelView
	Total int
}

const MaxPageSize = 200

type PageQuery struct {
	Page  int
	Limit int
}

// Clamp normalizes the query: page >= 1, default limit def, hard cap MaxPageSize.
func (q PageQuery) Clamp(def int) PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = def
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	return q
}

func (q PageQuery) Offset() int { return (q.Page - 1) * q.Limit }

type PageInfo struct {
	CurrentPage  int
	TotalPages   int
	TotalItems   int
	ItemsPerPage int
	HasNextPage  bool
	HasPrevPage  bool
}

func NewPageInfo(q PageQuery, total int) PageInfo {
	pages := total / q.Limit
	if total%q.Limit != 0 {
		pages++
	}
	return PageInfo{
		CurrentPage:  q.Page,
		TotalPages:   pages,
		TotalItems:   total,
		ItemsPerPage: q.Limit,
		HasNextPage:  q.Page < pages,
		HasPrevPage:  q.Page > 1,
	}
}
