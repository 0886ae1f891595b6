package httpserver

import (
	"time"

	"hoteldir/internal/domain"
)

// Wire types keep the field casing the directory's consumers already
// depend on, while the domain stays Go-idiomatic.

type cityDTO struct {
	CityName string `json:"CityName"`
	Country  string `json:"Country"`
}

type regionDTO struct {
	PropertyStateProvinceName string `json:"PropertyStateProvinceName"`
}

type managerDTO struct {
	Username string `json:"Username"`
	Email    string `json:"Email"`
}

type hotelDTO struct {
	GlobalPropertyID        int64    `json:"GlobalPropertyID"`
	SourcePropertyID        string   `json:"SourcePropertyID"`
	GlobalPropertyName      string   `json:"GlobalPropertyName"`
	GlobalChainCode         string   `json:"GlobalChainCode"`
	PropertyAddress1        string   `json:"PropertyAddress1"`
	PropertyAddress2        *string  `json:"PropertyAddress2"`
	PrimaryAirportCode      string   `json:"PrimaryAirportCode"`
	CityID                  int64    `json:"CityID"`
	PropertyStateProvinceID int64    `json:"PropertyStateProvinceID"`
	PropertyZipPostal       string   `json:"PropertyZipPostal"`
	PropertyPhoneNumber     string   `json:"PropertyPhoneNumber"`
	PropertyFaxNumber       *string  `json:"PropertyFaxNumber"`
	SabrePropertyRating     float64  `json:"SabrePropertyRating"`
	PropertyLatitude        float64  `json:"PropertyLatitude"`
	PropertyLongitude       float64  `json:"PropertyLongitude"`
	SourceGroupCode         string   `json:"SourceGroupCode"`
	ManagerUsername         *string  `json:"ManagerUsername"`
	DistanceToTheAirport    *float64 `json:"DistanceToTheAirport"`
	RoomsNumber             *int     `json:"RoomsNumber"`
	FloorsNumber            *int     `json:"FloorsNumber"`
	HotelStars              *int     `json:"HotelStars"`

	City    cityDTO     `json:"city"`
	Region  regionDTO   `json:"region"`
	Manager *managerDTO `json:"manager"`
}

func toHotelDTO(h domain.HotelView) hotelDTO {
	out := hotelDTO{
		GlobalPropertyID:        h.ID,
		SourcePropertyID:        h.SourcePropertyID,
		GlobalPropertyName:      h.Name,
		GlobalChainCode:         h.ChainCode,
		PropertyAddress1:        h.Address1,
		PropertyAddress2:        h.Address2,
		PrimaryAirportCode:      h.AirportCode,
		CityID:                  h.CityID,
		PropertyStateProvinceID: h.RegionID,
		PropertyZipPostal:       h.ZipPostal,
		PropertyPhoneNumber:     h.PhoneNumber,
		PropertyFaxNumber:       h.FaxNumber,
		SabrePropertyRating:     h.Rating,
		PropertyLatitude:        h.Latitude,
		PropertyLongitude:       h.Longitude,
		SourceGroupCode:         h.SourceGroupCode,
		ManagerUsername:         h.ManagerUsername,
		DistanceToTheAirport:    h.DistanceToAirport,
		RoomsNumber:             h.RoomsNumber,
		FloorsNumber:            h.FloorsNumber,
		HotelStars:              h.HotelStars,
		City:                    cityDTO{CityName: h.CityName, Country: h.Country},
		Region:                  regionDTO{PropertyStateProvinceName: h.RegionName},
	}
	if h.ManagerUsername != nil {
		m := managerDTO{Username: *h.ManagerUsername}
		if h.ManagerEmail != nil {
			m.Email = *h.ManagerEmail
		}
		out.Manager = &m
	}
	return out
}

func toHotelDTOs(hs []domain.HotelView) []hotelDTO {
	out := make([]hotelDTO, 0, len(hs))
	for _, h := range hs {
		out = append(out, toHotelDTO(h))
	}
	return out
}

// hotelInput is the write payload for create and update.
type hotelInput struct {
	GlobalPropertyName      *string  `json:"GlobalPropertyName"`
	GlobalChainCode         *string  `json:"GlobalChainCode"`
	PropertyAddress1        *string  `json:"PropertyAddress1"`
	PropertyAddress2        *string  `json:"PropertyAddress2"`
	PrimaryAirportCode      *string  `json:"PrimaryAirportCode"`
	CityID                  *int64   `json:"CityID"`
	PropertyStateProvinceID *int64   `json:"PropertyStateProvinceID"`
	PropertyZipPostal       *string  `json:"PropertyZipPostal"`
	PropertyPhoneNumber     *string  `json:"PropertyPhoneNumber"`
	PropertyFaxNumber       *string  `json:"PropertyFaxNumber"`
	SabrePropertyRating     *float64 `json:"SabrePropertyRating"`
	PropertyLatitude        *float64 `json:"PropertyLatitude"`
	PropertyLongitude       *float64 `json:"PropertyLongitude"`
	SourceGroupCode         *string  `json:"SourceGroupCode"`
	ManagerUsername         *string  `json:"ManagerUsername"`
	DistanceToTheAirport    *float64 `json:"DistanceToTheAirport"`
	RoomsNumber             *int     `json:"RoomsNumber"`
	FloorsNumber            *int     `json:"FloorsNumber"`
	HotelStars              *int     `json:"HotelStars"`
}

func (in hotelInput) patch() domain.HotelPatch {
	return domain.HotelPatch{
		Name:              in.GlobalPropertyName,
		ChainCode:         in.GlobalChainCode,
		Address1:          in.PropertyAddress1,
		Address2:          in.PropertyAddress2,
		AirportCode:       in.PrimaryAirportCode,
		CityID:            in.CityID,
		RegionID:          in.PropertyStateProvinceID,
		ZipPostal:         in.PropertyZipPostal,
		PhoneNumber:       in.PropertyPhoneNumber,
		FaxNumber:         in.PropertyFaxNumber,
		Rating:            in.SabrePropertyRating,
		Latitude:          in.PropertyLatitude,
		Longitude:         in.PropertyLongitude,
		SourceGroupCode:   in.SourceGroupCode,
		ManagerUsername:   in.ManagerUsername,
		DistanceToAirport: in.DistanceToTheAirport,
		RoomsNumber:       in.RoomsNumber,
		FloorsNumber:      in.FloorsNumber,
		HotelStars:        in.HotelStars,
	}
}

type hotelSummaryDTO struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	City        string   `json:"city"`
	Manager     *string  `json:"manager,omitempty"`
	Rating      *float64 `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
}

func toSummaryDTOs(hs []domain.HotelSummary, withManager bool) []hotelSummaryDTO {
	out := make([]hotelSummaryDTO, 0, len(hs))
	for _, h := range hs {
		d := hotelSummaryDTO{
			ID:          h.ID,
			Name:        h.Name,
			City:        h.City,
			Rating:      h.Rating,
			ReviewCount: h.ReviewCount,
		}
		if withManager {
			d.Manager = h.Manager
		}
		out = append(out, d)
	}
	return out
}

type managerHotelDTO struct {
	ID                   int64    `json:"id"`
	Name                 string   `json:"name"`
	City                 string   `json:"city"`
	Rating               *float64 `json:"rating"`
	ReviewCount          int      `json:"reviewCount"`
	DistanceToTheAirport *float64 `json:"DistanceToTheAirport"`
	RoomsNumber          *int     `json:"RoomsNumber"`
	HotelStars           *int     `json:"HotelStars"`
	NumberOfFloors       *int     `json:"NumberOfFloors"`
}

func toManagerHotelDTOs(hs []domain.ManagerHotel) []managerHotelDTO {
	out := make([]managerHotelDTO, 0, len(hs))
	for _, h := range hs {
		out = append(out, managerHotelDTO{
			ID:                   h.ID,
			Name:                 h.Name,
			City:                 h.City,
			Rating:               h.Rating,
			ReviewCount:          h.ReviewCount,
			DistanceToTheAirport: h.DistanceToAirport,
			RoomsNumber:          h.RoomsNumber,
			HotelStars:           h.HotelStars,
			NumberOfFloors:       h.FloorsNumber,
		})
	}
	return out
}

type reviewDTO struct {
	ReviewID          int64     `json:"ReviewID"`
	HotelID           int64     `json:"HotelID"`
	ReviewerName      string    `json:"ReviewerName"`
	ReviewSubject     string    `json:"ReviewSubject"`
	ReviewContent     string    `json:"ReviewContent"`
	ReviewDate        time.Time `json:"ReviewDate"`
	OverallRating     float64   `json:"OverallRating"`
	CleanlinessRating float64   `json:"CleanlinessRating"`
	LocationRating    float64   `json:"LocationRating"`
	ServiceRating     float64   `json:"ServiceRating"`
	ValueRating       float64   `json:"ValueRating"`
	HelpfulYes        int       `json:"helpfulYes"`
	HelpfulNo         int       `json:"helpfulNo"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func toReviewDTO(r domain.Review) reviewDTO {
	return reviewDTO{
		ReviewID:          r.ID,
		HotelID:           r.HotelID,
		ReviewerName:      r.ReviewerName,
		ReviewSubject:     r.Subject,
		ReviewContent:     r.Content,
		ReviewDate:        r.Date,
		OverallRating:     r.Overall,
		CleanlinessRating: r.Cleanliness,
		LocationRating:    r.Location,
		ServiceRating:     r.Service,
		ValueRating:       r.Value,
		HelpfulYes:        r.HelpfulYes,
		HelpfulNo:         r.HelpfulNo,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func toReviewDTOs(rs []domain.Review) []reviewDTO {
	out := make([]reviewDTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, toReviewDTO(r))
	}
	return out
}

type roleDTO struct {
	RoleName string `json:"RoleName"`
}

type userDTO struct {
	UserID   int64   `json:"UserID"`
	Username string  `json:"Username"`
	Email    string  `json:"Email"`
	Role     roleDTO `json:"role"`
}

func toUserDTO(u domain.User) userDTO {
	return userDTO{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     roleDTO{RoleName: string(u.Role)},
	}
}

func toUserDTOs(us []domain.User) []userDTO {
	out := make([]userDTO, 0, len(us))
	for _, u := range us {
		out = append(out, toUserDTO(u))
	}
	return out
}

type cityRowDTO struct {
	CityID   int64  `json:"CityID"`
	CityName string `json:"CityName"`
	Country  string `json:"Country"`
}

type regionRowDTO struct {
	PropertyStateProvinceID   int64  `json:"PropertyStateProvinceID"`
	PropertyStateProvinceName string `json:"PropertyStateProvinceName"`
}

func toCityRows(cs []domain.City) []cityRowDTO {
	out := make([]cityRowDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, cityRowDTO{CityID: c.ID, CityName: c.Name, Country: c.Country})
	}
	return out
}

func toRegionRows(rs []domain.Region) []regionRowDTO {
	out := make([]regionRowDTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, regionRowDTO{PropertyStateProvinceID: r.ID, PropertyStateProvinceName: r.Name})
	}
	return out
}

type reassignmentDTO struct {
	Hotel           hotelDTO `json:"hotel"`
	PreviousManager *string  `json:"previousManager"`
	NewManager      string   `json:"newManager"`
}

func toReassignmentDTO(r domain.Reassignment) reassignmentDTO {
	return reassignmentDTO{
		Hotel:           toHotelDTO(r.Hotel),
		PreviousManager: r.PreviousManager,
		NewManager:      r.NewManager,
	}
}
