package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hoteldir/internal/domain"
)

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	res, err := h.Hotels.List(r.Context(), pageQuery(r))
	if err != nil {
		h.failErr(w, err)
		return
	}
	respondPage(w, http.StatusOK, toHotelDTOs(res.Items), res.Page)
}

func (h *Handlers) getHotelByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		badID(w)
		return
	}
	hv, err := h.Hotels.GetByID(r.Context(), id)
	if err != nil {
		h.failErr(w, err)
		return
	}
	respond(w, http.StatusOK, toHotelDTO(hv))
}

func (h *Handlers) getHotelByName(w http.ResponseWriter, r *http.Request) {
	hv, err := h.Hotels.GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.failErr(w, err)
		return
	}
	respond(w, http.StatusOK, toHotelDTO(hv))
}

// getHotelDetails returns the hotel together with its paginated reviews.
func (h *Handlers) getHotelDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		badID(w)
		return
	}
	hv, err := h.Hotels.GetByID(r.Context(), id)
	if err != nil {
		h.failErr(w, err)
		return
	}
	page, info, err := h.Reviews.ForHotel(r.Context(), id, pageQuery(r))
	if err != nil {
		h.failErr(w, err)
		return
	}
	respondPage(w, http.StatusOK, map[string]any{
		"hotel":   toHotelDTO(hv),
		"reviews": toReviewDTOs(page.Items),
	}, info)
}

// requiredHotelFields maps the write payload onto the fields that must be
// present on create. Zero values are allowed; absence is not.
func missingHotelFields(in hotelInput) []string {
	var missing []string
	req := []struct {
		name string
		ok   bool
	}{
		{"GlobalPropertyName", in.GlobalPropertyName != nil},
		{"GlobalChainCode", in.GlobalChainCode != nil},
		{"PropertyAddress1", in.PropertyAddress1 != nil},
		{"PrimaryAirportCode", in.PrimaryAirportCode != nil},
		{"CityID", in.CityID != nil},
		{"PropertyStateProvinceID", in.PropertyStateProvinceID != nil},
		{"PropertyZipPostal", in.PropertyZipPostal != nil},
		{"PropertyPhoneNumber", in.PropertyPhoneNumber != nil},
		{"SabrePropertyRating", in.SabrePropertyRating != nil},
		{"PropertyLatitude", in.PropertyLatitude != nil},
		{"PropertyLongitude", in.PropertyLongitude != nil},
		{"SourceGroupCode", in.SourceGroupCode != nil},
	}
	for _, f := range req {
		if !f.ok {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	var in hotelInput
	if err := decode(r, &in); err != nil {
		badBody(w)
		return
	}
	if missing := missingHotelFields(in); len(missing) > 0 {
		h.failErr(w, &domain.ValidationError{Fields: missing})
		return
	}

	hotel := domain.Hotel{
		Name:              *in.GlobalPropertyName,
		ChainCode:         *in.GlobalChainCode,
		Address1:          *in.PropertyAddress1,
		Address2:          in.PropertyAddress2,
		AirportCode:       *in.PrimaryAirportCode,
		CityID:            *in.CityID,
		RegionID:          *in.PropertyStateProvinceID,
		ZipPostal:         *in.PropertyZipPostal,
		PhoneNumber:       *in.PropertyPhoneNumber,
		FaxNumber:         in.PropertyFaxNumber,
		Rating:            *in.SabrePropertyRating,
		Latitude:          *in.PropertyLatitude,
		Longitude:         *in.PropertyLongitude,
		SourceGroupCode:   *in.SourceGroupCode,
		DistanceToAirport: in.DistanceToTheAirport,
		RoomsNumber:       in.RoomsNumber,
		FloorsNumber:      in.FloorsNumber,
		HotelStars:        in.HotelStars,
	}
	var managerUsername string
	if in.ManagerUsername != nil {
		managerUsername = *in.ManagerUsername
	}

	hv, err := h.Hotels.Create(r.Context(), hotel, managerUsername)
	if err != nil {
		h.failErr(w, err)
		return
	}
	respondMsg(w, http.StatusCreated, "Hotel created successfully.", toHotelDTO(hv))
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		badID(w)
		return
	}
	var in hotelInput
	if err := decode(r, &in); err != nil {
		badBody(w)
		return
	}
	hv, err := h.Hotels.Update(r.Context(), id, in.patch())
	if err != nil {
		h.failErr(w, err)
		return
	}
	respondMsg(w, http.StatusOK, "Hotel updated successfully.", toHotelDTO(hv))
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		badID(w)
		return
	}
	hv, err := h.Hotels.Delete(r.Context(), id)
	if err != nil {
		h.failErr(w, err)
		return
	}
	respondMsg(w, http.StatusOK, "Hotel deleted successfully.", toHotelDTO(hv))
}

func (h *Handlers) hotelsWithReviews(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Hotels.Summaries(r.Context(), pageQuery(r), false)
	if err != nil {
		h.failErr(w, err)
		return
	}
	respond(w, http.StatusOK, toSummaryDTOs(rows, false))
}

func (h *Handlers) hotelsWithReviewsManagers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Hotels.Summaries(r.Context(), pageQuery(r), true)
	if err != nil {
		h.failErr(w, err)
		return
	}
	respond(w, http.StatusOK, toSummaryDTOs(rows, true))
}

func (h *Handlers) hotelsForManager(w http.ResponseWriter, r *http.Request) {
	ident, ok := CallerIdentity(r.Context())
	if !ok {
		fail(w, http.StatusUnauthorized, "Authentication required.", "")
		return
	}
	rows, err := h.Hotels.ForManager(r.Context(), ident)
	if err != nil {
		h.failErr(w, err)
		return
	}
	respond(w, http.StatusOK, toManagerHotelDTOs(rows))
}

func (h *Handlers) myHotels(w http.ResponseWriter, r *http.Request) {
	ident, ok := CallerIdentity(r.Context())
	if !ok {
		fail(w, http.StatusUnauthorized, "Authentication required.", "")
		return
	}
	res, err := h.Hotels.MyHotels(r.Context(), ident, pageQuery(r))
	if err != nil {
		h.failErr(w, err)
		return
	}
	respondPage(w, http.StatusOK, toHotelDTOs(res.Items), res.Page)
}

type reassignRequest struct {
	NewManagerUsername string `json:"newManagerUsername"`
}

func (h *Handlers) reassignHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "hotelId")
	if !ok {
		badID(w)
		return
	}
	var req reassignRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	res, err := h.Hotels.Reassign(r.Context(), id, req.NewManagerUsername)
	if err != nil {
		h.failErr(w, err)
		return
	}
	respondMsg(w, http.StatusOK, "Hotel manager reassigned successfully.", toReassignmentDTO(res))
}

func (h *Handlers) listCities(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit")
	rows, err := h.Hotels.Cities(r.Context(), r.URL.Query().Get("search"), limit)
	if err != nil {
		h.failErr(w, err)
		return
	}
	respond(w, http.StatusOK, toCityRows(rows))
}

func (h *Handlers) listRegions(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit")
	rows, err := h.Hotels.Regions(r.Context(), r.URL.Query().Get("search"), limit)
	if err != nil {
		h.failErr(w, err)
		return
	}
	respond(w, http.StatusOK, toRegionRows(rows))
}
