package httpserver

import (
	"net/http"
	"time"

	"hoteldir/internal/domain"
)

type reviewInput struct {
	HotelID           int64   `json:"HotelID"`
	ReviewerName      string  `json:"ReviewerName"`
	ReviewSubject     string  `json:"ReviewSubject"`
	ReviewContent     string  `json:"ReviewContent"`
	ReviewDate        string  `json:"ReviewDate"`
	OverallRating     float64 `json:"OverallRating"`
	CleanlinessRating float64 `json:"CleanlinessRating"`
	LocationRating    float64 `json:"LocationRating"`
	ServiceRating     float64 `json:"ServiceRating"`
	ValueRating       float64 `json:"ValueRating"`
}

// parseReviewDate accepts a calendar date or a full timestamp.
func parseReviewDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var in reviewInput
	if err := decode(r, &in); err != nil {
		badBody(w)
		return
	}
	var date time.Time
	if in.ReviewDate != "" {
		var ok bool
		if date, ok = parseReviewDate(in.ReviewDate); !ok {
			fail(w, http.StatusBadRequest, "Invalid ReviewDate.", "ReviewDate must be an ISO date.")
			return
		}
	}
	rv, err := h.Reviews.Create(r.Context(), domain.Review{
		HotelID:      in.HotelID,
		ReviewerName: in.ReviewerName,
		Subject:      in.ReviewSubject,
		Content:      in.ReviewContent,
		Date:         date,
		Overall:      in.OverallRating,
		Cleanliness:  in.CleanlinessRating,
		Location:     in.LocationRating,
		Service:      in.ServiceRating,
		Value:        in.ValueRating,
	})
	if err != nil {
		h.failErr(w, err)
		return
	}
	respondMsg(w, http.StatusCreated, "Review created successfully.", toReviewDTO(rv))
}

type reviewUpdateRequest struct {
	ReviewSubject string `json:"ReviewSubject"`
	ReviewContent string `json:"ReviewContent"`
}

func (h *Handlers) updateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		badID(w)
		return
	}
	ident, ok := CallerIdentity(r.Context())
	if !ok {
		fail(w, http.StatusUnauthorized, "Authentication required.", "")
		return
	}
	var req reviewUpdateRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	rv, err := h.Reviews.Update(r.Context(), ident, id, req.ReviewSubject, req.ReviewContent)
	if err != nil {
		h.failErr(w, err)
		return
	}
	respondMsg(w, http.StatusOK, "Review updated successfully.", toReviewDTO(rv))
}

type helpfulRequest struct {
	Type string `json:"type"`
}

func (h *Handlers) reviewHelpful(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		badID(w)
		return
	}
	var req helpfulRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}
	rv, err := h.Reviews.Helpful(r.Context(), id, req.Type)
	if err != nil {
		h.failErr(w, err)
		return
	}
	respond(w, http.StatusOK, toReviewDTO(rv))
}

func (h *Handlers) likeReview(w http.ResponseWriter, r *http.Request) {
	h.voteReview(w, r, domain.VoteUp)
}

func (h *Handlers) dislikeReview(w http.ResponseWriter, r *http.Request) {
	h.voteReview(w, r, domain.VoteDown)
}

func (h *Handlers) voteReview(w http.ResponseWriter, r *http.Request, dir domain.VoteDirection) {
	id, ok := idParam(r, "id")
	if !ok {
		badID(w)
		return
	}
	ident, ok := CallerIdentity(r.Context())
	if !ok {
		fail(w, http.StatusUnauthorized, "Authentication required.", "")
		return
	}
	var (
		rv  domain.Review
		err error
	)
	if dir == domain.VoteUp {
		rv, err = h.Reviews.Like(r.Context(), ident, id)
	} else {
		rv, err = h.Reviews.Dislike(r.Context(), ident, id)
	}
	if err != nil {
		h.failErr(w, err)
		return
	}
	respond(w, http.StatusOK, toReviewDTO(rv))
}
