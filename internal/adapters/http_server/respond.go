package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"hoteldir/internal/domain"
)

// envelope is the uniform response shape for every endpoint.
type envelope struct {
	Success    bool      `json:"success"`
	Data       any       `json:"data,omitempty"`
	Error      string    `json:"error,omitempty"`
	Message    string    `json:"message,omitempty"`
	Pagination *pageInfo `json:"pagination,omitempty"`
}

type pageInfo struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

func toPageInfo(p domain.PageInfo) *pageInfo {
	return &pageInfo{
		CurrentPage:  p.CurrentPage,
		TotalPages:   p.TotalPages,
		TotalItems:   p.TotalItems,
		ItemsPerPage: p.ItemsPerPage,
		HasNextPage:  p.HasNextPage,
		HasPrevPage:  p.HasPrevPage,
	}
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func respond(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func respondMsg(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

func respondPage(w http.ResponseWriter, status int, data any, p domain.PageInfo) {
	writeJSON(w, status, envelope{Success: true, Data: data, Pagination: toPageInfo(p)})
}

func fail(w http.ResponseWriter, status int, errMsg, message string) {
	writeJSON(w, status, envelope{Success: false, Error: errMsg, Message: message})
}

// failErr maps domain errors onto the envelope and status code.
func (h *Handlers) failErr(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	var mhe *domain.ManagedHotelsError

	switch {
	case errors.As(err, &ve):
		if len(ve.Fields) > 0 {
			fail(w, http.StatusBadRequest, "Missing required fields.", ve.Error())
		} else {
			fail(w, http.StatusBadRequest, "Validation failed.", ve.Error())
		}
	case errors.As(err, &mhe):
		fail(w, http.StatusBadRequest, "Cannot delete user.", mhe.Error())
	case errors.Is(err, domain.ErrNotFound):
		fail(w, http.StatusNotFound, "Not found.", "")
	case errors.Is(err, domain.ErrDuplicate):
		fail(w, http.StatusBadRequest, "Already exists.", "The provided unique fields are already taken.")
	case errors.Is(err, domain.ErrInvalidCredentials):
		fail(w, http.StatusUnauthorized, "Invalid credentials.", "")
	case errors.Is(err, domain.ErrInvalidManager):
		fail(w, http.StatusBadRequest, "Invalid manager.", err.Error())
	case errors.Is(err, domain.ErrTokenExpired):
		fail(w, http.StatusUnauthorized, "Token expired.", "Your authentication token has expired. Please log in again.")
	case errors.Is(err, domain.ErrTokenMalformed):
		fail(w, http.StatusUnauthorized, "Invalid token.", "The provided token is invalid or malformed.")
	case errors.Is(err, domain.ErrForbidden):
		fail(w, http.StatusForbidden, "Access denied.", "")
	case errors.Is(err, domain.ErrSelfDemotion):
		fail(w, http.StatusBadRequest, "Cannot demote yourself.", err.Error())
	case errors.Is(err, domain.ErrSelfDeletion):
		fail(w, http.StatusBadRequest, "Cannot delete yourself.", err.Error())
	default:
		log.Error().Err(err).Msg("unexpected error")
		msg := "Internal server error."
		if h.AppEnv == "dev" || h.AppEnv == "development" {
			msg = err.Error()
		}
		fail(w, http.StatusInternalServerError, "Something went wrong!", msg)
	}
}
