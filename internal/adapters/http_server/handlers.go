package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hoteldir/internal/app"
	"hoteldir/internal/domain"
)

// Handlers owns the services exposed over HTTP.
type Handlers struct {
	AppEnv  string
	Tokens  TokenVerifier
	Authz   *app.Authorizer
	Auth    *app.AuthService
	Hotels  *app.HotelService
	Reviews *app.ReviewService
	Users   *app.UserService

	loginLimiter *ipLimiter
}

type HandlersConfig struct {
	AppEnv     string
	Tokens     TokenVerifier
	Authz      *app.Authorizer
	Auth       *app.AuthService
	Hotels     *app.HotelService
	Reviews    *app.ReviewService
	Users      *app.UserService
	LoginRPS   float64
	LoginBurst int
}

func NewHandlers(cfg HandlersConfig) *Handlers {
	if cfg.LoginRPS <= 0 {
		cfg.LoginRPS = 1
	}
	if cfg.LoginBurst <= 0 {
		cfg.LoginBurst = 5
	}
	return &Handlers{
		AppEnv:       cfg.AppEnv,
		Tokens:       cfg.Tokens,
		Authz:        cfg.Authz,
		Auth:         cfg.Auth,
		Hotels:       cfg.Hotels,
		Reviews:      cfg.Reviews,
		Users:        cfg.Users,
		loginLimiter: newIPLimiter(cfg.LoginRPS, cfg.LoginBurst),
	}
}

var availableRoutes = []string{
	"GET /health",
	"POST /api/auth/register",
	"POST /api/auth/login",
	"GET /api/hotels",
	"GET /api/hotels/with-reviews",
	"GET /api/hotels/with-reviews-managers",
	"GET /api/hotels/manager",
	"GET /api/hotels/id/{id}",
	"GET /api/hotels/id/{id}/details",
	"GET /api/hotels/{name}",
	"POST /api/hotels",
	"PUT /api/hotels/{id}",
	"DELETE /api/hotels/{id}",
	"GET /api/my-hotels",
	"PUT /api/reassign-hotel/{hotelId}",
	"GET /api/cities",
	"GET /api/regions",
	"POST /api/reviews",
	"PUT /api/reviews/{id}",
	"PUT /api/reviews/{id}/helpful",
	"POST /api/reviews/{id}/like",
	"POST /api/reviews/{id}/dislike",
	"GET /api/users",
	"POST /api/users",
	"GET /api/users/{id}",
	"PUT /api/users/{id}",
	"DELETE /api/users/{id}",
	"PUT /api/users/{id}/role",
}

// MountHandlers attaches all API routes to the server.
func (h *Handlers) MountHandlers(s *Server) {
	s.mux.Get("/health", h.health)

	s.mux.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.register)
			r.With(h.LoginRateLimit).Post("/login", h.login)
		})

		r.Route("/hotels", func(r chi.Router) {
			r.Get("/", h.listHotels)
			r.Get("/with-reviews", h.hotelsWithReviews)
			r.Get("/with-reviews-managers", h.hotelsWithReviewsManagers)
			r.With(h.Authenticate).Get("/manager", h.hotelsForManager)
			r.Get("/id/{id}", h.getHotelByID)
			r.Get("/id/{id}/details", h.getHotelDetails)
			r.Get("/{name}", h.getHotelByName)

			r.Group(func(r chi.Router) {
				r.Use(h.Authenticate)
				r.Use(h.RequirePermission(domain.ResourceHotels, domain.ActionWrite))
				r.Post("/", h.createHotel)
				r.Put("/{id}", h.updateHotel)
				r.Delete("/{id}", h.deleteHotel)
			})
		})

		r.With(h.Authenticate, h.RequirePermission(domain.ResourceOwnHotels, domain.ActionRead)).
			Get("/my-hotels", h.myHotels)
		r.With(h.Authenticate, h.RequireAdmin).
			Put("/reassign-hotel/{hotelId}", h.reassignHotel)

		r.Get("/cities", h.listCities)
		r.Get("/regions", h.listRegions)

		r.Route("/reviews", func(r chi.Router) {
			r.With(h.Authenticate, h.RequirePermission(domain.ResourceReviews, domain.ActionWrite)).
				Post("/", h.createReview)
			r.With(h.Authenticate).Put("/{id}", h.updateReview)
			r.Put("/{id}/helpful", h.reviewHelpful)
			r.With(h.Authenticate).Post("/{id}/like", h.likeReview)
			r.With(h.Authenticate).Post("/{id}/dislike", h.dislikeReview)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(h.Authenticate)
			r.Use(h.RequireAdmin)
			r.Get("/", h.listUsers)
			r.Post("/", h.createUser)
			r.Get("/{id}", h.getUser)
			r.Put("/{id}", h.updateUser)
			r.Delete("/{id}", h.deleteUser)
			r.Put("/{id}/role", h.updateUserRole)
		})
	})

	s.mux.NotFound(h.notFound)
}

func (h *Handlers) health(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, envelope{
		Success: false,
		Error:   "Route not found.",
		Message: r.Method + " " + r.URL.Path + " is not a known route.",
		Data:    map[string]any{"availableRoutes": availableRoutes},
	})
}

// ---- small helpers shared by the handlers ----

func decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func intQuery(r *http.Request, name string) int {
	v, _ := strconv.Atoi(r.URL.Query().Get(name))
	return v
}

func pageQuery(r *http.Request) domain.PageQuery {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return domain.PageQuery{Page: page, Limit: limit}
}

func badID(w http.ResponseWriter) {
	fail(w, http.StatusBadRequest, "Invalid id.", "The id path parameter must be a positive integer.")
}

func badBody(w http.ResponseWriter) {
	fail(w, http.StatusBadRequest, "Invalid request body.", "The request body must be valid JSON.")
}
