package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Authenticator guards the routes that change dispatcher state.
type Authenticator interface {
	Middleware(next http.Handler) http.Handler
}

// Server combines all handlers behind one chi router.
type Server struct {
	*HealthHandler
	*EventsHandler
	*LoopHandler
	auth Authenticator
}

// NewServer creates the combined server. auth may be nil, which leaves the
// mutating routes open; the server config only allows that on loopback.
func NewServer(
	healthHandler *HealthHandler,
	eventsHandler *EventsHandler,
	loopHandler *LoopHandler,
	auth Authenticator,
) *Server {
	return &Server{
		HealthHandler: healthHandler,
		EventsHandler: eventsHandler,
		LoopHandler:   loopHandler,
		auth:          auth,
	}
}

// Routes builds the admin router:
//
//	GET    /api/v1/health/live
//	GET    /api/v1/health/ready
//	GET    /api/v1/events
//	POST   /api/v1/events/{name}   (authenticated)
//	DELETE /api/v1/events/{name}   (authenticated)
//	GET    /api/v1/loop
//	POST   /api/v1/loop/quit       (authenticated)
//	GET    /metrics
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health/live", s.GetLiveness)
		r.Get("/health/ready", s.GetReadiness)

		r.Get("/events", s.ListEvents)
		r.Get("/loop", s.GetLoop)

		r.Group(func(r chi.Router) {
			if s.auth != nil {
				r.Use(s.auth.Middleware)
			}
			r.Post("/events/{name}", s.EmitEvent)
			r.Delete("/events/{name}", s.EventsHandler.UnregisterEvent)
			r.Post("/loop/quit", s.QuitLoop)
		})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
