package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dealdeck/dealdeck/internal/domain"
)

// DealService is the slice of the deals service the handlers need.
type DealService interface {
	List(ctx context.Context, f domain.DealFilter, skip, limit int) (*domain.Page[domain.Deal], error)
	Get(ctx context.Context, id int64) (*domain.Deal, error)
	Create(ctx context.Context, d *domain.Deal) (*domain.Deal, error)
	Update(ctx context.Context, d *domain.Deal) (*domain.Deal, error)
	Delete(ctx context.Context, id int64) error
	CityStats(ctx context.Context) ([]domain.CityStat, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the HTTP front of the application.
type Server struct {
	deals  DealService
	db     Pinger
	router chi.Router
}

// New builds the server and its route table.
func New(deals DealService, db Pinger) *Server {
	s := &Server{deals: deals, db: db}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(recoverer)
	r.Use(httpMetrics)
	r.Use(tracing)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Handle("/live", s.liveHandler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/deals", func(r chi.Router) {
			r.Get("/", s.handleListDeals)
			r.Post("/", s.handleCreateDeal)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetDeal)
				r.Put("/", s.handleUpdateDeal)
				r.Delete("/", s.handleDeleteDeal)
			})
		})
		r.Get("/stats/cities", s.handleCityStats)
	})

	s.router = r
	return s
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
