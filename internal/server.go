package internal

import (
	"context"
	"net/http"
	"time"

	"devicehub-api/internal/config"
	"devicehub-api/internal/handlers"
	"devicehub-api/internal/models"
	"devicehub-api/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	Store   *store.Store
	Router  *chi.Mux
	Metrics *Metrics

	bcryptCost int
	// production hides driver error text from clients.
	production bool
}

// NewServer builds the router over an opened store. The caller owns the
// store's lifecycle.
func NewServer(st *store.Store, cfg *config.Config) *Server {
	s := &Server{
		Store:      st,
		Router:     chi.NewRouter(),
		Metrics:    NewMetrics(),
		bcryptCost: cfg.BcryptCost,
		production: cfg.IsProduction(),
	}

	s.Router.Use(middleware.RequestID)
	s.Router.Use(middleware.RealIP)
	s.Router.Use(middleware.Logger)
	s.Router.Use(middleware.Recoverer)

	if cfg.EnableMetrics {
		s.Router.Use(s.Metrics.Middleware())
		s.Router.Get("/metrics", s.Metrics.Handler().ServeHTTP)
	}

	s.Router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	s.Router.Get("/dbping", s.dbPing)

	s.mountRoutes(s.Router, cfg)
	return s
}

func (s *Server) dbPing(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.Store.Ping(ctx); err != nil {
		http.Error(w, "db: "+err.Error(), http.StatusServiceUnavailable)
		return
	}
	if _, err := w.Write([]byte("db: ok")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) mountRoutes(r chi.Router, cfg *config.Config) {
	mountResource(r, "/assets", &resource[models.Asset]{srv: s, repo: s.Store.Assets}, s.assetRelations)
	mountResource(r, "/departments", &resource[models.Department]{srv: s, repo: s.Store.Departments}, s.departmentRelations)
	mountResource(r, "/suppliers", &resource[models.Supplier]{srv: s, repo: s.Store.Suppliers}, s.supplierRelations)
	mountResource(r, "/employees", &resource[models.Employee]{
		srv:     s,
		repo:    s.Store.Employees,
		prepare: s.prepareEmployee,
		present: models.Employee.Redacted,
	}, s.employeeRelations)
	mountResource(r, "/warranties", &resource[models.Warranty]{srv: s, repo: s.Store.Warranties}, nil)
	mountResource(r, "/licenses", &resource[models.License]{srv: s, repo: s.Store.Licenses}, nil)
	mountResource(r, "/maintenance", &resource[models.MaintenanceRecord]{srv: s, repo: s.Store.Maintenance}, nil)

	imports := handlers.NewImportsHandler(s.Store, cfg.ImportMaxBytes, cfg.ImportMapping)
	r.Post("/imports/assets", imports.UploadExcel)
}
