package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/archpadhq/archpad/pkg/cache"
	"github.com/archpadhq/archpad/pkg/catalog"
	"github.com/archpadhq/archpad/pkg/observability"
	"github.com/archpadhq/archpad/pkg/store"
)

// =============================================================================
// Server
// =============================================================================

// Server serves the archpad HTTP API: the palette catalog, tool
// descriptions, persisted designs, and diagram validation/rendering.
//
// Catalog data is replaceable at runtime via Reload, so a file watcher can
// push updated palette contents without restarting the server.
type Server struct {
	mu       sync.RWMutex
	taxonomy catalog.Taxonomy
	index    catalog.Index

	store   store.Store
	renders cache.Cache
	logger  *log.Logger
	cors    string
}

// New creates a server over the given catalog data and design store.
// A nil logger falls back to the package default.
func New(taxonomy catalog.Taxonomy, index catalog.Index, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		taxonomy: taxonomy,
		index:    index,
		store:    st,
		renders:  cache.NewMemoryCache(),
		logger:   logger,
		cors:     "*",
	}
}

// WithCORSOrigin sets the origin allowed by the CORS middleware.
func (s *Server) WithCORSOrigin(origin string) *Server {
	s.cors = origin
	return s
}

// Reload swaps in fresh catalog data. Requests in flight keep the snapshot
// they started with.
func (s *Server) Reload(taxonomy catalog.Taxonomy, index catalog.Index) {
	s.mu.Lock()
	s.taxonomy = taxonomy
	s.index = index
	s.mu.Unlock()
	s.logger.Info("catalog reloaded", "tools", taxonomy.ToolCount())
	observability.Catalog().OnReload(context.Background(), taxonomy.ToolCount())
}

func (s *Server) snapshot() (catalog.Taxonomy, catalog.Index) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.taxonomy, s.index
}

// Describe looks up a tool description in the current catalog snapshot. It
// satisfies diagram.DescribeFunc.
func (s *Server) Describe(label string) string {
	_, index := s.snapshot()
	return index.Describe(label)
}

// Router builds the chi router with all API routes mounted under /api.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(s.allowCORS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/catalog", s.handleCatalog)
		r.Get("/descriptions", s.handleDescriptions)

		r.Route("/designs", func(r chi.Router) {
			r.Get("/", s.handleListDesigns)
			r.Get("/{name}", s.handleGetDesign)
			r.Put("/{name}", s.handlePutDesign)
			r.Delete("/{name}", s.handleDeleteDesign)
		})

		r.Post("/diagram/validate", s.handleValidate)
		r.Post("/render", s.handleRender)
	})

	return r
}
