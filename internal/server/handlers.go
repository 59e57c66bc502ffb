package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/archpadhq/archpad/pkg/buildinfo"
	"github.com/archpadhq/archpad/pkg/cache"
	apperrors "github.com/archpadhq/archpad/pkg/errors"
	appio "github.com/archpadhq/archpad/pkg/io"
	"github.com/archpadhq/archpad/pkg/observability"
	"github.com/archpadhq/archpad/pkg/render"
	"github.com/archpadhq/archpad/pkg/store"
)

// maxBodySize caps request bodies; diagrams are small documents.
const maxBodySize = 4 << 20 // 4 MiB

// =============================================================================
// Response helpers
// =============================================================================

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

// writeError responds with the error's machine-readable code and
// user-facing message. The HTTP status follows from the code; errors that
// carry no code report as internal.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	s.writeJSON(w, apperrors.HTTPStatus(code), map[string]string{
		"code":  string(code),
		"error": apperrors.UserMessage(err),
	})
}

// designError translates a store failure on a named design into an API
// error. Backend failures keep their cause for the log line but surface only
// the operation to the client.
func designError(op, name string, err error) *apperrors.Error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apperrors.New(apperrors.ErrCodeDesignNotFound, "design not found: %s", name)
	case errors.Is(err, store.ErrInvalidName):
		return apperrors.New(apperrors.ErrCodeInvalidName, "%v: %s", store.ErrInvalidName, name)
	default:
		return apperrors.Wrap(apperrors.ErrCodeStoreFailed, err, "%s design", op)
	}
}

// writeDesignError maps and reports a store failure. Backend errors are
// logged with their cause before the sanitized response goes out.
func (s *Server) writeDesignError(w http.ResponseWriter, op, name string, err error) {
	apiErr := designError(op, name, err)
	if apperrors.Is(apiErr, apperrors.ErrCodeStoreFailed) {
		s.logger.Error(op+" design", "name", name, "err", apiErr)
	}
	s.writeError(w, apiErr)
}

func (s *Server) readDiagram(w http.ResponseWriter, r *http.Request) (appio.Diagram, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidPayload, "read body: %v", err))
		return appio.Diagram{}, false
	}
	d, err := appio.UnmarshalDiagram(body)
	if err != nil {
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidPayload, "%v", err))
		return appio.Diagram{}, false
	}
	return d, true
}

// =============================================================================
// Health and catalog
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	taxonomy, _ := s.snapshot()
	s.writeJSON(w, http.StatusOK, taxonomy)
}

func (s *Server) handleDescriptions(w http.ResponseWriter, r *http.Request) {
	_, index := s.snapshot()
	s.writeJSON(w, http.StatusOK, index.All())
}

// =============================================================================
// Designs
// =============================================================================

func (s *Server) handleListDesigns(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		wrapped := apperrors.Wrap(apperrors.ErrCodeStoreFailed, err, "list designs")
		s.logger.Error("list designs", "err", wrapped)
		s.writeError(w, wrapped)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"designs": names})
}

func (s *Server) handleGetDesign(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	d, err := s.store.Get(r.Context(), name)
	if err != nil {
		s.writeDesignError(w, "get", name, err)
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

func (s *Server) handlePutDesign(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := store.ValidateName(name); err != nil {
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidName, "%v: %s", err, name))
		return
	}

	d, ok := s.readDiagram(w, r)
	if !ok {
		return
	}
	// Reject structurally broken diagrams before they hit storage.
	if _, err := appio.ToDocument(d, s.Describe); err != nil {
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidDiagram, "%v", err))
		return
	}

	if err := s.store.Put(r.Context(), name, d); err != nil {
		s.writeDesignError(w, "put", name, err)
		return
	}
	s.logger.Info("design saved", "name", name, "nodes", len(d.Nodes), "edges", len(d.Edges))
	observability.Design().OnSave(r.Context(), name, len(d.Nodes), len(d.Edges))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteDesign(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := s.store.Delete(r.Context(), name); err != nil {
		s.writeDesignError(w, "delete", name, err)
		return
	}
	observability.Design().OnDelete(r.Context(), name)
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Validation and rendering
// =============================================================================

// validationResult reports the outcome of a diagram validation request.
type validationResult struct {
	Valid   bool   `json:"valid"`
	Error   string `json:"error,omitempty"`
	Nodes   int    `json:"nodes"`
	Edges   int    `json:"edges"`
	Counter int    `json:"counter"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	d, ok := s.readDiagram(w, r)
	if !ok {
		return
	}

	doc, err := appio.ToDocument(d, s.Describe)
	if err != nil {
		s.writeJSON(w, http.StatusOK, validationResult{
			Valid: false,
			Error: err.Error(),
			Nodes: len(d.Nodes),
			Edges: len(d.Edges),
		})
		return
	}

	s.writeJSON(w, http.StatusOK, validationResult{
		Valid:   true,
		Nodes:   doc.NodeCount(),
		Edges:   doc.EdgeCount(),
		Counter: doc.Counter(),
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	d, ok := s.readDiagram(w, r)
	if !ok {
		return
	}
	if _, err := appio.ToDocument(d, s.Describe); err != nil {
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidDiagram, "%v", err))
		return
	}

	opts := render.Options{Detailed: r.URL.Query().Get("detailed") == "true"}
	dot := render.ToDOT(d, opts)

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "svg"
	}

	switch format {
	case "dot":
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		_, _ = w.Write([]byte(dot))

	case "svg":
		out, err := s.renderCached(r.Context(), dot, format, render.RenderSVG)
		if err != nil {
			wrapped := apperrors.Wrap(apperrors.ErrCodeRenderFailed, err, "render failed")
			s.logger.Error("render svg", "err", wrapped)
			s.writeError(w, wrapped)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(out)

	case "png":
		out, err := s.renderCached(r.Context(), dot, format, render.RenderPNG)
		if err != nil {
			wrapped := apperrors.Wrap(apperrors.ErrCodeRenderFailed, err, "render failed")
			s.logger.Error("render png", "err", wrapped)
			s.writeError(w, wrapped)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(out)

	default:
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown format: %s", format))
	}
}

// renderTTL bounds how long rendered artifacts stay cached.
const renderTTL = time.Hour

// renderCached returns a cached artifact for the DOT source or renders and
// caches a fresh one. Cache failures are logged and rendered around.
func (s *Server) renderCached(ctx context.Context, dot, format string, fn func(context.Context, string) ([]byte, error)) ([]byte, error) {
	key := cache.RenderKey(dot, format)
	start := time.Now()

	if out, found, err := s.renders.Get(ctx, key); err != nil {
		s.logger.Warn("render cache get", "err", err)
	} else if found {
		observability.Render().OnRenderComplete(ctx, format, true, time.Since(start), nil)
		return out, nil
	}

	out, err := fn(ctx, dot)
	observability.Render().OnRenderComplete(ctx, format, false, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if err := s.renders.Set(ctx, key, out, renderTTL); err != nil {
		s.logger.Warn("render cache set", "err", err)
	}
	return out, nil
}
