// Package api exposes the assistant over HTTP: conversation sessions,
// template catalog, the manual editor, and PDF export.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/lavishq/docpilot/internal/common"
	"github.com/lavishq/docpilot/internal/doctmpl"
	"github.com/lavishq/docpilot/internal/llm"
	"github.com/lavishq/docpilot/internal/mapping"
	"github.com/lavishq/docpilot/internal/pdf"
	"github.com/lavishq/docpilot/internal/render"
)

type Server struct {
	router   chi.Router
	catalog  *doctmpl.Catalog
	mappings mapping.Store
	provider llm.Provider
	registry *render.Registry
	exporter *pdf.Exporter
	sessions *sessionManager
}

func NewServer(catalog *doctmpl.Catalog, mappings mapping.Store, provider llm.Provider) (*Server, error) {
	logger := common.Logger()
	if catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if mappings == nil {
		return nil, fmt.Errorf("mapping store required")
	}
	if provider == nil {
		return nil, fmt.Errorf("llm provider required")
	}
	registry := render.NewRegistry()
	srv := &Server{
		router:   chi.NewRouter(),
		catalog:  catalog,
		mappings: mappings,
		provider: provider,
		registry: registry,
		exporter: pdf.NewExporter(registry),
		sessions: newSessionManager(),
	}
	srv.routes()
	logger.Info("api: server ready", "provider", provider.Name(), "templates", len(catalog.Templates()))
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Get("/v1/templates", s.handleTemplates)
	s.router.Get("/v1/preview/{templateID}", s.handlePreview)

	s.router.Post("/v1/sessions", s.handleSessionCreate)
	s.router.Get("/v1/sessions/{sessionID}", s.handleSessionGet)
	s.router.Post("/v1/sessions/{sessionID}/select", s.handleSelect)
	s.router.Post("/v1/sessions/{sessionID}/messages", s.handleMessage)
	s.router.Post("/v1/sessions/{sessionID}/reset", s.handleReset)

	s.router.Post("/v1/sessions/{sessionID}/editor/select", s.handleEditorSelect)
	s.router.Post("/v1/sessions/{sessionID}/editor/value", s.handleEditorValue)
	s.router.Post("/v1/sessions/{sessionID}/editor/finalize", s.handleEditorFinalize)

	s.router.Post("/v1/export/pdf", s.handleExport)
	s.router.Get("/v1/logs", s.handleLogs)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": common.LogEntries()})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
