// Package httpapi exposes conversion, title normalisation and the filing
// catalog over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/holdings-cli/internal/core/ports/driving"
	"github.com/custodia-labs/holdings-cli/internal/logger"
)

// ErrMissingTitleService is returned when the title service is not provided.
var ErrMissingTitleService = errors.New("httpapi: title service is required")

// errServiceUnavailable is reported for routes whose service is not configured.
var errServiceUnavailable = errors.New("service not configured")

// maxSubmissionSize bounds POST /v1/convert bodies.
const maxSubmissionSize = 256 << 20

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	// Titles is required.
	Titles driving.TitleService

	// Conversion backs /v1/convert. Optional.
	Conversion driving.ConversionService

	// Catalog backs /v1/filings and /v1/holdings. Optional.
	Catalog driving.CatalogService
}

// Server is the HTTP API server.
type Server struct {
	ports  *Ports
	router *chi.Mux
}

// NewServer creates a server and registers its routes.
func NewServer(ports *Ports) (*Server, error) {
	if ports == nil || ports.Titles == nil {
		return nil, ErrMissingTitleService
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	s := &Server{ports: ports, router: r}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/convert", s.handleConvert)
		r.Get("/titles/normalize", s.handleNormalizeTitles)

		r.Get("/filings", s.handleListFilings)
		r.Get("/filings/{accession}", s.handleGetFiling)
		r.Delete("/filings/{accession}", s.handleDeleteFiling)
		r.Get("/filings/{accession}/holdings", s.handleGetHoldings)
		r.Get("/holdings", s.handleFindHoldings)
	})
}

// Mount attaches another handler under pattern, e.g. the MCP endpoint.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.router.Mount(pattern, h)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("HTTP API listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
