package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/logger"
)

// ConvertResponse is the body returned by POST /v1/convert.
type ConvertResponse struct {
	AccessionNumber string              `json:"accession_number"`
	RecordSets      []*domain.RecordSet `json:"record_sets"`
	Diagnostics     []domain.Diagnostic `json:"diagnostics"`
}

// TitleResponse is one entry returned by GET /v1/titles/normalize.
type TitleResponse struct {
	Original   string `json:"original"`
	Normalized string `json:"normalized"`
	Category   string `json:"category,omitempty"`
}

// errorResponse is the body of every error reply.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleConvert parses the request body as submission text.
// POST /v1/convert
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if s.ports.Conversion == nil {
		writeError(w, r, errServiceUnavailable)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSubmissionSize))
	if err != nil {
		writeError(w, r, errors.Join(domain.ErrInvalidInput, err))
		return
	}

	conv, err := s.ports.Conversion.Convert(r.Context(), string(data))
	if err != nil {
		writeError(w, r, err)
		return
	}

	diagnostics := conv.Diagnostics
	if diagnostics == nil {
		diagnostics = []domain.Diagnostic{}
	}
	writeJSON(w, http.StatusOK, ConvertResponse{
		AccessionNumber: conv.AccessionNumber(),
		RecordSets:      conv.RecordSets(),
		Diagnostics:     diagnostics,
	})
}

// handleNormalizeTitles normalises every title query parameter.
// GET /v1/titles/normalize?title=...&title=...&category=true&detailed=true
func (s *Server) handleNormalizeTitles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	titles := q["title"]
	category := boolParam(q.Get("category"))
	detailed := boolParam(q.Get("detailed"))

	normalized := s.ports.Titles.NormalizeAll(titles)
	out := make([]TitleResponse, len(titles))
	for i, t := range titles {
		out[i] = TitleResponse{Original: t, Normalized: normalized[i]}
		if category {
			out[i].Category = s.ports.Titles.Classify(t, detailed)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /v1/filings
func (s *Server) handleListFilings(w http.ResponseWriter, r *http.Request) {
	if s.ports.Catalog == nil {
		writeError(w, r, errServiceUnavailable)
		return
	}
	filings, err := s.ports.Catalog.ListFilings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if filings == nil {
		filings = []domain.StoredFiling{}
	}
	writeJSON(w, http.StatusOK, filings)
}

// GET /v1/filings/{accession}
func (s *Server) handleGetFiling(w http.ResponseWriter, r *http.Request) {
	if s.ports.Catalog == nil {
		writeError(w, r, errServiceUnavailable)
		return
	}
	filing, err := s.ports.Catalog.GetFiling(r.Context(), chi.URLParam(r, "accession"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, filing)
}

// DELETE /v1/filings/{accession}
func (s *Server) handleDeleteFiling(w http.ResponseWriter, r *http.Request) {
	if s.ports.Catalog == nil {
		writeError(w, r, errServiceUnavailable)
		return
	}
	if err := s.ports.Catalog.DeleteFiling(r.Context(), chi.URLParam(r, "accession")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /v1/filings/{accession}/holdings
func (s *Server) handleGetHoldings(w http.ResponseWriter, r *http.Request) {
	if s.ports.Catalog == nil {
		writeError(w, r, errServiceUnavailable)
		return
	}
	holdings, err := s.ports.Catalog.GetHoldings(r.Context(), chi.URLParam(r, "accession"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if holdings == nil {
		holdings = []domain.HoldingRecord{}
	}
	writeJSON(w, http.StatusOK, holdings)
}

// GET /v1/holdings?cusip=...
func (s *Server) handleFindHoldings(w http.ResponseWriter, r *http.Request) {
	if s.ports.Catalog == nil {
		writeError(w, r, errServiceUnavailable)
		return
	}
	matches, err := s.ports.Catalog.FindByCUSIP(r.Context(), r.URL.Query().Get("cusip"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if matches == nil {
		matches = []domain.HoldingMatch{}
	}
	writeJSON(w, http.StatusOK, matches)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Warn("%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, errorResponse{
		Error:     err.Error(),
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrMalformedDocument):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, errServiceUnavailable), errors.Is(err, domain.ErrNotImplemented):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func boolParam(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
