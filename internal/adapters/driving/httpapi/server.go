// Package httpapi exposes the lookup service over a small JSON HTTP
// surface, intended for local tooling and editor integrations.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vondel-labs/begrip-cli/internal/core/domain"
	"github.com/vondel-labs/begrip-cli/internal/core/ports/driving"
	"github.com/vondel-labs/begrip-cli/internal/logger"
)

// Server wraps the lookup service behind an HTTP router.
type Server struct {
	lookup driving.LookupService
	router chi.Router
}

// NewServer creates the HTTP API server around the lookup service.
func NewServer(lookup driving.LookupService) *Server {
	s := &Server{lookup: lookup}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/v1/lookup", s.handleLookup)
	r.Get("/v1/providers", s.handleProviders)

	s.router = r
	return s
}

// Handler returns the HTTP handler for mounting or serving.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the API server until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("HTTP API listening on %s", addr)
	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// lookupResponse is the JSON shape of a lookup call.
type lookupResponse struct {
	RequestID string         `json:"request_id"`
	Term      string         `json:"term"`
	Results   []resultEntry  `json:"results"`
	Attempts  []attemptEntry `json:"attempts,omitempty"`
}

type resultEntry struct {
	Provider   string  `json:"provider"`
	Title      string  `json:"title,omitempty"`
	Definition string  `json:"definition"`
	Snippet    string  `json:"snippet,omitempty"`
	URL        string  `json:"url"`
	Confidence float64 `json:"confidence"`
	Juridical  bool    `json:"juridical"`
}

type attemptEntry struct {
	Provider string `json:"provider"`
	Stage    string `json:"stage,omitempty"`
	Query    string `json:"query"`
	Success  bool   `json:"success"`
	Err      string `json:"error,omitempty"`
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := domain.LookupRequest{
		Term:    q.Get("term"),
		Context: q.Get("context"),
	}
	if sources := q.Get("sources"); sources != "" {
		req.Sources = strings.Split(sources, ",")
	}
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		req.MaxResults = n
	}

	report, err := s.lookup.Lookup(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := lookupResponse{
		RequestID: report.RequestID,
		Term:      req.Term,
		Results:   make([]resultEntry, len(report.Results)),
	}
	for i := range report.Results {
		res := &report.Results[i]
		title, _ := res.Metadata["title"].(string)
		resp.Results[i] = resultEntry{
			Provider:   res.Source.Name,
			Title:      title,
			Definition: res.Definition,
			Snippet:    res.Context,
			URL:        res.Source.URL,
			Confidence: res.Source.Confidence,
			Juridical:  res.Source.Juridical,
		}
	}
	if q.Get("attempts") == "true" {
		resp.Attempts = make([]attemptEntry, len(report.Attempts))
		for i, a := range report.Attempts {
			resp.Attempts[i] = attemptEntry{
				Provider: a.Provider,
				Stage:    a.Stage,
				Query:    a.Query,
				Success:  a.Success,
				Err:      a.Err,
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProviders(w http.ResponseWriter, _ *http.Request) {
	type providerEntry struct {
		Name      string  `json:"name"`
		Protocol  string  `json:"protocol"`
		BaseURL   string  `json:"base_url,omitempty"`
		Weight    float64 `json:"weight"`
		Juridical bool    `json:"juridical"`
		Enabled   bool    `json:"enabled"`
	}

	providers := s.lookup.Providers()
	entries := make([]providerEntry, len(providers))
	for i, p := range providers {
		entries[i] = providerEntry{
			Name:      p.Name,
			Protocol:  string(p.Protocol),
			BaseURL:   p.BaseURL,
			Weight:    p.Weight,
			Juridical: p.Juridical,
			Enabled:   p.Enabled,
		}
	}

	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Writing response failed: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
