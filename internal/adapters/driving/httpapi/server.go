// Package httpapi serves the generation pipeline over a JSON REST API and
// provides a client for it.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driving"
	"github.com/NovemberMoon/iac-generator-rag/internal/logger"
)

// Routes.
const (
	PathGenerate = "/api/v1/generate"
	PathIndex    = "/api/v1/index"
	PathHealth   = "/healthz"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// ErrMissingGenerationService is returned when the generation service is not provided.
var ErrMissingGenerationService = errors.New("httpapi: generation service is required")

// Ports aggregates the driving ports the REST API calls.
type Ports struct {
	Generation driving.GenerationService

	// Index is optional; without it /api/v1/index answers 501.
	Index driving.IndexService
}

// GenerateRequest is the body of POST /api/v1/generate.
type GenerateRequest struct {
	Query   string `json:"query"`
	IaCTool string `json:"iac_tool,omitempty"`
	Save    bool   `json:"save,omitempty"`
}

// IndexResponse is the body returned by POST /api/v1/index.
type IndexResponse struct {
	Documents  int     `json:"documents"`
	Chunks     int     `json:"chunks"`
	Generation string  `json:"generation"`
	Seconds    float64 `json:"seconds"`
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Detail string `json:"detail"`
}

// Server is the REST API.
type Server struct {
	ports *Ports
	mux   *http.ServeMux
}

// NewServer creates a server over ports.
func NewServer(ports *Ports) (*Server, error) {
	if ports == nil || ports.Generation == nil {
		return nil, ErrMissingGenerationService
	}

	s := &Server{ports: ports, mux: http.NewServeMux()}
	s.mux.HandleFunc("POST "+PathGenerate, s.handleGenerate)
	s.mux.HandleFunc("POST "+PathIndex, s.handleIndex)
	s.mux.HandleFunc("GET "+PathHealth, s.handleHealth)
	return s, nil
}

// Handler returns the API's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("REST API listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query must not be empty")
		return
	}

	result, err := s.ports.Generation.Generate(r.Context(), domain.GenerationRequest{
		Query: req.Query,
		Tool:  domain.ParseTool(req.IaCTool),
		Save:  req.Save,
	})
	if err != nil {
		logger.Error("generate: %v", err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.ports.Index == nil {
		writeError(w, http.StatusNotImplemented, "indexing is not enabled on this server")
		return
	}

	stats, err := s.ports.Index.Index(r.Context())
	if err != nil {
		logger.Error("index: %v", err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, IndexResponse{
		Documents:  stats.Documents,
		Chunks:     stats.Chunks,
		Generation: stats.Generation,
		Seconds:    stats.Duration.Seconds(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrIndexInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptyCorpus):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
