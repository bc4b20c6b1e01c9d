// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes contract upload and analysis retrieval over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/pdiddy/agreemint/internal/acquire"
	"github.com/pdiddy/agreemint/internal/records"
	"github.com/pdiddy/agreemint/internal/report"
	"github.com/pdiddy/agreemint/internal/service"
	"github.com/pdiddy/agreemint/pkg/types"
)

const (
	serviceName    = "agreemint-api"
	serviceVersion = "1.0.0"
	defaultAddr    = ":8000"

	// multipartOverhead is allowed on top of the file size limit for form framing.
	multipartOverhead = 1 << 20
)

// Server is the HTTP API in front of a Service.
type Server struct {
	svc    *service.Service
	cfg    types.ServerConfig
	logger *slog.Logger
	srv    *http.Server
}

// New returns a Server. A nil logger discards log output.
func New(svc *service.Service, cfg types.ServerConfig, logger *slog.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{svc: svc, cfg: cfg, logger: logger}
	s.srv = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(requestLogger(s.logger))
	r.Use(recoverer(s.logger))
	r.Use(cors(s.cfg.CORSOrigins))

	// OPTIONS is listed on every route: mux runs middleware only on a
	// matched route, and cors answers preflight requests.
	r.HandleFunc("/", s.handleRoot).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/analyses", s.handleList).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/analyze/{id}", s.handleGet).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/analyze/{id}", s.handleDelete).Methods(http.MethodDelete)
	r.HandleFunc("/analyze/{id}/report", s.handleReport).Methods(http.MethodGet, http.MethodOptions)
	return r
}

// ListenAndServe starts the HTTP server and blocks until it stops. It
// returns nil once Shutdown is called, including a Shutdown that ran first.
func (s *Server) ListenAndServe() error {
	s.logger.Info("listening", "addr", s.cfg.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server. It is safe to call from another
// goroutine at any time, before or after ListenAndServe starts.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "AgreeMint Maestro API",
		"description": "Contract analysis backend",
		"version":     serviceVersion,
		"endpoints": map[string]string{
			"/health":              "Health check",
			"/upload":              "Upload contract file",
			"/analyze/{id}":        "Get or delete analysis results",
			"/analyze/{id}/report": "Render analysis as json or text",
			"/analyses":            "List all analyses",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   serviceName,
	})
}

type uploadResponse struct {
	AnalysisID string `json:"analysis_id"`
	Message    string `json:"message"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.svc.MaxBytes()+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusBadRequest, tooLargeDetail(s.svc.MaxBytes()))
			return
		}
		writeError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	if err := acquire.CheckDeclaredType(header.Header.Get("Content-Type")); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := acquire.CheckSize(header.Size, s.svc.MaxBytes()); err != nil {
		writeError(w, http.StatusBadRequest, tooLargeDetail(s.svc.MaxBytes()))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading upload: "+err.Error())
		return
	}

	rec, err := s.svc.Submit(r.Context(), service.Upload{Filename: header.Filename, Data: data})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	msg := "Contract uploaded and analyzed successfully."
	if rec.Status == types.RecordFailed {
		msg = "Contract uploaded. Analysis failed: " + rec.ErrorMessage
	}
	writeJSON(w, http.StatusOK, uploadResponse{AnalysisID: rec.ID, Message: msg})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	status := types.RecordStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, http.StatusBadRequest, "status must be pending, completed, or failed")
		return
	}
	recs, err := s.svc.List(r.Context(), records.ListOptions{Status: status})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Analysis deleted successfully"})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	format := report.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = report.FormatJSON
	}
	out, err := s.svc.Report(r.Context(), mux.Vars(r)["id"], format)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	contentType := "application/json"
	if format == report.FormatText {
		contentType = "text/plain; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, out)
}

// writeServiceError maps domain errors to HTTP status codes.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, records.ErrNotFound):
		writeError(w, http.StatusNotFound, "Analysis not found")
	case errors.Is(err, report.ErrInvalidFormat),
		errors.Is(err, acquire.ErrTooLarge),
		errors.Is(err, acquire.ErrUnsupportedType):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// tooLargeDetail reports the configured upload limit in the largest whole unit.
func tooLargeDetail(maxBytes int64) string {
	var size string
	switch {
	case maxBytes >= 1<<20 && maxBytes%(1<<20) == 0:
		size = fmt.Sprintf("%dMB", maxBytes>>20)
	case maxBytes >= 1<<10 && maxBytes%(1<<10) == 0:
		size = fmt.Sprintf("%dKB", maxBytes>>10)
	default:
		size = fmt.Sprintf("%d bytes", maxBytes)
	}
	return "File size too large. Maximum size is " + size
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
