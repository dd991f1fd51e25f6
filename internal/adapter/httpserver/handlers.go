package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/resume-insight/internal/config"
	"github.com/fairyhunter13/resume-insight/internal/domain"
	"github.com/fairyhunter13/resume-insight/internal/usecase"
	"github.com/gabriel-vasile/mimetype"
)

// userIDHeader carries the authenticated user id, populated by the
// upstream gateway.
const userIDHeader = "X-User-Id"

// Server aggregates handlers dependencies.
type Server struct {
	Cfg     config.Config
	Analyze usecase.AnalyzeService
	Results usecase.ResultService
	DBCheck func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(cfg config.Config, analyze usecase.AnalyzeService, results usecase.ResultService, dbCheck func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Analyze: analyze, Results: results, DBCheck: dbCheck}
}

// allowedExt enforces an allowlist for uploads: .pdf, .docx
func allowedExt(name string) bool {
	n := strings.ToLower(name)
	return strings.HasSuffix(n, ".pdf") || strings.HasSuffix(n, ".docx")
}

func allowedMIME(m string) bool {
	m = strings.ToLower(m)
	if m == "application/pdf" || m == "application/vnd.openxmlformats-officedocument.wordprocessingml.document" {
		return true
	}
	// Some producers ship .docx as bare zip
	return m == "application/zip"
}

// formatForFilename maps the file extension onto the declared document format.
func formatForFilename(name string) domain.DocumentFormat {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return domain.FormatPDF
	case ".docx":
		return domain.FormatDOCX
	default:
		return domain.DocumentFormat(strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), "."))
	}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// userID extracts and validates the authenticated user id header.
func userID(r *http.Request) (string, error) {
	uid := r.Header.Get(userIDHeader)
	if err := getValidator().Var(uid, "required,max=128,printascii"); err != nil {
		return "", fmt.Errorf("%w: missing or invalid %s header", domain.ErrInvalidArgument, userIDHeader)
	}
	return uid, nil
}

// AnalyzeHandler handles multipart upload of a resume file and runs the
// full analysis pipeline synchronously.
func (s *Server) AnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Accept negotiation: only JSON responses supported
		if a := r.Header.Get("Accept"); a != "" && a != "*/*" && !strings.Contains(a, "application/json") {
			writeJSON(w, http.StatusNotAcceptable, errorEnvelope{Error: apiError{Code: "INVALID_ARGUMENT", Message: "not acceptable", Details: map[string]any{"accept": a}}})
			return
		}
		uid, err := userID(r)
		if err != nil {
			writeError(w, r, err, map[string]string{"header": userIDHeader})
			return
		}
		if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
			writeError(w, r, fmt.Errorf("%w: content-type must be multipart/form-data", domain.ErrInvalidArgument), nil)
			return
		}

		maxBytes := s.Cfg.MaxUploadBytes()
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			// Map body too large to 413
			if strings.Contains(strings.ToLower(err.Error()), "too large") {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorEnvelope{Error: apiError{Code: "INVALID_ARGUMENT", Message: "payload too large", Details: map[string]any{"max_mb": s.Cfg.MaxUploadMB}}})
				return
			}
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		file, header, err := r.FormFile("resume")
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: resume file required", domain.ErrInvalidArgument), map[string]string{"field": "resume"})
			return
		}
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: resume read: %v", domain.ErrInvalidArgument, err), nil)
			return
		}

		// Extension allowlist first
		if !allowedExt(header.Filename) {
			writeJSON(w, http.StatusUnsupportedMediaType, errorEnvelope{Error: apiError{Code: "UNSUPPORTED_FORMAT", Message: "unsupported media type (extension)", Details: map[string]any{"filename": header.Filename}}})
			return
		}
		// Content sniffing with mimetype; enforce allowlist
		mime := mimetype.Detect(data)
		if !allowedMIME(mime.String()) {
			writeJSON(w, http.StatusUnsupportedMediaType, errorEnvelope{Error: apiError{Code: "UNSUPPORTED_FORMAT", Message: "unsupported media type (content)", Details: map[string]any{"mime": mime.String(), "filename": header.Filename}}})
			return
		}

		doc := domain.RawDocument{
			Data:     data,
			Format:   formatForFilename(header.Filename),
			Filename: header.Filename,
		}
		analysis, err := s.Analyze.Analyze(r.Context(), uid, header.Filename, doc)
		if err != nil {
			writeError(w, r, err, map[string]string{"filename": header.Filename})
			return
		}
		writeJSON(w, http.StatusCreated, analysis)
	}
}

// ResultHandler returns a stored analysis by id, scoped to the caller.
func (s *Server) ResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if a := r.Header.Get("Accept"); a != "" && a != "*/*" && !strings.Contains(a, "application/json") {
			writeJSON(w, http.StatusNotAcceptable, errorEnvelope{Error: apiError{Code: "INVALID_ARGUMENT", Message: "not acceptable", Details: map[string]any{"accept": a}}})
			return
		}
		uid, err := userID(r)
		if err != nil {
			writeError(w, r, err, map[string]string{"header": userIDHeader})
			return
		}
		id := chi.URLParam(r, "id")
		analysis, err := s.Results.Fetch(r.Context(), id, uid)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, analysis)
	}
}

// HistoryHandler lists the caller's stored analyses, newest first.
func (s *Server) HistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if a := r.Header.Get("Accept"); a != "" && a != "*/*" && !strings.Contains(a, "application/json") {
			writeJSON(w, http.StatusNotAcceptable, errorEnvelope{Error: apiError{Code: "INVALID_ARGUMENT", Message: "not acceptable", Details: map[string]any{"accept": a}}})
			return
		}
		uid, err := userID(r)
		if err != nil {
			writeError(w, r, err, map[string]string{"header": userIDHeader})
			return
		}
		list, err := s.Results.History(r.Context(), uid)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"analyses": list, "count": len(list)})
	}
}

// ReadyzHandler returns a readiness handler that probes the database.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := make([]check, 0, 1)
		if s.DBCheck != nil {
			if err := s.DBCheck(ctx); err != nil {
				checks = append(checks, check{Name: "db", OK: false, Details: err.Error()})
			} else {
				checks = append(checks, check{Name: "db", OK: true})
			}
		}
		ok := true
		for _, c := range checks {
			if !c.OK {
				ok = false
				break
			}
		}
		st := http.StatusOK
		if !ok {
			st = http.StatusServiceUnavailable
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}

// HealthzHandler is the liveness probe.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
