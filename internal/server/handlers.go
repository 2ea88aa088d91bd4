package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goliatone/go-vault-export/internal/archive"
	"github.com/goliatone/go-vault-export/internal/exporter"
	"github.com/goliatone/go-vault-export/pkg/interfaces"
)

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

// exportPayload is the JSON request body accepted by POST /export. Absent
// booleans keep their documented defaults: attachments included unless the
// caller sends a literal false, diagrams never rendered unless asked.
type exportPayload struct {
	ExportPath         string `json:"exportPath"`
	IncludeAttachments *bool  `json:"includeAttachments"`
	RenderDiagrams     *bool  `json:"renderDiagrams"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   "vault-export",
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{
		Error:     fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleExportPost(w http.ResponseWriter, r *http.Request) {
	var payload exportPayload
	if r.Body != nil {
		defer r.Body.Close()
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:     "unable to read request body",
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			})
			return
		}
		if len(body) > 0 {
			if err := json.Unmarshal(body, &payload); err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{
					Error:     "request body is not valid JSON",
					Timestamp: time.Now().UTC().Format(time.RFC3339),
				})
				return
			}
		}
	}

	settings := s.cfg.Defaults
	if payload.ExportPath != "" {
		settings.TargetLocation = payload.ExportPath
	}
	// JSON path: anything other than a literal false counts as true.
	settings.IncludeAssets = payload.IncludeAttachments == nil || *payload.IncludeAttachments
	settings.PreserveDiagramSource = payload.RenderDiagrams == nil || !*payload.RenderDiagrams
	settings.Format = interfaces.FormatAsciiDoc

	s.streamExport(w, r, settings)
}

func (s *Server) handleExportGet(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	settings := s.cfg.Defaults
	if path := query.Get("exportPath"); path != "" {
		settings.TargetLocation = path
	}
	// Query path: only the literal string "true" enables a flag.
	settings.IncludeAssets = query.Get("includeAttachments") == "true"
	settings.PreserveDiagramSource = query.Get("renderDiagrams") != "true"
	settings.Format = interfaces.FormatAsciiDoc

	s.streamExport(w, r, settings)
}

// streamExport runs a memory-mode export and pipes the archived bundle as a
// chunked attachment. Failures surface as 500 only while no response bytes
// have been written; once streaming begins a failure can only be logged and
// the connection truncated.
func (s *Server) streamExport(w http.ResponseWriter, r *http.Request, settings interfaces.ExportSettings) {
	bundle, err := s.exporter.ExportToBundle(r.Context(), settings)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, exporter.ErrExportInFlight):
			status = http.StatusConflict
		case errors.Is(err, exporter.ErrUnsupportedFormat):
			status = http.StatusBadRequest
		}
		s.logger.Error("export request failed", "error", err)
		writeJSON(w, status, errorResponse{
			Error:     err.Error(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	filename := fmt.Sprintf("vault-export-%d.tar", time.Now().UnixMilli())
	w.Header().Set("Content-Type", "application/x-tar")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	if err := archive.WriteBundle(w, bundle); err != nil {
		// Headers are gone; best effort is to log and let the connection drop.
		s.logger.Error("archive stream interrupted", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
