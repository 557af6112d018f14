package web

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/inspectform/inspectform/internal/audit"
	"github.com/inspectform/inspectform/internal/export"
	"github.com/inspectform/inspectform/internal/logging"
	"github.com/inspectform/inspectform/internal/workbook"
)

// handleIndex serves the embedded checklist page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "index unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// openWorkbook opens the configured workbook for one request. A nil return
// means the error response has already been written: an unreadable workbook
// is the one fatal extraction failure.
func (s *Server) openWorkbook(w http.ResponseWriter, r *http.Request) *workbook.Workbook {
	wb, err := workbook.Open(s.cfg.Workbook.Path)
	if err != nil {
		logging.FromContext(r.Context()).Error("workbook open failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, "source workbook unavailable")
		return nil
	}
	return wb
}

// handleListForms lists every resolvable form with its item count.
func (s *Server) handleListForms(w http.ResponseWriter, r *http.Request) {
	wb := s.openWorkbook(w, r)
	if wb == nil {
		return
	}
	defer wb.Close()

	summaries := s.service.Summaries(wb)
	writeJSON(w, r, summaries)
}

// handleFormItems extracts the records of one form. Unknown form ids are not
// errors: the client renders the empty state.
func (s *Server) handleFormItems(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")
	if formID == "" {
		writeError(w, r, http.StatusBadRequest, "missing form id")
		return
	}

	wb := s.openWorkbook(w, r)
	if wb == nil {
		return
	}
	defer wb.Close()

	writeJSON(w, r, s.service.Items(wb, formID))
}

// handleAllItems extracts every matching sheet.
func (s *Server) handleAllItems(w http.ResponseWriter, r *http.Request) {
	wb := s.openWorkbook(w, r)
	if wb == nil {
		return
	}
	defer wb.Close()

	writeJSON(w, r, s.service.AllItems(wb))
}

// handleStationItems runs the field-form extraction mode for one station.
func (s *Server) handleStationItems(w http.ResponseWriter, r *http.Request) {
	station := strings.TrimSpace(chi.URLParam(r, "station"))
	if station == "" {
		writeError(w, r, http.StatusBadRequest, "missing station")
		return
	}

	wb := s.openWorkbook(w, r)
	if wb == nil {
		return
	}
	defer wb.Close()

	writeJSON(w, r, s.service.StationItems(wb, station))
}

// submissionRequest is the POST /api/submissions body.
type submissionRequest struct {
	Submitter string             `json:"submitter"`
	Answers   []submissionAnswer `json:"answers"`
}

type submissionAnswer struct {
	Tab           string `json:"tab"`
	Equipment     string `json:"equipment"`
	Status        string `json:"status"`
	Justification string `json:"justification"`
}

// submissionResponse reports the written artifact.
type submissionResponse struct {
	ID       string `json:"id"`
	Artifact string `json:"artifact"`
	Count    int    `json:"count"`
}

// handleSubmit writes one result artifact per submission and, when the audit
// store is enabled, logs the submission.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Answers) == 0 {
		writeError(w, r, http.StatusBadRequest, "no answers submitted")
		return
	}

	now := time.Now()
	records := make([]export.AnswerRecord, len(req.Answers))
	for i, a := range req.Answers {
		records[i] = export.AnswerRecord{
			Timestamp:     now,
			Submitter:     strings.TrimSpace(req.Submitter),
			Tab:           a.Tab,
			Equipment:     a.Equipment,
			Status:        a.Status,
			Justification: a.Justification,
		}
	}

	if err := os.MkdirAll(s.cfg.Export.Dir, 0o755); err != nil {
		logging.FromContext(r.Context()).Error("results dir", "error", err)
		writeError(w, r, http.StatusInternalServerError, "results directory unavailable")
		return
	}

	name := export.ArtifactName(now)
	path := filepath.Join(s.cfg.Export.Dir, name)
	if err := export.Write(path, records); err != nil {
		logging.FromContext(r.Context()).Error("export failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, "failed to write results")
		return
	}

	sub := audit.Submission{
		ID:          uuid.New(),
		SubmittedAt: now,
		Submitter:   strings.TrimSpace(req.Submitter),
		ItemCount:   len(records),
		Artifact:    name,
	}
	if s.audit != nil {
		if err := s.audit.Log(r.Context(), sub); err != nil {
			// The artifact is already on disk; losing the audit row is not
			// worth failing the submission over.
			logging.FromContext(r.Context()).Warn("audit log failed", "error", err)
		}
	}

	logging.FromContext(r.Context()).Info("submission exported",
		"id", sub.ID, "artifact", name, "answers", len(records))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(submissionResponse{ID: sub.ID.String(), Artifact: name, Count: len(records)})
}

// handleListSubmissions returns recent audit entries, newest first. An empty
// list when the store is disabled.
func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	if s.audit == nil {
		writeJSON(w, r, []audit.Submission{})
		return
	}

	limit := parseIntParam(r, "limit", 50)
	subs, err := s.audit.Recent(r.Context(), limit)
	if err != nil {
		logging.FromContext(r.Context()).Error("audit query failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, "failed to read submissions")
		return
	}
	if subs == nil {
		subs = []audit.Submission{}
	}
	writeJSON(w, r, subs)
}
