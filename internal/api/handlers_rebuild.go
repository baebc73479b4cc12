package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dgallion1/docnav/internal/build"
	"github.com/go-chi/chi/v5"
)

// handleRebuild queues a rebuild job. The optional JSON body names the
// roots to rebuild; an empty body rebuilds everything.
func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req struct {
		Roots []string `json:"roots"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	job, err := s.orchestrator.Submit(req.Roots)
	if err != nil {
		switch {
		case errors.Is(err, build.ErrRootNotFound):
			jsonError(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, build.ErrQueueFull):
			jsonError(w, err.Error(), http.StatusServiceUnavailable)
		default:
			jsonError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"roots":    job.Roots,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/rebuild/%s/status", job.ID),
	})
}

func (s *Server) handleRebuildStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   snap.ID,
		"roots":    snap.Roots,
		"status":   snap.Status,
		"phase":    snap.Phase,
		"progress": snap.Progress,
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
