package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dgallion1/docnav/internal/build"
	"github.com/go-chi/chi/v5"
)

// handleListNav lists every managed root with its latest build summary.
func (s *Server) handleListNav(w http.ResponseWriter, r *http.Request) {
	type rootInfo struct {
		Root       string     `json:"root"`
		Dir        string     `json:"dir"`
		Built      bool       `json:"built"`
		BuiltAt    *time.Time `json:"built_at,omitempty"`
		Documents  int        `json:"documents,omitempty"`
		Categories int        `json:"categories,omitempty"`
		Warnings   int        `json:"warnings,omitempty"`
		Notices    int        `json:"notices,omitempty"`
	}

	roots := s.orchestrator.Roots()
	infos := make([]rootInfo, 0, len(roots))
	for _, root := range roots {
		info := rootInfo{Root: root.Key, Dir: root.Dir}
		if res, ok := s.orchestrator.Result(root.Key); ok {
			info.Built = true
			info.BuiltAt = &res.BuiltAt
			info.Documents = res.Documents
			info.Categories = res.Categories
			info.Warnings = len(res.Report.Warnings)
			info.Notices = len(res.Report.Notices)
		}
		infos = append(infos, info)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"roots": infos})
}

// handleGetNav returns the resolved tree for one root.
func (s *Server) handleGetNav(w http.ResponseWriter, r *http.Request) {
	res, ok := s.lookupResult(w, chi.URLParam(r, "root"))
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"root":     res.Root,
		"built_at": res.BuiltAt,
		"tree":     res.Tree,
	})
}

// handleGetPages returns the flattened reading sequence for one root.
func (s *Server) handleGetPages(w http.ResponseWriter, r *http.Request) {
	res, ok := s.lookupResult(w, chi.URLParam(r, "root"))
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"root":  res.Root,
		"pages": res.Pages,
	})
}

// handleGetReport returns the resolution findings for one root.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	res, ok := s.lookupResult(w, chi.URLParam(r, "root"))
	if !ok {
		return
	}
	report := res.Report
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"root":     res.Root,
		"built_at": res.BuiltAt,
		"summary":  report.Summary(),
		"clean":    report.Clean(),
		"warnings": report.Warnings,
		"notices":  report.Notices,
	})
}

// lookupResult resolves a root key to its latest build, writing the
// error response itself when there is nothing to serve.
func (s *Server) lookupResult(w http.ResponseWriter, root string) (*build.Result, bool) {
	if res, ok := s.orchestrator.Result(root); ok {
		return res, true
	}
	for _, managed := range s.orchestrator.Roots() {
		if managed.Key == root {
			jsonError(w, "root not built yet", http.StatusServiceUnavailable)
			return nil, false
		}
	}
	jsonError(w, "unknown root", http.StatusNotFound)
	return nil, false
}
