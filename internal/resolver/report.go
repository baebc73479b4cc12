package resolver

import (
	"fmt"
	"log/slog"
)

// Finding names one path/key pair flagged during resolution.
type Finding struct {
	Path string `json:"path"`
	Key  string `json:"key"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Path, f.Key)
}

// Report collects the recoverable findings of one resolution pass, in the
// order they were encountered. Warnings are configured keys that matched
// no actual child; notices are children the config never mentioned, which
// were appended in loader order.
type Report struct {
	Warnings []Finding `json:"warnings,omitempty"`
	Notices  []Finding `json:"notices,omitempty"`
}

// Clean reports whether the pass produced no findings at all.
func (r *Report) Clean() bool {
	return len(r.Warnings) == 0 && len(r.Notices) == 0
}

// Summary returns a one-line count of findings.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d warnings, %d notices", len(r.Warnings), len(r.Notices))
}

// Log emits every finding through log, warnings at warn level and notices
// at info level. Call it once after resolution so the full list appears
// together.
func (r *Report) Log(log *slog.Logger) {
	for _, f := range r.Warnings {
		log.Warn("configured key matches no child", "path", f.Path, "key", f.Key)
	}
	for _, f := range r.Notices {
		log.Info("child not mentioned in sidebar config", "path", f.Path, "key", f.Key)
	}
}

// Merge appends other's findings onto r, preserving order. Useful when
// several trees are resolved in one build pass.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Notices = append(r.Notices, other.Notices...)
}
