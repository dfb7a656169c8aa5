package http

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindcheck/internal/audit"
	"github.com/mind-engage/mindcheck/internal/questionnaire"
)

// GET /api/tests/{kind}/stats
func TestStatsHandler(svc *questionnaire.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := questionnaire.ParseKind(chi.URLParam(r, "kind"))
		if err != nil {
			writeFail(w, http.StatusNotFound, "Unknown test type")
			return
		}
		st, err := svc.Stats(kind)
		if err != nil {
			writeFail(w, http.StatusInternalServerError, "Failed to get statistics")
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

// SubmissionLister is satisfied by audit.SQLSink.
type SubmissionLister interface {
	List(ctx context.Context, opts audit.ListOpts) ([]questionnaire.Record, error)
}

// GET /api/submissions?test_type=&limit=&offset=
func ListSubmissionsHandler(l SubmissionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if l == nil {
			writeFail(w, http.StatusNotFound, "Submission listing requires the sql recorder")
			return
		}
		opts := audit.ListOpts{
			Limit:  parseIntDefault(r.URL.Query().Get("limit"), 50),
			Offset: parseIntDefault(r.URL.Query().Get("offset"), 0),
		}
		if t := strings.TrimSpace(r.URL.Query().Get("test_type")); t != "" {
			kind, err := questionnaire.ParseKind(t)
			if err != nil {
				writeFail(w, http.StatusBadRequest, "Unknown test type")
				return
			}
			opts.Kind = kind
		}
		recs, err := l.List(r.Context(), opts)
		if err != nil {
			log.Printf("ERROR: [API] list submissions: %v", err)
			writeFail(w, http.StatusInternalServerError, "Failed to list submissions")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "submissions": recs})
	}
}
