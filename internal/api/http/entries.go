package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	authmw "github.com/mind-engage/mindcheck/internal/auth/middleware"
	"github.com/mind-engage/mindcheck/internal/entry"
)

// POST /api/entries  JSON {"content": "..."} or form field emotion_content.
func CreateEntryHandler(svc *entry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var content string
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			var req struct {
				Content string `json:"content"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeFail(w, http.StatusBadRequest, "Invalid request")
				return
			}
			content = req.Content
		} else {
			content = r.FormValue("emotion_content")
		}

		var uid *int64
		if id, ok := authmw.UserIDFromContext(r.Context()); ok {
			uid = &id
		}

		e, g, err := svc.Submit(r.Context(), uid, content, clientIP(r))
		switch {
		case err == nil:
		case errors.Is(err, entry.ErrTooShort):
			writeFail(w, http.StatusBadRequest,
				fmt.Sprintf("Please share a bit more about how you're feeling (at least %d characters)", svc.MinLength()))
			return
		case errors.Is(err, entry.ErrClassifierUnavailable):
			writeFail(w, http.StatusServiceUnavailable, "Model unavailable - please try again later")
			return
		default:
			log.Printf("ERROR: [API] create entry: %v", err)
			writeFail(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":               true,
			"prediction_label":      e.Label,
			"prediction_confidence": e.Confidence,
			"analysis":              g.Analysis,
			"recommendations":       g.Recommendations,
			"resources":             g.Resources,
			"show_resources":        g.ShowResources,
			"entry":                 e,
		})
	}
}

// GET /api/entries?limit=
func ListEntriesHandler(svc *entry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := authmw.UserIDFromContext(r.Context())
		if !ok {
			writeFail(w, http.StatusForbidden, "Sign in to view your entries")
			return
		}
		list, err := svc.ListForUser(r.Context(), uid, parseIntDefault(r.URL.Query().Get("limit"), 50))
		if err != nil {
			log.Printf("ERROR: [API] list entries: %v", err)
			writeFail(w, http.StatusInternalServerError, "Failed to load entries")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "entries": list})
	}
}
