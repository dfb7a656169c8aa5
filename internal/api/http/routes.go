package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindcheck/internal/auth"
	authmw "github.com/mind-engage/mindcheck/internal/auth/middleware"
	"github.com/mind-engage/mindcheck/internal/entry"
	"github.com/mind-engage/mindcheck/internal/questionnaire"
	"github.com/mind-engage/mindcheck/internal/rbac"
)

// Deps are the collaborators the API needs. Entries, Users, Google and
// Submissions are optional; their routes are skipped when nil.
type Deps struct {
	Tests        *questionnaire.Service
	DefaultCount int

	Auth          *authmw.AuthService
	AdminUser     string
	AdminPassHash string

	Google *auth.GoogleVerifier
	Users  *auth.UserStore

	Entries     *entry.Service
	Submissions SubmissionLister
}

// Mount registers every API route on r.
func Mount(r chi.Router, d Deps) {
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	// anonymous visitors take tests
	r.Get("/api/get_questions", GetQuestionsHandler(d.Tests, d.DefaultCount))
	r.Post("/api/get_questions", GetQuestionsHandler(d.Tests, d.DefaultCount))
	r.Post("/api/submit_test", SubmitTestHandler(d.Tests))

	r.Post("/auth/admin/login", auth.AdminLoginHandler(d.Auth, d.AdminUser, d.AdminPassHash))
	if d.Google != nil && d.Users != nil {
		r.Post("/auth/google", auth.GoogleSignInHandler(d.Auth, d.Google, d.Users))
	}

	if d.Entries != nil {
		r.With(authmw.OptionalJWT(d.Auth)).
			Post("/api/entries", CreateEntryHandler(d.Entries))
		r.With(authmw.JWTMiddleware(d.Auth), rbac.Require("entry:view-own")).
			Get("/api/entries", ListEntriesHandler(d.Entries))
	}

	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(d.Auth))
		pr.With(rbac.Require("stats:view")).
			Get("/api/tests/{kind}/stats", TestStatsHandler(d.Tests))
		pr.With(rbac.Require("submissions:list")).
			Get("/api/submissions", ListSubmissionsHandler(d.Submissions))
	})
}
