package http

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/mind-engage/mindcheck/internal/questionnaire"
)

type questionsReq struct {
	TestType string  `json:"test_type"`
	Count    flexInt `json:"count"`
}

// GET|POST /api/get_questions
// POST body: {"test_type": "anxiety", "count": 20}; GET uses the same names as query params.
func GetQuestionsHandler(svc *questionnaire.Service, defaultCount int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req questionsReq
		if r.Method == http.MethodPost {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
				writeFail(w, http.StatusBadRequest, "Invalid request")
				return
			}
		} else {
			q := r.URL.Query()
			req.TestType = q.Get("test_type")
			if c := q.Get("count"); c != "" {
				v, err := strconv.Atoi(c)
				if err != nil {
					writeFail(w, http.StatusBadRequest, "Invalid count")
					return
				}
				req.Count = flexInt{val: v, set: true}
			}
		}
		count := defaultCount
		if req.Count.set {
			count = req.Count.val
		}
		kind, err := questionnaire.ParseKind(req.TestType)
		if err != nil {
			writeFail(w, http.StatusBadRequest, "Unknown test type")
			return
		}

		log.Printf("INFO: [API] getting %d questions for %s test", count, kind)
		qs, err := svc.Questions(kind, count)
		if errors.Is(err, questionnaire.ErrInvalidCount) {
			writeFail(w, http.StatusBadRequest, "Invalid count")
			return
		}
		if err != nil {
			log.Printf("ERROR: [API] /api/get_questions: %v", err)
			writeFail(w, http.StatusInternalServerError, "Failed to load questions")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "questions": qs})
	}
}
