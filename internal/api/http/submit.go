package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/mind-engage/mindcheck/internal/questionnaire"
)

// answerIn accepts either "question_id" or "id".
type answerIn struct {
	QuestionID *int `json:"question_id"`
	ID         *int `json:"id"`
	Response   *int `json:"response"`
}

type submitReq struct {
	TestType string     `json:"test_type"`
	Answers  []answerIn `json:"answers"`
}

type submitResp struct {
	Success bool `json:"success"`
	questionnaire.Outcome
}

var errMissingResponse = errors.New("answer without response")

func toAnswers(in []answerIn) ([]questionnaire.Answer, error) {
	out := make([]questionnaire.Answer, 0, len(in))
	for _, a := range in {
		if a.Response == nil {
			return nil, errMissingResponse
		}
		ans := questionnaire.Answer{Response: *a.Response}
		switch {
		case a.QuestionID != nil:
			ans.QuestionID = *a.QuestionID
		case a.ID != nil:
			ans.QuestionID = *a.ID
		}
		out = append(out, ans)
	}
	return out, nil
}

// POST /api/submit_test
func SubmitTestHandler(svc *questionnaire.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeFail(w, http.StatusBadRequest, "No data provided")
			return
		}
		if len(req.Answers) == 0 {
			writeFail(w, http.StatusBadRequest, "No answers provided")
			return
		}
		kind, err := questionnaire.ParseKind(req.TestType)
		if err != nil {
			writeFail(w, http.StatusBadRequest, "Unknown test type")
			return
		}
		answers, err := toAnswers(req.Answers)
		if err != nil {
			writeFail(w, http.StatusBadRequest, "Invalid answers")
			return
		}

		out, err := svc.Submit(r.Context(), kind, answers)
		switch {
		case err == nil:
		case errors.Is(err, questionnaire.ErrNoAnswers):
			writeFail(w, http.StatusBadRequest, "No answers provided")
			return
		case errors.Is(err, questionnaire.ErrUnknownKind):
			writeFail(w, http.StatusBadRequest, "Unknown test type")
			return
		default:
			log.Printf("ERROR: [API] /api/submit_test: %v", err)
			writeFail(w, http.StatusInternalServerError, "Failed to process test")
			return
		}
		writeJSON(w, http.StatusOK, submitResp{Success: true, Outcome: out})
	}
}
