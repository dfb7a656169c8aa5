package questionnaire

import (
	"context"
	"fmt"
	"log"
)

// Outcome is a scored submission plus its rendered description.
type Outcome struct {
	Result
	Description string `json:"description"`
}

// Service ties the registry, sampler, scorer and recorder together. It is
// built once at startup and passed to request handlers.
type Service struct {
	registry *Registry
	sampler  *Sampler
	scorer   *Scorer
	recorder *Recorder
}

func NewService(reg *Registry, sampler *Sampler, scorer *Scorer, rec *Recorder) *Service {
	if scorer == nil {
		scorer = NewScorer()
	}
	return &Service{registry: reg, sampler: sampler, scorer: scorer, recorder: rec}
}

// Questions returns up to count shuffled questions for kind. A non-positive
// count is ErrInvalidCount; an empty bank is ErrNoQuestions.
func (s *Service) Questions(kind Kind, count int) ([]PresentableQuestion, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	b, err := s.registry.Bank(kind)
	if err != nil {
		return nil, err
	}
	if !b.Loaded() {
		return nil, fmt.Errorf("%w for %s", ErrNoQuestions, kind)
	}
	return s.sampler.Sample(b, count), nil
}

// Submit scores answers, records them best-effort and renders the description.
// Unexpected internal failures come back as ErrProcessing.
func (s *Service) Submit(ctx context.Context, kind Kind, answers []Answer) (out Outcome, err error) {
	if len(answers) == 0 {
		return Outcome{}, ErrNoAnswers
	}
	if _, err := s.registry.Bank(kind); err != nil {
		return Outcome{}, err
	}
	defer func() {
		if p := recover(); p != nil {
			log.Printf("ERROR: [Questionnaire] processing %s submission: %v", kind, p)
			out, err = Outcome{}, ErrProcessing
		}
	}()

	log.Printf("INFO: [Questionnaire] processing %s test with %d answers", kind, len(answers))
	res := s.scorer.Score(kind, answers)

	if s.recorder != nil {
		_ = s.recorder.Record(ctx, kind, answers)
	}

	log.Printf("INFO: [Questionnaire] test completed: %s - score: %d, category: %s", kind, res.TotalScore, res.Severity)
	return Outcome{
		Result:      res,
		Description: Describe(kind, res.Severity, res.TotalScore),
	}, nil
}

func (s *Service) Stats(kind Kind) (Stats, error) {
	return s.registry.Stats(kind)
}
