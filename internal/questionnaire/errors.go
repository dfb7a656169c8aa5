package questionnaire

import "errors"

var (
	ErrUnknownKind  = errors.New("unknown test type")
	ErrNoAnswers    = errors.New("no answers provided")
	ErrNoQuestions  = errors.New("no questions available")
	ErrInvalidCount = errors.New("question count must be positive")
	// ErrProcessing is the only failure surfaced for unexpected internal errors.
	ErrProcessing = errors.New("failed to process test")
)
