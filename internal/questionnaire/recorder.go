package questionnaire

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
)

// Record is one self-describing submission entry in the audit trail.
type Record struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Kind      Kind      `json:"test_type"`
	Responses []Answer  `json:"responses"`
	Analysis  Result    `json:"analysis"`
}

// Sink durably appends records. Each Append must write its record as one unit;
// ordering across concurrent calls is unspecified.
type Sink interface {
	Append(ctx context.Context, rec Record) error
}

// Recorder writes submissions to a Sink. It re-scores the answers itself so a
// record never depends on a caller-supplied result.
type Recorder struct {
	sink   Sink
	scorer *Scorer
	now    func() time.Time
}

func NewRecorder(sink Sink, scorer *Scorer) *Recorder {
	if scorer == nil {
		scorer = NewScorer()
	}
	return &Recorder{sink: sink, scorer: scorer, now: time.Now}
}

var errNoSink = errors.New("no sink configured")

// Record appends one submission. Failures are logged and returned; callers on
// the request path are expected to ignore them.
func (r *Recorder) Record(ctx context.Context, kind Kind, answers []Answer) error {
	if r == nil || r.sink == nil {
		log.Printf("WARN: [Recorder] %s submission not saved: %v", kind, errNoSink)
		return errNoSink
	}
	rec := Record{
		ID:        uuid.NewString(),
		Timestamp: r.now(),
		Kind:      kind,
		Responses: append([]Answer(nil), answers...),
		Analysis:  r.scorer.Score(kind, answers),
	}
	if err := r.sink.Append(ctx, rec); err != nil {
		log.Printf("ERROR: [Recorder] saving %s responses: %v", kind, err)
		return err
	}
	log.Printf("INFO: [Recorder] %s responses saved (record %s)", kind.Title(), rec.ID)
	return nil
}
