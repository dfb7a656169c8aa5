package audit

import (
	"context"
	"errors"

	"github.com/mind-engage/mindcheck/internal/questionnaire"
)

// MultiSink appends to every sink and joins their errors.
type MultiSink []questionnaire.Sink

func (m MultiSink) Append(ctx context.Context, rec questionnaire.Record) error {
	var errs []error
	for _, s := range m {
		if err := s.Append(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
