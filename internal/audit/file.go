// Package audit holds the durable sinks for questionnaire submission records.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mind-engage/mindcheck/internal/questionnaire"
)

// DefaultLogKey is the JSON Lines file submissions are appended to.
const DefaultLogKey = "responses.jsonl"

// Appender is the slice of storage.BlobStore the file sink needs.
type Appender interface {
	Append(key string, data []byte) error
}

// FileSink writes one JSON object per line.
type FileSink struct {
	store Appender
	key   string
}

func NewFileSink(store Appender, key string) *FileSink {
	if key == "" {
		key = DefaultLogKey
	}
	return &FileSink{store: store, key: key}
}

func (s *FileSink) Append(ctx context.Context, rec questionnaire.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	line = append(line, '\n')
	if err := s.store.Append(s.key, line); err != nil {
		return fmt.Errorf("append %s: %w", s.key, err)
	}
	return nil
}
