package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mind-engage/mindcheck/internal/questionnaire"
)

// SQLSink stores each record as one row of the submissions table.
type SQLSink struct{ db *sql.DB }

func NewSQLSink(db *sql.DB) *SQLSink { return &SQLSink{db: db} }

// Append is a single INSERT, so a record is either fully written or not at all.
func (s *SQLSink) Append(ctx context.Context, rec questionnaire.Record) error {
	resp, err := json.Marshal(rec.Responses)
	if err != nil {
		return fmt.Errorf("encode responses: %w", err)
	}
	analysis, err := json.Marshal(rec.Analysis)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, test_type, total_score, severity, responses_json, analysis_json, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		rec.ID, string(rec.Kind), rec.Analysis.TotalScore, string(rec.Analysis.Severity),
		string(resp), string(analysis), rec.Timestamp.UnixMilli())
	return err
}

type ListOpts struct {
	Kind   questionnaire.Kind // empty = all kinds
	Limit  int
	Offset int
}

// List returns the newest records first.
func (s *SQLSink) List(ctx context.Context, opts ListOpts) ([]questionnaire.Record, error) {
	if opts.Limit <= 0 || opts.Limit > 500 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, test_type, responses_json, analysis_json, created_at
		   FROM submissions
		  WHERE ($1 = '' OR test_type = $1)
		  ORDER BY seq DESC
		  LIMIT $2 OFFSET $3`,
		string(opts.Kind), opts.Limit, opts.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []questionnaire.Record{}
	for rows.Next() {
		var (
			rec                questionnaire.Record
			kind, rjson, ajson string
			created            int64
		)
		if err := rows.Scan(&rec.ID, &kind, &rjson, &ajson, &created); err != nil {
			return nil, err
		}
		rec.Kind = questionnaire.Kind(kind)
		rec.Timestamp = time.UnixMilli(created).UTC()
		if err := json.Unmarshal([]byte(rjson), &rec.Responses); err != nil {
			return nil, fmt.Errorf("decode responses of %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(ajson), &rec.Analysis); err != nil {
			return nil, fmt.Errorf("decode analysis of %s: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
