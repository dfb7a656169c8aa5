package entry

import (
	"context"
	"database/sql"
	"time"
)

// Entry is one journaled text and its prediction.
type Entry struct {
	ID           int64     `json:"id"`
	UserID       *int64    `json:"user_id,omitempty"`
	Content      string    `json:"content"`
	Label        string    `json:"prediction_label"`
	Confidence   float64   `json:"prediction_confidence"`
	ModelVersion string    `json:"model_version"`
	IPAddress    string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Store interface {
	Insert(ctx context.Context, e Entry) (Entry, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]Entry, error)
}

type SQLStore struct{ db *sql.DB }

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Insert(ctx context.Context, e Entry) (Entry, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	var uid sql.NullInt64
	if e.UserID != nil {
		uid = sql.NullInt64{Int64: *e.UserID, Valid: true}
	}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO emotion_entries (user_id, content, prediction_label, prediction_confidence, model_version, ip_address, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		uid, e.Content, e.Label, e.Confidence, e.ModelVersion, e.IPAddress, e.CreatedAt.Unix(),
	).Scan(&e.ID)
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

// ListByUser returns the newest entries first.
func (s *SQLStore) ListByUser(ctx context.Context, userID int64, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, content, COALESCE(prediction_label,''), COALESCE(prediction_confidence,0),
		        COALESCE(model_version,''), created_at
		   FROM emotion_entries
		  WHERE user_id = $1
		  ORDER BY created_at DESC, id DESC
		  LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var (
			e       Entry
			uid     sql.NullInt64
			created int64
		)
		if err := rows.Scan(&e.ID, &uid, &e.Content, &e.Label, &e.Confidence, &e.ModelVersion, &created); err != nil {
			return nil, err
		}
		if uid.Valid {
			v := uid.Int64
			e.UserID = &v
		}
		e.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
