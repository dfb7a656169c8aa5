package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindcheck/internal/db"
	"github.com/mind-engage/mindcheck/internal/questionnaire"
	"github.com/mind-engage/mindcheck/internal/storage"
)

var at = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func sampleRecord(id string, kind questionnaire.Kind, responses ...int) questionnaire.Record {
	answers := make([]questionnaire.Answer, len(responses))
	for i, r := range responses {
		answers[i] = questionnaire.Answer{QuestionID: i + 1, Response: r}
	}
	scorer := questionnaire.NewScorerWithClock(func() time.Time { return at })
	return questionnaire.Record{
		ID:        id,
		Timestamp: at,
		Kind:      kind,
		Responses: answers,
		Analysis:  scorer.Score(kind, answers),
	}
}

func TestFileSink_OneLinePerRecord(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFSStore(dir)
	require.NoError(t, err)
	sink := NewFileSink(store, "")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, sink.Append(context.Background(), sampleRecord("r", questionnaire.KindStress, 1, 0, -1)))
		}()
	}
	wg.Wait()

	f, err := os.Open(filepath.Join(dir, DefaultLogKey))
	require.NoError(t, err)
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec questionnaire.Record
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		assert.Equal(t, questionnaire.KindStress, rec.Kind)
		assert.Equal(t, 0, rec.Analysis.TotalScore)
		assert.Len(t, rec.Responses, 3)
		n++
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, 10, n)
}

func TestFileSink_CancelledContext(t *testing.T) {
	store, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewFileSink(store, "x.jsonl").Append(ctx, sampleRecord("r", questionnaire.KindStress)), context.Canceled)
}

func openTestDB(t *testing.T) *SQLSink {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "audit.db") + "?_pragma=busy_timeout(5000)"
	h, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return NewSQLSink(h)
}

func TestSQLSink_AppendList(t *testing.T) {
	ctx := context.Background()
	sink := openTestDB(t)

	require.NoError(t, sink.Append(ctx, sampleRecord("a", questionnaire.KindDepression, 1, 1, 0, -1, 1)))
	require.NoError(t, sink.Append(ctx, sampleRecord("b", questionnaire.KindAnxiety, 1)))
	require.NoError(t, sink.Append(ctx, sampleRecord("c", questionnaire.KindDepression, 0)))

	all, err := sink.List(ctx, ListOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].ID, all[1].ID, all[2].ID})

	dep, err := sink.List(ctx, ListOpts{Kind: questionnaire.KindDepression})
	require.NoError(t, err)
	require.Len(t, dep, 2)

	a := dep[1]
	want := sampleRecord("a", questionnaire.KindDepression, 1, 1, 0, -1, 1)
	assert.Equal(t, want.Responses, a.Responses)
	assert.Equal(t, 2, a.Analysis.TotalScore)
	assert.Equal(t, questionnaire.SeverityMinimal, a.Analysis.Severity)
	assert.Equal(t, 60.0, a.Analysis.PercentagePositive)
	assert.True(t, at.Equal(a.Timestamp))

	page, err := sink.List(ctx, ListOpts{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].ID)
}

func TestSQLSink_DuplicateIDRejected(t *testing.T) {
	ctx := context.Background()
	sink := openTestDB(t)
	require.NoError(t, sink.Append(ctx, sampleRecord("dup", questionnaire.KindStress, 1)))
	assert.Error(t, sink.Append(ctx, sampleRecord("dup", questionnaire.KindStress, 1)))
}

type failingSink struct{ err error }

func (f failingSink) Append(context.Context, questionnaire.Record) error { return f.err }

type countingSink struct{ n int }

func (c *countingSink) Append(context.Context, questionnaire.Record) error { c.n++; return nil }

func TestMultiSink(t *testing.T) {
	boom := errors.New("boom")
	c := &countingSink{}
	m := MultiSink{failingSink{boom}, c}

	err := m.Append(context.Background(), sampleRecord("x", questionnaire.KindAnxiety, 1))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, c.n, "a failing sink must not stop the others")

	assert.NoError(t, MultiSink{c}.Append(context.Background(), sampleRecord("y", questionnaire.KindAnxiety)))
	assert.Equal(t, 2, c.n)
}
