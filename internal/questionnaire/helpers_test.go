package questionnaire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// mapSource is an in-memory Source.
type mapSource map[string]string

func (m mapSource) Get(key string) (io.ReadCloser, error) {
	s, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", key, os.ErrNotExist)
	}
	return io.NopCloser(bytes.NewBufferString(s)), nil
}

func testBank(t *testing.T, kind Kind, n int) *Bank {
	t.Helper()
	qs := map[int]string{}
	opts := map[int]json.RawMessage{}
	for i := 1; i <= n; i++ {
		qs[i] = fmt.Sprintf("question %d", i)
		opts[i] = json.RawMessage(`["Yes","No","Prefer not to say"]`)
	}
	b, err := NewBank(kind, qs, opts)
	require.NoError(t, err)
	return b
}

func answers(responses ...int) []Answer {
	out := make([]Answer, len(responses))
	for i, r := range responses {
		out[i] = Answer{QuestionID: i + 1, Response: r}
	}
	return out
}

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedScorer() *Scorer {
	return NewScorerWithClock(func() time.Time { return fixedNow })
}
