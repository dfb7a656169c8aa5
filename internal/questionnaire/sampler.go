package questionnaire

import (
	"log"
	"math/rand/v2"
	"sync"
)

// Canonical response values.
const (
	ResponseYes       = 1
	ResponseNo        = 0
	ResponsePreferNot = -1
)

type Option struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// DefaultOptions is the Yes/No/Prefer-not-to-say triple offered for every question.
func DefaultOptions() []Option {
	return []Option{
		{Text: "Yes", Value: ResponseYes},
		{Text: "No", Value: ResponseNo},
		{Text: "Prefer not to say", Value: ResponsePreferNot},
	}
}

// PresentableQuestion is what a caller renders to the visitor.
type PresentableQuestion struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Options []Option `json:"options"`
}

// OptionSet picks the options presented for one question.
type OptionSet func(b *Bank, id int) []Option

func fixedOptions(*Bank, int) []Option { return DefaultOptions() }

// Sampler selects and shuffles a subset of a bank. It is safe for concurrent use.
type Sampler struct {
	mu      sync.Mutex
	rnd     *rand.Rand
	options OptionSet
}

type SamplerOption func(*Sampler)

// WithOptionSet overrides the per-question option set.
func WithOptionSet(f OptionSet) SamplerOption {
	return func(s *Sampler) {
		if f != nil {
			s.options = f
		}
	}
}

// NewSampler uses src for every random decision, so a seeded source gives
// reproducible samples.
func NewSampler(src rand.Source, opts ...SamplerOption) *Sampler {
	s := &Sampler{rnd: rand.New(src), options: fixedOptions}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Sample returns count distinct questions drawn uniformly without replacement,
// in shuffled order. When count covers the whole bank every question is
// returned. The bank is never modified.
func (s *Sampler) Sample(b *Bank, count int) []PresentableQuestion {
	if b == nil || count <= 0 {
		return []PresentableQuestion{}
	}
	ids := b.IDs()
	if count > len(ids) {
		log.Printf("INFO: [Sampler] requested %d %s questions, only %d available; returning all", count, b.Kind(), len(ids))
		count = len(ids)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// partial Fisher-Yates: ids[:count] becomes the selection
	for i := 0; i < count; i++ {
		j := i + s.rnd.IntN(len(ids)-i)
		ids[i], ids[j] = ids[j], ids[i]
	}
	out := make([]PresentableQuestion, 0, count)
	for _, id := range ids[:count] {
		text, _ := b.Text(id)
		out = append(out, PresentableQuestion{ID: id, Text: text, Options: s.options(b, id)})
	}
	s.rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
