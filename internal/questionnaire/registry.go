package questionnaire

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"
)

// Registry holds one bank per kind, loaded once and shared read-only.
type Registry struct {
	banks map[Kind]*Bank
}

// NewRegistry loads every kind from src concurrently. Load failures leave an
// empty bank for that kind and are logged; they never fail the registry. Kinds
// not yet loaded when ctx is done stay empty.
func NewRegistry(ctx context.Context, src Source) *Registry {
	kinds := Kinds()
	loaded := make([]*Bank, len(kinds))

	var g errgroup.Group
	for i, k := range kinds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				log.Printf("WARN: [Registry] skipping %s questions: %v", k, err)
				loaded[i] = emptyBank(k)
				return nil
			}
			b, err := Load(src, k)
			if err != nil {
				log.Printf("ERROR: [Registry] loading %s questions: %v", k, err)
			} else {
				log.Printf("INFO: [Registry] %s questions loaded successfully (%d)", k.Title(), b.Len())
			}
			loaded[i] = b
			return nil
		})
	}
	_ = g.Wait()

	r := &Registry{banks: make(map[Kind]*Bank, len(kinds))}
	for i, k := range kinds {
		r.banks[k] = loaded[i]
	}
	return r
}

// NewRegistryFromBanks is for callers that already hold parsed banks.
func NewRegistryFromBanks(banks ...*Bank) *Registry {
	r := &Registry{banks: map[Kind]*Bank{}}
	for _, k := range Kinds() {
		r.banks[k] = emptyBank(k)
	}
	for _, b := range banks {
		if b != nil && b.Kind().Valid() {
			r.banks[b.Kind()] = b
		}
	}
	return r
}

func (r *Registry) Bank(kind Kind) (*Bank, error) {
	b, ok := r.banks[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
	return b, nil
}

// Stats describes the loaded state of one kind's bank.
type Stats struct {
	Kind           Kind   `json:"test_type"`
	TotalQuestions int    `json:"total_questions"`
	QuestionsFile  string `json:"questions_file"`
	Loaded         bool   `json:"loaded_successfully"`
}

func (r *Registry) Stats(kind Kind) (Stats, error) {
	b, err := r.Bank(kind)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Kind:           kind,
		TotalQuestions: b.Len(),
		QuestionsFile:  b.Source(),
		Loaded:         b.Loaded(),
	}, nil
}
