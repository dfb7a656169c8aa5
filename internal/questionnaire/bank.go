package questionnaire

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Source resolves a question source name to its contents.
// storage.FSStore satisfies it.
type Source interface {
	Get(key string) (io.ReadCloser, error)
}

// Bank is the immutable question set for one kind. A bank that failed to load
// is empty but still usable.
type Bank struct {
	kind      Kind
	source    string
	questions map[int]string
	options   map[int]json.RawMessage
}

// NewBank builds a bank from already-parsed mappings. Every question must have
// an options entry; option entries without a question are dropped.
func NewBank(kind Kind, questions map[int]string, options map[int]json.RawMessage) (*Bank, error) {
	b := emptyBank(kind)
	qs := make(map[int]string, len(questions))
	opts := make(map[int]json.RawMessage, len(questions))
	for id, text := range questions {
		o, ok := options[id]
		if !ok {
			return b, fmt.Errorf("question %d has no options entry", id)
		}
		qs[id] = text
		opts[id] = o
	}
	b.questions = qs
	b.options = opts
	return b, nil
}

func emptyBank(kind Kind) *Bank {
	return &Bank{
		kind:      kind,
		source:    kind.SourceName(),
		questions: map[int]string{},
		options:   map[int]json.RawMessage{},
	}
}

// Load reads the question source for kind. It never returns a nil bank: on any
// failure the bank is empty and the error says why.
func Load(src Source, kind Kind) (*Bank, error) {
	if !kind.Valid() {
		return emptyBank(kind), fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
	name := kind.SourceName()
	rc, err := src.Get(name)
	if err != nil {
		return emptyBank(kind), fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()

	var doc map[string]map[string]json.RawMessage
	if err := json.NewDecoder(rc).Decode(&doc); err != nil {
		return emptyBank(kind), fmt.Errorf("parse %s: %w", name, err)
	}

	qKey := string(kind) + "_questions"
	oKey := string(kind) + "_options"
	rawQ, ok := doc[qKey]
	if !ok {
		return emptyBank(kind), fmt.Errorf("parse %s: missing %q", name, qKey)
	}
	rawO, ok := doc[oKey]
	if !ok {
		return emptyBank(kind), fmt.Errorf("parse %s: missing %q", name, oKey)
	}

	questions := make(map[int]string, len(rawQ))
	for k, v := range rawQ {
		id, err := parseID(k)
		if err != nil {
			return emptyBank(kind), fmt.Errorf("parse %s: %s: %w", name, qKey, err)
		}
		var text string
		if err := json.Unmarshal(v, &text); err != nil {
			return emptyBank(kind), fmt.Errorf("parse %s: question %d: %w", name, id, err)
		}
		questions[id] = text
	}
	options := make(map[int]json.RawMessage, len(rawO))
	for k, v := range rawO {
		id, err := parseID(k)
		if err != nil {
			return emptyBank(kind), fmt.Errorf("parse %s: %s: %w", name, oKey, err)
		}
		options[id] = v
	}

	b, err := NewBank(kind, questions, options)
	if err != nil {
		return emptyBank(kind), fmt.Errorf("parse %s: %w", name, err)
	}
	return b, nil
}

func parseID(k string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(k))
	if err != nil {
		return 0, fmt.Errorf("bad question id %q", k)
	}
	return id, nil
}

func (b *Bank) Kind() Kind     { return b.kind }
func (b *Bank) Source() string { return b.source }
func (b *Bank) Len() int       { return len(b.questions) }
func (b *Bank) Loaded() bool   { return len(b.questions) > 0 }

func (b *Bank) Text(id int) (string, bool) {
	t, ok := b.questions[id]
	return t, ok
}

// Options returns the raw option metadata stored for a question.
func (b *Bank) Options(id int) (json.RawMessage, bool) {
	o, ok := b.options[id]
	return o, ok
}

// IDs returns all question IDs in ascending order.
func (b *Bank) IDs() []int {
	ids := make([]int, 0, len(b.questions))
	for id := range b.questions {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
