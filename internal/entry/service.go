// Package entry handles free-text journaling: validate, classify, store.
package entry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrTooShort              = errors.New("entry too short")
	ErrClassifierUnavailable = errors.New("model unavailable - please try again later")
)

type Service struct {
	store        Store
	classifier   Classifier
	guide        *Guide
	minLength    int
	modelVersion string
}

type ServiceOption func(*Service)

// WithGuide replaces the time-seeded guidance picker.
func WithGuide(g *Guide) ServiceOption {
	return func(s *Service) {
		if g != nil {
			s.guide = g
		}
	}
}

func NewService(store Store, c Classifier, minLength int, modelVersion string, opts ...ServiceOption) *Service {
	seed := uint64(time.Now().UnixNano())
	s := &Service{
		store:        store,
		classifier:   c,
		guide:        NewGuide(rand.NewPCG(seed, seed>>1|1)),
		minLength:    minLength,
		modelVersion: modelVersion,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) MinLength() int { return s.minLength }

// Submit classifies and stores one entry and picks the guidance shown for its
// label. userID is nil for anonymous visitors.
func (s *Service) Submit(ctx context.Context, userID *int64, text, ip string) (Entry, Guidance, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < s.minLength {
		return Entry{}, Guidance{}, fmt.Errorf("%w: need at least %d characters", ErrTooShort, s.minLength)
	}
	p, err := s.classifier.Classify(ctx, text)
	if err != nil {
		log.Printf("ERROR: [Entry] classify: %v", err)
		return Entry{}, Guidance{}, ErrClassifierUnavailable
	}
	e, err := s.store.Insert(ctx, Entry{
		UserID:       userID,
		Content:      text,
		Label:        p.Label,
		Confidence:   p.Confidence,
		ModelVersion: s.modelVersion,
		IPAddress:    ip,
	})
	if err != nil {
		return Entry{}, Guidance{}, fmt.Errorf("store entry: %w", err)
	}
	log.Printf("INFO: [Entry] stored entry %d label=%s confidence=%.2f", e.ID, e.Label, e.Confidence)
	return e, s.guide.For(e.Label), nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64, limit int) ([]Entry, error) {
	return s.store.ListByUser(ctx, userID, limit)
}
