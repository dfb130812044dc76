// Package memory provides an in-memory implementation of driven.Ontology.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/galley/internal/core/domain"
	"github.com/custodia-labs/galley/internal/core/ports/driven"
)

// Ensure Ontology implements the interfaces.
var (
	_ driven.Ontology       = (*Ontology)(nil)
	_ driven.SenseLookup    = (*Ontology)(nil)
	_ driven.OntologyWriter = (*Ontology)(nil)
)

type lemmaKey struct {
	word string
	pos  domain.PartOfSpeech
}

// Ontology is an in-memory sense inventory. Hyponym and instance-hyponym
// relations are derived from the hypernyms each sense declares, so parents
// may be added after their children.
type Ontology struct {
	mu               sync.RWMutex
	senses           map[domain.SenseID]domain.Sense
	lemmas           map[lemmaKey][]domain.SenseID
	hyponyms         map[domain.SenseID][]domain.SenseID
	instanceHyponyms map[domain.SenseID][]domain.SenseID
}

// New creates an empty in-memory ontology.
func New() *Ontology {
	return &Ontology{
		senses:           make(map[domain.SenseID]domain.Sense),
		lemmas:           make(map[lemmaKey][]domain.SenseID),
		hyponyms:         make(map[domain.SenseID][]domain.SenseID),
		instanceHyponyms: make(map[domain.SenseID][]domain.SenseID),
	}
}

// FromSenses creates an ontology holding the given senses.
func FromSenses(senses []domain.Sense) (*Ontology, error) {
	o := New()
	for i := range senses {
		if err := o.Add(senses[i]); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Add stores a sense. Lemma order across calls defines candidate-sense rank.
func (o *Ontology) Add(s domain.Sense) error {
	if s.ID == "" {
		return fmt.Errorf("%w: sense without id", domain.ErrInvalidInput)
	}
	if !s.POS.IsValid() {
		return fmt.Errorf("%w: sense %s has part of speech %q", domain.ErrInvalidInput, s.ID, s.POS)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if _, exists := o.senses[s.ID]; exists {
		return fmt.Errorf("%w: duplicate sense %s", domain.ErrInvalidInput, s.ID)
	}
	o.senses[s.ID] = s
	for _, lemma := range s.Lemmas {
		key := lemmaKey{word: strings.ToLower(lemma), pos: s.POS}
		o.lemmas[key] = append(o.lemmas[key], s.ID)
	}
	for _, parent := range s.Hypernyms {
		o.hyponyms[parent] = append(o.hyponyms[parent], s.ID)
	}
	for _, parent := range s.InstanceHypernyms {
		o.instanceHyponyms[parent] = append(o.instanceHyponyms[parent], s.ID)
	}
	return nil
}

// ReplaceSenses discards all senses and stores the given ones.
func (o *Ontology) ReplaceSenses(_ context.Context, senses []domain.Sense) error {
	fresh, err := FromSenses(senses)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.senses = fresh.senses
	o.lemmas = fresh.lemmas
	o.hyponyms = fresh.hyponyms
	o.instanceHyponyms = fresh.instanceHyponyms
	return nil
}

// CountSenses returns the number of stored senses.
func (o *Ontology) CountSenses(_ context.Context) (int, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.senses), nil
}

// Senses returns the candidate senses of a word in rank order.
func (o *Ontology) Senses(_ context.Context, word string, pos domain.PartOfSpeech) ([]domain.SenseID, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return clone(o.lemmas[lemmaKey{word: strings.ToLower(word), pos: pos}]), nil
}

// Hypernyms returns the immediate parents of a sense.
func (o *Ontology) Hypernyms(_ context.Context, sense domain.SenseID) ([]domain.SenseID, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return clone(o.senses[sense].Hypernyms), nil
}

// Hyponyms returns the immediate children of a sense.
func (o *Ontology) Hyponyms(_ context.Context, sense domain.SenseID) ([]domain.SenseID, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return clone(o.hyponyms[sense]), nil
}

// InstanceHypernyms returns the categories a sense is an instance of.
func (o *Ontology) InstanceHypernyms(_ context.Context, sense domain.SenseID) ([]domain.SenseID, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return clone(o.senses[sense].InstanceHypernyms), nil
}

// InstanceHyponyms returns the instances of a sense.
func (o *Ontology) InstanceHyponyms(_ context.Context, sense domain.SenseID) ([]domain.SenseID, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return clone(o.instanceHyponyms[sense]), nil
}

// Offset returns the ordering key of a sense.
func (o *Ontology) Offset(_ context.Context, sense domain.SenseID) (int64, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	s, ok := o.senses[sense]
	if !ok {
		return 0, fmt.Errorf("sense %s: %w", sense, domain.ErrNotFound)
	}
	return s.Offset, nil
}

// Sense returns the stored description of a sense.
func (o *Ontology) Sense(_ context.Context, id domain.SenseID) (*domain.Sense, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	s, ok := o.senses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func clone(ids []domain.SenseID) []domain.SenseID {
	if len(ids) == 0 {
		return []domain.SenseID{}
	}
	out := make([]domain.SenseID, len(ids))
	copy(out, ids)
	return out
}
