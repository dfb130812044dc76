// Package cached provides a memoising decorator for driven.Ontology.
//
// Ontologies are read-only oracles, so lookups can be cached across
// documents. Each lookup kind has its own bounded LRU cache.
package cached

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/galley/internal/core/domain"
	"github.com/custodia-labs/galley/internal/core/ports/driven"
)

// Ensure Ontology implements the interfaces.
var (
	_ driven.Ontology    = (*Ontology)(nil)
	_ driven.SenseLookup = (*Ontology)(nil)
)

type sensesKey struct {
	word string
	pos  domain.PartOfSpeech
}

type relationKey struct {
	sense    domain.SenseID
	relation domain.Relation
}

// Ontology caches the results of an underlying ontology.
type Ontology struct {
	next      driven.Ontology
	senses    *lru.Cache[sensesKey, []domain.SenseID]
	relations *lru.Cache[relationKey, []domain.SenseID]
	offsets   *lru.Cache[domain.SenseID, int64]
}

// New wraps next with caches holding up to size entries each.
func New(next driven.Ontology, size int) (*Ontology, error) {
	if next == nil {
		return nil, domain.ErrOntologyUnavailable
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: cache size %d", domain.ErrInvalidInput, size)
	}

	senses, err := lru.New[sensesKey, []domain.SenseID](size)
	if err != nil {
		return nil, fmt.Errorf("creating senses cache: %w", err)
	}
	relations, err := lru.New[relationKey, []domain.SenseID](size)
	if err != nil {
		return nil, fmt.Errorf("creating relations cache: %w", err)
	}
	offsets, err := lru.New[domain.SenseID, int64](size)
	if err != nil {
		return nil, fmt.Errorf("creating offsets cache: %w", err)
	}

	return &Ontology{
		next:      next,
		senses:    senses,
		relations: relations,
		offsets:   offsets,
	}, nil
}

// Purge drops every cached entry. Call after the underlying ontology changes.
func (o *Ontology) Purge() {
	o.senses.Purge()
	o.relations.Purge()
	o.offsets.Purge()
}

// Len returns the total number of cached entries.
func (o *Ontology) Len() int {
	return o.senses.Len() + o.relations.Len() + o.offsets.Len()
}

// Senses returns the candidate senses of a word.
func (o *Ontology) Senses(ctx context.Context, word string, pos domain.PartOfSpeech) ([]domain.SenseID, error) {
	key := sensesKey{word: word, pos: pos}
	if ids, ok := o.senses.Get(key); ok {
		return ids, nil
	}
	ids, err := o.next.Senses(ctx, word, pos)
	if err != nil {
		return nil, err
	}
	o.senses.Add(key, ids)
	return ids, nil
}

// Hypernyms returns the immediate parents of a sense.
func (o *Ontology) Hypernyms(ctx context.Context, sense domain.SenseID) ([]domain.SenseID, error) {
	return o.relation(ctx, sense, domain.RelationHypernym, o.next.Hypernyms)
}

// Hyponyms returns the immediate children of a sense.
func (o *Ontology) Hyponyms(ctx context.Context, sense domain.SenseID) ([]domain.SenseID, error) {
	return o.relation(ctx, sense, domain.RelationHyponym, o.next.Hyponyms)
}

// InstanceHypernyms returns the categories a sense is an instance of.
func (o *Ontology) InstanceHypernyms(ctx context.Context, sense domain.SenseID) ([]domain.SenseID, error) {
	return o.relation(ctx, sense, domain.RelationInstanceHypernym, o.next.InstanceHypernyms)
}

// InstanceHyponyms returns the instances of a sense.
func (o *Ontology) InstanceHyponyms(ctx context.Context, sense domain.SenseID) ([]domain.SenseID, error) {
	return o.relation(ctx, sense, domain.RelationInstanceHyponym, o.next.InstanceHyponyms)
}

// Offset returns the ordering key of a sense. Failures are not cached.
func (o *Ontology) Offset(ctx context.Context, sense domain.SenseID) (int64, error) {
	if off, ok := o.offsets.Get(sense); ok {
		return off, nil
	}
	off, err := o.next.Offset(ctx, sense)
	if err != nil {
		return 0, err
	}
	o.offsets.Add(sense, off)
	return off, nil
}

// Sense describes a sense when the underlying ontology supports it.
// Descriptions are not cached.
func (o *Ontology) Sense(ctx context.Context, id domain.SenseID) (*domain.Sense, error) {
	lookup, ok := o.next.(driven.SenseLookup)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return lookup.Sense(ctx, id)
}

func (o *Ontology) relation(
	ctx context.Context,
	sense domain.SenseID,
	rel domain.Relation,
	fetch func(context.Context, domain.SenseID) ([]domain.SenseID, error),
) ([]domain.SenseID, error) {
	key := relationKey{sense: sense, relation: rel}
	if ids, ok := o.relations.Get(key); ok {
		return ids, nil
	}
	ids, err := fetch(ctx, sense)
	if err != nil {
		return nil, err
	}
	o.relations.Add(key, ids)
	return ids, nil
}
