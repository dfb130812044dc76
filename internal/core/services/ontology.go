package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/galley/internal/core/domain"
	"github.com/custodia-labs/galley/internal/core/ports/driven"
	"github.com/custodia-labs/galley/internal/core/ports/driving"
	"github.com/custodia-labs/galley/internal/logger"
)

// Ensure OntologyService implements the interface.
var _ driving.OntologyService = (*OntologyService)(nil)

// purger is implemented by caching ontologies.
type purger interface {
	Purge()
}

// OntologyService imports and inspects the sense inventory.
type OntologyService struct {
	ontology driven.Ontology
	writer   driven.OntologyWriter
}

// NewOntologyService creates an ontology service.
// The writer parameter is optional (can be nil); without it Import fails.
func NewOntologyService(ontology driven.Ontology, writer driven.OntologyWriter) *OntologyService {
	return &OntologyService{
		ontology: ontology,
		writer:   writer,
	}
}

// Import replaces the stored ontology. Every parent a sense names must be
// defined in the same import.
func (s *OntologyService) Import(ctx context.Context, senses []domain.Sense) (int, error) {
	if s.writer == nil {
		return 0, fmt.Errorf("%w: no writable ontology", domain.ErrOntologyUnavailable)
	}
	if len(senses) == 0 {
		return 0, fmt.Errorf("%w: no senses to import", domain.ErrInvalidInput)
	}
	if err := checkParents(senses); err != nil {
		return 0, err
	}

	logger.Debug("Importing %d senses", len(senses))
	if err := s.writer.ReplaceSenses(ctx, senses); err != nil {
		return 0, fmt.Errorf("import: %w", err)
	}
	if p, ok := s.ontology.(purger); ok {
		p.Purge()
	}
	return s.writer.CountSenses(ctx)
}

func checkParents(senses []domain.Sense) error {
	defined := make(map[domain.SenseID]struct{}, len(senses))
	for i := range senses {
		defined[senses[i].ID] = struct{}{}
	}
	for i := range senses {
		for _, parents := range [][]domain.SenseID{senses[i].Hypernyms, senses[i].InstanceHypernyms} {
			for _, p := range parents {
				if _, ok := defined[p]; !ok {
					return fmt.Errorf("%w: %s names undefined parent %s", domain.ErrInvalidInput, senses[i].ID, p)
				}
			}
		}
	}
	return nil
}

// Lookup returns the candidate senses of a word in rank order.
func (s *OntologyService) Lookup(ctx context.Context, word string, pos domain.PartOfSpeech) ([]domain.Sense, error) {
	if s.ontology == nil {
		return nil, domain.ErrOntologyUnavailable
	}
	ids, err := s.ontology.Senses(ctx, word, pos)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", word, err)
	}

	lookup, canDescribe := s.ontology.(driven.SenseLookup)
	senses := make([]domain.Sense, 0, len(ids))
	for _, id := range ids {
		if canDescribe {
			sense, err := lookup.Sense(ctx, id)
			if err == nil {
				senses = append(senses, *sense)
				continue
			}
			if !errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("describe %s: %w", id, err)
			}
		}
		sense, err := s.describe(ctx, id, pos)
		if err != nil {
			return nil, err
		}
		senses = append(senses, sense)
	}
	return senses, nil
}

// describe builds a sense description from the traversal methods alone.
func (s *OntologyService) describe(ctx context.Context, id domain.SenseID, pos domain.PartOfSpeech) (domain.Sense, error) {
	offset, err := s.ontology.Offset(ctx, id)
	if err != nil {
		return domain.Sense{}, fmt.Errorf("describe %s: %w", id, err)
	}
	hypernyms, err := s.ontology.Hypernyms(ctx, id)
	if err != nil {
		return domain.Sense{}, fmt.Errorf("describe %s: %w", id, err)
	}
	instanceHypernyms, err := s.ontology.InstanceHypernyms(ctx, id)
	if err != nil {
		return domain.Sense{}, fmt.Errorf("describe %s: %w", id, err)
	}
	return domain.Sense{
		ID:                id,
		Offset:            offset,
		POS:               pos,
		Hypernyms:         hypernyms,
		InstanceHypernyms: instanceHypernyms,
	}, nil
}
