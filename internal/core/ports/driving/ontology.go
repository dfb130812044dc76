package driving

import (
	"context"

	"github.com/custodia-labs/galley/internal/core/domain"
)

// OntologyService manages and inspects the sense inventory.
type OntologyService interface {
	// Import replaces the stored ontology with the given senses.
	// Returns the number of senses stored.
	Import(ctx context.Context, senses []domain.Sense) (int, error)

	// Lookup returns the candidate senses of a word, in rank order.
	Lookup(ctx context.Context, word string, pos domain.PartOfSpeech) ([]domain.Sense, error)
}
