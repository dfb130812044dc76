package driven

import (
	"context"

	"github.com/custodia-labs/galley/internal/core/domain"
)

// Ontology is a read-only lexical ontology (e.g. WordNet).
// Implementations must be side-effect free so callers may cache results.
type Ontology interface {
	// Senses returns the candidate senses of a word in stable rank order.
	// Returns an empty slice, not an error, for unknown words.
	Senses(ctx context.Context, word string, pos domain.PartOfSpeech) ([]domain.SenseID, error)

	// Hypernyms returns the immediate parents of a sense.
	Hypernyms(ctx context.Context, sense domain.SenseID) ([]domain.SenseID, error)

	// Hyponyms returns the immediate children of a sense.
	Hyponyms(ctx context.Context, sense domain.SenseID) ([]domain.SenseID, error)

	// InstanceHypernyms returns the categories a sense is an instance of.
	InstanceHypernyms(ctx context.Context, sense domain.SenseID) ([]domain.SenseID, error)

	// InstanceHyponyms returns the instances of a sense.
	InstanceHyponyms(ctx context.Context, sense domain.SenseID) ([]domain.SenseID, error)

	// Offset returns the totally-ordered key of a sense.
	// Returns domain.ErrNotFound for unknown senses.
	Offset(ctx context.Context, sense domain.SenseID) (int64, error)
}

// SenseLookup is implemented by ontologies that can describe a sense in full.
type SenseLookup interface {
	// Sense returns the stored description of a sense.
	Sense(ctx context.Context, id domain.SenseID) (*domain.Sense, error)
}

// OntologyWriter replaces the stored ontology with a new sense inventory.
type OntologyWriter interface {
	// ReplaceSenses deletes all stored senses and inserts the given ones.
	// Inverse relations are derived by the Ontology implementation.
	ReplaceSenses(ctx context.Context, senses []domain.Sense) error

	// CountSenses returns the number of stored senses.
	CountSenses(ctx context.Context) (int, error)
}
