package domain

import "errors"

// Domain errors represent chaining failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyDocument indicates a document had no tokens to chain.
	ErrEmptyDocument = errors.New("empty document")

	// ErrOntologyUnavailable indicates no ontology has been configured or imported.
	ErrOntologyUnavailable = errors.New("ontology unavailable")

	// ErrUnsupportedRelation indicates an unknown ontology relation.
	ErrUnsupportedRelation = errors.New("unsupported relation")

	// ErrUnsupportedFormat indicates no normaliser handles a document's type.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrInvariant indicates the disambiguation graph reached an impossible state.
	// This is a defect, not an expected runtime condition.
	ErrInvariant = errors.New("graph invariant violated")
)
