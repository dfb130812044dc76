// Package domain defines the core entities for Galley.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SenseID: An ontology sense (synset) identifier
//   - EdgeType: The ontological relation between two related senses
//   - ChainResult: Selected senses and lexical chains for one document
//   - Run: A persisted chaining run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
