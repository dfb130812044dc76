// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Ontology: Candidate senses and relation traversal (memory, SQLite)
//   - Tokenizer: Splits raw text into word tokens
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RunStore: Persistence of chaining runs. Without it, runs are not saved.
//   - OntologyWriter: Bulk import of senses. Without it, import is disabled.
//   - NormaliserRegistry: Document format handling. Without it, file
//     content is read as UTF-8 text.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or engine package
package driven
