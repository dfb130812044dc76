// Package sqlite provides a SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. A single database connection backs:
//
//   - Ontology: Candidate senses and relation traversal
//   - OntologyWriter: Bulk replacement of the sense inventory
//   - RunStore: Chaining run persistence
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files; applied versions are recorded in schema_migrations.
//
// Only parent relations (hypernym, instance_hypernym) are stored. Child
// relations are answered by querying the target column.
//
// # Data Location
//
// By default, the database is stored at ~/.galley/data/galley.db
package sqlite
