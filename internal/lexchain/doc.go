// Package lexchain builds lexical chains over a word sequence.
//
// The pipeline runs strictly forward through five stages:
//
//  1. Build: one occurrence per token with candidate senses, linked to every
//     earlier occurrence whose sense is ontologically related.
//  2. Select: per distinct word, the candidate sense with the highest
//     accumulated edge weight.
//  3. Prune: edges on non-selected senses are removed from both endpoints.
//  4. Trim: occurrences whose selected sense carries more edges than the
//     trim threshold are disconnected entirely.
//  5. Chain: occurrences collapse into one vertex per word and connected
//     components with two or more words are emitted as chains.
//
// Occurrences live in an arena and are addressed by integer handles. Every
// edge is stored at both endpoints, keyed by (handle, sense).
//
// A Chainer is not safe for concurrent use of a single Run, but distinct
// Runs may execute in parallel when the ontology is safe for concurrent reads.
package lexchain
