package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/galley/internal/core/domain"
	"github.com/custodia-labs/galley/internal/core/ports/driven"
)

// Ensure OntologyStore implements the interfaces.
var (
	_ driven.Ontology       = (*OntologyStore)(nil)
	_ driven.SenseLookup    = (*OntologyStore)(nil)
	_ driven.OntologyWriter = (*OntologyStore)(nil)
)

// OntologyStore serves the imported sense inventory from SQLite.
type OntologyStore struct {
	store *Store
}

// ReplaceSenses deletes the stored inventory and inserts senses in a single
// transaction. Lemma rank follows the order senses are given in.
func (o *OntologyStore) ReplaceSenses(ctx context.Context, senses []domain.Sense) error {
	tx, err := o.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, table := range []string{"relations", "lemmas", "synsets"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	synStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO synsets (id, sense_offset, pos, gloss) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing synset insert: %w", err)
	}
	defer synStmt.Close()

	lemmaStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO lemmas (word, synset_id, sense_rank) VALUES (?, ?, ?)
		ON CONFLICT(word, synset_id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("preparing lemma insert: %w", err)
	}
	defer lemmaStmt.Close()

	relStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO relations (source_id, relation, target_id, ordinal) VALUES (?, ?, ?, ?)
		ON CONFLICT(source_id, relation, target_id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("preparing relation insert: %w", err)
	}
	defer relStmt.Close()

	ranks := make(map[string]int)
	for i := range senses {
		s := &senses[i]
		if s.ID == "" {
			return fmt.Errorf("%w: sense without id", domain.ErrInvalidInput)
		}
		if _, err := synStmt.ExecContext(ctx, string(s.ID), s.Offset, string(s.POS), s.Gloss); err != nil {
			return fmt.Errorf("inserting synset %s: %w", s.ID, err)
		}
		for _, lemma := range s.Lemmas {
			word := strings.ToLower(lemma)
			if _, err := lemmaStmt.ExecContext(ctx, word, string(s.ID), ranks[word]); err != nil {
				return fmt.Errorf("inserting lemma %q: %w", lemma, err)
			}
			ranks[word]++
		}
		if err := insertRelations(ctx, relStmt, s.ID, domain.RelationHypernym, s.Hypernyms); err != nil {
			return err
		}
		if err := insertRelations(ctx, relStmt, s.ID, domain.RelationInstanceHypernym, s.InstanceHypernyms); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func insertRelations(ctx context.Context, stmt *sql.Stmt, source domain.SenseID, rel domain.Relation, targets []domain.SenseID) error {
	for i, target := range targets {
		if _, err := stmt.ExecContext(ctx, string(source), string(rel), string(target), i); err != nil {
			return fmt.Errorf("inserting %s of %s: %w", rel, source, err)
		}
	}
	return nil
}

// CountSenses returns the number of stored senses.
func (o *OntologyStore) CountSenses(ctx context.Context) (int, error) {
	var n int
	if err := o.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM synsets").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting synsets: %w", err)
	}
	return n, nil
}

// Senses returns the candidate senses of a word in rank order.
func (o *OntologyStore) Senses(ctx context.Context, word string, pos domain.PartOfSpeech) ([]domain.SenseID, error) {
	return o.queryIDs(ctx, `
		SELECT l.synset_id FROM lemmas l
		JOIN synsets s ON s.id = l.synset_id
		WHERE l.word = ? AND s.pos = ?
		ORDER BY l.sense_rank
	`, strings.ToLower(word), string(pos))
}

// Hypernyms returns the immediate parents of a sense.
func (o *OntologyStore) Hypernyms(ctx context.Context, sense domain.SenseID) ([]domain.SenseID, error) {
	return o.parents(ctx, sense, domain.RelationHypernym)
}

// Hyponyms returns the immediate children of a sense.
func (o *OntologyStore) Hyponyms(ctx context.Context, sense domain.SenseID) ([]domain.SenseID, error) {
	return o.children(ctx, sense, domain.RelationHypernym)
}

// InstanceHypernyms returns the categories a sense is an instance of.
func (o *OntologyStore) InstanceHypernyms(ctx context.Context, sense domain.SenseID) ([]domain.SenseID, error) {
	return o.parents(ctx, sense, domain.RelationInstanceHypernym)
}

// InstanceHyponyms returns the instances of a sense.
func (o *OntologyStore) InstanceHyponyms(ctx context.Context, sense domain.SenseID) ([]domain.SenseID, error) {
	return o.children(ctx, sense, domain.RelationInstanceHypernym)
}

// Offset returns the ordering key of a sense.
func (o *OntologyStore) Offset(ctx context.Context, sense domain.SenseID) (int64, error) {
	var off int64
	err := o.store.db.QueryRowContext(ctx, "SELECT sense_offset FROM synsets WHERE id = ?", string(sense)).Scan(&off)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("sense %s: %w", sense, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("querying offset: %w", err)
	}
	return off, nil
}

// Sense returns the stored description of a sense.
func (o *OntologyStore) Sense(ctx context.Context, id domain.SenseID) (*domain.Sense, error) {
	row := o.store.db.QueryRowContext(ctx, `
		SELECT id, sense_offset, pos, gloss FROM synsets WHERE id = ?
	`, string(id))

	var s domain.Sense
	var rawID, pos string
	if err := row.Scan(&rawID, &s.Offset, &pos, &s.Gloss); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning synset: %w", err)
	}
	s.ID = domain.SenseID(rawID)
	s.POS = domain.PartOfSpeech(pos)

	lemmas, err := o.queryStrings(ctx, "SELECT word FROM lemmas WHERE synset_id = ? ORDER BY word", rawID)
	if err != nil {
		return nil, err
	}
	s.Lemmas = lemmas

	if s.Hypernyms, err = o.parents(ctx, id, domain.RelationHypernym); err != nil {
		return nil, err
	}
	if s.InstanceHypernyms, err = o.parents(ctx, id, domain.RelationInstanceHypernym); err != nil {
		return nil, err
	}
	return &s, nil
}

func (o *OntologyStore) parents(ctx context.Context, sense domain.SenseID, rel domain.Relation) ([]domain.SenseID, error) {
	return o.queryIDs(ctx, `
		SELECT target_id FROM relations
		WHERE source_id = ? AND relation = ?
		ORDER BY ordinal
	`, string(sense), string(rel))
}

func (o *OntologyStore) children(ctx context.Context, sense domain.SenseID, rel domain.Relation) ([]domain.SenseID, error) {
	return o.queryIDs(ctx, `
		SELECT source_id FROM relations
		WHERE target_id = ? AND relation = ?
		ORDER BY rowid
	`, string(sense), string(rel))
}

func (o *OntologyStore) queryIDs(ctx context.Context, query string, args ...any) ([]domain.SenseID, error) {
	raw, err := o.queryStrings(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	ids := make([]domain.SenseID, len(raw))
	for i, r := range raw {
		ids[i] = domain.SenseID(r)
	}
	return ids, nil
}

func (o *OntologyStore) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := o.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying ontology: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning ontology row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ontology rows: %w", err)
	}
	return out, nil
}
