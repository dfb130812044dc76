package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/galley/internal/core/domain"
	"github.com/custodia-labs/galley/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// SaveRun stores a run, replacing any run with the same ID.
func (s *runStore) SaveRun(ctx context.Context, run *domain.Run) error {
	if run == nil || run.ID == "" {
		return domain.ErrInvalidInput
	}

	statsJSON, err := json.Marshal(run.Result.Stats)
	if err != nil {
		return fmt.Errorf("marshalling stats: %w", err)
	}
	isolated := run.Result.Isolated
	if isolated == nil {
		isolated = []string{}
	}
	isolatedJSON, err := json.Marshal(isolated)
	if err != nil {
		return fmt.Errorf("marshalling isolated words: %w", err)
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", run.ID); err != nil {
		return fmt.Errorf("replacing run: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, name, created_at, tokens, chain_count, stats, isolated)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Name, run.CreatedAt, run.Result.Stats.Tokens, len(run.Result.Chains),
		string(statsJSON), string(isolatedJSON))
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	for i, ws := range run.Result.Senses {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO run_senses (run_id, ordinal, word, sense, score, occurrences)
			VALUES (?, ?, ?, ?, ?, ?)
		`, run.ID, i, ws.Word, string(ws.Sense), ws.Score, ws.Occurrences)
		if err != nil {
			return fmt.Errorf("saving sense of %q: %w", ws.Word, err)
		}
	}

	for ci, chain := range run.Result.Chains {
		for wi, word := range chain.Words {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO run_chain_words (run_id, chain_index, ordinal, word)
				VALUES (?, ?, ?, ?)
			`, run.ID, ci, wi, word)
			if err != nil {
				return fmt.Errorf("saving chain %d: %w", ci, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *runStore) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, stats, isolated FROM runs WHERE id = ?
	`, id)

	var run domain.Run
	var createdAt sql.NullTime
	var statsJSON, isolatedJSON string
	if err := row.Scan(&run.ID, &run.Name, &createdAt, &statsJSON, &isolatedJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	if createdAt.Valid {
		run.CreatedAt = createdAt.Time
	}
	if err := json.Unmarshal([]byte(statsJSON), &run.Result.Stats); err != nil {
		return nil, fmt.Errorf("unmarshaling stats: %w", err)
	}
	if err := json.Unmarshal([]byte(isolatedJSON), &run.Result.Isolated); err != nil {
		return nil, fmt.Errorf("unmarshaling isolated words: %w", err)
	}

	senses, err := s.senses(ctx, id)
	if err != nil {
		return nil, err
	}
	run.Result.Senses = senses

	chains, err := s.chains(ctx, id)
	if err != nil {
		return nil, err
	}
	run.Result.Chains = chains

	return &run, nil
}

func (s *runStore) senses(ctx context.Context, id string) ([]domain.WordSense, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT word, sense, score, occurrences FROM run_senses
		WHERE run_id = ? ORDER BY ordinal
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying run senses: %w", err)
	}
	defer rows.Close()

	senses := []domain.WordSense{}
	for rows.Next() {
		var ws domain.WordSense
		var sense string
		if err := rows.Scan(&ws.Word, &sense, &ws.Score, &ws.Occurrences); err != nil {
			return nil, fmt.Errorf("scanning run sense: %w", err)
		}
		ws.Sense = domain.SenseID(sense)
		senses = append(senses, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run senses: %w", err)
	}
	return senses, nil
}

func (s *runStore) chains(ctx context.Context, id string) ([]domain.Chain, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT chain_index, word FROM run_chain_words
		WHERE run_id = ? ORDER BY chain_index, ordinal
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying run chains: %w", err)
	}
	defer rows.Close()

	chains := []domain.Chain{}
	current := -1
	for rows.Next() {
		var index int
		var word string
		if err := rows.Scan(&index, &word); err != nil {
			return nil, fmt.Errorf("scanning run chain: %w", err)
		}
		if index != current {
			chains = append(chains, domain.Chain{})
			current = index
		}
		last := &chains[len(chains)-1]
		last.Words = append(last.Words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run chains: %w", err)
	}
	return chains, nil
}

// ListRuns returns run summaries, most recently saved first. A limit of zero or less
// returns all runs.
func (s *runStore) ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, created_at, tokens, chain_count FROM runs
		ORDER BY rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunSummary //nolint:prealloc // size unknown from query
	for rows.Next() {
		var r domain.RunSummary
		var createdAt sql.NullTime
		if err := rows.Scan(&r.ID, &r.Name, &createdAt, &r.Tokens, &r.ChainCount); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if createdAt.Valid {
			r.CreatedAt = createdAt.Time
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// DeleteRun removes a run and its senses and chains.
func (s *runStore) DeleteRun(ctx context.Context, id string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	return nil
}
