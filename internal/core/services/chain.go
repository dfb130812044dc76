package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/galley/internal/core/domain"
	"github.com/custodia-labs/galley/internal/core/ports/driven"
	"github.com/custodia-labs/galley/internal/core/ports/driving"
	"github.com/custodia-labs/galley/internal/lexchain"
	"github.com/custodia-labs/galley/internal/logger"
)

// Ensure ChainService implements the interface.
var _ driving.ChainService = (*ChainService)(nil)

// ChainService tokenises documents, runs the chaining pipeline and
// optionally persists the result.
type ChainService struct {
	chainer     *lexchain.Chainer
	tokenizer   driven.Tokenizer
	normalisers driven.NormaliserRegistry
	runStore    driven.RunStore
	now         func() time.Time
}

// NewChainService creates a chain service.
// The normalisers and runStore parameters are optional (can be nil).
// Without normalisers, file content is chained as UTF-8 text.
func NewChainService(
	ontology driven.Ontology,
	tokenizer driven.Tokenizer,
	normalisers driven.NormaliserRegistry,
	runStore driven.RunStore,
	settings domain.ChainSettings,
) (*ChainService, error) {
	if tokenizer == nil {
		return nil, fmt.Errorf("%w: tokenizer is required", domain.ErrInvalidInput)
	}
	chainer, err := lexchain.New(ontology, settings)
	if err != nil {
		return nil, err
	}
	return &ChainService{
		chainer:     chainer,
		tokenizer:   tokenizer,
		normalisers: normalisers,
		runStore:    runStore,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

// Chain disambiguates and chains a document.
func (s *ChainService) Chain(ctx context.Context, req driving.ChainRequest) (*domain.Run, error) {
	logger.Section("Chain Request")

	tokens := req.Tokens
	if tokens == nil {
		text, err := s.text(ctx, req)
		if err != nil {
			return nil, err
		}
		tokens = s.tokenizer.Tokenize(text)
	}
	logger.Debug("Document %q: %d tokens", req.Name, len(tokens))
	if len(tokens) == 0 {
		return nil, domain.ErrEmptyDocument
	}

	result, err := s.chainer.Run(ctx, tokens)
	if err != nil {
		logger.Warn("Chaining failed: %v", err)
		return nil, fmt.Errorf("chain %q: %w", req.Name, err)
	}

	run := &domain.Run{
		ID:        uuid.New().String(),
		Name:      req.Name,
		CreatedAt: s.now(),
		Result:    *result,
	}
	logger.Info("Run %s: %d chains over %d words", run.ID, len(result.Chains), result.Stats.Vertices)

	if req.Save {
		if s.runStore == nil {
			logger.Debug("No run store configured, not saving")
			return run, nil
		}
		if err := s.runStore.SaveRun(ctx, run); err != nil {
			return nil, fmt.Errorf("save run: %w", err)
		}
	}
	return run, nil
}

// text returns the prose to tokenise, normalising file content when the
// request carries no plain text.
func (s *ChainService) text(ctx context.Context, req driving.ChainRequest) (string, error) {
	if req.Text != "" || req.Content == nil {
		return req.Text, nil
	}
	if s.normalisers == nil {
		return string(req.Content), nil
	}
	doc, err := s.normalisers.Normalise(ctx, &domain.RawDocument{
		Name:     req.Name,
		MIMEType: req.MIMEType,
		Content:  req.Content,
	})
	if err != nil {
		return "", err
	}
	logger.Debug("Document %q is %s titled %q", req.Name, doc.Format, doc.Title)
	return doc.Text, nil
}

// GetRun retrieves a persisted run.
func (s *ChainService) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	if s.runStore == nil {
		return nil, domain.ErrNotFound
	}
	return s.runStore.GetRun(ctx, id)
}

// ListRuns lists persisted runs, most recently saved first.
func (s *ChainService) ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	if s.runStore == nil {
		return []domain.RunSummary{}, nil
	}
	return s.runStore.ListRuns(ctx, limit)
}

// DeleteRun removes a persisted run.
func (s *ChainService) DeleteRun(ctx context.Context, id string) error {
	if s.runStore == nil {
		return domain.ErrNotFound
	}
	if _, err := s.runStore.GetRun(ctx, id); err != nil {
		return err
	}
	return s.runStore.DeleteRun(ctx, id)
}
