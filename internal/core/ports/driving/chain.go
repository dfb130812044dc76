package driving

import (
	"context"

	"github.com/custodia-labs/galley/internal/core/domain"
)

// ChainRequest describes one document to chain.
type ChainRequest struct {
	// Name labels the document, usually its path.
	Name string

	// Text is the raw document text. Ignored if Tokens is set.
	Text string

	// Content is an undecoded file. Used when Text and Tokens are empty;
	// its format is taken from MIMEType, or detected from Name.
	Content []byte

	// MIMEType optionally overrides format detection for Content.
	MIMEType string

	// Tokens is a pre-tokenised word sequence.
	Tokens []string

	// Save persists the run when a run store is configured.
	Save bool
}

// ChainService builds lexical chains over documents.
type ChainService interface {
	// Chain disambiguates and chains a document.
	Chain(ctx context.Context, req ChainRequest) (*domain.Run, error)

	// GetRun retrieves a persisted run.
	GetRun(ctx context.Context, id string) (*domain.Run, error)

	// ListRuns lists persisted runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error)

	// DeleteRun removes a persisted run.
	DeleteRun(ctx context.Context, id string) error
}
