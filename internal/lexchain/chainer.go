package lexchain

import (
	"context"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/custodia-labs/galley/internal/core/domain"
	"github.com/custodia-labs/galley/internal/core/ports/driven"
	"github.com/custodia-labs/galley/internal/logger"
)

// Chainer runs the lexical chaining pipeline against an ontology.
type Chainer struct {
	ontology driven.Ontology
	settings domain.ChainSettings
}

// New creates a chainer. Returns domain.ErrInvalidInput for invalid settings
// and domain.ErrOntologyUnavailable for a nil ontology.
func New(o driven.Ontology, settings domain.ChainSettings) (*Chainer, error) {
	if o == nil {
		return nil, domain.ErrOntologyUnavailable
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Chainer{ontology: o, settings: settings}, nil
}

// Settings returns the pipeline configuration.
func (c *Chainer) Settings() domain.ChainSettings {
	return c.settings
}

// Run disambiguates every token and extracts lexical chains. Tokens are
// case-folded before lookup. The result is deterministic for a given token
// sequence and ontology snapshot.
func (c *Chainer) Run(ctx context.Context, tokens []string) (*domain.ChainResult, error) {
	words := fold(tokens)
	rel := newResolver(c.ontology, c.settings.HyponymDepth)

	logger.Section("Disambiguation Graph")
	g, err := c.build(ctx, words, rel)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	stats := domain.ChainStats{
		Tokens:      len(tokens),
		Occurrences: len(g.occs),
		Edges:       g.edgeCount(),
	}
	logger.Debug("Tokens: %d, occurrences: %d, distinct words: %d", stats.Tokens, stats.Occurrences, len(g.words))
	logger.Debug("Edges: %d, cached sense neighbourhoods: %d", stats.Edges, len(rel.cache))

	logger.Section("Sense Selection")
	selected, err := g.selectSenses()
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}

	stats.PrunedEdges = g.prune(selected)
	stats.TrimmedEdges = g.trim(selected, c.settings.TrimThreshold)
	logger.Debug("Pruned edges: %d, trimmed edges: %d", stats.PrunedEdges, stats.TrimmedEdges)

	logger.Section("Lexical Chains")
	cg, err := c.condense(ctx, g, selected)
	if err != nil {
		return nil, fmt.Errorf("condense: %w", err)
	}
	chains, isolated, visited := cg.components()
	if chains == nil {
		chains = []domain.Chain{}
	}
	if isolated == nil {
		isolated = []string{}
	}
	stats.Vertices = len(cg.vertices)
	stats.Visited = visited
	if visited != stats.Vertices {
		return nil, fmt.Errorf("%w: visited %d of %d vertices", domain.ErrInvariant, visited, stats.Vertices)
	}
	logger.Debug("Vertices: %d, chains: %d, isolated: %d", stats.Vertices, len(chains), len(isolated))

	result := &domain.ChainResult{
		Senses:   make([]domain.WordSense, 0, len(g.words)),
		Chains:   chains,
		Isolated: isolated,
		Stats:    stats,
	}
	for _, word := range g.words {
		sel := selected[word]
		result.Senses = append(result.Senses, domain.WordSense{
			Word:        word,
			Sense:       sel.sense,
			Score:       sel.score,
			Occurrences: len(g.occurrences(word)),
		})
	}
	return result, nil
}

// fold lowercases tokens for ontology lookup.
func fold(tokens []string) []string {
	caser := cases.Lower(language.Und)
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = caser.String(t)
	}
	return words
}
