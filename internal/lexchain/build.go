package lexchain

import (
	"context"
	"fmt"

	"github.com/custodia-labs/galley/internal/core/domain"
)

// build creates the disambiguation graph. Each occurrence links every
// candidate sense to all earlier occurrences registered under a related
// sense. An occurrence is registered under its own senses only after all of
// them are linked, so no occurrence is ever linked to itself.
func (c *Chainer) build(ctx context.Context, words []string, rel *resolver) (*graph, error) {
	g := newGraph()
	metachains := make(map[domain.SenseID][]handle)

	for position, word := range words {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if word == "" {
			continue
		}
		senses, err := c.ontology.Senses(ctx, word, c.settings.POS)
		if err != nil {
			return nil, fmt.Errorf("senses for %q: %w", word, err)
		}
		if len(senses) == 0 {
			continue
		}

		h := g.addOccurrence(word, position, senses)
		occ := g.occ(h)
		for _, sense := range occ.senses {
			related, err := rel.related(ctx, sense)
			if err != nil {
				return nil, err
			}
			for _, metasense := range related.order {
				kind := related.kind[metasense]
				if kind == domain.EdgeSelf && !c.settings.LinkSynonyms {
					continue
				}
				earlier, ok := metachains[metasense]
				if !ok {
					continue
				}
				w := c.settings.Weights.Weight(kind)
				for _, other := range earlier {
					g.addEdge(h, sense, other, metasense, w)
				}
			}
		}
		for _, sense := range occ.senses {
			metachains[sense] = append(metachains[sense], h)
		}
	}
	return g, nil
}
