package lexchain

import (
	"context"
	"fmt"

	"github.com/custodia-labs/galley/internal/core/domain"
	"github.com/custodia-labs/galley/internal/core/ports/driven"
)

// relationFunc returns the immediate neighbours of a sense along one relation.
type relationFunc func(ctx context.Context, sense domain.SenseID) ([]domain.SenseID, error)

// relationOf resolves an ontology relation to its lookup function.
func relationOf(o driven.Ontology, rel domain.Relation) (relationFunc, error) {
	switch rel {
	case domain.RelationHypernym:
		return o.Hypernyms, nil
	case domain.RelationHyponym:
		return o.Hyponyms, nil
	case domain.RelationInstanceHypernym:
		return o.InstanceHypernyms, nil
	case domain.RelationInstanceHyponym:
		return o.InstanceHyponyms, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedRelation, rel)
	}
}

// Closure returns every sense reachable from start by repeatedly applying
// rel, in breadth-first order. The start sense is not included. A maxDepth
// of zero or less means unbounded. Cycles are visited once.
func Closure(ctx context.Context, o driven.Ontology, start domain.SenseID, rel domain.Relation, maxDepth int) ([]domain.SenseID, error) {
	next, err := relationOf(o, rel)
	if err != nil {
		return nil, err
	}
	return closure(ctx, start, next, maxDepth)
}

func closure(ctx context.Context, start domain.SenseID, next relationFunc, maxDepth int) ([]domain.SenseID, error) {
	seen := map[domain.SenseID]struct{}{start: {}}
	var out []domain.SenseID

	frontier := []domain.SenseID{start}
	for depth := 1; len(frontier) > 0; depth++ {
		if maxDepth > 0 && depth > maxDepth {
			break
		}
		var following []domain.SenseID
		for _, s := range frontier {
			neighbours, err := next(ctx, s)
			if err != nil {
				return nil, fmt.Errorf("expanding %s: %w", s, err)
			}
			for _, n := range neighbours {
				if _, ok := seen[n]; ok {
					continue
				}
				seen[n] = struct{}{}
				out = append(out, n)
				following = append(following, n)
			}
		}
		frontier = following
	}
	return out, nil
}

// siblings returns the children (via down) of every parent (via up) of
// sense, excluding sense itself. A sense with no parents has no siblings.
func siblings(ctx context.Context, sense domain.SenseID, up, down relationFunc) ([]domain.SenseID, error) {
	parents, err := up(ctx, sense)
	if err != nil {
		return nil, err
	}
	seen := make(map[domain.SenseID]struct{})
	var out []domain.SenseID
	for _, p := range parents {
		children, err := down(ctx, p)
		if err != nil {
			return nil, err
		}
		for _, c := range children {
			if c == sense {
				continue
			}
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out, nil
}

// relatedSet is the classified neighbourhood of one candidate sense.
// order keeps first-insertion order so edge construction is deterministic.
type relatedSet struct {
	order []domain.SenseID
	kind  map[domain.SenseID]domain.EdgeType
}

func newRelatedSet() *relatedSet {
	return &relatedSet{kind: make(map[domain.SenseID]domain.EdgeType)}
}

// put classifies senses, overriding any earlier classification.
func (r *relatedSet) put(t domain.EdgeType, senses ...domain.SenseID) {
	for _, s := range senses {
		if _, ok := r.kind[s]; !ok {
			r.order = append(r.order, s)
		}
		r.kind[s] = t
	}
}

// Len returns the number of related senses, including the sense itself.
func (r *relatedSet) Len() int {
	return len(r.order)
}

// resolver computes and memoises related-sense sets for one document.
type resolver struct {
	ontology     driven.Ontology
	hyponymDepth int
	cache        map[domain.SenseID]*relatedSet
}

func newResolver(o driven.Ontology, hyponymDepth int) *resolver {
	return &resolver{
		ontology:     o,
		hyponymDepth: hyponymDepth,
		cache:        make(map[domain.SenseID]*relatedSet),
	}
}

// related returns the classified neighbourhood of sense. Classifications
// are applied in order self, ancestors, descendants, siblings, so a sense
// reachable several ways keeps the last one.
func (r *resolver) related(ctx context.Context, sense domain.SenseID) (*relatedSet, error) {
	if set, ok := r.cache[sense]; ok {
		return set, nil
	}

	o := r.ontology
	steps := []struct {
		kind  domain.EdgeType
		fetch func() ([]domain.SenseID, error)
	}{
		{domain.EdgeAncestor, func() ([]domain.SenseID, error) {
			return closure(ctx, sense, o.Hypernyms, 0)
		}},
		{domain.EdgeAncestor, func() ([]domain.SenseID, error) {
			return closure(ctx, sense, o.InstanceHypernyms, 0)
		}},
		{domain.EdgeDescendant, func() ([]domain.SenseID, error) {
			return closure(ctx, sense, o.Hyponyms, r.hyponymDepth)
		}},
		{domain.EdgeDescendant, func() ([]domain.SenseID, error) {
			return closure(ctx, sense, o.InstanceHyponyms, 0)
		}},
		{domain.EdgeSibling, func() ([]domain.SenseID, error) {
			return siblings(ctx, sense, o.Hypernyms, o.Hyponyms)
		}},
		{domain.EdgeSibling, func() ([]domain.SenseID, error) {
			return siblings(ctx, sense, o.InstanceHypernyms, o.InstanceHyponyms)
		}},
	}

	set := newRelatedSet()
	set.put(domain.EdgeSelf, sense)
	for _, step := range steps {
		senses, err := step.fetch()
		if err != nil {
			return nil, fmt.Errorf("relating %s: %w", sense, err)
		}
		set.put(step.kind, senses...)
	}

	r.cache[sense] = set
	return set, nil
}
