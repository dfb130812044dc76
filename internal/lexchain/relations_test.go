package lexchain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/galley/internal/core/domain"
)

func ladder() []domain.Sense {
	return []domain.Sense{
		{ID: "l0.n.01", Offset: 1, POS: domain.Noun, Lemmas: []string{"l0"}},
		{ID: "l1.n.01", Offset: 2, POS: domain.Noun, Lemmas: []string{"l1"}, Hypernyms: []domain.SenseID{"l0.n.01"}},
		{ID: "l2.n.01", Offset: 3, POS: domain.Noun, Lemmas: []string{"l2"}, Hypernyms: []domain.SenseID{"l1.n.01"}},
		{ID: "l3.n.01", Offset: 4, POS: domain.Noun, Lemmas: []string{"l3"}, Hypernyms: []domain.SenseID{"l2.n.01"}},
	}
}

func TestClosure(t *testing.T) {
	o := newOntology(t, ladder())
	ctx := context.Background()

	tests := []struct {
		name     string
		start    domain.SenseID
		rel      domain.Relation
		maxDepth int
		want     []domain.SenseID
	}{
		{"hypernyms unbounded", "l3.n.01", domain.RelationHypernym, 0, []domain.SenseID{"l2.n.01", "l1.n.01", "l0.n.01"}},
		{"hypernyms depth one", "l3.n.01", domain.RelationHypernym, 1, []domain.SenseID{"l2.n.01"}},
		{"hyponyms depth two", "l0.n.01", domain.RelationHyponym, 2, []domain.SenseID{"l1.n.01", "l2.n.01"}},
		{"hyponyms unbounded", "l0.n.01", domain.RelationHyponym, 0, []domain.SenseID{"l1.n.01", "l2.n.01", "l3.n.01"}},
		{"root has no hypernyms", "l0.n.01", domain.RelationHypernym, 0, nil},
		{"no instances", "l0.n.01", domain.RelationInstanceHyponym, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Closure(ctx, o, tt.start, tt.rel, tt.maxDepth)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClosure_CycleTerminates(t *testing.T) {
	o := newOntology(t, []domain.Sense{
		{ID: "a.n.01", POS: domain.Noun, Hypernyms: []domain.SenseID{"b.n.01"}},
		{ID: "b.n.01", POS: domain.Noun, Hypernyms: []domain.SenseID{"a.n.01"}},
	})

	got, err := Closure(context.Background(), o, "a.n.01", domain.RelationHypernym, 0)

	require.NoError(t, err)
	assert.Equal(t, []domain.SenseID{"b.n.01"}, got)
}

func TestClosure_UnsupportedRelation(t *testing.T) {
	o := newOntology(t, ladder())

	_, err := Closure(context.Background(), o, "l0.n.01", domain.Relation("meronym"), 0)

	assert.ErrorIs(t, err, domain.ErrUnsupportedRelation)
}

func TestClosure_PropagatesOntologyError(t *testing.T) {
	o := &failingOntology{Ontology: newOntology(t, ladder()), failOn: "l2.n.01"}

	_, err := Closure(context.Background(), o, "l3.n.01", domain.RelationHypernym, 0)

	assert.ErrorIs(t, err, errLookup)
}

func TestResolver_Related_Classifies(t *testing.T) {
	rel := newResolver(newOntology(t, riverbank()), domain.DefaultHyponymDepth)

	set, err := rel.related(context.Background(), "river.n.01")
	require.NoError(t, err)

	assert.Equal(t, domain.EdgeSelf, set.kind["river.n.01"])
	assert.Equal(t, domain.EdgeAncestor, set.kind["geological_formation.n.01"])
	assert.Equal(t, domain.EdgeDescendant, set.kind["mississippi.n.01"])
	assert.Equal(t, domain.EdgeSibling, set.kind["bank.n.02"])
	assert.NotContains(t, set.kind, domain.SenseID("bank.n.01"))
	assert.Equal(t, 4, set.Len())
	assert.Equal(t, domain.SenseID("river.n.01"), set.order[0])
}

func TestResolver_Related_SiblingOverridesAncestor(t *testing.T) {
	// x has parents p and q, and q is itself a child of p. q is reachable
	// from x as an ancestor and as a sibling; the sibling class wins.
	o := newOntology(t, []domain.Sense{
		{ID: "p.n.01", POS: domain.Noun},
		{ID: "q.n.01", POS: domain.Noun, Hypernyms: []domain.SenseID{"p.n.01"}},
		{ID: "x.n.01", POS: domain.Noun, Hypernyms: []domain.SenseID{"p.n.01", "q.n.01"}},
	})
	rel := newResolver(o, 0)

	set, err := rel.related(context.Background(), "x.n.01")
	require.NoError(t, err)

	assert.Equal(t, domain.EdgeAncestor, set.kind["p.n.01"])
	assert.Equal(t, domain.EdgeSibling, set.kind["q.n.01"])
	assert.Equal(t, domain.EdgeSelf, set.kind["x.n.01"])
}

func TestResolver_Related_IsCached(t *testing.T) {
	rel := newResolver(newOntology(t, riverbank()), 0)
	ctx := context.Background()

	first, err := rel.related(ctx, "bank.n.02")
	require.NoError(t, err)
	second, err := rel.related(ctx, "bank.n.02")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Len(t, rel.cache, 1)
}

func TestResolver_Related_HyponymDepth(t *testing.T) {
	o := newOntology(t, ladder())
	ctx := context.Background()

	shallow, err := newResolver(o, 1).related(ctx, "l0.n.01")
	require.NoError(t, err)
	assert.Contains(t, shallow.kind, domain.SenseID("l1.n.01"))
	assert.NotContains(t, shallow.kind, domain.SenseID("l2.n.01"))

	deep, err := newResolver(o, 0).related(ctx, "l0.n.01")
	require.NoError(t, err)
	assert.Equal(t, domain.EdgeDescendant, deep.kind["l3.n.01"])
}

func TestSiblings_NoParents(t *testing.T) {
	o := newOntology(t, riverbank())

	got, err := siblings(context.Background(), "money.n.01", o.InstanceHypernyms, o.InstanceHyponyms)

	require.NoError(t, err)
	assert.Empty(t, got)
}
