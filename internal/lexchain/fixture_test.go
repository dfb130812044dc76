package lexchain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/galley/internal/adapters/driven/ontology/memory"
	"github.com/custodia-labs/galley/internal/core/domain"
)

// riverbank is a small ontology where "bank" has a financial sense and a
// sloping-land sense. The sloping-land sense shares a parent with river.
func riverbank() []domain.Sense {
	return []domain.Sense{
		{ID: "financial_institution.n.01", Offset: 8054721, POS: domain.Noun, Lemmas: []string{"financial_institution"}},
		{ID: "bank.n.01", Offset: 8420278, POS: domain.Noun, Lemmas: []string{"bank"},
			Hypernyms: []domain.SenseID{"financial_institution.n.01"}},
		{ID: "geological_formation.n.01", Offset: 9287968, POS: domain.Noun, Lemmas: []string{"formation"}},
		{ID: "bank.n.02", Offset: 9213565, POS: domain.Noun, Lemmas: []string{"bank"},
			Hypernyms: []domain.SenseID{"geological_formation.n.01"}},
		{ID: "river.n.01", Offset: 9411430, POS: domain.Noun, Lemmas: []string{"river"},
			Hypernyms: []domain.SenseID{"geological_formation.n.01"}},
		{ID: "mississippi.n.01", Offset: 9363536, POS: domain.Noun, Lemmas: []string{"mississippi"},
			InstanceHypernyms: []domain.SenseID{"river.n.01"}},
		{ID: "medium_of_exchange.n.01", Offset: 13354985, POS: domain.Noun, Lemmas: []string{"medium"}},
		{ID: "money.n.01", Offset: 13384557, POS: domain.Noun, Lemmas: []string{"money"},
			Hypernyms: []domain.SenseID{"medium_of_exchange.n.01"}},
	}
}

func newOntology(t *testing.T, senses []domain.Sense) *memory.Ontology {
	t.Helper()
	o, err := memory.FromSenses(senses)
	require.NoError(t, err)
	return o
}

func newChainer(t *testing.T, senses []domain.Sense, mutate func(*domain.ChainSettings)) *Chainer {
	t.Helper()
	settings := domain.DefaultChainSettings()
	if mutate != nil {
		mutate(&settings)
	}
	c, err := New(newOntology(t, senses), settings)
	require.NoError(t, err)
	return c
}

// hub returns n root senses r000.. and a sense "leaf" that has all of them
// as hypernyms, so leaf links to every root.
func hub(n int) []domain.Sense {
	senses := make([]domain.Sense, 0, n+1)
	parents := make([]domain.SenseID, 0, n)
	for i := 0; i < n; i++ {
		id := domain.SenseID(fmt.Sprintf("r%03d.n.01", i))
		senses = append(senses, domain.Sense{ID: id, Offset: int64(i + 1), POS: domain.Noun, Lemmas: []string{fmt.Sprintf("r%03d", i)}})
		parents = append(parents, id)
	}
	senses = append(senses, domain.Sense{ID: "leaf.n.01", Offset: 100000, POS: domain.Noun, Lemmas: []string{"leaf"}, Hypernyms: parents})
	return senses
}

func hubTokens(n int) []string {
	tokens := make([]string, 0, n+1)
	for i := 0; i < n; i++ {
		tokens = append(tokens, fmt.Sprintf("r%03d", i))
	}
	return append(tokens, "leaf")
}

var errLookup = errors.New("lookup failed")

// failingOntology returns errLookup for hypernym queries on one sense.
type failingOntology struct {
	*memory.Ontology
	failOn domain.SenseID
}

func (f *failingOntology) Hypernyms(ctx context.Context, sense domain.SenseID) ([]domain.SenseID, error) {
	if sense == f.failOn {
		return nil, errLookup
	}
	return f.Ontology.Hypernyms(ctx, sense)
}

// assertSymmetric checks that every edge is recorded at both endpoints with
// the same weight.
func assertSymmetric(t *testing.T, g *graph) {
	t.Helper()
	for h, occ := range g.occs {
		for sense, set := range occ.edges {
			for far, w := range set {
				back, ok := g.occs[far.occ].edges[far.sense][endpoint{handle(h), sense}]
				require.Truef(t, ok, "edge %s@%d -> %s@%d has no reverse", sense, occ.position, far.sense, g.occs[far.occ].position)
				require.Equal(t, w, back)
			}
		}
	}
}
