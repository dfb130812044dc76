package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/galley/internal/adapters/driven/ontology/memory"
	"github.com/custodia-labs/galley/internal/core/domain"
)

func riverbank() []domain.Sense {
	return []domain.Sense{
		{ID: "financial_institution.n.01", Offset: 8054721, POS: domain.Noun},
		{ID: "bank.n.01", Offset: 8420278, POS: domain.Noun, Lemmas: []string{"bank"},
			Gloss: "a financial institution", Hypernyms: []domain.SenseID{"financial_institution.n.01"}},
		{ID: "geological_formation.n.01", Offset: 9287968, POS: domain.Noun},
		{ID: "bank.n.02", Offset: 9213565, POS: domain.Noun, Lemmas: []string{"bank"},
			Gloss: "sloping land", Hypernyms: []domain.SenseID{"geological_formation.n.01"}},
		{ID: "river.n.01", Offset: 9411430, POS: domain.Noun, Lemmas: []string{"river"},
			Hypernyms: []domain.SenseID{"geological_formation.n.01"}},
		{ID: "money.n.01", Offset: 13384557, POS: domain.Noun, Lemmas: []string{"money"}},
	}
}

func newOntology(t *testing.T) *memory.Ontology {
	t.Helper()
	o, err := memory.FromSenses(riverbank())
	require.NoError(t, err)
	return o
}
