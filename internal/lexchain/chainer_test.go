package lexchain

import (
	"context"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/galley/internal/core/domain"
)

func TestNew_RequiresOntology(t *testing.T) {
	_, err := New(nil, domain.DefaultChainSettings())

	assert.ErrorIs(t, err, domain.ErrOntologyUnavailable)
}

func TestNew_ValidatesSettings(t *testing.T) {
	settings := domain.DefaultChainSettings()
	settings.TrimThreshold = -1

	_, err := New(newOntology(t, riverbank()), settings)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNew_RejectsNaNWeight(t *testing.T) {
	settings := domain.DefaultChainSettings()
	settings.Weights[domain.EdgeSibling] = math.NaN()

	_, err := New(newOntology(t, riverbank()), settings)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRun_RiverBank(t *testing.T) {
	c := newChainer(t, riverbank(), nil)

	res, err := c.Run(context.Background(), []string{"bank", "river", "bank", "money"})
	require.NoError(t, err)

	require.Len(t, res.Senses, 3)
	assert.Equal(t, domain.WordSense{Word: "bank", Sense: "bank.n.02", Score: 2, Occurrences: 2}, res.Senses[0])
	assert.Equal(t, domain.WordSense{Word: "river", Sense: "river.n.01", Score: 2, Occurrences: 1}, res.Senses[1])
	assert.Equal(t, domain.WordSense{Word: "money", Sense: "money.n.01", Score: 0, Occurrences: 1}, res.Senses[2])

	assert.Equal(t, []domain.Chain{{Words: []string{"bank", "river"}}}, res.Chains)
	assert.Equal(t, []string{"money"}, res.Isolated)

	assert.Equal(t, domain.ChainStats{
		Tokens:      4,
		Occurrences: 4,
		Edges:       2,
		Vertices:    3,
		Visited:     3,
	}, res.Stats)

	sense, ok := res.SenseOf("bank")
	require.True(t, ok)
	assert.Equal(t, domain.SenseID("bank.n.02"), sense)
}

func TestRun_TokensAreCaseFolded(t *testing.T) {
	c := newChainer(t, riverbank(), nil)

	res, err := c.Run(context.Background(), []string{"Bank", "RIVER"})
	require.NoError(t, err)

	assert.Equal(t, []domain.Chain{{Words: []string{"bank", "river"}}}, res.Chains)
}

func TestRun_SingleSenseSelected(t *testing.T) {
	c := newChainer(t, riverbank(), nil)

	res, err := c.Run(context.Background(), []string{"money"})
	require.NoError(t, err)

	require.Len(t, res.Senses, 1)
	assert.Equal(t, domain.SenseID("money.n.01"), res.Senses[0].Sense)
	assert.Zero(t, res.Senses[0].Score)
	assert.Empty(t, res.Chains)
	assert.Equal(t, []string{"money"}, res.Isolated)
}

func TestRun_TieGoesToFirstCandidate(t *testing.T) {
	c := newChainer(t, riverbank(), nil)

	res, err := c.Run(context.Background(), []string{"bank", "bank"})
	require.NoError(t, err)

	require.Len(t, res.Senses, 1)
	assert.Equal(t, domain.SenseID("bank.n.01"), res.Senses[0].Sense)
	assert.Zero(t, res.Senses[0].Score)
	assert.Equal(t, 2, res.Senses[0].Occurrences)
	assert.Zero(t, res.Stats.Edges)
}

func TestRun_UnknownWordsAreSkipped(t *testing.T) {
	c := newChainer(t, riverbank(), nil)

	res, err := c.Run(context.Background(), []string{"the", "river", "", "of", "money"})
	require.NoError(t, err)

	assert.Equal(t, 5, res.Stats.Tokens)
	assert.Equal(t, 2, res.Stats.Occurrences)
	assert.Equal(t, []string{"river", "money"}, res.Isolated)
}

func TestRun_NoKnownWords(t *testing.T) {
	c := newChainer(t, riverbank(), nil)

	res, err := c.Run(context.Background(), []string{"lorem", "ipsum"})
	require.NoError(t, err)

	assert.NotNil(t, res.Senses)
	assert.NotNil(t, res.Chains)
	assert.NotNil(t, res.Isolated)
	assert.Empty(t, res.Senses)
	assert.Zero(t, res.Stats.Vertices)
}

func TestRun_AncestorAndDescendantLinks(t *testing.T) {
	c := newChainer(t, riverbank(), nil)
	ctx := context.Background()

	// The later occurrence reaches the earlier one upward in one case and
	// downward in the other.
	for _, tokens := range [][]string{
		{"financial_institution", "bank"},
		{"bank", "financial_institution"},
	} {
		res, err := c.Run(ctx, tokens)
		require.NoError(t, err)

		sense, _ := res.SenseOf("bank")
		assert.Equal(t, domain.SenseID("bank.n.01"), sense, "tokens %v", tokens)
		assert.Equal(t, []domain.Chain{{Words: []string{"financial_institution", "bank"}}}, res.Chains, "tokens %v", tokens)
	}
}

func TestRun_InstanceLinks(t *testing.T) {
	c := newChainer(t, riverbank(), nil)

	res, err := c.Run(context.Background(), []string{"mississippi", "river"})
	require.NoError(t, err)

	// Ordered by offset: mississippi.n.01 precedes river.n.01.
	assert.Equal(t, []domain.Chain{{Words: []string{"mississippi", "river"}}}, res.Chains)
	assert.Empty(t, res.Isolated)
}

func TestRun_WeightsScoreSelection(t *testing.T) {
	c := newChainer(t, riverbank(), func(s *domain.ChainSettings) {
		s.Weights[domain.EdgeSibling] = 0.25
	})

	res, err := c.Run(context.Background(), []string{"bank", "river", "bank"})
	require.NoError(t, err)

	assert.Equal(t, domain.SenseID("bank.n.02"), res.Senses[0].Sense)
	assert.InDelta(t, 0.5, res.Senses[0].Score, 1e-9)
}

func TestRun_LinkSynonyms(t *testing.T) {
	ctx := context.Background()

	off := newChainer(t, riverbank(), nil)
	res, err := off.Run(ctx, []string{"river", "river"})
	require.NoError(t, err)
	assert.Zero(t, res.Senses[0].Score)
	assert.Zero(t, res.Stats.Edges)

	on := newChainer(t, riverbank(), func(s *domain.ChainSettings) { s.LinkSynonyms = true })
	res, err = on.Run(ctx, []string{"river", "river"})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, res.Senses[0].Score, 1e-9)
	assert.Equal(t, 1, res.Stats.Edges)
	// Links between occurrences of one word never form a chain.
	assert.Empty(t, res.Chains)
	assert.Equal(t, []string{"river"}, res.Isolated)
}

func TestRun_LinkSynonyms_PrunesLosingSense(t *testing.T) {
	c := newChainer(t, riverbank(), func(s *domain.ChainSettings) { s.LinkSynonyms = true })

	res, err := c.Run(context.Background(), []string{"bank", "bank"})
	require.NoError(t, err)

	// Both senses score 2; the first candidate wins and the other's edge
	// is pruned.
	assert.Equal(t, domain.SenseID("bank.n.01"), res.Senses[0].Sense)
	assert.Equal(t, 2, res.Stats.Edges)
	assert.Equal(t, 1, res.Stats.PrunedEdges)
}

func TestRun_TrimsHubs(t *testing.T) {
	tests := []struct {
		name      string
		roots     int
		threshold int
		trimmed   int
		chains    int
		isolated  int
	}{
		{"at threshold is kept", 100, domain.DefaultTrimThreshold, 0, 1, 0},
		{"above threshold is trimmed", 101, domain.DefaultTrimThreshold, 101, 0, 102},
		{"zero disables trimming", 101, 0, 0, 1, 0},
		{"small threshold", 3, 2, 3, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newChainer(t, hub(tt.roots), func(s *domain.ChainSettings) { s.TrimThreshold = tt.threshold })

			res, err := c.Run(context.Background(), hubTokens(tt.roots))
			require.NoError(t, err)

			assert.Equal(t, tt.trimmed, res.Stats.TrimmedEdges)
			assert.Len(t, res.Chains, tt.chains)
			assert.Len(t, res.Isolated, tt.isolated)
			if tt.chains == 1 {
				assert.Equal(t, tt.roots+1, res.Chains[0].Len())
				assert.Equal(t, "r000", res.Chains[0].Words[0])
			}
		})
	}
}

func TestRun_CoversEveryWordOnce(t *testing.T) {
	c := newChainer(t, riverbank(), nil)
	tokens := []string{"money", "bank", "mississippi", "river", "medium", "formation", "bank", "financial_institution"}

	res, err := c.Run(context.Background(), tokens)
	require.NoError(t, err)

	var seen []string
	for _, chain := range res.Chains {
		assert.GreaterOrEqual(t, chain.Len(), 2)
		seen = append(seen, chain.Words...)
	}
	seen = append(seen, res.Isolated...)

	var words []string
	for _, ws := range res.Senses {
		words = append(words, ws.Word)
	}
	sort.Strings(seen)
	sort.Strings(words)
	assert.Equal(t, words, seen)
	assert.Equal(t, res.Stats.Vertices, res.Stats.Visited)
}

func TestRun_Deterministic(t *testing.T) {
	c := newChainer(t, riverbank(), nil)
	tokens := []string{"river", "bank", "money", "medium", "bank", "mississippi", "formation"}

	first, err := c.Run(context.Background(), tokens)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := c.Run(context.Background(), tokens)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRun_PropagatesOntologyError(t *testing.T) {
	o := &failingOntology{Ontology: newOntology(t, riverbank()), failOn: "river.n.01"}
	c, err := New(o, domain.DefaultChainSettings())
	require.NoError(t, err)

	_, err = c.Run(context.Background(), []string{"bank", "river"})

	assert.ErrorIs(t, err, errLookup)
}

func TestRun_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newChainer(t, riverbank(), nil)

	_, err := c.Run(ctx, []string{"bank", "river"})

	assert.ErrorIs(t, err, context.Canceled)
}
