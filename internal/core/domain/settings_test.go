package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultChainSettings(t *testing.T) {
	s := DefaultChainSettings()

	assert.Equal(t, Noun, s.POS)
	assert.Equal(t, 100, s.TrimThreshold)
	assert.Equal(t, 5, s.HyponymDepth)
	assert.False(t, s.LinkSynonyms)
	assert.Equal(t, DefaultEdgeWeights(), s.Weights)
	assert.NoError(t, s.Validate())
}

func TestChainSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ChainSettings)
	}{
		{"bad pos", func(s *ChainSettings) { s.POS = "x" }},
		{"negative threshold", func(s *ChainSettings) { s.TrimThreshold = -1 }},
		{"negative depth", func(s *ChainSettings) { s.HyponymDepth = -2 }},
		{"negative weight", func(s *ChainSettings) { s.Weights[EdgeAncestor] = -0.1 }},
		{"nan weight", func(s *ChainSettings) { s.Weights[EdgeSibling] = math.NaN() }},
		{"infinite weight", func(s *ChainSettings) { s.Weights[EdgeSelf] = math.Inf(1) }},
		{"negative infinite weight", func(s *ChainSettings) { s.Weights[EdgeDescendant] = math.Inf(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultChainSettings()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidInput)
		})
	}
}

func TestChainSettings_Validate_ZeroDisables(t *testing.T) {
	s := DefaultChainSettings()
	s.TrimThreshold = 0
	s.HyponymDepth = 0

	assert.NoError(t, s.Validate())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, DefaultChainSettings(), s.Chain)
	assert.False(t, s.Stopwords)
	assert.Equal(t, DefaultCacheSize, s.CacheSize)
	assert.Empty(t, s.DataDir)
}

func TestChainResult_SenseOf(t *testing.T) {
	r := &ChainResult{Senses: []WordSense{{Word: "bank", Sense: "bank.n.02"}}}

	got, ok := r.SenseOf("bank")
	assert.True(t, ok)
	assert.Equal(t, SenseID("bank.n.02"), got)

	_, ok = r.SenseOf("river")
	assert.False(t, ok)
}
