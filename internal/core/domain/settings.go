package domain

import (
	"fmt"
	"math"
)

// Default chaining parameters.
const (
	DefaultTrimThreshold = 100
	DefaultHyponymDepth  = 5
	DefaultCacheSize     = 4096
)

// ChainSettings configures the chaining pipeline.
type ChainSettings struct {
	// POS is the part of speech used to look up candidate senses.
	POS PartOfSpeech

	// TrimThreshold is the edge count above which a selected sense's
	// edges at an occurrence are dropped entirely. Zero disables trimming.
	TrimThreshold int

	// HyponymDepth bounds hyponym closure. Zero means unbounded.
	HyponymDepth int

	// LinkSynonyms links occurrences sharing the identical sense.
	LinkSynonyms bool

	// Weights maps edge classifications to distance weights.
	Weights EdgeWeights
}

// DefaultChainSettings returns the default pipeline configuration.
func DefaultChainSettings() ChainSettings {
	return ChainSettings{
		POS:           Noun,
		TrimThreshold: DefaultTrimThreshold,
		HyponymDepth:  DefaultHyponymDepth,
		Weights:       DefaultEdgeWeights(),
	}
}

// Validate checks that the settings are usable.
func (s ChainSettings) Validate() error {
	if !s.POS.IsValid() {
		return fmt.Errorf("%w: part of speech %q", ErrInvalidInput, s.POS)
	}
	if s.TrimThreshold < 0 {
		return fmt.Errorf("%w: trim threshold %d", ErrInvalidInput, s.TrimThreshold)
	}
	if s.HyponymDepth < 0 {
		return fmt.Errorf("%w: hyponym depth %d", ErrInvalidInput, s.HyponymDepth)
	}
	for t, w := range s.Weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: non-finite %s weight", ErrInvalidInput, EdgeType(t))
		}
		if w < 0 {
			return fmt.Errorf("%w: negative %s weight", ErrInvalidInput, EdgeType(t))
		}
	}
	return nil
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Chain ChainSettings

	// Stopwords drops common English words before chaining.
	Stopwords bool

	// CacheSize bounds the ontology lookup cache. Zero disables caching.
	CacheSize int

	// DataDir is where the SQLite database lives.
	DataDir string
}

// DefaultAppSettings returns default application settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Chain:     DefaultChainSettings(),
		CacheSize: DefaultCacheSize,
	}
}
