package services

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/custodia-labs/galley/internal/core/domain"
	"github.com/custodia-labs/galley/internal/core/ports/driven"
	"github.com/custodia-labs/galley/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyTrimThreshold    = "chain.trim_threshold"
	keyHyponymDepth     = "chain.hyponym_depth"
	keyLinkSynonyms     = "chain.link_synonyms"
	keyPartOfSpeech     = "chain.part_of_speech"
	keyWeightSelf       = "chain.weights.self"
	keyWeightAncestor   = "chain.weights.ancestor"
	keyWeightDescendant = "chain.weights.descendant"
	keyWeightSibling    = "chain.weights.sibling"
	keyStopwords        = "tokenizer.stopwords"
	keyCacheSize        = "ontology.cache_size"
	keyDataDir          = "storage.data_dir"
)

type valueKind int

const (
	kindInt valueKind = iota
	kindFloat
	kindBool
	kindString
)

var knownKeys = map[string]valueKind{
	keyTrimThreshold:    kindInt,
	keyHyponymDepth:     kindInt,
	keyLinkSynonyms:     kindBool,
	keyPartOfSpeech:     kindString,
	keyWeightSelf:       kindFloat,
	keyWeightAncestor:   kindFloat,
	keyWeightDescendant: kindFloat,
	keyWeightSibling:    kindFloat,
	keyStopwords:        kindBool,
	keyCacheSize:        kindInt,
	keyDataDir:          kindString,
}

// weightKeys maps edge classifications to their config keys.
var weightKeys = map[domain.EdgeType]string{
	domain.EdgeSelf:       keyWeightSelf,
	domain.EdgeAncestor:   keyWeightAncestor,
	domain.EdgeDescendant: keyWeightDescendant,
	domain.EdgeSibling:    keyWeightSibling,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings. Missing keys take their defaults.
// Returns domain.ErrInvalidInput if the stored values are unusable.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Chain: domain.ChainSettings{
			POS:           domain.PartOfSpeech(s.getString(keyPartOfSpeech, string(defaults.Chain.POS))),
			TrimThreshold: s.getInt(keyTrimThreshold, defaults.Chain.TrimThreshold),
			HyponymDepth:  s.getInt(keyHyponymDepth, defaults.Chain.HyponymDepth),
			LinkSynonyms:  s.getBool(keyLinkSynonyms, defaults.Chain.LinkSynonyms),
			Weights:       defaults.Chain.Weights,
		},
		Stopwords: s.getBool(keyStopwords, defaults.Stopwords),
		CacheSize: s.getInt(keyCacheSize, defaults.CacheSize),
		DataDir:   s.getString(keyDataDir, defaults.DataDir),
	}
	for t, key := range weightKeys {
		settings.Chain.Weights[t] = s.getFloat(key, defaults.Chain.Weights[t])
	}

	if err := settings.Chain.Validate(); err != nil {
		return nil, err
	}
	if settings.CacheSize < 0 {
		return nil, fmt.Errorf("%w: cache size %d", domain.ErrInvalidInput, settings.CacheSize)
	}
	return settings, nil
}

// Set parses value according to the key's type and stores it.
// Returns domain.ErrInvalidInput for unknown keys or unparsable values.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := knownKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	var err error
	switch kind {
	case kindInt:
		parsed, err = strconv.Atoi(value)
	case kindFloat:
		var f float64
		f, err = strconv.ParseFloat(value, 64)
		if err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
			err = fmt.Errorf("non-finite value %q", value)
		}
		parsed = f
	case kindBool:
		parsed, err = strconv.ParseBool(value)
	default:
		parsed = value
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	if key == keyPartOfSpeech && !domain.PartOfSpeech(value).IsValid() {
		return fmt.Errorf("%w: part of speech %q", domain.ErrInvalidInput, value)
	}

	return s.configStore.Set(key, parsed)
}

// Keys returns the known configuration keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
