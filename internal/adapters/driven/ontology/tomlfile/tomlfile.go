// Package tomlfile reads sense inventories from TOML files.
//
// A file is a list of synset tables:
//
//	[[synset]]
//	id = "bank.n.02"
//	offset = 9213565
//	pos = "n"
//	lemmas = ["bank"]
//	gloss = "sloping land beside a body of water"
//	hypernyms = ["slope.n.01"]
//	instance_hypernyms = []
//
// Only parent relations are written; children are derived on load.
package tomlfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/galley/internal/core/domain"
)

type file struct {
	Synsets []synset `toml:"synset"`
}

type synset struct {
	ID                string   `toml:"id"`
	Offset            int64    `toml:"offset"`
	POS               string   `toml:"pos"`
	Lemmas            []string `toml:"lemmas"`
	Gloss             string   `toml:"gloss"`
	Hypernyms         []string `toml:"hypernyms"`
	InstanceHypernyms []string `toml:"instance_hypernyms"`
}

// ReadFile parses the ontology file at path.
func ReadFile(path string) ([]domain.Sense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	senses, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return senses, nil
}

// Parse decodes synset tables. Unknown keys, missing ids, duplicate ids,
// negative offsets and unknown parts of speech are rejected with
// domain.ErrInvalidInput. A missing pos defaults to noun.
func Parse(r io.Reader) ([]domain.Sense, error) {
	var f file
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&f); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strict.String())
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	seen := make(map[string]struct{}, len(f.Synsets))
	senses := make([]domain.Sense, 0, len(f.Synsets))
	for i, s := range f.Synsets {
		if s.ID == "" {
			return nil, fmt.Errorf("%w: synset %d has no id", domain.ErrInvalidInput, i)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate synset %s", domain.ErrInvalidInput, s.ID)
		}
		seen[s.ID] = struct{}{}
		if s.Offset < 0 {
			return nil, fmt.Errorf("%w: synset %s has negative offset", domain.ErrInvalidInput, s.ID)
		}
		pos := domain.PartOfSpeech(s.POS)
		if pos == "" {
			pos = domain.Noun
		}
		if !pos.IsValid() {
			return nil, fmt.Errorf("%w: synset %s has part of speech %q", domain.ErrInvalidInput, s.ID, s.POS)
		}

		senses = append(senses, domain.Sense{
			ID:                domain.SenseID(s.ID),
			Offset:            s.Offset,
			POS:               pos,
			Lemmas:            s.Lemmas,
			Gloss:             s.Gloss,
			Hypernyms:         ids(s.Hypernyms),
			InstanceHypernyms: ids(s.InstanceHypernyms),
		})
	}
	return senses, nil
}

func ids(raw []string) []domain.SenseID {
	if len(raw) == 0 {
		return nil
	}
	out := make([]domain.SenseID, len(raw))
	for i, r := range raw {
		out[i] = domain.SenseID(r)
	}
	return out
}
