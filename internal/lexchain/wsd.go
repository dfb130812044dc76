package lexchain

import (
	"fmt"

	"github.com/custodia-labs/galley/internal/core/domain"
)

// selection is the sense chosen for one distinct word.
type selection struct {
	sense domain.SenseID
	score float64
}

// selectSenses picks, per distinct word, the candidate sense with the
// strictly highest summed edge weight across all of the word's occurrences.
// Ties go to the earliest candidate in ontology order.
func (g *graph) selectSenses() (map[string]selection, error) {
	selected := make(map[string]selection, len(g.words))
	for _, word := range g.words {
		handles := g.occurrences(word)
		if len(handles) == 0 {
			return nil, fmt.Errorf("%w: word %q has no occurrences", domain.ErrInvariant, word)
		}

		// Candidate senses are identical for every occurrence of a word.
		senses := g.occ(handles[0]).senses

		var best selection
		for i, sense := range senses {
			var score float64
			for _, h := range handles {
				score += g.occ(h).weight(sense)
			}
			if i == 0 || score > best.score {
				best = selection{sense: sense, score: score}
			}
		}
		selected[word] = best
	}
	return selected, nil
}
