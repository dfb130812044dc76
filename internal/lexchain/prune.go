package lexchain

// prune removes every edge attached to a non-selected sense, at both
// endpoints. Afterwards each occurrence keeps edges only under its word's
// selected sense; the other sense keys remain with empty sets.
func (g *graph) prune(selected map[string]selection) int {
	removed := 0
	for _, word := range g.words {
		best := selected[word].sense
		for _, h := range g.occurrences(word) {
			occ := g.occ(h)
			for _, sense := range occ.senses {
				if sense == best {
					continue
				}
				removed += g.drain(h, sense)
			}
		}
	}
	return removed
}

// trim disconnects hub occurrences: when the selected sense of an occurrence
// carries more than threshold edges, all of them are removed. A threshold of
// zero disables trimming. Words are visited in first-appearance order and
// occurrences in position order, so results are deterministic.
func (g *graph) trim(selected map[string]selection, threshold int) int {
	if threshold <= 0 {
		return 0
	}
	removed := 0
	for _, word := range g.words {
		best := selected[word].sense
		for _, h := range g.occurrences(word) {
			if g.occ(h).degree(best) > threshold {
				removed += g.drain(h, best)
			}
		}
	}
	return removed
}
