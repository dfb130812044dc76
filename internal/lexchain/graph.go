package lexchain

import "github.com/custodia-labs/galley/internal/core/domain"

// handle addresses an occurrence in the graph arena.
type handle int

// endpoint is one side of an edge: an occurrence at one of its senses.
type endpoint struct {
	occ   handle
	sense domain.SenseID
}

// edgeSet maps the far endpoint of each edge to its distance weight.
type edgeSet map[endpoint]float64

// occurrence is one appearance of a word with at least one candidate sense.
// Two occurrences are the same iff word and position match; position alone
// is unique within a document.
type occurrence struct {
	word     string
	position int
	senses   []domain.SenseID
	edges    map[domain.SenseID]edgeSet
}

// degree returns the number of edges recorded under sense.
func (o *occurrence) degree(sense domain.SenseID) int {
	return len(o.edges[sense])
}

// weight returns the summed edge weight recorded under sense.
func (o *occurrence) weight(sense domain.SenseID) float64 {
	var total float64
	for _, w := range o.edges[sense] {
		total += w
	}
	return total
}

// graph is the disambiguation graph: an arena of occurrences plus the
// reverse index from surface word to its occurrences.
type graph struct {
	occs       []*occurrence
	byPosition map[int]handle
	index      map[string][]handle
	words      []string // distinct words in first-appearance order
}

func newGraph() *graph {
	return &graph{
		byPosition: make(map[int]handle),
		index:      make(map[string][]handle),
	}
}

// addOccurrence creates an occurrence with one empty edge set per distinct
// candidate sense and records it in the reverse index.
func (g *graph) addOccurrence(word string, position int, senses []domain.SenseID) handle {
	occ := &occurrence{
		word:     word,
		position: position,
		edges:    make(map[domain.SenseID]edgeSet, len(senses)),
	}
	for _, s := range senses {
		if _, dup := occ.edges[s]; dup {
			continue
		}
		occ.senses = append(occ.senses, s)
		occ.edges[s] = make(edgeSet)
	}

	h := handle(len(g.occs))
	g.occs = append(g.occs, occ)
	g.byPosition[position] = h
	if _, seen := g.index[word]; !seen {
		g.words = append(g.words, word)
	}
	g.index[word] = append(g.index[word], h)
	return h
}

// at returns the occurrence recorded at a token position.
func (g *graph) at(position int) (*occurrence, bool) {
	h, ok := g.byPosition[position]
	if !ok {
		return nil, false
	}
	return g.occs[h], true
}

func (g *graph) occ(h handle) *occurrence {
	return g.occs[h]
}

// addEdge links (a, sa) and (b, sb) with weight w at both endpoints.
func (g *graph) addEdge(a handle, sa domain.SenseID, b handle, sb domain.SenseID, w float64) {
	g.occs[a].edges[sa][endpoint{b, sb}] = w
	g.occs[b].edges[sb][endpoint{a, sa}] = w
}

// removeEdge unlinks (a, sa) from far at both endpoints.
func (g *graph) removeEdge(a handle, sa domain.SenseID, far endpoint) {
	delete(g.occs[a].edges[sa], far)
	delete(g.occs[far.occ].edges[far.sense], endpoint{a, sa})
}

// drain removes every edge recorded under sense at h and returns how many
// were removed. The loop is bounded by the current edge set size.
func (g *graph) drain(h handle, sense domain.SenseID) int {
	set := g.occs[h].edges[sense]
	removed := 0
	for far := range set {
		g.removeEdge(h, sense, far)
		removed++
	}
	return removed
}

// edgeCount returns the number of undirected edges in the graph.
func (g *graph) edgeCount() int {
	ends := 0
	for _, o := range g.occs {
		for _, set := range o.edges {
			ends += len(set)
		}
	}
	return ends / 2
}

// occurrences returns the handles of word in ascending position order.
func (g *graph) occurrences(word string) []handle {
	return g.index[word]
}
