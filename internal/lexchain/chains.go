package lexchain

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/galley/internal/core/domain"
)

// vertex is one distinct word in the condensed graph.
type vertex struct {
	word   string
	offset int64
	edges  map[int]struct{}
}

// condensed is the per-word graph. Vertices are ordered by ascending
// selected-sense offset, then by word, and addressed by that rank.
type condensed struct {
	vertices []*vertex
	rank     map[string]int
}

// condense collapses occurrences into one vertex per distinct word and adds
// an undirected edge for every surviving cross-word occurrence edge.
func (c *Chainer) condense(ctx context.Context, g *graph, selected map[string]selection) (*condensed, error) {
	vertices := make([]*vertex, 0, len(g.words))
	for _, word := range g.words {
		offset, err := c.ontology.Offset(ctx, selected[word].sense)
		if err != nil {
			return nil, fmt.Errorf("offset of %s: %w", selected[word].sense, err)
		}
		vertices = append(vertices, &vertex{word: word, offset: offset, edges: make(map[int]struct{})})
	}
	sort.Slice(vertices, func(i, j int) bool {
		if vertices[i].offset != vertices[j].offset {
			return vertices[i].offset < vertices[j].offset
		}
		return vertices[i].word < vertices[j].word
	})

	cg := &condensed{vertices: vertices, rank: make(map[string]int, len(vertices))}
	for i, v := range vertices {
		cg.rank[v.word] = i
	}

	for _, word := range g.words {
		from := cg.rank[word]
		sense := selected[word].sense
		for _, h := range g.occurrences(word) {
			for far := range g.occ(h).edges[sense] {
				next := g.occ(far.occ).word
				if next == word {
					continue
				}
				to := cg.rank[next]
				cg.vertices[from].edges[to] = struct{}{}
				cg.vertices[to].edges[from] = struct{}{}
			}
		}
	}
	return cg, nil
}

// neighbours returns the ranks adjacent to vertex i in ascending order.
func (cg *condensed) neighbours(i int) []int {
	out := make([]int, 0, len(cg.vertices[i].edges))
	for j := range cg.vertices[i].edges {
		out = append(out, j)
	}
	sort.Ints(out)
	return out
}

// components performs a breadth-first traversal from every unvisited vertex
// in rank order. Components of two or more words are returned as chains;
// single vertices are returned as isolated words.
func (cg *condensed) components() (chains []domain.Chain, isolated []string, visitedCount int) {
	visited := make([]bool, len(cg.vertices))
	for root := range cg.vertices {
		if visited[root] {
			continue
		}
		component := cg.bfs(root, visited)
		visitedCount += len(component)
		if len(component) > 1 {
			chains = append(chains, domain.Chain{Words: component})
		} else {
			isolated = append(isolated, component[0])
		}
	}
	return chains, isolated, visitedCount
}

func (cg *condensed) bfs(root int, visited []bool) []string {
	queue := []int{root}
	visited[root] = true
	var words []string
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		words = append(words, cg.vertices[i].word)
		for _, j := range cg.neighbours(i) {
			if !visited[j] {
				visited[j] = true
				queue = append(queue, j)
			}
		}
	}
	return words
}
