package domain

import "time"

const unknownDescription = "Unknown"

// WordSense is the sense selected for one distinct word.
type WordSense struct {
	// Word is the case-folded surface form.
	Word string `json:"word"`

	// Sense is the selected sense.
	Sense SenseID `json:"sense"`

	// Score is the accumulated edge weight of the selected sense.
	Score float64 `json:"score"`

	// Occurrences is the number of positions the word appeared at.
	Occurrences int `json:"occurrences"`
}

// Chain is one lexical chain: a connected group of two or more distinct words.
type Chain struct {
	// Words are the chain members in discovery order.
	Words []string `json:"words"`
}

// Len returns the number of words in the chain.
func (c Chain) Len() int {
	return len(c.Words)
}

// ChainStats records counts gathered across the pipeline stages.
type ChainStats struct {
	Tokens       int `json:"tokens"`
	Occurrences  int `json:"occurrences"`
	Edges        int `json:"edges"`
	PrunedEdges  int `json:"pruned_edges"`
	TrimmedEdges int `json:"trimmed_edges"`
	Vertices     int `json:"vertices"`
	Visited      int `json:"visited"`
}

// ChainResult is the output of chaining one document.
type ChainResult struct {
	// Senses holds the selected sense per distinct word, in first-appearance order.
	Senses []WordSense `json:"senses"`

	// Chains are the lexical chains in discovery order.
	Chains []Chain `json:"chains"`

	// Isolated are words processed but left without any chain partner.
	Isolated []string `json:"isolated"`

	// Stats are pipeline counters.
	Stats ChainStats `json:"stats"`
}

// SenseOf returns the selected sense for a word.
func (r *ChainResult) SenseOf(word string) (SenseID, bool) {
	for _, ws := range r.Senses {
		if ws.Word == word {
			return ws.Sense, true
		}
	}
	return "", false
}

// Run is a persisted chaining run.
type Run struct {
	// ID is the unique identifier (UUID).
	ID string `json:"id"`

	// Name labels the chained input, usually a file path.
	Name string `json:"name"`

	// CreatedAt is when the run completed.
	CreatedAt time.Time `json:"created_at"`

	// Result is the chaining output.
	Result ChainResult `json:"result"`
}

// RunSummary is a lightweight listing entry for a run.
type RunSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	Tokens     int       `json:"tokens"`
	ChainCount int       `json:"chain_count"`
}
