// Package tokenizer splits plain text into word tokens for chaining.
package tokenizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/custodia-labs/galley/internal/core/ports/driven"
)

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// stopWords are common English function words with no useful noun senses.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "he": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"that": true, "the": true, "to": true, "was": true, "were": true, "will": true,
	"with": true, "this": true, "but": true, "they": true, "have": true,
	"had": true, "what": true, "when": true, "where": true, "who": true, "which": true,
	"why": true, "how": true, "all": true, "any": true, "both": true, "each": true,
	"few": true, "more": true, "most": true, "other": true, "some": true, "such": true,
	"no": true, "nor": true, "not": true, "only": true, "own": true, "same": true,
	"so": true, "than": true, "too": true, "very": true, "can": true, "did": true,
	"do": true, "does": true, "doing": true, "done": true, "her": true, "his": true,
	"their": true, "them": true, "there": true, "these": true, "those": true,
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithStopwords drops common English function words.
func WithStopwords(enabled bool) Option {
	return func(t *Tokenizer) {
		t.stopwords = enabled
	}
}

// Tokenizer splits on whitespace and strips surrounding punctuation.
// Token case is preserved; folding is left to the chaining engine.
type Tokenizer struct {
	stopwords bool
}

// New creates a tokenizer.
func New(opts ...Option) *Tokenizer {
	t := &Tokenizer{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize returns the word tokens of text in document order.
func (t *Tokenizer) Tokenize(text string) []string {
	caser := cases.Lower(language.Und)
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		token := strings.TrimFunc(f, isEdgePunct)
		if token == "" {
			continue
		}
		if t.stopwords && stopWords[caser.String(token)] {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// isEdgePunct reports runes stripped from either end of a token.
// Inner punctuation ("rock-and-roll", "o'clock") is kept.
func isEdgePunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
