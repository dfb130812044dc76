package driven

// Tokenizer splits raw text into an ordered word sequence.
type Tokenizer interface {
	// Tokenize returns tokens in document order.
	Tokenize(text string) []string
}
