package domain

// RawDocument is an input document before its format is handled.
type RawDocument struct {
	// Name is the file name or path the document was read from.
	Name string

	// MIMEType selects the normaliser. Empty means detect from Name.
	MIMEType string

	// Content is the undecoded file content.
	Content []byte
}

// Document is the prose extracted from a raw document.
type Document struct {
	Name   string
	Title  string
	Format string
	Text   string
}
