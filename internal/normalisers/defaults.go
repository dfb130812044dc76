package normalisers

import (
	"github.com/custodia-labs/galley/internal/normalisers/docx"
	"github.com/custodia-labs/galley/internal/normalisers/eml"
	"github.com/custodia-labs/galley/internal/normalisers/html"
	"github.com/custodia-labs/galley/internal/normalisers/markdown"
	"github.com/custodia-labs/galley/internal/normalisers/plaintext"
)

// NewDefaultRegistry returns a registry with every built-in normaliser.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(html.New())
	r.Register(docx.New())
	r.Register(eml.New())
	return r
}
