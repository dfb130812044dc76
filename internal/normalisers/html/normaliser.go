package html

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"

	"github.com/custodia-labs/galley/internal/core/domain"
	"github.com/custodia-labs/galley/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise extracts the rendered text of an HTML document. The character
// set is taken from the MIME type parameters or a <meta> declaration.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	title, text, err := Extract(bytes.NewReader(raw.Content), raw.MIMEType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return &domain.Document{
		Name:   raw.Name,
		Title:  title,
		Format: "html",
		Text:   text,
	}, nil
}

// Extract parses HTML from r and returns its title and text. The title is
// the <title> element, or the first <h1> when there is none. Empty input
// yields an empty title and text.
func Extract(r io.Reader, contentType string) (title, text string, err error) {
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return "", "", nil
		}
		return "", "", err
	}
	decoded, err := charset.NewReader(br, contentType)
	if err != nil {
		return "", "", err
	}
	root, err := html.Parse(decoded)
	if err != nil {
		return "", "", err
	}
	e := &extractor{}
	e.walk(root)
	e.breakLine()

	title = e.title
	if title == "" {
		title = e.heading
	}
	return title, strings.Join(e.lines, "\n"), nil
}

// skipped elements never contribute text.
var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Svg:      true,
	atom.Math:     true,
	atom.Iframe:   true,
	atom.Object:   true,
}

// blocks start and end a line.
var blocks = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Br: true, atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Figcaption: true, atom.Figure: true, atom.Footer: true, atom.Form: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true, atom.Nav: true,
	atom.Ol: true, atom.P: true, atom.Pre: true, atom.Section: true, atom.Table: true,
	atom.Tr: true, atom.Ul: true,
}

// cells are separated by a space within their row.
var cells = map[atom.Atom]bool{atom.Td: true, atom.Th: true}

type extractor struct {
	lines   []string
	line    strings.Builder
	title   string
	heading string
}

func (e *extractor) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		e.line.WriteString(n.Data)
		return
	case html.ElementNode:
		if skipped[n.DataAtom] {
			return
		}
		if n.DataAtom == atom.Title {
			if e.title == "" {
				e.title = collapse(textOf(n))
			}
			return
		}
		if n.DataAtom == atom.H1 && e.heading == "" {
			e.heading = collapse(textOf(n))
		}
	case html.CommentNode, html.DoctypeNode:
		return
	}

	block := n.Type == html.ElementNode && blocks[n.DataAtom]
	if block {
		e.breakLine()
	}
	if n.Type == html.ElementNode && cells[n.DataAtom] {
		e.line.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		e.walk(c)
	}
	if block {
		e.breakLine()
	}
}

func (e *extractor) breakLine() {
	if line := collapse(e.line.String()); line != "" {
		e.lines = append(e.lines, line)
	}
	e.line.Reset()
}

func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textOf(c))
	}
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
