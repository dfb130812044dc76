// Package markdown provides a Normaliser for Markdown documents. Markup,
// code and link targets are removed so only the prose is chained.
package markdown

import (
	"context"
	"regexp"
	"strings"

	"github.com/custodia-labs/galley/internal/core/domain"
	"github.com/custodia-labs/galley/internal/core/ports/driven"
	"github.com/custodia-labs/galley/internal/normalisers/plaintext"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise strips Markdown formatting. The title is the first level one
// heading, if any.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	source, err := plaintext.Decode(raw.Content)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	body := frontMatter.ReplaceAllString(source, "")
	return &domain.Document{
		Name:   raw.Name,
		Title:  Title(body),
		Format: "markdown",
		Text:   Strip(body),
	}, nil
}

var frontMatter = regexp.MustCompile(`\A---\n(?s:.*?)\n---\n`)

// rewrites run in order; code goes first so its content is never mistaken
// for markup.
var rewrites = []struct {
	pattern *regexp.Regexp
	with    string
}{
	{regexp.MustCompile("(?s)```.*?```"), ""},
	{regexp.MustCompile("(?s)~~~.*?~~~"), ""},
	{regexp.MustCompile("`[^`\n]+`"), ""},
	{regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`), ""},
	{regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`), "$1"},
	{regexp.MustCompile(`\[([^\]]+)\]\[[^\]]*\]`), "$1"},
	{regexp.MustCompile(`(?m)^[ \t]*\[[^\]]+\]:[ \t]+\S+.*$`), ""},
	{regexp.MustCompile(`<[^>\n]+>`), ""},
	{regexp.MustCompile(`(?m)^ {0,3}#{1,6}[ \t]+`), ""},
	{regexp.MustCompile(`(?m)[ \t]+#+[ \t]*$`), ""},
	{regexp.MustCompile(`(?m)^ {0,3}>[ \t]?`), ""},
	{regexp.MustCompile(`(?m)^[ \t]*([-*_][ \t]*){3,}$`), ""},
	{regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+(\[[ xX]\][ \t]+)?`), ""},
	{regexp.MustCompile(`(?m)^[ \t]*\d+[.)][ \t]+`), ""},
	{regexp.MustCompile(`(\*\*|__|~~)(\S(?:.*?\S)?)(\*\*|__|~~)`), "$2"},
	{regexp.MustCompile(`(^|\W)[*_](\S(?:.*?\S)?)[*_](\W|$)`), "$1$2$3"},
	{regexp.MustCompile(`(?m)^[ \t]*\|?([ \t]*:?-+:?[ \t]*\|)+[ \t]*:?-*:?[ \t]*$`), ""},
	{regexp.MustCompile(`\|`), " "},
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
}

// Strip removes Markdown formatting and returns the remaining text.
func Strip(content string) string {
	for _, r := range rewrites {
		content = r.pattern.ReplaceAllString(content, r.with)
	}
	return strings.TrimSpace(content)
}

// Title returns the text of the first level one heading.
func Title(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimRight(line[2:], "# "))
		}
	}
	return ""
}
