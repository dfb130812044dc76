package normalisers

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/galley/internal/core/domain"
	"github.com/custodia-labs/galley/internal/core/ports/driven"
	"github.com/custodia-labs/galley/internal/logger"
	"github.com/custodia-labs/galley/internal/normalisers/docx"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// extensions maps file extensions whose MIME type is not reliably known
// to the platform's MIME database.
var extensions = map[string]string{
	".txt":      "text/plain",
	".text":     "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".html":     "text/html",
	".htm":      "text/html",
	".xhtml":    "application/xhtml+xml",
	".eml":      "message/rfc822",
	".docx":     docx.MIMEType,
}

// Registry selects a normaliser by MIME type. When several normalisers
// support a type the one with the highest priority wins, earlier
// registrations breaking ties.
type Registry struct {
	mu          sync.RWMutex
	normalisers []driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a normaliser to the registry.
func (r *Registry) Register(normaliser driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.normalisers = append(r.normalisers, normaliser)
}

// SupportedMIMETypes returns the sorted set of types that can be normalised.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	types := []string{}
	for _, n := range r.normalisers {
		for _, t := range n.SupportedMIMETypes() {
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
	}
	sort.Strings(types)
	return types
}

// Normalise picks a normaliser for the document and runs it. A missing
// MIME type is detected from the name. A document without a title gets
// one derived from its name.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	mimeType := raw.MIMEType
	if mimeType == "" {
		mimeType = DetectMIMEType(raw.Name)
	}

	normaliser := r.lookup(mimeType)
	if normaliser == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, mimeType)
	}
	logger.Debug("Normalising %q as %s", raw.Name, mimeType)

	withType := *raw
	withType.MIMEType = mimeType
	doc, err := normaliser.Normalise(ctx, &withType)
	if err != nil {
		return nil, fmt.Errorf("normalise %q: %w", raw.Name, err)
	}
	if doc.Title == "" {
		doc.Title = TitleFromName(raw.Name)
	}
	return doc, nil
}

func (r *Registry) lookup(mimeType string) driven.Normaliser {
	base := mediaType(mimeType)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var best driven.Normaliser
	for _, n := range r.normalisers {
		if best != nil && n.Priority() <= best.Priority() {
			continue
		}
		for _, t := range n.SupportedMIMETypes() {
			if t == base {
				best = n
				break
			}
		}
	}
	return best
}

// DetectMIMEType guesses a MIME type from a file name, falling back to
// text/plain for unknown or missing extensions.
func DetectMIMEType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return "text/plain"
	}
	if t, ok := extensions[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return mediaType(t)
	}
	return "text/plain"
}

// TitleFromName derives a readable title from a file name.
func TitleFromName(name string) string {
	if name == "" || name == "-" {
		return ""
	}
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.NewReplacer("_", " ", "-", " ").Replace(base)
}

func mediaType(t string) string {
	if parsed, _, err := mime.ParseMediaType(t); err == nil {
		return parsed
	}
	return strings.ToLower(strings.TrimSpace(t))
}
