// Package docx provides a Normaliser for Word (Office Open XML) documents.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/custodia-labs/galley/internal/core/domain"
	"github.com/custodia-labs/galley/internal/core/ports/driven"
)

// MIMEType is the registered type of Word documents.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const (
	documentPart   = "word/document.xml"
	propertiesPart = "docProps/core.xml"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles DOCX documents.
type Normaliser struct{}

// New creates a new DOCX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{MIMEType}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise extracts paragraph text from the main document part, one
// paragraph per line. Paragraphs inside tables are included. The title
// comes from the core document properties.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	archive, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a docx archive: %v", domain.ErrInvalidInput, err)
	}

	body, err := readPart(archive, documentPart)
	if err != nil {
		return nil, err
	}
	text, err := paragraphs(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, documentPart, err)
	}

	return &domain.Document{
		Name:   raw.Name,
		Title:  title(archive),
		Format: "docx",
		Text:   text,
	}, nil
}

// readPart returns the content of a named archive member, or nil when the
// member is absent.
func readPart(archive *zip.Reader, name string) ([]byte, error) {
	f, err := archive.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, name, err)
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, name, err)
	}
	return content, nil
}

// paragraphs streams WordprocessingML and joins the text runs of each
// <w:p>. Tabs become spaces and explicit breaks split the line.
func paragraphs(content []byte) (string, error) {
	if len(content) == 0 {
		return "", nil
	}
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var (
		lines  []string
		line   strings.Builder
		inText bool
	)
	flush := func() {
		if s := strings.TrimSpace(line.String()); s != "" {
			lines = append(lines, s)
		}
		line.Reset()
	}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch el := token.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				inText = true
			case "tab":
				line.WriteByte(' ')
			case "br", "cr":
				flush()
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				flush()
			}
		case xml.CharData:
			if inText {
				line.Write(el)
			}
		}
	}
	flush()
	return strings.Join(lines, "\n"), nil
}

type coreProperties struct {
	Title string `xml:"title"`
}

// title returns dc:title from the core properties, or "" when absent.
func title(archive *zip.Reader) string {
	content, err := readPart(archive, propertiesPart)
	if err != nil || content == nil {
		return ""
	}
	var props coreProperties
	if err := xml.Unmarshal(content, &props); err != nil {
		return ""
	}
	return strings.TrimSpace(props.Title)
}
