// Package eml provides a Normaliser for RFC 5322 email messages. Only the
// subject and the readable body are kept; addresses and other headers
// carry no lexical content worth chaining.
package eml

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/custodia-labs/galley/internal/core/domain"
	"github.com/custodia-labs/galley/internal/core/ports/driven"
	"github.com/custodia-labs/galley/internal/normalisers/html"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// maxDepth bounds nesting of multipart bodies.
const maxDepth = 8

// Normaliser handles EML (email) documents.
type Normaliser struct{}

// New creates a new EML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"message/rfc822"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise returns the decoded subject as title and the subject followed
// by the body as text. Plain text parts are preferred over HTML ones and
// attachments are skipped.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	msg, err := mail.ReadMessage(bytes.NewReader(raw.Content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	subject := decodeHeader(msg.Header.Get("Subject"))
	body, err := readBody(part{
		contentType: msg.Header.Get("Content-Type"),
		encoding:    msg.Header.Get("Content-Transfer-Encoding"),
		body:        msg.Body,
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	text := strings.TrimSpace(body)
	if subject != "" {
		text = strings.TrimSpace(subject + "\n\n" + text)
	}
	return &domain.Document{
		Name:   raw.Name,
		Title:  subject,
		Format: "eml",
		Text:   text,
	}, nil
}

// decodeHeader decodes RFC 2047 encoded words. Undecodable headers are
// returned as is.
func decodeHeader(header string) string {
	if header == "" {
		return ""
	}
	dec := &mime.WordDecoder{CharsetReader: charset.NewReaderLabel}
	decoded, err := dec.DecodeHeader(header)
	if err != nil {
		return header
	}
	return decoded
}

type part struct {
	contentType string
	encoding    string
	disposition string
	body        io.Reader
}

// readBody returns the readable text of a message part.
func readBody(p part, depth int) (string, error) {
	if p.contentType == "" {
		p.contentType = "text/plain"
	}
	mediaType, params, err := mime.ParseMediaType(p.contentType)
	if err != nil {
		mediaType, params = "text/plain", nil
	}
	if strings.HasPrefix(mediaType, "multipart/") {
		if depth >= maxDepth {
			return "", nil
		}
		return readMultipart(p.body, params["boundary"], depth+1)
	}
	if disposition, _, err := mime.ParseMediaType(p.disposition); err == nil && disposition == "attachment" {
		return "", nil
	}

	content := transferDecoder(p.encoding, p.body)
	switch mediaType {
	case "text/html":
		_, text, err := html.Extract(content, p.contentType)
		return text, err
	case "text/plain":
		return decodeText(content, params["charset"])
	default:
		return "", nil
	}
}

// readMultipart concatenates the text of all readable parts, preferring
// plain text alternatives over HTML.
func readMultipart(r io.Reader, boundary string, depth int) (string, error) {
	if boundary == "" {
		return "", nil
	}
	mr := multipart.NewReader(r, boundary)

	var plain, rich []string
	for {
		child, err := mr.NextRawPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		contentType := child.Header.Get("Content-Type")
		text, err := readBody(part{
			contentType: contentType,
			encoding:    child.Header.Get("Content-Transfer-Encoding"),
			disposition: child.Header.Get("Content-Disposition"),
			body:        child,
		}, depth)
		child.Close()
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if mediaType, _, _ := mime.ParseMediaType(contentType); mediaType == "text/html" {
			rich = append(rich, text)
		} else {
			plain = append(plain, text)
		}
	}

	if len(plain) > 0 {
		return strings.Join(plain, "\n\n"), nil
	}
	return strings.Join(rich, "\n\n"), nil
}

func transferDecoder(encoding string, r io.Reader) io.Reader {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "quoted-printable":
		return quotedprintable.NewReader(r)
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, r)
	default:
		return r
	}
}

// decodeText reads r converting from the named charset to UTF-8.
func decodeText(r io.Reader, label string) (string, error) {
	if label != "" && !strings.EqualFold(label, "utf-8") && !strings.EqualFold(label, "us-ascii") {
		decoded, err := charset.NewReaderLabel(label, r)
		if err == nil {
			r = decoded
		}
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(content), "\r\n", "\n"), nil
}
