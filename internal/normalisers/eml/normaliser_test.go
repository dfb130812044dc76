package eml

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/galley/internal/core/domain"
)

// message joins header and body lines with CRLF.
func message(lines ...string) []byte {
	return []byte(strings.Join(lines, "\r\n"))
}

func normalise(t *testing.T, content []byte) *domain.Document {
	t.Helper()
	doc, err := New().Normalise(context.Background(), &domain.RawDocument{
		Name:     "mail.eml",
		MIMEType: "message/rfc822",
		Content:  content,
	})
	require.NoError(t, err)
	return doc
}

func TestSupportedMIMETypes(t *testing.T) {
	assert.Equal(t, []string{"message/rfc822"}, New().SupportedMIMETypes())
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 50, New().Priority())
}

func TestNormalise_NilDocument(t *testing.T) {
	doc, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, doc)
}

func TestNormalise_InvalidEmail(t *testing.T) {
	doc, err := New().Normalise(context.Background(), &domain.RawDocument{Content: []byte("not a valid email")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, doc)
}

func TestNormalise_SimpleEmail(t *testing.T) {
	doc := normalise(t, message(
		"From: sender@example.com",
		"To: recipient@example.com",
		"Subject: River bank",
		"Content-Type: text/plain",
		"",
		"The bank by the river.",
	))

	assert.Equal(t, "mail.eml", doc.Name)
	assert.Equal(t, "River bank", doc.Title)
	assert.Equal(t, "eml", doc.Format)
	assert.Equal(t, "River bank\n\nThe bank by the river.", doc.Text)
	assert.NotContains(t, doc.Text, "example.com")
}

func TestNormalise_NoSubject(t *testing.T) {
	doc := normalise(t, message("From: a@example.com", "", "Just a body."))

	assert.Empty(t, doc.Title)
	assert.Equal(t, "Just a body.", doc.Text)
}

func TestNormalise_HTMLBody(t *testing.T) {
	doc := normalise(t, message(
		"Subject: Deposit",
		"Content-Type: text/html; charset=utf-8",
		"",
		"<html><body><p>Your <b>money</b> is safe.</p></body></html>",
	))

	assert.Equal(t, "Deposit\n\nYour money is safe.", doc.Text)
}

func TestNormalise_MultipartAlternative(t *testing.T) {
	doc := normalise(t, message(
		"Subject: Test",
		"MIME-Version: 1.0",
		`Content-Type: multipart/alternative; boundary="b1"`,
		"",
		"--b1",
		"Content-Type: text/plain",
		"",
		"Plain text version",
		"--b1",
		"Content-Type: text/html",
		"",
		"<p>HTML version</p>",
		"--b1--",
	))

	assert.Equal(t, "Test\n\nPlain text version", doc.Text)
}

func TestNormalise_EmptyHTMLBody(t *testing.T) {
	doc := normalise(t, message(
		"Subject: Deposit",
		"Content-Type: text/html",
		"",
		"",
	))

	assert.Equal(t, "Deposit", doc.Title)
	assert.Equal(t, "Deposit", doc.Text)
}

func TestNormalise_EmptyHTMLPart(t *testing.T) {
	doc := normalise(t, message(
		"Subject: Test",
		`Content-Type: multipart/alternative; boundary="b1"`,
		"",
		"--b1",
		"Content-Type: text/html",
		"",
		"",
		"--b1",
		"Content-Type: text/plain",
		"",
		"Plain text version",
		"--b1--",
	))

	assert.Equal(t, "Test\n\nPlain text version", doc.Text)
}

func TestNormalise_HTMLOnlyMultipart(t *testing.T) {
	doc := normalise(t, message(
		`Content-Type: multipart/alternative; boundary="b1"`,
		"",
		"--b1",
		"Content-Type: text/html",
		"",
		"<p>HTML version</p>",
		"--b1--",
	))

	assert.Equal(t, "HTML version", doc.Text)
}

func TestNormalise_NestedMultipartWithAttachment(t *testing.T) {
	doc := normalise(t, message(
		`Content-Type: multipart/mixed; boundary="outer"`,
		"",
		"--outer",
		`Content-Type: multipart/alternative; boundary="inner"`,
		"",
		"--inner",
		"Content-Type: text/plain",
		"",
		"Nested body",
		"--inner--",
		"--outer",
		"Content-Type: text/plain",
		`Content-Disposition: attachment; filename="notes.txt"`,
		"",
		"attached text",
		"--outer--",
	))

	assert.Equal(t, "Nested body", doc.Text)
}

func TestNormalise_TransferEncodings(t *testing.T) {
	t.Run("quoted printable", func(t *testing.T) {
		doc := normalise(t, message(
			"Content-Type: text/plain; charset=utf-8",
			"Content-Transfer-Encoding: quoted-printable",
			"",
			"caf=C3=A9 by the ri=",
			"ver",
		))
		assert.Equal(t, "café by the river", doc.Text)
	})

	t.Run("base64", func(t *testing.T) {
		doc := normalise(t, message(
			"Content-Type: text/plain",
			"Content-Transfer-Encoding: base64",
			"",
			"VGhlIGJhbmsgYnkg",
			"dGhlIHJpdmVyLg==",
		))
		assert.Equal(t, "The bank by the river.", doc.Text)
	})

	t.Run("latin1 charset", func(t *testing.T) {
		doc := normalise(t, message(
			"Content-Type: text/plain; charset=iso-8859-1",
			"",
			"caf\xe9",
		))
		assert.Equal(t, "café", doc.Text)
	})
}

func TestDecodeHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text", input: "Simple Subject", want: "Simple Subject"},
		{name: "empty", input: "", want: ""},
		{name: "utf8 base64", input: "=?UTF-8?B?SGVsbG8gV29ybGQ=?=", want: "Hello World"},
		{name: "utf8 quoted printable", input: "=?UTF-8?Q?Hello_World?=", want: "Hello World"},
		{name: "windows-1252", input: "=?windows-1252?Q?caf=E9?=", want: "café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeHeader(tt.input))
		})
	}
}
