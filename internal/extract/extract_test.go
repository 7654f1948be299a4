package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexdesk/legal-assistant/internal/domain"
)

func makeDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractPlainText(t *testing.T) {
	got, err := Extract([]byte("clause 1\nclause 2"), "text/plain; charset=utf-8", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "clause 1\nclause 2", got)

	got, err = Extract([]byte{'o', 'k', 0xff, '!'}, domain.MimePlainText, "bad.txt")
	require.NoError(t, err)
	assert.Equal(t, "ok�!", got)
}

func TestExtractDocx(t *testing.T) {
	data := makeDocx(t,
		`<w:p><w:r><w:t>The party of the </w:t></w:r><w:r><w:t>first part</w:t></w:r></w:p>`+
			`<w:p></w:p>`+
			`<w:p><w:r><w:t>Term</w:t><w:tab/><w:t>12 months</w:t></w:r></w:p>`)

	got, err := Extract(data, domain.MimeWord, "lease.docx")
	require.NoError(t, err)
	assert.Equal(t, "The party of the first part\n\nTerm\t12 months", got)

	got, err = Extract(data, "application/octet-stream", "lease.DOCX")
	require.NoError(t, err)
	assert.Contains(t, got, "first part")
}

func TestExtractDocxErrors(t *testing.T) {
	_, err := Extract([]byte("not a zip"), domain.MimeWord, "x.docx")
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, _ = zw.Create("other.xml")
	require.NoError(t, zw.Close())
	_, err = Extract(buf.Bytes(), domain.MimeWord, "empty.docx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestExtractPDFRejectsGarbage(t *testing.T) {
	_, err := Extract([]byte("%PDF-1.4 truncated"), domain.MimePDF, "broken.pdf")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
}

func TestExtractUnsupported(t *testing.T) {
	_, err := Extract([]byte("x"), "image/png", "scan.png")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))

	_, err = Extract([]byte("x"), "application/octet-stream", "notes.rtf")
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
}

func TestExtractPair(t *testing.T) {
	left := File{Name: "a.txt", Mime: domain.MimePlainText, Data: []byte("alpha")}
	right := File{Name: "b.docx", Mime: domain.MimeWord, Data: makeDocx(t, `<w:p><w:r><w:t>beta</w:t></w:r></w:p>`)}

	a, b, err := ExtractPair(context.Background(), left, right)
	require.NoError(t, err)
	assert.Equal(t, "alpha", a)
	assert.Equal(t, "beta", b)

	_, _, err = ExtractPair(context.Background(), left, File{Name: "c.bin", Mime: "image/gif"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "c.bin")
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = ExtractPair(ctx, left, left)
	assert.ErrorIs(t, err, context.Canceled)
}
