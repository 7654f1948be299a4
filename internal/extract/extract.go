// Package extract pulls plain text out of uploaded documents.
package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"

	"github.com/lexdesk/legal-assistant/internal/domain"
)

// ErrNoText is returned when a readable document contains no extractable text.
var ErrNoText = errors.New("could not extract text")

// File is an uploaded document.
type File struct {
	Name string
	Mime string
	Data []byte
}

// Extract returns the text of data, interpreted according to the declared
// MIME type (or the filename extension for generic binary uploads).
func Extract(data []byte, declaredMime, filename string) (string, error) {
	kind, err := domain.ResolveDocumentType(declaredMime, filename)
	if err != nil {
		return "", err
	}
	switch kind {
	case domain.DocumentPlainText:
		return strings.ToValidUTF8(string(data), "�"), nil
	case domain.DocumentPDF:
		return pdfText(data, filename)
	case domain.DocumentWord:
		return docxText(data, filename)
	}
	return "", domain.Invalid("extract", "unsupported document type %s", kind)
}

// ExtractFile is Extract for a File.
func ExtractFile(f File) (string, error) {
	return Extract(f.Data, f.Mime, f.Name)
}

// ExtractPair extracts two documents concurrently. The first failure cancels
// the other extraction's result.
func ExtractPair(ctx context.Context, left, right File) (string, string, error) {
	var texts [2]string
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range []File{left, right} {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := ExtractFile(f)
			if err != nil {
				return fmt.Errorf("%s: %w", f.Name, err)
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return texts[0], texts[1], nil
}

func pdfText(data []byte, name string) (text string, err error) {
	// The pdf reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", domain.Invalid("extract.pdf", "%s: malformed pdf: %v", name, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", domain.Invalid("extract.pdf", "%s: %v", name, err)
	}
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		pageText, err := p.GetPlainText(nil)
		if err != nil {
			return "", domain.Invalid("extract.pdf", "%s: page %d: %v", name, i, err)
		}
		if pageText != "" {
			b.WriteString(pageText)
			b.WriteByte('\n')
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", &domain.OpError{Op: "extract.pdf", Kind: domain.KindInvalidInput, Path: name, Err: ErrNoText}
	}
	return b.String(), nil
}

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

func docxText(data []byte, name string) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", domain.Invalid("extract.docx", "%s: %v", name, err)
	}
	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", domain.Invalid("extract.docx", "%s: word/document.xml not found", name)
	}
	rc, err := doc.Open()
	if err != nil {
		return "", domain.Invalid("extract.docx", "%s: %v", name, err)
	}
	defer rc.Close()

	paragraphs, err := wordParagraphs(rc)
	if err != nil {
		return "", domain.Invalid("extract.docx", "%s: %v", name, err)
	}
	return strings.Join(paragraphs, "\n"), nil
}

// wordParagraphs returns the text of every w:p element in document order.
func wordParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	var (
		out    []string
		cur    strings.Builder
		inText bool
		inPara bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				inPara = true
				cur.Reset()
			case "t":
				inText = true
			case "tab":
				cur.WriteByte('\t')
			case "br", "cr":
				cur.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if inPara {
					out = append(out, cur.String())
				}
				inPara = false
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}
}
