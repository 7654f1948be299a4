package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DocumentType is a file format the extractor understands.
type DocumentType int

const (
	DocumentPlainText DocumentType = iota
	DocumentPDF
	DocumentWord
)

const (
	MimePlainText = "text/plain"
	MimePDF       = "application/pdf"
	MimeWord      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

func (t DocumentType) String() string {
	switch t {
	case DocumentPlainText:
		return "txt"
	case DocumentPDF:
		return "pdf"
	case DocumentWord:
		return "docx"
	default:
		return fmt.Sprintf("DocumentType(%d)", int(t))
	}
}

// ResolveDocumentType maps a declared MIME type to a document type. Generic
// binary types fall back to the filename extension.
func ResolveDocumentType(mime, filename string) (DocumentType, error) {
	m := strings.ToLower(strings.TrimSpace(mime))
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = strings.TrimSpace(m[:i])
	}
	switch m {
	case MimePlainText:
		return DocumentPlainText, nil
	case MimePDF:
		return DocumentPDF, nil
	case MimeWord:
		return DocumentWord, nil
	case "", "application/octet-stream":
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".txt":
			return DocumentPlainText, nil
		case ".pdf":
			return DocumentPDF, nil
		case ".docx":
			return DocumentWord, nil
		}
	}
	return 0, Invalid("document.type", "unsupported file type %q (%s)", mime, filename)
}
