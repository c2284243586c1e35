// Package invoice reads utility invoices and extracts the inputs needed for
// an estimate: the project zone, the average monthly consumption and the
// price per kWh.
//
// Text is pulled from PDF or plain text documents and handed to a language
// model, whose line-oriented reply is parsed into Fields.
package invoice

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const (
	mimePDF  = "application/pdf"
	mimeText = "text/plain"
)

// Document is an uploaded invoice page.
type Document struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExtractText returns the text content of a document.
//
// PDFs must carry a text layer; scanned images are rejected with
// ErrUnsupportedDocument since no OCR engine is bundled.
func ExtractText(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(doc.Data) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyDocument, doc.Name)
	}

	switch kind := detectKind(doc); kind {
	case mimePDF:
		text, err := extractPDF(doc.Data)
		if err != nil {
			return "", fmt.Errorf("extract text from %s: %w", doc.Name, err)
		}
		return text, nil
	case mimeText:
		if !utf8.Valid(doc.Data) {
			return "", fmt.Errorf("%w: %s is not valid UTF-8 text", ErrUnsupportedDocument, doc.Name)
		}
		return string(doc.Data), nil
	default:
		return "", fmt.Errorf("%w: %s (%s)", ErrUnsupportedDocument, doc.Name, kind)
	}
}

// detectKind prefers the file extension, then the declared content type,
// then content sniffing.
func detectKind(doc Document) string {
	switch strings.ToLower(filepath.Ext(doc.Name)) {
	case ".pdf":
		return mimePDF
	case ".txt":
		return mimeText
	}

	declared := strings.ToLower(strings.TrimSpace(strings.Split(doc.ContentType, ";")[0]))
	if declared == mimePDF || declared == mimeText {
		return declared
	}

	sniffed := http.DetectContentType(doc.Data)
	return strings.TrimSpace(strings.Split(sniffed, ";")[0])
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
