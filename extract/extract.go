/*
Package extract turns uploaded files into UTF-8 text.

PURPOSE:
  The import pipeline only ever sees text; this package is the local
  extraction collaborator for formats that are already text (plain
  text, markdown, CSV exports of relatorías). Binary court formats
  (PDF, DOCX) go through the gemini extractor instead, which hands the
  bytes to the model directly.

ERRORS:
  - UnsupportedFormatError: the file's type has no extractor here
  - ErrCorruptFile: the bytes are not valid UTF-8 text
*/
package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/toga/practice-engine/jurisprudence"
)

// ErrCorruptFile is returned when a supposedly-text file is not UTF-8.
var ErrCorruptFile = errors.New("file is not valid UTF-8 text")

// UnsupportedFormatError names a format this extractor cannot read.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format %q", e.Format)
}

// =============================================================================
// PLAIN TEXT EXTRACTOR
// =============================================================================

// textMIMETypes are the declared types Plain accepts. Extension is the
// fallback when the upload declares no type.
var textMIMETypes = map[string]bool{
	"text/plain":    true,
	"text/markdown": true,
	"text/csv":      true,
}

var textExtensions = map[string]bool{
	".txt": true,
	".md":  true,
	".csv": true,
}

// Plain extracts text from files that already are text.
type Plain struct{}

// ExtractText validates the document is a known text format and valid
// UTF-8, then returns its trimmed content.
func (Plain) ExtractText(_ context.Context, doc jurisprudence.Document) (string, error) {
	if !plainSupported(doc) {
		format := doc.MIMEType
		if format == "" {
			format = filepath.Ext(doc.Name)
		}
		return "", &UnsupportedFormatError{Format: format}
	}
	if !utf8.Valid(doc.Data) {
		return "", ErrCorruptFile
	}
	return strings.TrimSpace(string(doc.Data)), nil
}

func plainSupported(doc jurisprudence.Document) bool {
	mime, _, _ := strings.Cut(doc.MIMEType, ";")
	if textMIMETypes[strings.TrimSpace(mime)] {
		return true
	}
	return textExtensions[strings.ToLower(filepath.Ext(doc.Name))]
}

// =============================================================================
// FALLBACK CHAIN
// =============================================================================

// Fallback tries each extractor in order, moving to the next when one
// reports an unsupported format. Any other error stops the chain.
type Fallback []jurisprudence.TextExtractor

func (f Fallback) ExtractText(ctx context.Context, doc jurisprudence.Document) (string, error) {
	var lastErr error
	for _, ex := range f {
		text, err := ex.ExtractText(ctx, doc)
		if err == nil {
			return text, nil
		}
		var unsupported *UnsupportedFormatError
		if !errors.As(err, &unsupported) {
			return "", err
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = &UnsupportedFormatError{Format: doc.MIMEType}
	}
	return "", lastErr
}
