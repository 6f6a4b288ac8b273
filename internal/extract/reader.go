// Package extract reads treatment-plan documents off disk and turns them
// into plain text. Each format has an ordered list of extraction methods;
// the first one that yields text wins and its name is recorded on the
// result, so downstream metadata can say how a plan was read.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound reports a plan path that does not exist. Callers distinguish
// it from extraction failures with errors.Is.
var ErrNotFound = errors.New("plan file not found")

// Document is the raw text of one plan file plus how it was obtained.
type Document struct {
	Text string
	// Pages is the page count for paginated formats, 1 otherwise.
	Pages  int
	Method string
}

// method is one way of turning file bytes into text.
type method struct {
	name string
	fn   func(content []byte) (string, int, error)
}

// Reader extracts text from plan documents.
type Reader struct{}

// NewReader returns a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Extract reads the file at path and extracts its text. The format is
// chosen by extension; unknown extensions are treated as plain text. Every
// method for the format is tried in order, and the error is fatal only
// when all of them fail.
func (r *Reader) Extract(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read plan: %w", err)
	}
	return r.ExtractBytes(content, strings.ToLower(filepath.Ext(path)))
}

// ExtractBytes extracts text from content based on the given extension.
// ext includes the leading dot (e.g. ".pdf").
func (r *Reader) ExtractBytes(content []byte, ext string) (*Document, error) {
	methods := methodsFor(ext)
	var errs []error
	for i, m := range methods {
		text, pages, err := m.fn(content)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", m.name, err))
			continue
		}
		if strings.TrimSpace(text) == "" && i < len(methods)-1 {
			// Empty output from a non-final method; a later method
			// may still recover text from the same bytes.
			errs = append(errs, fmt.Errorf("%s: no text", m.name))
			continue
		}
		if pages < 1 {
			pages = 1
		}
		return &Document{Text: text, Pages: pages, Method: m.name}, nil
	}
	return nil, fmt.Errorf("extract %s: %w", ext, errors.Join(errs...))
}

func methodsFor(ext string) []method {
	switch ext {
	case ".pdf":
		return []method{{"pdf", readPDF}}
	case ".docx":
		return []method{{"ooxml", readOOXML}, {"cat", readCat}}
	case ".odt", ".rtf":
		return []method{{"cat", readCat}}
	case ".xlsx":
		return []method{{"xlsx", readExcel}}
	default:
		// .txt, .md and anything unrecognized.
		return []method{{"plain", readPlain}}
	}
}
