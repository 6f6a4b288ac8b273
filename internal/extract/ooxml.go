package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"
)

const wordMainContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"

// wordTextRe matches <w:t> nodes regardless of attributes, so runs with
// xml:space or revision ids still contribute text.
var wordTextRe = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

// wordPartRes finds the main document PartName in [Content_Types].xml,
// with either attribute order.
var wordPartRes = []*regexp.Regexp{
	regexp.MustCompile(`<Override[^>]+PartName="([^"]+)"[^>]+ContentType="` + regexp.QuoteMeta(wordMainContentType) + `"`),
	regexp.MustCompile(`<Override[^>]+ContentType="` + regexp.QuoteMeta(wordMainContentType) + `"[^>]+PartName="([^"]+)"`),
}

// readOOXML extracts DOCX text by pulling every <w:t> node out of the main
// document part. Plans exported by clinic software often carry heavy run
// attributes that trip stricter parsers; a raw node scan survives them.
func readOOXML(content []byte) (string, int, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", 0, fmt.Errorf("not a zip: %w", err)
	}

	docPath := wordMainDocumentPath(zr)
	if docPath == "" {
		docPath = "word/document.xml"
	}
	docXML, err := zipFileBytes(zr, docPath)
	if err != nil {
		return "", 0, err
	}

	parts := wordTextRe.FindAllSubmatch(docXML, -1)
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteByte(' ')
		}
		// Node text carries XML entities ("&amp;") that must not survive
		// into the plan text.
		b.WriteString(html.UnescapeString(string(bytes.TrimSpace(p[1]))))
	}
	return strings.TrimSpace(b.String()), 1, nil
}

func wordMainDocumentPath(zr *zip.Reader) string {
	content, err := zipFileBytes(zr, "[Content_Types].xml")
	if err != nil {
		return ""
	}
	for _, re := range wordPartRes {
		if m := re.FindSubmatch(content); len(m) > 1 {
			return strings.TrimPrefix(string(m[1]), "/")
		}
	}
	return ""
}

func zipFileBytes(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}
