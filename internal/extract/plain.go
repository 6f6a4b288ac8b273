package extract

import (
	"strings"
	"unicode/utf8"
)

// readPlain returns the bytes as a string, replacing invalid UTF-8
// sequences with the replacement character.
func readPlain(content []byte) (string, int, error) {
	if !utf8.Valid(content) {
		content = []byte(strings.ToValidUTF8(string(content), "�"))
	}
	return string(content), 1, nil
}
