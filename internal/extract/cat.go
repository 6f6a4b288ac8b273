package extract

import (
	"fmt"

	"github.com/lu4p/cat"
)

// readCat hands the bytes to the cat library, which sniffs the container
// format itself. Primary method for ODT and RTF, fallback for DOCX.
func readCat(content []byte) (string, int, error) {
	text, err := cat.FromBytes(content)
	if err != nil {
		return "", 0, fmt.Errorf("cat: %w", err)
	}
	return text, 1, nil
}
