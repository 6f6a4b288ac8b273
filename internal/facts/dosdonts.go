package facts

import (
	"regexp"
	"strings"

	"github.com/rehabflow/rehabflow/internal/models"
)

var (
	dosSectionRe   = regexp.MustCompile(`(?is)do[s]?[:\s]+(.*?)(?:don'?t?s?|avoid|prohibited|$)`)
	dontsSectionRe = regexp.MustCompile(`(?is)(?:don'?t?s?|avoid|do\s+not)[:\s]+(.*?)(?:$|\n\n)`)
	bulletSplitRe  = regexp.MustCompile(`[•\-\n]+`)
)

// minActionLength filters out bullet fragments too short to be actionable.
const minActionLength = 11

// ExtractDosAndDonts captures the DOs block (everything between a "do(s):"
// heading and the next don'ts/avoid heading or end of text) and the mirrored
// DON'Ts block, splitting each on bullet markers.
func ExtractDosAndDonts(text string) models.DosAndDonts {
	var dd models.DosAndDonts
	if m := dosSectionRe.FindStringSubmatch(text); m != nil {
		dd.Dos = splitItems(m[1])
	}
	if m := dontsSectionRe.FindStringSubmatch(text); m != nil {
		dd.Donts = splitItems(m[1])
	}
	return dd
}

func splitItems(block string) []string {
	var items []string
	for _, item := range bulletSplitRe.Split(block, -1) {
		item = strings.TrimSpace(item)
		if len(item) >= minActionLength {
			items = append(items, item)
		}
	}
	return items
}
