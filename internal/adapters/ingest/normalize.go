package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const bom = "\ufeff"

// NormalizeText applies NFKC, trims whitespace and removes control
// characters and a leading byte order mark.
func NormalizeText(s string) string {
	s = norm.NFKC.String(strings.TrimPrefix(s, bom))
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// normalizeAll normalizes a header row.
func normalizeAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = NormalizeText(c)
	}
	return out
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
