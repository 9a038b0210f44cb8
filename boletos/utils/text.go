package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const nbsp = " "

// NormalizeText trims, removes non-breaking spaces, collapses whitespace and upper-cases.
func NormalizeText(s string) string {
	s = strings.ReplaceAll(s, nbsp, " ")
	s = strings.Join(strings.Fields(strings.TrimSpace(s)), " ")
	return strings.ToUpper(s)
}

// RemoveAccents strips combining marks after NFD decomposition.
func RemoveAccents(s string) string {
	decomposed := norm.NFD.String(s)
	out := make([]rune, 0, len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

// NormalizeName folds a payer name for identity comparison: trim, collapse
// whitespace, upper-case and strip accents.
func NormalizeName(s string) string {
	return NormalizeText(RemoveAccents(s))
}

// ExtractLeadingID splits a leading run of digits off a payer name.
// Returns ok=false when the name does not start with digits.
func ExtractLeadingID(name string) (id string, remainder string, ok bool) {
	trimmed := strings.TrimSpace(name)
	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	if i == 0 {
		return "", trimmed, false
	}
	return trimmed[:i], strings.TrimSpace(trimmed[i:]), true
}

// PersonID builds the stable debtor identity key: water-penalty id plus the
// normalized payer name. Every place that compares debtor identity must go
// through this function.
func PersonID(waterPenaltyID, payerName string) string {
	return strings.TrimSpace(waterPenaltyID) + "|" + NormalizeName(payerName)
}
