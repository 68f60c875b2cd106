package console

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"expensetracker/internal/core"
)

// maxTypoDistance is how many edits a typed category may be away from a
// known one and still match.
const maxTypoDistance = 2

// MatchCategory resolves typed input to a category. Exact matches ignore
// case; otherwise the closest category within two edits wins, provided no
// other category is equally close.
func MatchCategory(input string) (core.Category, bool) {
	if c, err := core.ParseCategory(input); err == nil {
		return c, true
	}
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return "", false
	}

	best, bestDist, tie := core.Category(""), maxTypoDistance+1, false
	for _, c := range core.Categories() {
		d := levenshtein.ComputeDistance(in, strings.ToLower(c.String()))
		switch {
		case d < bestDist:
			best, bestDist, tie = c, d, false
		case d == bestDist:
			tie = true
		}
	}
	if best == "" || tie {
		return "", false
	}
	return best, true
}
