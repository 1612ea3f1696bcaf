package catalog

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"tourbook/internal/gateway"
)

// Filter returns the packages whose title or description contains q,
// case-insensitively. An empty query returns the full list unchanged.
// Filtering is pure and idempotent; callers keep the full list and derive
// the view on every keystroke.
func Filter(pkgs []gateway.Package, q string) []gateway.Package {
	q = strings.ToLower(q)
	if q == "" {
		return pkgs
	}
	out := make([]gateway.Package, 0, len(pkgs))
	for _, p := range pkgs {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}

// Suggest returns the package title closest to q by edit distance, for a
// "did you mean" hint when a query matches nothing. Returns "" when no title
// is close enough to be worth suggesting.
func Suggest(pkgs []gateway.Package, q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return ""
	}
	best, bestDist := "", -1
	for _, p := range pkgs {
		title := strings.ToLower(p.Title)
		dist := levenshtein.ComputeDistance(q, title)
		for _, word := range strings.Fields(title) {
			if d := levenshtein.ComputeDistance(q, word); d < dist {
				dist = d
			}
		}
		if bestDist == -1 || dist < bestDist {
			best, bestDist = p.Title, dist
		}
	}
	// tolerate roughly one typo per three characters
	if bestDist == -1 || bestDist > len(q)/3+1 {
		return ""
	}
	return best
}
