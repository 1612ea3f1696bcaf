package catalog

import (
	"strings"
	"testing"

	"tourbook/internal/gateway"
)

var pkgs = []gateway.Package{
	{ID: "p1", Title: "Beach Tour", Description: "Sun and sand on the coast"},
	{ID: "p2", Title: "Mountain Trek", Description: "Alpine hiking adventure"},
	{ID: "p3", Title: "City Lights", Description: "A weekend beach-side city break"},
}

func TestFilterEmptyQueryReturnsAll(t *testing.T) {
	got := Filter(pkgs, "")
	if len(got) != len(pkgs) {
		t.Fatalf("len = %d, want %d", len(got), len(pkgs))
	}
}

func TestFilterMatchesTitleOrDescription(t *testing.T) {
	cases := []struct {
		q    string
		want []string
	}{
		{"beach", []string{"p1", "p3"}},   // title of p1, description of p3
		{"BEACH", []string{"p1", "p3"}},   // case-insensitive
		{"trek", []string{"p2"}},
		{"hiking", []string{"p2"}},
		{"zebra", nil},
	}
	for _, tc := range cases {
		got := Filter(pkgs, tc.q)
		if len(got) != len(tc.want) {
			t.Errorf("Filter(%q): got %d packages, want %d", tc.q, len(got), len(tc.want))
			continue
		}
		for i, p := range got {
			if p.ID != tc.want[i] {
				t.Errorf("Filter(%q)[%d] = %s, want %s", tc.q, i, p.ID, tc.want[i])
			}
		}
	}
}

func TestFilterIsExactSubset(t *testing.T) {
	q := "a"
	got := Filter(pkgs, q)
	for _, p := range pkgs {
		matches := strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q)
		found := false
		for _, g := range got {
			if g.ID == p.ID {
				found = true
			}
		}
		if matches != found {
			t.Errorf("package %s: matches=%v found=%v", p.ID, matches, found)
		}
	}
}

func TestFilterIdempotent(t *testing.T) {
	first := Filter(pkgs, "beach")
	second := Filter(first, "beach")
	if len(first) != len(second) {
		t.Fatalf("refiltering changed the set: %d -> %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("refiltering changed element %d", i)
		}
	}
}

func TestSuggestNearMiss(t *testing.T) {
	if got := Suggest(pkgs, "trekk"); got != "Mountain Trek" {
		t.Fatalf("Suggest(trekk) = %q, want Mountain Trek", got)
	}
	if got := Suggest(pkgs, ""); got != "" {
		t.Fatalf("Suggest of empty query = %q, want empty", got)
	}
	if got := Suggest(pkgs, "zzzzzzzzzzzzzzzzzzzz"); got != "" {
		t.Fatalf("Suggest of nonsense = %q, want empty", got)
	}
}
