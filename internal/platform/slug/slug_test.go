package slug_test

import (
	"strings"
	"testing"

	"ghostnote/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Own the Niche!":  "own-the-niche",
		"  --Q3 plan--  ": "q3-plan",
		"":                "brief",
		"¿¿??":            "brief",
	}
	for in, want := range cases {
		if got := slug.Make(in); got != want {
			t.Fatalf("Make(%q) = %q, want %q", in, got, want)
		}
	}
	if got := slug.Make(strings.Repeat("word ", 40)); len(got) > 64 || strings.HasSuffix(got, "-") {
		t.Fatalf("long input not trimmed: %q", got)
	}
}
