package slug_test

import (
	"testing"

	"fitx/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"tg:1234":           "tg-1234",
		"  Alice Smith  ":   "alice-smith",
		"--weird__name--":   "weird-name",
		"":                  "untitled",
		"!!!":               "untitled",
		"Strength Training": "strength-training",
	}
	for in, want := range cases {
		if got := slug.Make(in); got != want {
			t.Fatalf("slug.Make(%q) = %q, want %q", in, got, want)
		}
	}
}
