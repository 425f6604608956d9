package shell

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/shelltutor/internal/model"
)

func TestSuggest(t *testing.T) {
	cases := []struct {
		head string
		d    model.Dialect
		want []string
	}{
		{"ls", model.Legacy, []string{"dir"}},
		{"cat", model.Legacy, []string{"type"}},
		{"clear", model.Legacy, []string{"cls"}},
		{"echoo", model.Legacy, []string{"echo"}},
		{"dirhelp", model.Legacy, []string{"dir", "help"}},
		{"xyz", model.Legacy, nil},
		{"ls", model.Structured, []string{"Get-ChildItem"}},
		{"gci", model.Structured, []string{"Get-ChildItem"}},
		{"cat", model.Structured, []string{"Get-Content"}},
		{"ps", model.Structured, []string{"Get-Process"}},
		{"set-thing", model.Structured, []string{"Set-Location", "Set-Content", "Set-Variable"}},
		{"newfile", model.Structured, []string{"New-Item", "New-Object", "New-Variable"}},
		{"", model.Structured, nil},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, Suggest(tc.head, tc.d)); diff != "" {
			t.Fatalf("Suggest(%q, %v) mismatch (-want +got):\n%s", tc.head, tc.d, diff)
		}
	}
}

func TestCapUnique(t *testing.T) {
	got := capUnique([]string{"a", "b", "a", "c", "d"}, 3)
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("unexpected suggestions (-want +got):\n%s", diff)
	}
	if capUnique(nil, 3) != nil {
		t.Fatalf("expected nil for no candidates")
	}
}
