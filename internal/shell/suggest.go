package shell

import (
	"strings"

	"github.com/verte-zerg/shelltutor/internal/model"
)

const maxSuggestions = 3

var legacySynonyms = map[string][]string{
	"ls":    {"dir"},
	"cat":   {"type"},
	"rm":    {"del"},
	"mv":    {"move"},
	"cp":    {"copy"},
	"pwd":   {"cd"},
	"clear": {"cls"},
}

// Substrings of a mistyped legacy head that point at a real command.
var legacyHints = []string{"echo", "dir", "help"}

var structuredVerbHints = []struct {
	prefix string
	names  []string
}{
	{"get", []string{"Get-Process", "Get-Service", "Get-ChildItem"}},
	{"set", []string{"Set-Location", "Set-Content", "Set-Variable"}},
	{"new", []string{"New-Item", "New-Object", "New-Variable"}},
}

var structuredAliases = map[string][]string{
	"ls":    {"Get-ChildItem"},
	"dir":   {"Get-ChildItem"},
	"gci":   {"Get-ChildItem"},
	"cat":   {"Get-Content"},
	"pwd":   {"Get-Location"},
	"cd":    {"Set-Location"},
	"clear": {"Clear-Host"},
	"cls":   {"Clear-Host"},
	"echo":  {"Write-Output"},
	"ps":    {"Get-Process"},
}

// Suggest proposes up to three known commands for an unrecognized head.
// Suggestions are never executed.
func Suggest(head string, d model.Dialect) []string {
	head = strings.ToLower(strings.TrimSpace(head))
	if head == "" {
		return nil
	}

	var candidates []string
	if d == model.Structured {
		for _, hint := range structuredVerbHints {
			if strings.HasPrefix(head, hint.prefix) {
				candidates = append(candidates, hint.names...)
				break
			}
		}
		candidates = append(candidates, structuredAliases[head]...)
	} else {
		candidates = append(candidates, legacySynonyms[head]...)
		for _, hint := range legacyHints {
			if strings.Contains(head, hint) {
				candidates = append(candidates, hint)
			}
		}
	}
	return capUnique(candidates, maxSuggestions)
}

func capUnique(in []string, limit int) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, limit)
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
