// Package shell simulates the Windows command prompt and PowerShell consoles.
//
// Nothing in this package runs a process or touches the file system: commands
// are looked up in static catalogs and answered with canned text.
package shell

import (
	"strings"

	"github.com/verte-zerg/shelltutor/internal/model"
)

var structuredVerbPrefixes = []string{
	"get-", "set-", "new-", "remove-", "start-", "stop-",
	"test-", "invoke-", "import-", "export-", "select-",
	"where-", "foreach-", "measure-", "sort-", "group-",
}

// Classify guesses the dialect of a raw console line.
//
// The heuristic is deliberately shallow. Any hyphen outside a leading "cd "
// marks the line as PowerShell, so legacy lines with hyphenated arguments
// ("dir /a-d", "echo well-known") are reported as Structured, and PowerShell
// aliases without a hyphen ("ls", "gci") are reported as Legacy.
func Classify(raw string) model.Dialect {
	text := strings.ToLower(strings.TrimSpace(raw))
	for _, prefix := range structuredVerbPrefixes {
		if strings.HasPrefix(text, prefix) {
			return model.Structured
		}
	}
	if strings.Contains(text, "-") && !strings.HasPrefix(text, "cd ") {
		return model.Structured
	}
	return model.Legacy
}

// Parse classifies raw and splits it into a case-folded head and
// case-preserving arguments. An empty line yields an empty head.
func Parse(raw string) model.ClassifiedCommand {
	return parseAs(raw, Classify(raw))
}

func parseAs(raw string, dialect model.Dialect) model.ClassifiedCommand {
	cmd := model.ClassifiedCommand{Raw: raw, Dialect: dialect}
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return cmd
	}
	cmd.Head = strings.ToLower(fields[0])
	if len(fields) > 1 {
		cmd.Args = fields[1:]
	}
	return cmd
}
