package script

import "strings"

// FilterFunc returns true when a script line should be executed.
type FilterFunc func(string) bool

// FilterFor returns the comment filter for a script dialect.
// "#" comments are accepted in both dialects.
func FilterFor(dialect string) FilterFunc {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "cmd":
		return keepLegacyLine
	case "powershell":
		return keepStructuredLine
	default:
		return func(line string) bool {
			return keepLegacyLine(line) && keepStructuredLine(line)
		}
	}
}

func keepLegacyLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "::") {
		return false
	}
	lower := strings.ToLower(line)
	return lower != "rem" && !strings.HasPrefix(lower, "rem ")
}

func keepStructuredLine(line string) bool {
	line = strings.TrimSpace(line)
	return line != "" && !strings.HasPrefix(line, "#")
}
