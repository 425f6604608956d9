package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// wrapText wraps every line of text to width display columns, breaking at
// the last space when there is one.
func wrapText(text string, width int) []string {
	lines := strings.Split(text, "\n")
	if width <= 0 {
		return lines
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, wrapLine(line, width)...)
	}
	return out
}

func wrapLine(line string, width int) []string {
	if width <= 0 || runewidth.StringWidth(line) <= width {
		return []string{line}
	}
	runes := []rune(line)
	var out []string
	cur := make([]rune, 0, width)
	curWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		r := runes[i]
		w := runewidth.RuneWidth(r)
		if curWidth+w > width && len(cur) > 0 {
			if lastSpaceIdx > 0 {
				out = append(out, string(cur[:lastSpaceIdx]))
				cur = append([]rune{}, cur[lastSpaceIdx+1:]...)
			} else {
				out = append(out, string(cur))
				cur = cur[:0]
			}
			curWidth = runewidth.StringWidth(string(cur))
			lastSpaceIdx = lastSpaceIndex(cur)
			continue
		}
		cur = append(cur, r)
		curWidth += w
		if r == ' ' {
			lastSpaceIdx = len(cur) - 1
		}
		i++
	}
	out = append(out, string(cur))
	return out
}

func lastSpaceIndex(line []rune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i] == ' ' {
			return i
		}
	}
	return -1
}

// styleTranscript highlights prompt lines of wrapped transcript lines.
func styleTranscript(lines []string, prompt string) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if rest, ok := strings.CutPrefix(line, prompt); ok {
			out[i] = promptStyle.Render(prompt) + commandStyle.Render(rest)
			continue
		}
		out[i] = outputStyle.Render(line)
	}
	return strings.Join(out, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func truncateLine(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
