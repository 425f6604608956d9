// Package stats builds progress reports and renders them as plain text.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/verte-zerg/shelltutor/internal/model"
)

const (
	sparkChars          = " .:-=+*#%@"
	terminalWidthBackup = 80
	maxBarWidth         = 40
	minBarWidth         = 10
	maxTitleWidth       = 32
)

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Bar renders pct (0-100) as a fixed-width text bar.
func Bar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	pct = math.Max(0, math.Min(100, pct))
	filled := int(math.Round(pct / 100 * float64(width)))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

// BarWidthFor fits a progress bar next to a label within totalWidth columns.
func BarWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minBarWidth
	}
	width := totalWidth - 30
	if width > maxBarWidth {
		width = maxBarWidth
	}
	if width < minBarWidth {
		width = minBarWidth
	}
	return width
}

// TerminalWidth returns the width of w when it is a terminal and a fallback
// otherwise.
func TerminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// FormatDuration prints d rounded to seconds.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	return d.Round(time.Second).String()
}

// RenderSummary prints the headline figures of a report.
func RenderSummary(w io.Writer, r Report, width int) error {
	lines := []string{
		fmt.Sprintf("Progress for %s", r.User),
		fmt.Sprintf("Overall: %6.2f%% %s", r.Overall, Bar(r.Overall, BarWidthFor(width))),
		fmt.Sprintf("Modules completed: %d/%d", r.Completed, r.Total),
		fmt.Sprintf("Quizzes passed: %d", r.QuizzesPassed),
		fmt.Sprintf("Commands practiced: %d", r.CommandsPracticed),
		fmt.Sprintf("Time spent: %s", FormatDuration(r.TimeSpent)),
	}
	if r.Eligible {
		lines = append(lines, "Certificate: eligible")
	} else {
		lines = append(lines, "Certificate: not yet eligible")
	}
	lines = append(lines, "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderModuleTable prints one row per module in course order.
func RenderModuleTable(w io.Writer, rows []ModuleRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No modules found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Modules"); err != nil {
		return err
	}
	cols := []column{
		{title: "Module"},
		{title: "Title", max: maxTitleWidth},
		{title: "Status"},
		{title: "Best", right: true},
		{title: "Quizzes", right: true},
		{title: "Trend"},
	}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		best := "-"
		if r.HasQuiz {
			best = fmt.Sprintf("%.0f%%", r.Best)
		}
		id := string(r.ID)
		if !r.Main {
			id += " *"
		}
		tableRows = append(tableRows, []string{
			id,
			r.Title,
			r.State.String(),
			best,
			fmt.Sprintf("%d", len(r.Trend)),
			Sparkline(r.Trend),
		})
	}
	if err := writeLines(w, formatTable(cols, tableRows)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "* does not count towards the certificate")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, "")
	return err
}

// RenderCommandTable prints practiced commands, weakest first.
func RenderCommandTable(w io.Writer, commands []model.CommandStat) error {
	if len(commands) == 0 {
		_, err := fmt.Fprintln(w, "No commands practiced yet.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Practiced Commands"); err != nil {
		return err
	}
	cols := []column{
		{title: "Command", max: maxTitleWidth},
		{title: "Shell"},
		{title: "Attempts", right: true},
		{title: "Success", right: true},
		{title: "Last"},
	}
	tableRows := make([][]string, 0, len(commands))
	for _, c := range SortByWeakness(commands) {
		last := "-"
		if !c.LastPracticed.IsZero() {
			last = c.LastPracticed.Local().Format("2006-01-02 15:04")
		}
		tableRows = append(tableRows, []string{
			c.Command,
			c.Dialect,
			fmt.Sprintf("%d", c.Attempts),
			fmt.Sprintf("%.2f%%", c.SuccessRate()*100),
			last,
		})
	}
	if err := writeLines(w, formatTable(cols, tableRows)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderRecommendations prints the suggested next steps.
func RenderRecommendations(w io.Writer, recs []string) error {
	if len(recs) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Recommendations"); err != nil {
		return err
	}
	for i, rec := range recs {
		if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, rec); err != nil {
			return err
		}
	}
	return nil
}

// Render prints the whole report.
func Render(w io.Writer, r Report) error {
	width := TerminalWidth(w)
	if err := RenderSummary(w, r, width); err != nil {
		return err
	}
	if err := RenderModuleTable(w, r.Modules); err != nil {
		return err
	}
	if err := RenderCommandTable(w, r.Commands); err != nil {
		return err
	}
	return RenderRecommendations(w, r.Recommendations)
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
