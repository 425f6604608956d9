// Package export writes learner progress to an Excel workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/shelltutor/internal/course"
	"github.com/verte-zerg/shelltutor/internal/progress"
	"github.com/verte-zerg/shelltutor/internal/stats"
)

// Sheet names of the workbook, in order.
const (
	SheetSummary  = "Summary"
	SheetModules  = "Modules"
	SheetQuizzes  = "Quizzes"
	SheetCommands = "Commands"
)

const timeLayout = "2006-01-02 15:04:05"

// Workbook builds the progress workbook for one learner.
func Workbook(tr *progress.Tracker, sess progress.Session, cat *course.Catalog) (*excelize.File, error) {
	r := stats.BuildReport(tr, sess, cat)
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("failed to name summary sheet: %w", err)
	}
	for _, name := range []string{SheetModules, SheetQuizzes, SheetCommands} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	eligible := "no"
	if r.Eligible {
		eligible = "yes"
	}
	summary := [][]interface{}{
		{"User", r.User},
		{"Overall progress (%)", round(r.Overall)},
		{"Main modules completed", fmt.Sprintf("%d/%d", r.Completed, r.Total)},
		{"Quizzes passed", r.QuizzesPassed},
		{"Commands practiced", r.CommandsPracticed},
		{"Time spent", stats.FormatDuration(r.TimeSpent)},
		{"Certificate eligible", eligible},
	}
	for i, rec := range r.Recommendations {
		summary = append(summary, []interface{}{fmt.Sprintf("Recommendation %d", i+1), rec})
	}
	if err := writeRows(f, SheetSummary, nil, summary); err != nil {
		return nil, err
	}

	modules := make([][]interface{}, 0, len(r.Modules))
	for _, row := range r.Modules {
		best := interface{}("")
		if row.HasQuiz {
			best = round(row.Best)
		}
		modules = append(modules, []interface{}{
			string(row.ID), row.Title, row.Main, row.State.String(), best, len(row.Trend), round(row.TimeSpent.Seconds()),
		})
	}
	if err := writeRows(f, SheetModules, []interface{}{"Module", "Title", "Main", "Status", "Best (%)", "Quizzes", "Time (s)"}, modules); err != nil {
		return nil, err
	}

	var quizzes [][]interface{}
	for _, id := range course.All() {
		for _, q := range tr.QuizScores(sess, string(id)) {
			quizzes = append(quizzes, []interface{}{
				string(id), q.Date.UTC().Format(timeLayout), q.Score, q.MaxScore, round(q.Percentage), q.Percentage >= course.PassPercentage,
			})
		}
	}
	if err := writeRows(f, SheetQuizzes, []interface{}{"Module", "Date (UTC)", "Score", "Max", "Percentage", "Passed"}, quizzes); err != nil {
		return nil, err
	}

	commands := make([][]interface{}, 0, len(r.Commands))
	for _, c := range r.Commands {
		last := ""
		if !c.LastPracticed.IsZero() {
			last = c.LastPracticed.UTC().Format(timeLayout)
		}
		commands = append(commands, []interface{}{
			c.Command, c.Dialect, c.Attempts, c.Successes, round(c.SuccessRate() * 100), last,
		})
	}
	if err := writeRows(f, SheetCommands, []interface{}{"Command", "Shell", "Attempts", "Successes", "Success (%)", "Last (UTC)"}, commands); err != nil {
		return nil, err
	}
	return f, nil
}

func writeRows(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	row := 1
	if header != nil {
		if err := setRow(f, sheet, row, header); err != nil {
			return err
		}
		row++
	}
	for _, values := range rows {
		if err := setRow(f, sheet, row, values); err != nil {
			return err
		}
		row++
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func round(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}

// Save writes the workbook to path.
func Save(path string, tr *progress.Tracker, sess progress.Session, cat *course.Catalog) error {
	f, err := Workbook(tr, sess, cat)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close.
			_ = cerr
		}
	}()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Write streams the workbook to w.
func Write(w io.Writer, tr *progress.Tracker, sess progress.Session, cat *course.Catalog) error {
	f, err := Workbook(tr, sess, cat)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close.
			_ = cerr
		}
	}()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
