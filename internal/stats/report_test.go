package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/shelltutor/internal/course"
	"github.com/verte-zerg/shelltutor/internal/model"
	"github.com/verte-zerg/shelltutor/internal/progress"
	"github.com/verte-zerg/shelltutor/internal/store"
)

func newTracker(t *testing.T) (*progress.Tracker, progress.Session) {
	t.Helper()
	st, err := store.OpenFile(filepath.Join(t.TempDir(), "progress.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	clock := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	tr, err := progress.Open(context.Background(), st, progress.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))
	if err != nil {
		t.Fatalf("open tracker: %v", err)
	}
	return tr, progress.Session{UserID: "u1"}
}

func TestBuildReport(t *testing.T) {
	tr, sess := newTracker(t)
	ctx := context.Background()
	cat, err := course.Load()
	if err != nil {
		t.Fatalf("load course: %v", err)
	}

	if err := tr.MarkSectionComplete(ctx, sess, string(course.Intro), "introduction_completed"); err != nil {
		t.Fatalf("mark section: %v", err)
	}
	if _, err := tr.RecordQuizResult(ctx, sess, string(course.CmdBasics), 9, 10); err != nil {
		t.Fatalf("record quiz: %v", err)
	}
	if _, err := tr.RecordQuizResult(ctx, sess, string(course.PowerShellBasics), 8, 10); err != nil {
		t.Fatalf("record quiz: %v", err)
	}
	if _, err := tr.RecordQuizResult(ctx, sess, string(course.PowerShellBasics), 4, 10); err != nil {
		t.Fatalf("record quiz: %v", err)
	}
	for _, ok := range []bool{false, false, true} {
		if err := tr.RecordPractice(ctx, sess, model.Legacy, "xcopy", "", ok); err != nil {
			t.Fatalf("record practice: %v", err)
		}
	}

	report := BuildReport(tr, sess, cat)
	if report.Completed != 2 || report.Total != len(course.MainModules()) {
		t.Fatalf("unexpected completion: %d/%d", report.Completed, report.Total)
	}
	if report.CommandsPracticed != 1 {
		t.Fatalf("expected 1 practiced command, got %d", report.CommandsPracticed)
	}
	if len(report.Modules) != len(course.All()) {
		t.Fatalf("expected %d module rows, got %d", len(course.All()), len(report.Modules))
	}
	ps := report.Modules[2]
	if ps.ID != course.PowerShellBasics || ps.Best != 80 || ps.Latest != 40 || len(ps.Trend) != 2 {
		t.Fatalf("unexpected row: %+v", ps)
	}
	if ps.Title == string(ps.ID) {
		t.Fatalf("expected catalog title, got %q", ps.Title)
	}

	want := []string{
		"Start " + report.Modules[3].Title + " (04_intermediate_cmd)",
		`Practice "xcopy" in cmd (33% success)`,
		"Retake the " + ps.Title + " quiz (last score 40%)",
	}
	if len(report.Recommendations) != len(want) {
		t.Fatalf("unexpected recommendations: %v", report.Recommendations)
	}
	for i := range want {
		if report.Recommendations[i] != want[i] {
			t.Fatalf("recommendation %d: got %q want %q", i, report.Recommendations[i], want[i])
		}
	}
}

func TestRecommendationsCapped(t *testing.T) {
	r := Report{
		Modules: []ModuleRow{
			{ID: course.CmdBasics, Title: "A", State: model.StateQuizzed, HasQuiz: true, Latest: 10},
			{ID: course.PowerShellBasics, Title: "B", State: model.StateQuizzed, HasQuiz: true, Latest: 20},
			{ID: course.IntermediateCmd, Title: "C", State: model.StateQuizzed, HasQuiz: true, Latest: 30},
			{ID: course.IntermediatePS, Title: "D", State: model.StateQuizzed, HasQuiz: true, Latest: 40},
		},
	}
	recs := Recommendations(r)
	if len(recs) != maxRecommendations {
		t.Fatalf("expected %d recommendations, got %v", maxRecommendations, recs)
	}
}

func TestRecommendationsEmptyWhenDone(t *testing.T) {
	r := Report{
		Modules:  []ModuleRow{{ID: course.CmdBasics, State: model.StateCertified, HasQuiz: true, Best: 90, Latest: 90}},
		Commands: []model.CommandStat{{Key: "cmd:dir", Command: "dir", Dialect: "cmd", Attempts: 2, Successes: 2}},
	}
	if recs := Recommendations(r); len(recs) != 0 {
		t.Fatalf("expected no recommendations, got %v", recs)
	}
}

func TestRenderReport(t *testing.T) {
	tr, sess := newTracker(t)
	if _, err := tr.RecordQuizResult(context.Background(), sess, string(course.CmdBasics), 9, 10); err != nil {
		t.Fatalf("record quiz: %v", err)
	}
	var buf bytes.Buffer
	if err := Render(&buf, BuildReport(tr, sess, nil)); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Progress for u1",
		"Modules completed: 1/9",
		"Certificate: not yet eligible",
		"02_cmd_basics",
		"01_intro *",
		"No commands practiced yet.",
		"Recommendations",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
