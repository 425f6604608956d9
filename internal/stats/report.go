package stats

import (
	"fmt"
	"time"

	"github.com/verte-zerg/shelltutor/internal/course"
	"github.com/verte-zerg/shelltutor/internal/model"
	"github.com/verte-zerg/shelltutor/internal/progress"
)

// maxRecommendations caps the suggestions shown to the learner.
const maxRecommendations = 3

// ModuleRow is the per-module line of a report.
type ModuleRow struct {
	ID        course.ModuleID
	Title     string
	Main      bool
	State     model.ModuleState
	HasQuiz   bool
	Best      float64
	Latest    float64
	Trend     []float64
	TimeSpent time.Duration
}

// Report contains precomputed data for progress rendering.
type Report struct {
	User              string
	Overall           float64
	Completed         int
	Total             int
	QuizzesPassed     int
	CommandsPracticed int
	TimeSpent         time.Duration
	Eligible          bool
	Modules           []ModuleRow
	Commands          []model.CommandStat
	Recommendations   []string
}

// BuildReport collects the figures for one learner. cat may be nil, in which
// case module titles fall back to their ids.
func BuildReport(tr *progress.Tracker, sess progress.Session, cat *course.Catalog) Report {
	completed, total := tr.CompletedModulesCount(sess)
	r := Report{
		User:              sess.UserID,
		Overall:           tr.OverallProgress(sess),
		Completed:         completed,
		Total:             total,
		QuizzesPassed:     tr.CompletedQuizzesCount(sess),
		CommandsPracticed: tr.CommandsPracticedCount(),
		TimeSpent:         tr.TimeSpent(sess),
		Eligible:          tr.Eligible(sess),
		Commands:          tr.PracticedCommands(),
	}
	for _, id := range course.All() {
		row := ModuleRow{
			ID:    id,
			Title: string(id),
			Main:  id.IsMain(),
			State: tr.ModuleState(sess, string(id)),
		}
		if cat != nil {
			if m, ok := cat.Module(id); ok {
				row.Title = m.Title
			}
		}
		if mp, ok := tr.ModuleProgress(sess, string(id)); ok {
			row.TimeSpent = time.Duration(mp.TimeSpent * float64(time.Second))
			for _, q := range mp.QuizScores {
				row.Trend = append(row.Trend, q.Percentage)
			}
			if best, ok := mp.BestPercentage(); ok {
				row.HasQuiz = true
				row.Best = best
				row.Latest = row.Trend[len(row.Trend)-1]
			}
		}
		r.Modules = append(r.Modules, row)
	}
	r.Recommendations = Recommendations(r)
	return r
}

// Recommendations suggests up to three next steps: the first module not yet
// started, the weakest practiced command below the pass rate, then modules
// whose latest quiz failed.
func Recommendations(r Report) []string {
	var recs []string
	for _, row := range r.Modules {
		if row.State == model.StateUnseen {
			recs = append(recs, fmt.Sprintf("Start %s (%s)", row.Title, row.ID))
			break
		}
	}
	if weak := WeakestCommands(r.Commands, 1); len(weak) > 0 {
		c := weak[0]
		if c.SuccessRate()*100 < course.PassPercentage {
			recs = append(recs, fmt.Sprintf("Practice %q in %s (%.0f%% success)", c.Command, c.Dialect, c.SuccessRate()*100))
		}
	}
	for _, row := range r.Modules {
		if len(recs) >= maxRecommendations {
			break
		}
		if row.HasQuiz && row.Latest < course.PassPercentage {
			recs = append(recs, fmt.Sprintf("Retake the %s quiz (last score %.0f%%)", row.Title, row.Latest))
		}
	}
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
