package progress

import (
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/shelltutor/internal/course"
	"github.com/verte-zerg/shelltutor/internal/model"
)

// Credit given to a main module that was visited but has no quiz yet.
const visitedCredit = 25.0

// bucket merges every stored record that normalizes to one module.
type bucket struct {
	sections bool
	hasQuiz  bool
	best     float64
	merged   model.ModuleProgress
}

func (b *bucket) passed() bool {
	return b.hasQuiz && b.best >= course.PassPercentage
}

// buckets groups the user's records by canonical module. Keys that are not
// course modules keep their own bucket.
func (t *Tracker) buckets(sess Session) map[string]*bucket {
	modules, ok := t.doc.UserProgress[sess.UserID]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(modules))
	for k := range modules {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]*bucket, len(modules))
	for _, key := range keys {
		mp := modules[key]
		name := strings.TrimSpace(key)
		if id, ok := course.Normalize(key); ok {
			name = string(id)
		}
		b, ok := out[name]
		if !ok {
			b = &bucket{}
			out[name] = b
		}
		b.add(*mp)
	}
	return out
}

func (b *bucket) add(mp model.ModuleProgress) {
	for _, s := range mp.SectionsCompleted {
		if !b.merged.HasSection(s) {
			b.merged.SectionsCompleted = append(b.merged.SectionsCompleted, s)
		}
	}
	if len(b.merged.SectionsCompleted) > 0 {
		b.sections = true
	}
	if best, ok := mp.BestPercentage(); ok {
		if !b.hasQuiz || best > b.best {
			b.best = best
		}
		b.hasQuiz = true
	}
	b.merged.QuizScores = append(b.merged.QuizScores, mp.QuizScores...)
	b.merged.TimeSpent += mp.TimeSpent
	if mp.LastAccessed != nil && (b.merged.LastAccessed == nil || mp.LastAccessed.After(*b.merged.LastAccessed)) {
		at := *mp.LastAccessed
		b.merged.LastAccessed = &at
	}
}

// credit is the module's share of overall progress.
func (b *bucket) credit() float64 {
	switch {
	case b == nil:
		return 0
	case b.hasQuiz && b.best >= course.PassPercentage:
		return 100
	case b.hasQuiz:
		return b.best
	case b.sections:
		return visitedCredit
	default:
		return 0
	}
}

// OverallProgress is the mean credit over the main modules: 100 for a passed
// quiz, the best percentage otherwise, 25 for a visited module without a
// quiz. Untouched modules count as 0.
func (t *Tracker) OverallProgress(sess Session) float64 {
	bs := t.buckets(sess)
	if bs == nil {
		return 0
	}
	mains := course.MainModules()
	total := 0.0
	for _, id := range mains {
		total += bs[string(id)].credit()
	}
	return total / float64(len(mains))
}

// Eligible reports whether the user qualifies for the course certificate.
func (t *Tracker) Eligible(sess Session) bool {
	return t.OverallProgress(sess) >= course.PassPercentage
}

// CompletedModulesCount returns how many main modules have a passed quiz and
// how many main modules exist.
func (t *Tracker) CompletedModulesCount(sess Session) (int, int) {
	mains := course.MainModules()
	bs := t.buckets(sess)
	completed := 0
	for _, id := range mains {
		if b, ok := bs[string(id)]; ok && b.passed() {
			completed++
		}
	}
	return completed, len(mains)
}

// CompletedQuizzesCount counts modules of any kind with a passed quiz.
func (t *Tracker) CompletedQuizzesCount(sess Session) int {
	n := 0
	for _, b := range t.buckets(sess) {
		if b.passed() {
			n++
		}
	}
	return n
}

// ModuleProgress returns the merged record of a module.
func (t *Tracker) ModuleProgress(sess Session, module string) (model.ModuleProgress, bool) {
	b, ok := t.buckets(sess)[moduleKey(module)]
	if !ok {
		return model.ModuleProgress{}, false
	}
	mp := cloneModule(b.merged)
	sort.SliceStable(mp.QuizScores, func(i, j int) bool {
		return mp.QuizScores[i].Date.Before(mp.QuizScores[j].Date)
	})
	return mp, true
}

// QuizScores returns the module's quiz results, oldest first.
func (t *Tracker) QuizScores(sess Session, module string) []model.QuizResult {
	mp, _ := t.ModuleProgress(sess, module)
	return mp.QuizScores
}

// ModuleState classifies the user's standing in a module.
func (t *Tracker) ModuleState(sess Session, module string) model.ModuleState {
	b, ok := t.buckets(sess)[moduleKey(module)]
	switch {
	case !ok:
		return model.StateUnseen
	case b.passed():
		return model.StateCertified
	case b.hasQuiz:
		return model.StateQuizzed
	case b.sections || b.merged.LastAccessed != nil:
		return model.StateVisited
	default:
		return model.StateUnseen
	}
}

// TimeSpent returns the total time recorded for the user.
func (t *Tracker) TimeSpent(sess Session) time.Duration {
	total := 0.0
	for _, mp := range t.doc.UserProgress[sess.UserID] {
		total += mp.TimeSpent
	}
	return time.Duration(total * float64(time.Second))
}

func moduleKey(module string) string {
	if id, ok := course.Normalize(module); ok {
		return string(id)
	}
	return strings.TrimSpace(module)
}

// CommandsPracticedCount returns the number of distinct practiced commands.
func (t *Tracker) CommandsPracticedCount() int {
	return len(t.doc.CommandsPracticed)
}

// PracticedCommands aggregates the practice log per command, sorted by key.
func (t *Tracker) PracticedCommands() []model.CommandStat {
	stats := make([]model.CommandStat, 0, len(t.doc.CommandsPracticed))
	for key, attempts := range t.doc.CommandsPracticed {
		st := model.CommandStat{Key: key, Command: key}
		if dialect, command, ok := strings.Cut(key, ":"); ok {
			st.Dialect = dialect
			st.Command = command
		}
		for _, a := range attempts {
			st.Attempts++
			if a.Success {
				st.Successes++
			}
			if a.Timestamp.After(st.LastPracticed) {
				st.LastPracticed = a.Timestamp
			}
		}
		stats = append(stats, st)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Key < stats[j].Key
	})
	return stats
}

// PracticeLog returns every attempt recorded for key, oldest first.
func (t *Tracker) PracticeLog(key string) []model.PracticeAttempt {
	attempts := append([]model.PracticeAttempt(nil), t.doc.CommandsPracticed[key]...)
	sort.SliceStable(attempts, func(i, j int) bool {
		return attempts[i].Timestamp.Before(attempts[j].Timestamp)
	})
	return attempts
}
