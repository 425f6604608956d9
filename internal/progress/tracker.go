// Package progress records quiz results, lesson sections and console practice
// and folds them into course completion figures.
package progress

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/shelltutor/internal/course"
	"github.com/verte-zerg/shelltutor/internal/model"
	"github.com/verte-zerg/shelltutor/internal/store"
)

var (
	// ErrInvalidScore rejects quiz results that cannot form a percentage.
	ErrInvalidScore = errors.New("invalid quiz score")
	// ErrUnknownModule rejects identifiers that do not name a course module.
	ErrUnknownModule = errors.New("unknown module")
	// ErrNoUser rejects a session without a user id.
	ErrNoUser = errors.New("session has no user id")
)

// SaveError reports that a mutation was applied in memory but could not be
// written to the store.
type SaveError struct {
	Op  string
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("progress kept in memory but not saved (%s): %v", e.Op, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// Session identifies the learner an operation applies to.
type Session struct {
	UserID string
}

// NewSession returns a session for userID.
func NewSession(userID string) (Session, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Session{}, ErrNoUser
	}
	return Session{UserID: userID}, nil
}

// Tracker owns the progress document. It is not safe for concurrent use.
type Tracker struct {
	store store.Store
	doc   model.Document
	now   func() time.Time
	log   *zap.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now for recorded timestamps.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *zap.Logger) Option {
	return func(t *Tracker) {
		if log != nil {
			t.log = log
		}
	}
}

// Open loads the document from st.
func Open(ctx context.Context, st store.Store, opts ...Option) (*Tracker, error) {
	t := &Tracker{store: st, now: time.Now, log: zap.NewNop()}
	for _, opt := range opts {
		opt(t)
	}
	doc, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	doc.Normalize()
	doc.Modules = moduleNames()
	t.doc = doc
	t.log.Debug("progress loaded",
		zap.String("path", st.Path()),
		zap.Int("users", len(doc.UserProgress)),
		zap.Int("commands", len(doc.CommandsPracticed)),
	)
	return t, nil
}

func moduleNames() []string {
	mains := course.MainModules()
	out := make([]string, len(mains))
	for i, id := range mains {
		out[i] = string(id)
	}
	return out
}

func (t *Tracker) persist(ctx context.Context, op string) error {
	if err := t.store.Save(ctx, t.doc); err != nil {
		t.log.Warn("failed to save progress",
			zap.String("op", op),
			zap.String("path", t.store.Path()),
			zap.Error(err),
		)
		return &SaveError{Op: op, Err: err}
	}
	return nil
}

func resolve(sess Session, module string) (string, course.ModuleID, error) {
	if strings.TrimSpace(sess.UserID) == "" {
		return "", "", ErrNoUser
	}
	id, ok := course.Normalize(module)
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownModule, module)
	}
	return sess.UserID, id, nil
}

// record returns the stored entry for (user, id), creating it when missing.
func (t *Tracker) record(user string, id course.ModuleID) *model.ModuleProgress {
	modules, ok := t.doc.UserProgress[user]
	if !ok {
		modules = map[string]*model.ModuleProgress{}
		t.doc.UserProgress[user] = modules
	}
	mp, ok := modules[string(id)]
	if !ok {
		mp = &model.ModuleProgress{SectionsCompleted: []string{}, QuizScores: []model.QuizResult{}}
		modules[string(id)] = mp
	}
	return mp
}

func (t *Tracker) touch(mp *model.ModuleProgress) {
	now := t.now()
	mp.LastAccessed = &now
}

// MarkSectionComplete adds section to the module's completed set.
func (t *Tracker) MarkSectionComplete(ctx context.Context, sess Session, module, section string) error {
	user, id, err := resolve(sess, module)
	if err != nil {
		return err
	}
	section = strings.TrimSpace(section)
	if section == "" {
		return fmt.Errorf("section name is empty")
	}
	mp := t.record(user, id)
	if !mp.HasSection(section) {
		mp.SectionsCompleted = append(mp.SectionsCompleted, section)
	}
	t.touch(mp)
	return t.persist(ctx, "mark section")
}

// RecordQuizResult appends a quiz outcome. Results are never merged or
// deduplicated. A passing result also marks the quiz section.
func (t *Tracker) RecordQuizResult(ctx context.Context, sess Session, module string, score, maxScore float64) (model.QuizResult, error) {
	user, id, err := resolve(sess, module)
	if err != nil {
		return model.QuizResult{}, err
	}
	if maxScore <= 0 || score < 0 || score > maxScore {
		return model.QuizResult{}, fmt.Errorf("%w: %v of %v", ErrInvalidScore, score, maxScore)
	}
	result := model.QuizResult{
		Score:      score,
		MaxScore:   maxScore,
		Percentage: 100 * score / maxScore,
		Date:       t.now(),
	}
	mp := t.record(user, id)
	mp.QuizScores = append(mp.QuizScores, result)
	if result.Percentage >= course.PassPercentage && !mp.HasSection(course.QuizSection) {
		mp.SectionsCompleted = append(mp.SectionsCompleted, course.QuizSection)
	}
	t.touch(mp)
	t.log.Debug("quiz recorded",
		zap.String("user", user),
		zap.String("module", string(id)),
		zap.Float64("percentage", result.Percentage),
	)
	return result, t.persist(ctx, "record quiz")
}

// AddTimeSpent accumulates time spent in a module. Non-positive durations
// are ignored.
func (t *Tracker) AddTimeSpent(ctx context.Context, sess Session, module string, d time.Duration) error {
	user, id, err := resolve(sess, module)
	if err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	mp := t.record(user, id)
	mp.TimeSpent += d.Seconds()
	t.touch(mp)
	return t.persist(ctx, "add time")
}

// PracticeKey builds the practice log key of a command.
func PracticeKey(d model.Dialect, command string) string {
	return d.String() + ":" + strings.ToLower(strings.TrimSpace(command))
}

// RecordPractice logs one command typed into a console. Blank commands are
// ignored.
func (t *Tracker) RecordPractice(ctx context.Context, sess Session, d model.Dialect, command, exercise string, success bool) error {
	if strings.TrimSpace(sess.UserID) == "" {
		return ErrNoUser
	}
	if strings.TrimSpace(command) == "" {
		return nil
	}
	key := PracticeKey(d, command)
	t.doc.CommandsPracticed[key] = append(t.doc.CommandsPracticed[key], model.PracticeAttempt{
		Timestamp: t.now(),
		Success:   success,
		Dialect:   d.String(),
		User:      sess.UserID,
		Exercise:  exercise,
	})
	return t.persist(ctx, "record practice")
}

// ResetAll discards the user's progress and the practice log.
func (t *Tracker) ResetAll(ctx context.Context, sess Session) error {
	if strings.TrimSpace(sess.UserID) == "" {
		return ErrNoUser
	}
	delete(t.doc.UserProgress, sess.UserID)
	t.doc.CommandsPracticed = map[string][]model.PracticeAttempt{}
	t.log.Info("progress reset", zap.String("user", sess.UserID))
	return t.persist(ctx, "reset")
}

// Users returns the ids with stored progress, sorted.
func (t *Tracker) Users() []string {
	users := make([]string, 0, len(t.doc.UserProgress))
	for u := range t.doc.UserProgress {
		users = append(users, u)
	}
	sort.Strings(users)
	return users
}

// Path returns the location of the backing store.
func (t *Tracker) Path() string {
	return t.store.Path()
}

// Snapshot returns a deep copy of the document.
func (t *Tracker) Snapshot() model.Document {
	out := model.NewDocument(t.doc.Modules)
	for user, modules := range t.doc.UserProgress {
		copied := make(map[string]*model.ModuleProgress, len(modules))
		for id, mp := range modules {
			c := cloneModule(*mp)
			copied[id] = &c
		}
		out.UserProgress[user] = copied
	}
	for key, attempts := range t.doc.CommandsPracticed {
		out.CommandsPracticed[key] = append([]model.PracticeAttempt(nil), attempts...)
	}
	return out
}

func cloneModule(mp model.ModuleProgress) model.ModuleProgress {
	mp.SectionsCompleted = append([]string(nil), mp.SectionsCompleted...)
	mp.QuizScores = append([]model.QuizResult(nil), mp.QuizScores...)
	if mp.LastAccessed != nil {
		at := *mp.LastAccessed
		mp.LastAccessed = &at
	}
	return mp
}
