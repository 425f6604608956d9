package quizui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/shelltutor/internal/course"
	"github.com/verte-zerg/shelltutor/internal/model"
	"github.com/verte-zerg/shelltutor/internal/progress"
	"github.com/verte-zerg/shelltutor/internal/store"
)

var testModule = &course.Module{
	ID:    course.CmdBasics,
	Title: "CMD Basics",
	Quiz: []course.Question{
		{Prompt: "List a directory?", Options: []string{"ls", "dir"}, Answer: "dir", Explanation: "dir lists files."},
		{Prompt: "Clear the screen?", Options: []string{"cls", "clear"}, Answer: "cls"},
		{Prompt: "Go up?", Options: []string{"cd ..", "cd up"}, Answer: "cd .."},
	},
}

func newTracker(t *testing.T) *progress.Tracker {
	t.Helper()
	st, err := store.OpenFile(filepath.Join(t.TempDir(), "progress.json"))
	require.NoError(t, err)
	tr, err := progress.Open(context.Background(), st)
	require.NoError(t, err)
	return tr
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func enter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func TestQuizRecordsPassingResult(t *testing.T) {
	tr := newTracker(t)
	user := progress.Session{UserID: "u1"}
	clock := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	m := NewModel(testModule, tr, user, func() time.Time {
		clock = clock.Add(10 * time.Second)
		return clock
	})

	m.Update(key("2"))
	assert.Contains(t, m.View(), "Correct!")
	assert.Contains(t, m.View(), "dir lists files.")
	m.Update(enter())

	m.Update(enter()) // cls is the first option
	m.Update(enter())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(enter())
	assert.Contains(t, m.View(), "Incorrect. The answer is: cd ..")
	m.Update(enter())

	grade, done := m.Grade()
	require.True(t, done)
	assert.Equal(t, course.Grade{Correct: 2, Total: 3}, grade)
	res, ok := m.Result()
	require.True(t, ok)
	assert.InDelta(t, 66.67, res.Percentage, 0.01)
	assert.Contains(t, m.View(), "Not passed yet")

	assert.Equal(t, model.StateQuizzed, tr.ModuleState(user, string(course.CmdBasics)))
	mp, ok := tr.ModuleProgress(user, string(course.CmdBasics))
	require.True(t, ok)
	assert.Greater(t, mp.TimeSpent, 0.0)
}

func TestQuizAllCorrectCertifies(t *testing.T) {
	tr := newTracker(t)
	user := progress.Session{UserID: "u1"}
	m := NewModel(testModule, tr, user, nil)
	for _, k := range []string{"2", "1", "1"} {
		m.Update(key(k))
		m.Update(enter())
	}
	assert.Equal(t, model.StateCertified, tr.ModuleState(user, string(course.CmdBasics)))
	assert.True(t, strings.Contains(m.View(), "Passed!"))
	_, cmd := m.Update(enter())
	require.NotNil(t, cmd)
}

func TestQuizWithoutTracker(t *testing.T) {
	m := NewModel(testModule, nil, progress.Session{}, nil)
	for _, k := range []string{"1", "1", "1"} {
		m.Update(key(k))
		m.Update(enter())
	}
	grade, done := m.Grade()
	require.True(t, done)
	assert.Equal(t, 2, grade.Correct)
	_, ok := m.Result()
	assert.False(t, ok)
}

func TestModuleWithoutQuiz(t *testing.T) {
	m := NewModel(&course.Module{ID: course.Summary, Title: "Summary"}, nil, progress.Session{}, nil)
	assert.Contains(t, m.View(), "no quiz")
	_, done := m.Grade()
	assert.False(t, done)
}

func TestOutOfRangeDigitIgnored(t *testing.T) {
	m := NewModel(testModule, nil, progress.Session{}, nil)
	m.Update(key("9"))
	assert.Equal(t, phaseAsking, m.phase)
	assert.Empty(t, m.answers)
}
