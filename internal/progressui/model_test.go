package progressui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/shelltutor/internal/course"
	"github.com/verte-zerg/shelltutor/internal/model"
	"github.com/verte-zerg/shelltutor/internal/progress"
	"github.com/verte-zerg/shelltutor/internal/store"
)

func newTracker(t *testing.T) (*progress.Tracker, progress.Session) {
	t.Helper()
	st, err := store.OpenFile(filepath.Join(t.TempDir(), "progress.json"))
	require.NoError(t, err)
	tr, err := progress.Open(context.Background(), st)
	require.NoError(t, err)
	return tr, progress.Session{UserID: "u1"}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestOverviewShowsTotals(t *testing.T) {
	tr, sess := newTracker(t)
	ctx := context.Background()
	_, err := tr.RecordQuizResult(ctx, sess, string(course.CmdBasics), 85, 100)
	require.NoError(t, err)

	m := NewModel(tr, sess, nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()

	assert.Contains(t, view, "Overview")
	assert.Contains(t, view, "1/9")
	assert.Contains(t, view, "11.1%")
	assert.Contains(t, view, "not yet eligible")
	assert.Equal(t, 30, len(strings.Split(view, "\n")))
}

func TestOverviewIgnoresIntroQuizForProgress(t *testing.T) {
	tr, sess := newTracker(t)
	_, err := tr.RecordQuizResult(context.Background(), sess, string(course.Intro), 85, 100)
	require.NoError(t, err)

	m := NewModel(tr, sess, nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()

	assert.Contains(t, view, "0/9")
	assert.Contains(t, view, "0.0%")
	assert.Equal(t, 1, tr.CompletedQuizzesCount(sess))
}

func TestTabsCycle(t *testing.T) {
	tr, sess := newTracker(t)
	m := NewModel(tr, sess, nil)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})

	m.Update(key("l"))
	assert.Equal(t, tabModules, m.activeTab)
	assert.Contains(t, m.View(), "02_cmd_basics")

	m.Update(key("l"))
	assert.Equal(t, tabCommands, m.activeTab)
	assert.Contains(t, m.View(), "No commands practiced yet.")

	m.Update(key("l"))
	assert.Equal(t, tabOverview, m.activeTab)

	m.Update(key("h"))
	assert.Equal(t, tabCommands, m.activeTab)
}

func TestFilterNarrowsCommands(t *testing.T) {
	tr, sess := newTracker(t)
	ctx := context.Background()
	require.NoError(t, tr.RecordPractice(ctx, sess, model.Legacy, "dir", "", true))
	require.NoError(t, tr.RecordPractice(ctx, sess, model.Structured, "get-childitem", "", false))

	m := NewModel(tr, sess, nil)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	require.Len(t, m.tables[tabCommands].Rows(), 2)

	m.Update(key("/"))
	assert.True(t, m.filterMode)
	for _, r := range "get-" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.filterMode)
	assert.Equal(t, "get-", m.filter)
	assert.Equal(t, tabCommands, m.activeTab)
	rows := m.tables[tabCommands].Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "get-childitem", rows[0][0])
}

func TestRefreshPicksUpNewResults(t *testing.T) {
	tr, sess := newTracker(t)
	m := NewModel(tr, sess, nil)
	assert.Equal(t, 0, m.Report().Completed)

	_, err := tr.RecordQuizResult(context.Background(), sess, "02_cmd_basics", 9, 10)
	require.NoError(t, err)
	m.Update(key("r"))
	assert.Equal(t, 1, m.Report().Completed)
}

func TestFilterCommandsMatchesAllTerms(t *testing.T) {
	commands := []model.CommandStat{
		{Key: "cmd:dir"},
		{Key: "powershell:get-childitem"},
		{Key: "powershell:get-process"},
	}
	assert.Len(t, filterCommands(commands, ""), 3)
	assert.Len(t, filterCommands(commands, "POWERSHELL"), 2)
	got := filterCommands(commands, "powershell process")
	require.Len(t, got, 1)
	assert.Equal(t, "powershell:get-process", got[0].Key)
}

func TestQuitKeys(t *testing.T) {
	tr, sess := newTracker(t)
	m := NewModel(tr, sess, nil)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
