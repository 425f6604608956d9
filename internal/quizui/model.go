// Package quizui provides the Bubble Tea quiz interface.
package quizui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/shelltutor/internal/course"
	"github.com/verte-zerg/shelltutor/internal/model"
	"github.com/verte-zerg/shelltutor/internal/progress"
)

type phase int

const (
	phaseAsking phase = iota
	phaseFeedback
	phaseDone
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	optionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Underline(true)
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	wrongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	boxStyle      = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// Model implements the Bubble Tea quiz UI.
type Model struct {
	module  *course.Module
	tracker *progress.Tracker
	user    progress.Session
	now     func() time.Time

	index   int
	cursor  int
	answers map[int]string
	phase   phase
	grade   course.Grade
	result  *model.QuizResult
	errMsg  string
	started time.Time
	width   int
	height  int
}

// NewModel constructs a quiz for module. tracker may be nil, in which case
// the result is graded but not recorded.
func NewModel(module *course.Module, tracker *progress.Tracker, user progress.Session, now func() time.Time) *Model {
	if now == nil {
		now = time.Now
	}
	m := &Model{
		module:  module,
		tracker: tracker,
		user:    user,
		now:     now,
		answers: map[int]string{},
		started: now(),
	}
	if len(module.Quiz) == 0 {
		m.phase = phaseDone
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch m.phase {
		case phaseAsking:
			return m.updateAsking(msg)
		case phaseFeedback:
			if msg.Type == tea.KeyEnter || msg.String() == " " {
				m.advance()
			}
			return m, nil
		case phaseDone:
			if msg.Type == tea.KeyEnter || msg.String() == "q" {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m *Model) updateAsking(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := m.question().Options
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(options)-1 {
			m.cursor++
		}
	case "enter":
		m.choose(m.cursor)
	default:
		if len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9' {
			idx := int(msg.Runes[0] - '1')
			if idx < len(options) {
				m.cursor = idx
				m.choose(idx)
			}
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.phase {
	case phaseDone:
		body = m.renderResult()
	default:
		body = m.renderQuestion()
	}
	box := boxStyle.Render(body)
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// Grade returns the final grade once the quiz is done.
func (m *Model) Grade() (course.Grade, bool) {
	return m.grade, m.phase == phaseDone && m.grade.Total > 0
}

// Result returns the recorded quiz result, if one was saved.
func (m *Model) Result() (model.QuizResult, bool) {
	if m.result == nil {
		return model.QuizResult{}, false
	}
	return *m.result, true
}

// Err returns the last recording error message.
func (m *Model) Err() string {
	return m.errMsg
}

func (m *Model) question() course.Question {
	return m.module.Quiz[m.index]
}

func (m *Model) choose(idx int) {
	options := m.question().Options
	if idx < 0 || idx >= len(options) {
		return
	}
	m.answers[m.index] = options[idx]
	m.phase = phaseFeedback
}

func (m *Model) advance() {
	m.index++
	m.cursor = 0
	if m.index < len(m.module.Quiz) {
		m.phase = phaseAsking
		return
	}
	m.index = len(m.module.Quiz) - 1
	m.finish()
}

func (m *Model) finish() {
	m.phase = phaseDone
	m.grade = course.GradeQuiz(m.module.Quiz, m.answers)
	if m.tracker == nil || m.grade.Total == 0 {
		return
	}
	ctx := context.Background()
	res, err := m.tracker.RecordQuizResult(ctx, m.user, string(m.module.ID), float64(m.grade.Correct), float64(m.grade.Total))
	var saveErr *progress.SaveError
	switch {
	case err == nil:
		m.result = &res
	case errors.As(err, &saveErr):
		m.result = &res
		m.errMsg = "Result kept for this session but could not be saved."
	default:
		m.errMsg = fmt.Sprintf("Result not recorded: %v", err)
		return
	}
	if err := m.tracker.AddTimeSpent(ctx, m.user, string(m.module.ID), m.now().Sub(m.started)); err != nil && m.errMsg == "" {
		m.errMsg = "Time spent could not be saved."
	}
}

func (m *Model) renderQuestion() string {
	q := m.question()
	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s quiz · question %d/%d", m.module.Title, m.index+1, len(m.module.Quiz))),
		"",
		questionStyle.Render(q.Prompt),
		"",
	}
	chosen, answered := m.answers[m.index]
	for i, opt := range q.Options {
		label := fmt.Sprintf("%d. %s", i+1, opt)
		switch {
		case m.phase == phaseFeedback && opt == q.Answer:
			lines = append(lines, correctStyle.Render("✓ "+label))
		case m.phase == phaseFeedback && answered && opt == chosen:
			lines = append(lines, wrongStyle.Render("✗ "+label))
		case m.phase == phaseAsking && i == m.cursor:
			lines = append(lines, selectedStyle.Render("> "+label))
		default:
			lines = append(lines, optionStyle.Render("  "+label))
		}
	}
	lines = append(lines, "")
	if m.phase == phaseFeedback {
		if chosen == q.Answer {
			lines = append(lines, correctStyle.Render("Correct!"))
		} else {
			lines = append(lines, wrongStyle.Render("Incorrect. The answer is: "+q.Answer))
		}
		if q.Explanation != "" {
			lines = append(lines, optionStyle.Render(q.Explanation))
		}
		lines = append(lines, "", helpStyle.Render("enter: continue  esc: quit"))
	} else {
		lines = append(lines, helpStyle.Render("up/down or 1-9: select  enter: answer  esc: quit"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderResult() string {
	if len(m.module.Quiz) == 0 {
		return titleStyle.Render(m.module.Title) + "\n\nThis module has no quiz.\n\n" + helpStyle.Render("enter: close")
	}
	lines := []string{
		titleStyle.Render(m.module.Title + " quiz complete"),
		"",
		fmt.Sprintf("Score: %d/%d (%.0f%%)", m.grade.Correct, m.grade.Total, m.grade.Percentage()),
	}
	if m.grade.Passed() {
		lines = append(lines, correctStyle.Render(fmt.Sprintf("Passed! %.0f%% or more completes the module.", course.PassPercentage)))
	} else {
		lines = append(lines, wrongStyle.Render(fmt.Sprintf("Not passed yet. You need %.0f%%.", course.PassPercentage)))
	}
	if m.errMsg != "" {
		lines = append(lines, wrongStyle.Render(m.errMsg))
	}
	lines = append(lines, "", helpStyle.Render("enter: close"))
	return strings.Join(lines, "\n")
}
