// Package tui provides the Bubble Tea console practice interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/shelltutor/internal/course"
	"github.com/verte-zerg/shelltutor/internal/generator"
	"github.com/verte-zerg/shelltutor/internal/model"
	"github.com/verte-zerg/shelltutor/internal/progress"
	"github.com/verte-zerg/shelltutor/internal/shell"
	"github.com/verte-zerg/shelltutor/internal/stats"
)

const (
	exercisesPerRound = 5
	inputCharLimit    = 256
	historyLimit      = 100
)

var (
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	commandStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	outputStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	exerciseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Options configures a console model.
type Options struct {
	Config    model.ConsoleConfig
	Tracker   *progress.Tracker
	User      progress.Session
	// Module is credited with console time. When empty, the basics module
	// of the active dialect is credited and follows dialect switches.
	Module    course.ModuleID
	Exercises []course.Exercise
	Generator *generator.Generator
	Logger    *zap.Logger
	Now       func() time.Time
}

// Model implements the Bubble Tea console UI.
type Model struct {
	config    model.ConsoleConfig
	tracker   *progress.Tracker
	user      progress.Session
	module    course.ModuleID
	fixed     bool
	exercises []course.Exercise
	gen       *generator.Generator
	log       *zap.Logger
	now       func() time.Time

	session  *shell.Session
	input    textinput.Model
	viewport viewport.Model

	width  int
	height int

	queue     []course.Exercise
	roundSize int
	weakSet   map[string]struct{}
	showHint  bool

	history    []string
	historyIdx int

	commands   int
	recognized int
	completed  int
	notice     string
	warn       bool
	startedAt  time.Time
}

// NewModel constructs a console TUI model.
func NewModel(opts Options) *Model {
	m := &Model{
		config:    opts.Config,
		tracker:   opts.Tracker,
		user:      opts.User,
		module:    opts.Module,
		fixed:     opts.Module != "",
		exercises: opts.Exercises,
		gen:       opts.Generator,
		log:       opts.Logger,
		now:       opts.Now,
	}
	if m.gen == nil {
		m.gen = generator.New()
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.startedAt = m.now()
	m.input = textinput.New()
	m.input.CharLimit = inputCharLimit
	m.input.Focus()
	m.viewport = viewport.New(0, 0)
	m.startConsole(opts.Config.Dialect)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit(m.input.Value())
			return m, nil
		case tea.KeyTab:
			m.showHint = !m.showHint
			return m, nil
		case tea.KeyCtrlN:
			m.skipExercise()
			return m, nil
		case tea.KeyCtrlT:
			m.switchDialect()
			return m, nil
		case tea.KeyCtrlL:
			m.session.Reset()
			m.refreshTranscript()
			return m, nil
		case tea.KeyUp:
			m.recall(-1)
			return m, nil
		case tea.KeyDown:
			m.recall(1)
			return m, nil
		case tea.KeyPgUp:
			m.viewport.SetYOffset(m.viewport.YOffset - maxInt(1, m.viewport.Height/2))
			return m, nil
		case tea.KeyPgDown:
			m.viewport.SetYOffset(m.viewport.YOffset + maxInt(1, m.viewport.Height/2))
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.renderHeader()
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return strings.Join([]string{header, m.transcriptText(), m.input.View(), footer}, "\n")
	}
	return strings.Join([]string{
		fitLines(header, m.width, headerHeight),
		fitLines(m.viewport.View(), m.width, m.bodyHeight()),
		padLine(m.input.View(), m.width),
		padLine(footer, m.width),
	}, "\n")
}

// Finish credits the time spent in the console to the module.
func (m *Model) Finish(ctx context.Context) error {
	return m.creditTime(ctx)
}

// Module returns the module currently credited with console time.
func (m *Model) Module() course.ModuleID {
	return m.module
}

func (m *Model) creditTime(ctx context.Context) error {
	now := m.now()
	elapsed := now.Sub(m.startedAt)
	m.startedAt = now
	if m.tracker == nil || m.module == "" || elapsed <= 0 {
		return nil
	}
	return m.tracker.AddTimeSpent(ctx, m.user, string(m.module), elapsed)
}

// Dialect returns the dialect of the running console.
func (m *Model) Dialect() model.Dialect {
	return m.session.Dialect()
}

// Transcript returns the rendered console history.
func (m *Model) Transcript() string {
	return m.session.Render()
}

// switchDialect restarts the console in the other dialect. Time spent so far
// stays with the module that was credited before the switch.
func (m *Model) switchDialect() {
	if !m.fixed {
		if err := m.creditTime(context.Background()); err != nil {
			m.log.Warn("failed to record time spent", zap.String("module", string(m.module)), zap.Error(err))
		}
	}
	m.startConsole(otherDialect(m.session.Dialect()))
}

func (m *Model) startConsole(d model.Dialect) {
	if !m.fixed {
		m.module = course.ConsoleModule(d)
	}
	profile := shell.Profile{Drive: m.config.Drive, User: m.config.User}
	m.session = shell.NewSession(d, profile, shell.NewExecutor(shell.WithClock(m.now)))
	m.input.Prompt = profile.Prompt(d)
	m.input.SetValue("")
	m.showHint = false
	m.newRound()
	m.refreshTranscript()
}

func (m *Model) newRound() {
	pool := m.dialectExercises()
	m.queue = nil
	m.roundSize = 0
	if len(pool) == 0 {
		return
	}
	m.weakSet = nil
	if m.config.FocusWeak && m.tracker != nil {
		m.weakSet = stats.SelectWeakCommands(m.tracker.PracticedCommands(), m.session.Dialect(), m.config.WeakTop)
	}
	if len(m.weakSet) > 0 {
		m.queue = m.gen.PickWeighted(pool, exercisesPerRound, m.weakSet, m.config.WeakFactor)
	} else {
		shuffled := m.gen.Shuffle(pool)
		m.queue = shuffled[:minInt(exercisesPerRound, len(shuffled))]
	}
	m.roundSize = len(m.queue)
}

func (m *Model) dialectExercises() []course.Exercise {
	var out []course.Exercise
	for _, ex := range m.exercises {
		if ex.ConsoleDialect() == m.session.Dialect() {
			out = append(out, ex)
		}
	}
	return out
}

func (m *Model) currentExercise() (course.Exercise, bool) {
	if len(m.queue) == 0 {
		return course.Exercise{}, false
	}
	return m.queue[0], true
}

func (m *Model) skipExercise() {
	if len(m.queue) == 0 {
		return
	}
	m.queue = m.queue[1:]
	m.showHint = false
	m.setNotice("Exercise skipped", false)
	if len(m.queue) == 0 {
		m.newRound()
	}
}

func (m *Model) submit(raw string) {
	m.input.SetValue("")
	res := m.session.Submit(raw)
	if res.Kind == shell.ResultEmpty {
		m.setNotice(res.Output, true)
		return
	}
	m.pushHistory(raw)
	m.commands++
	if res.Kind.Recognized() {
		m.recognized++
	}
	m.notice = ""

	ex, hasExercise := m.currentExercise()
	matched := hasExercise && ex.Matches(raw) && res.Kind.Recognized()
	label := ""
	if hasExercise {
		label = ex.Description
	}
	m.recordPractice(res, label)

	if matched {
		m.completed++
		m.queue = m.queue[1:]
		m.showHint = false
		if len(m.queue) == 0 {
			m.setNotice("Round complete! Starting a new one.", false)
			m.newRound()
		} else {
			m.setNotice("Exercise complete", false)
		}
	}
	if isClearCommand(res.Command.Head) {
		m.session.Reset()
	}
	m.refreshTranscript()
}

func (m *Model) recordPractice(res shell.Result, exercise string) {
	if m.tracker == nil {
		return
	}
	err := m.tracker.RecordPractice(context.Background(), m.user, m.session.Dialect(), res.Command.Head, exercise, res.Kind.Recognized())
	if err == nil {
		return
	}
	var saveErr *progress.SaveError
	if errors.As(err, &saveErr) {
		m.setNotice("Practice recorded but not saved", true)
		return
	}
	m.log.Warn("failed to record practice", zap.Error(err))
	m.setNotice(fmt.Sprintf("Practice not recorded: %v", err), true)
}

func (m *Model) setNotice(msg string, warn bool) {
	m.notice = msg
	m.warn = warn
}

func (m *Model) pushHistory(raw string) {
	m.history = append(m.history, raw)
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
	m.historyIdx = len(m.history)
}

func (m *Model) recall(delta int) {
	if len(m.history) == 0 {
		return
	}
	idx := m.historyIdx + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.history) {
		m.historyIdx = len(m.history)
		m.input.SetValue("")
		return
	}
	m.historyIdx = idx
	m.input.SetValue(m.history[idx])
	m.input.CursorEnd()
}

// transcriptText is the rendered history without its trailing bare prompt,
// which the input line replaces.
func (m *Model) transcriptText() string {
	text := m.session.Render()
	if i := strings.LastIndex(text, "\n"); i >= 0 {
		return text[:i]
	}
	return ""
}

func (m *Model) refreshTranscript() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	lines := wrapText(m.transcriptText(), width)
	m.viewport.SetContent(styleTranscript(lines, m.input.Prompt))
	m.viewport.GotoBottom()
}

const headerHeight = 2

func (m *Model) bodyHeight() int {
	return maxInt(1, m.height-headerHeight-2)
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.viewport.Width = m.width
	m.viewport.Height = m.bodyHeight()
	m.input.Width = maxInt(10, m.width-lipgloss.Width(m.input.Prompt)-1)
	m.refreshTranscript()
}

func (m *Model) renderHeader() string {
	ex, ok := m.currentExercise()
	if !ok {
		return exerciseStyle.Render(fmt.Sprintf("Free practice (%s)", m.session.Dialect().Title())) + "\n" +
			hintStyle.Render("Type any command. ctrl+t: switch shell  esc: quit")
	}
	step := m.roundSize - len(m.queue) + 1
	title := fmt.Sprintf("Exercise %d/%d: %s", step, m.roundSize, ex.Description)
	second := "tab: hint  ctrl+n: skip  ctrl+t: switch shell  esc: quit"
	if m.showHint {
		second = "Hint: " + ex.Hint
		if ex.Hint == "" {
			second = "Hint: try " + ex.Example
		}
	}
	width := m.width
	return exerciseStyle.Render(truncateLine(title, width)) + "\n" + hintStyle.Render(truncateLine(second, width))
}

func (m *Model) renderFooter() string {
	segments := []string{m.session.Dialect().Title()}
	rate := 0
	if m.commands > 0 {
		rate = int(float64(m.recognized) / float64(m.commands) * 100)
	}
	segments = append(segments, fmt.Sprintf("Commands %d · %d%% recognized", m.commands, rate))
	segments = append(segments, fmt.Sprintf("Exercises done %d", m.completed))
	if m.tracker != nil {
		segments = append(segments, fmt.Sprintf("Practiced %d", m.tracker.CommandsPracticedCount()))
	}
	footer := footerStyle.Render(strings.Join(segments, "  "))
	if m.notice == "" {
		return footer
	}
	style := noticeStyle
	if m.warn {
		style = warnStyle
	}
	return footer + "  " + style.Render(m.notice)
}

func isClearCommand(head string) bool {
	switch head {
	case "cls", "clear-host", "clear":
		return true
	}
	return false
}

func otherDialect(d model.Dialect) model.Dialect {
	if d == model.Structured {
		return model.Legacy
	}
	return model.Structured
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
