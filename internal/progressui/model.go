// Package progressui provides the Bubble Tea progress dashboard.
package progressui

import (
	"fmt"
	"strings"

	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/shelltutor/internal/course"
	"github.com/verte-zerg/shelltutor/internal/model"
	"github.com/verte-zerg/shelltutor/internal/progress"
	"github.com/verte-zerg/shelltutor/internal/stats"
)

const (
	tabOverview = iota
	tabModules
	tabCommands
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea progress dashboard.
type Model struct {
	tracker *progress.Tracker
	user    progress.Session
	catalog *course.Catalog

	report stats.Report

	tabs      []string
	activeTab int
	overview  viewport.Model
	tables    map[int]*table.Model
	bar       progressbar.Model

	width  int
	height int

	filterMode  bool
	filterInput textinput.Model
	filter      string
}

// NewModel constructs a dashboard for user.
func NewModel(tr *progress.Tracker, user progress.Session, cat *course.Catalog) *Model {
	m := &Model{
		tracker:  tr,
		user:     user,
		catalog:  cat,
		tabs:     []string{"Overview", "Modules", "Commands"},
		overview: viewport.New(0, 0),
		bar: progressbar.New(
			progressbar.WithGradient("#8C6A1E", "#C89A3A"),
			progressbar.WithWidth(40),
		),
	}
	m.filterInput = textinput.New()
	m.filterInput.Prompt = "Filter commands: "
	m.filterInput.Placeholder = "dir, get-, powershell"
	m.tables = map[int]*table.Model{}
	m.refreshReport()
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
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "/":
			m.filterMode = true
			m.filterInput.SetValue(m.filter)
			return m, m.filterInput.Focus()
		case "r":
			m.refreshReport()
			return m, nil
		case "g", "home":
			if t, ok := m.tables[m.activeTab]; ok {
				t.GotoTop()
			} else {
				m.overview.GotoTop()
			}
			return m, nil
		case "G", "end":
			if t, ok := m.tables[m.activeTab]; ok {
				t.GotoBottom()
			} else {
				m.overview.GotoBottom()
			}
			return m, nil
		default:
			if t, ok := m.tables[m.activeTab]; ok {
				updated, cmd := t.Update(msg)
				*t = updated
				return m, cmd
			}
			var cmd tea.Cmd
			m.overview, cmd = m.overview.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return m.renderOverview(80)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// Report returns the figures currently shown.
func (m *Model) Report() stats.Report {
	return m.report
}

func (m *Model) refreshReport() {
	m.report = stats.BuildReport(m.tracker, m.user, m.catalog)
	m.rebuildTables()
	m.renderOverviewContent()
}

func (m *Model) rebuildTables() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	modules := buildTable(moduleColumns(), moduleRows(m.report.Modules), width, bodyHeight)
	commands := buildTable(commandColumns(), commandRows(filterCommands(m.report.Commands, m.filter)), width, bodyHeight)
	m.tables[tabModules] = &modules
	m.tables[tabCommands] = &commands
	m.syncFocus()
}

func (m *Model) renderOverviewContent() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(m.renderOverview(width))
}

func (m *Model) renderOverview(width int) string {
	r := m.report
	certificate := errorStyle.Render("not yet eligible")
	if r.Eligible {
		certificate = goodStyle.Render("eligible")
	}
	lines := []string{
		fmt.Sprintf("Learner: %s", r.User),
		fmt.Sprintf("Overall %s %.1f%%", m.bar.ViewAs(r.Overall/100), r.Overall),
		fmt.Sprintf("Certificate: %s (needs %.0f%%)", certificate, course.PassPercentage),
		"",
		renderSummaryCards(r, width),
		"",
	}
	if len(r.Recommendations) == 0 {
		lines = append(lines, "No recommendations. Well done!")
	} else {
		lines = append(lines, "Recommendations")
		for i, rec := range r.Recommendations {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, rec))
		}
	}
	return strings.Join(lines, "\n")
}

func renderSummaryCards(r stats.Report, width int) string {
	cards := []string{
		metricCard("Modules", fmt.Sprintf("%d/%d", r.Completed, r.Total)),
		metricCard("Quizzes passed", fmt.Sprintf("%d", r.QuizzesPassed)),
		metricCard("Commands", fmt.Sprintf("%d", r.CommandsPracticed)),
		metricCard("Time spent", stats.FormatDuration(r.TimeSpent)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func moduleColumns() []table.Column {
	return []table.Column{
		{Title: "Module", Width: 20},
		{Title: "Title", Width: 28},
		{Title: "Status", Width: 12},
		{Title: "Best", Width: 6},
		{Title: "Quizzes", Width: 7},
		{Title: "Trend", Width: 10},
		{Title: "Time", Width: 9},
	}
}

func moduleRows(rows []stats.ModuleRow) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		best := "-"
		if r.HasQuiz {
			best = fmt.Sprintf("%.0f%%", r.Best)
		}
		id := string(r.ID)
		if !r.Main {
			id += " *"
		}
		out = append(out, table.Row{
			id,
			r.Title,
			r.State.String(),
			best,
			fmt.Sprintf("%d", len(r.Trend)),
			stats.Sparkline(r.Trend),
			stats.FormatDuration(r.TimeSpent),
		})
	}
	return out
}

func commandColumns() []table.Column {
	return []table.Column{
		{Title: "Command", Width: 24},
		{Title: "Shell", Width: 10},
		{Title: "Attempts", Width: 8},
		{Title: "Success", Width: 8},
		{Title: "Last", Width: 16},
	}
}

func commandRows(commands []model.CommandStat) []table.Row {
	out := make([]table.Row, 0, len(commands))
	for _, c := range stats.SortByWeakness(commands) {
		last := "-"
		if !c.LastPracticed.IsZero() {
			last = c.LastPracticed.Local().Format("2006-01-02 15:04")
		}
		out = append(out, table.Row{
			c.Command,
			c.Dialect,
			fmt.Sprintf("%d", c.Attempts),
			fmt.Sprintf("%.0f%%", c.SuccessRate()*100),
			last,
		})
	}
	return out
}

// filterCommands keeps commands whose key contains every space separated term.
func filterCommands(commands []model.CommandStat, filter string) []model.CommandStat {
	terms := strings.Fields(strings.ToLower(filter))
	if len(terms) == 0 {
		return commands
	}
	var out []model.CommandStat
	for _, c := range commands {
		keep := true
		for _, term := range terms {
			if !strings.Contains(c.Key, strings.TrimSuffix(term, ",")) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, c)
		}
	}
	return out
}

func buildTable(columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetStyles(tableStyles())
	t.SetWidth(width)
	return t
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.filter = strings.TrimSpace(m.filterInput.Value())
		m.filterMode = false
		m.filterInput.Blur()
		m.activeTab = tabCommands
		m.rebuildTables()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.bar.Width = minInt(40, maxInt(10, m.width-30))
	m.filterInput.Width = maxInt(10, m.width-lipgloss.Width(m.filterInput.Prompt)-2)
	for _, t := range m.tables {
		t.SetWidth(m.width)
		t.SetHeight(maxInt(1, bodyHeight-1))
	}
	m.renderOverviewContent()
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	m.syncFocus()
}

func (m *Model) syncFocus() {
	for tab, t := range m.tables {
		if tab == m.activeTab {
			t.Focus()
		} else {
			t.Blur()
		}
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	summary := fmt.Sprintf("User: %s  Overall: %.1f%%  Modules: %d/%d", m.report.User, m.report.Overall, m.report.Completed, m.report.Total)
	if m.filter != "" {
		summary += fmt.Sprintf("  Filter: %s", m.filter)
	}
	return padLines(m.renderTabs(), m.width) + "\n" + headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderBody() string {
	if m.filterMode {
		return m.filterInput.View() + "\n" + headerStyle.Render("enter: apply  esc: cancel")
	}
	t, ok := m.tables[m.activeTab]
	if !ok {
		return m.overview.View()
	}
	if len(t.Rows()) == 0 {
		if m.activeTab == tabCommands {
			return "No commands practiced yet."
		}
		return "No modules found."
	}
	return tableMutedStyle.Render(t.View())
}

func (m *Model) renderFooter() string {
	return headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Filter: /  Refresh: r  Quit: q")
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
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

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
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
