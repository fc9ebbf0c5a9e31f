// Package statsui provides the Bubble Tea report viewer.
package statsui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/drillreport/internal/report"
	"github.com/verte-zerg/drillreport/internal/stats"
)

const (
	tabExercise = iota
	tabPool
	tabKeys
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
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	sectionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

// Model implements the Bubble Tea report viewer.
type Model struct {
	report    report.StudentReport
	keys      report.KeyBreakdown
	hasKeys   bool
	useColor  bool
	tabs      []string
	activeTab int
	viewports []viewport.Model

	width  int
	height int
}

// NewModel constructs a viewer for a generated report. hasKeys is false when
// the student has no drills to break down.
func NewModel(rep report.StudentReport, keys report.KeyBreakdown, hasKeys, useColor bool) *Model {
	m := &Model{
		report:   rep,
		keys:     keys,
		hasKeys:  hasKeys,
		useColor: useColor,
		tabs:     []string{"Exercise", "Pool", "Keys"},
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.renderTabContents()
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
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "g", "home":
			m.viewports[m.activeTab].GotoTop()
			return m, nil
		case "G", "end":
			m.viewports[m.activeTab].GotoBottom()
			return m, nil
		default:
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.viewports[m.activeTab].View(), m.width, bodyHeight)
	footer := fitLines(headerStyle.Render(m.renderHelp()), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// ActiveTab returns the index of the selected tab.
func (m *Model) ActiveTab() int {
	return m.activeTab
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
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
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
	tabs := padLines(m.renderTabs(), m.width)
	title := fmt.Sprintf("Typing report for %s", m.report.StudentName)
	if !m.report.GeneratedAt.IsZero() {
		title += "  generated " + m.report.GeneratedAt.Local().Format("2006-01-02 15:04")
	}
	return tabs + "\n" + padLines(headerStyle.Render(truncateLine(title, m.width)), m.width)
}

func (m *Model) renderHelp() string {
	return truncateLine("Nav: left/right  Scroll: up/down/pgup/pgdn  Top/bottom: g/G  Quit: q", m.width)
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabExercise].SetContent(renderMode(m.report.Exercise, width))
	m.viewports[tabPool].SetContent(renderMode(m.report.Pool, width))
	m.viewports[tabKeys].SetContent(m.renderKeys(width))
}

func renderMode(mode report.ModeReport, width int) string {
	parts := make([]string, 0, 5)
	if mode.Stats != nil {
		parts = append(parts, renderSummaryCards(mode.Stats, width))
	}
	parts = append(parts, mode.Summary)
	if mode.Stats != nil {
		parts = append(parts, stats.OverallText(mode.Stats), mode.Latest)
	}
	if mode.SkippedRecords > 0 {
		parts = append(parts, warnStyle.Render(fmt.Sprintf("%d malformed drill records skipped", mode.SkippedRecords)))
	}
	feedback := wrapText(mode.AIFeedback, width)
	if !mode.FeedbackAvailable && mode.Stats != nil {
		feedback = warnStyle.Render(feedback)
	}
	parts = append(parts, sectionStyle.Render(fmt.Sprintf("AI Feedback (%s)", mode.Mode.Label()))+"\n"+feedback)
	return strings.Join(parts, "\n\n")
}

func renderSummaryCards(s *stats.Summary, width int) string {
	cards := []string{
		metricCard("Drills", fmt.Sprintf("%d", s.TotalDrills)),
		metricCard("Avg WPM", fmt.Sprintf("%.1f", s.AvgWPM)),
		metricCard("Best WPM", fmt.Sprintf("%.1f", s.HighestWPM.WPM())),
		metricCard("Avg Acc", fmt.Sprintf("%.1f%%", s.AvgAccuracy)),
		metricCard("Level", string(s.SkillLevel)),
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

func (m *Model) renderKeys(width int) string {
	if !m.hasKeys {
		return "No drills found."
	}
	var buf bytes.Buffer
	if err := stats.RenderSections(&buf, "", m.keys.Latest, m.keys.Past, width, m.useColor); err != nil {
		return fmt.Sprintf("Failed to render key breakdown: %v", err)
	}
	header := headerStyle.Render(fmt.Sprintf("Latest attempts: %d drills  Past attempts: %d drills", m.keys.Latest.Drills, m.keys.Past.Drills))
	return strings.TrimRight(header+"\n"+buf.String(), "\n")
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
