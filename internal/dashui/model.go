// Package dashui provides the Bubble Tea dashboard interface.
package dashui

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/elotrack/internal/history"
	"github.com/verte-zerg/elotrack/internal/model"
	"github.com/verte-zerg/elotrack/internal/summary"
)

const (
	tabOverview = iota
	tabDays
	tabTrend
)

const plotHeight = 10

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
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea dashboard UI.
type Model struct {
	store *history.Store
	cfg   model.QueryConfig

	summaries []model.DaySummary
	days      []model.Day
	errMsg    string

	tabs       []string
	activeTab  int
	viewports  []viewport.Model
	daysTable  table.Model
	daysLayout tableLayout

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
}

// NewModel constructs a dashboard model.
func NewModel(st *history.Store, cfg model.QueryConfig) *Model {
	if cfg.Window <= 0 {
		cfg.Window = 7
	}
	m := &Model{
		store: st,
		cfg:   cfg,
		tabs:  []string{"Overview", "Days", "Trend"},
	}
	m.initInputs()
	m.initDaysTable()
	m.initViewports()
	m.refresh()
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
		if msg.Type == tea.KeyCtrlC || (!m.filterMode && msg.String() == "q") {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if m.activeTab == tabDays {
			m.daysTable.Focus()
		} else {
			m.daysTable.Blur()
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "/":
			return m.startFilter()
		case "g", "home":
			if m.activeTab == tabDays {
				m.daysTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabDays {
				m.daysTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabDays {
				var cmd tea.Cmd
				m.daysTable, cmd = m.daysTable.Update(msg)
				return m, cmd
			}
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
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Days (0 = all): "),
		newFilterInput("Avg window: "),
	}
	m.setInputsFromConfig()
}

func (m *Model) initDaysTable() {
	m.daysTable = table.New(
		table.WithColumns(daysTableColumns()),
		table.WithHeight(1),
	)
	m.daysTable.SetStyles(daysTableStyles())
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	if len(m.filterInputs) == 0 {
		return
	}
	if m.cfg.Days > 0 {
		m.filterInputs[0].SetValue(strconv.Itoa(m.cfg.Days))
	} else {
		m.filterInputs[0].SetValue("")
	}
	m.filterInputs[1].SetValue(strconv.Itoa(m.cfg.Window))
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
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
	m.setDaysTableSize(m.width, vpHeight)
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
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
	if m.activeTab == tabDays {
		m.daysTable.Focus()
	} else {
		m.daysTable.Blur()
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
	tabs := padLines(m.renderTabs(), m.width)
	filters := padLines(m.renderFilterSummary(), m.width)
	return tabs + "\n" + filters
}

func (m *Model) renderFilterSummary() string {
	days := "all"
	if m.cfg.Days > 0 {
		days = strconv.Itoa(m.cfg.Days)
	}
	line := fmt.Sprintf("Settings: days=%s  window=%d  file=%s", days, m.cfg.Window, m.store.Path())
	return headerStyle.Render(truncateLine(line, m.width))
}

func (m *Model) renderHelp() string {
	return headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Settings: /  Quit: q")
}

func (m *Model) renderFilterHelp() string {
	return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return m.renderFilterHelp()
	}
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(m.errMsg)
	}
	return m.renderHelp()
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Settings (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if m.activeTab == tabDays {
		if len(m.summaries) == 0 {
			return fitLines("No Elo data recorded yet.", m.width, height)
		}
		view := tableMutedStyle.Render(m.daysTable.View())
		return fitLines(view, m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refresh() {
	h, err := m.store.Load()
	if err != nil {
		m.errMsg = err.Error()
		m.summaries = nil
		m.days = nil
		m.renderTabContents()
		return
	}
	summaries, err := summary.Range(h, m.cfg.Days)
	if err != nil {
		m.errMsg = err.Error()
		m.summaries = nil
		m.days = nil
		m.renderTabContents()
		return
	}
	m.errMsg = ""
	m.summaries = summaries
	days := h.SortedDays()
	if m.cfg.Days > 0 && len(days) > m.cfg.Days {
		days = days[len(days)-m.cfg.Days:]
	}
	m.days = days

	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.daysTable.SetRows(buildDayRows(m.summaries))
	m.daysLayout.rowCount = len(m.summaries)
	m.setDaysTableSize(width, bodyHeight)
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	if m.errMsg != "" {
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load history.")
		}
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.summaries, m.cfg.Window, width))
	m.viewports[tabTrend].SetContent(renderTrend(m.summaries, m.cfg.Window, width))
}

func renderOverview(summaries []model.DaySummary, window, width int) string {
	if len(summaries) == 0 {
		return "No Elo data recorded yet."
	}
	cards := renderMetricCards(summaries, width)
	trend := renderTrend(summaries, window, width)
	return strings.TrimRight(cards+"\n\n"+trend, "\n")
}

func renderMetricCards(summaries []model.DaySummary, width int) string {
	if len(summaries) == 0 {
		return "No Elo data recorded yet."
	}
	totalSets := 0
	peak := summaries[0].High
	low := summaries[0].Low
	for _, s := range summaries {
		totalSets += s.SetsPlayed
		if s.High > peak {
			peak = s.High
		}
		if s.Low < low {
			low = s.Low
		}
	}
	latest := summaries[len(summaries)-1].End
	net := latest - summaries[0].Start
	cards := []string{
		metricCard("Days", fmt.Sprintf("%d", len(summaries))),
		metricCard("Sets", fmt.Sprintf("%d", totalSets)),
		metricCard("Latest", fmt.Sprintf("%d", latest)),
		metricCard("Net", summary.FormatChange(net)),
		metricCard("Peak", fmt.Sprintf("%d", peak)),
		metricCard("Low", fmt.Sprintf("%d", low)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderTrend(summaries []model.DaySummary, window, width int) string {
	var buf bytes.Buffer
	if err := summary.RenderTrendWithSize(&buf, summaries, window, width, plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render trend: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func daysTableColumns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Sets", Width: 4},
		{Title: "Start", Width: 5},
		{Title: "End", Width: 5},
		{Title: "Δ Elo", Width: 6},
		{Title: "Peak", Width: 5},
		{Title: "Low", Width: 5},
	}
}

func buildDayRows(summaries []model.DaySummary) []table.Row {
	rows := make([]table.Row, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, table.Row{
			history.DateKey(s.Date),
			fmt.Sprintf("%d", s.SetsPlayed),
			fmt.Sprintf("%d", s.Start),
			fmt.Sprintf("%d", s.End),
			summary.FormatChange(s.Change),
			fmt.Sprintf("%d", s.High),
			fmt.Sprintf("%d", s.Low),
		})
	}
	return rows
}

func daysTableStyles() table.Styles {
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

func (m *Model) setDaysTableSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	if m.daysLayout.width == width && m.daysLayout.height == viewportHeight {
		return
	}
	m.daysLayout.width = width
	m.daysLayout.height = viewportHeight
	m.daysTable.SetWidth(width)
	m.daysTable.SetHeight(viewportHeight)
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.refresh()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	daysInput := strings.TrimSpace(m.filterInputs[0].Value())
	days := 0
	if daysInput != "" {
		parsed, err := strconv.Atoi(daysInput)
		if err != nil || parsed < 0 {
			return fmt.Errorf("invalid days value (use 0 or positive integer)")
		}
		days = parsed
	}

	windowInput := strings.TrimSpace(m.filterInputs[1].Value())
	window := m.cfg.Window
	if windowInput != "" {
		parsed, err := strconv.Atoi(windowInput)
		if err != nil || parsed < 1 {
			return fmt.Errorf("invalid window value (use integer >= 1)")
		}
		window = parsed
	}

	m.cfg = model.QueryConfig{Days: days, Window: window}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
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
