// Package tui provides the Bubble Tea journal interface.
package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/lifelog/internal/corpus"
	"github.com/verte-zerg/lifelog/internal/journal"
	"github.com/verte-zerg/lifelog/internal/model"
	"github.com/verte-zerg/lifelog/internal/stats"
)

type screen int

const (
	screenMenu screen = iota
	screenCompose
	screenRate
	screenBrowse
	screenGoto
	screenConfirmDelete
	screenStats
	screenAbout
	screenMessage
)

const (
	menuEntries = iota
	menuNewEntry
	menuStats
	menuAbout
	menuQuit
)

var menuItems = []string{"entries", "new entry", "stats", "about", "quit"}

const (
	welcomeText = "welcome to lifelog, a log of your uneventful life."
	aboutText   = "a simple diary that you can use from your terminal."
	editorWidth = 64
	editorLines = 16
	entryWidth  = 48
	entryLines  = 12
)

const emptyArt = `
                      wow, such empty
                                       ,
                ,-.       _,---._ __  / \
               /  )    .-'       ` + "`" + `./ /   \
              (  (   ,'            ` + "`" + `/    /|
               \  ` + "`" + `-"             \'\   / |
                ` + "`" + `.              ,  \ \ /  |
                 /` + "`" + `.          ,'-` + "`" + `----Y   |
                (            ;        |   '
                |  ,-.    ,-'         |  /
                |  | (   |            | /
                )  |  \  ` + "`" + `.___________|/
                ` + "`" + `--'   ` + "`" + `--'`

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	dialogStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Padding(0, 1)
)

var ratingColors = map[model.Rating]lipgloss.Color{
	model.RatingAwesome:  lipgloss.Color("#52C41A"),
	model.RatingGood:     lipgloss.Color("#13C2C2"),
	model.RatingOkay:     lipgloss.Color("#FADB14"),
	model.RatingBad:      lipgloss.Color("#EB2F96"),
	model.RatingHorrible: lipgloss.Color("#FF4D4F"),
}

// Model implements the Bubble Tea journal UI. It owns the MonthLog being
// viewed or edited; the store is only asked to load and save.
type Model struct {
	cfg     model.Config
	store   *journal.Store
	scanner *corpus.Scanner

	screen screen
	width  int
	height int

	menuIndex int

	log   *model.MonthLog
	day   int
	first model.Key
	last  model.Key

	editor      textarea.Model
	composeFrom screen
	draft       string
	ratingIndex int

	entryView viewport.Model
	gotoInput textinput.Model

	statsFrom  screen
	statsKey   model.Key
	statsText  string
	monthTable table.Model

	message     string
	messageNext screen
	errMsg      string
}

// NewModel constructs a journal UI model.
func NewModel(cfg model.Config, st *journal.Store, scanner *corpus.Scanner) *Model {
	m := &Model{
		cfg:       cfg,
		store:     st,
		scanner:   scanner,
		menuIndex: menuNewEntry,
		entryView: viewport.New(entryWidth, entryLines),
	}
	m.editor = textarea.New()
	m.editor.Placeholder = "how was your day?"
	m.editor.CharLimit = 0
	m.editor.ShowLineNumbers = false
	m.editor.SetWidth(editorWidth)
	m.editor.SetHeight(editorLines)
	m.monthTable = table.New()
	m.gotoInput = textinput.New()
	m.gotoInput.Prompt = "month: "
	m.gotoInput.Placeholder = "October/2023"
	m.gotoInput.CharLimit = 16
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
		m.errMsg = ""
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenCompose:
			return m.updateCompose(msg)
		case screenRate:
			return m.updateRate(msg)
		case screenBrowse:
			return m.updateBrowse(msg)
		case screenGoto:
			return m.updateGoto(msg)
		case screenConfirmDelete:
			return m.updateConfirmDelete(msg)
		case screenStats:
			return m.updateStats(msg)
		case screenAbout, screenMessage:
			switch msg.String() {
			case "enter", "esc", "q", " ":
				next := screenMenu
				if m.screen == screenMessage {
					next = m.messageNext
				}
				m.screen = next
			}
			return m, nil
		}
	}
	if m.screen == screenCompose {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.screen {
	case screenMenu:
		body = m.renderMenu()
	case screenCompose:
		body = m.renderCompose()
	case screenRate:
		body = m.renderRate()
	case screenBrowse:
		body = m.renderBrowse()
	case screenGoto:
		body = lipgloss.JoinVertical(lipgloss.Left, m.renderBrowse(), m.gotoInput.View())
	case screenConfirmDelete:
		body = dialogStyle.Render(fmt.Sprintf("delete the entry for %s?\n\n%s", m.dayTitle(), mutedStyle.Render("y: delete  n: keep")))
	case screenStats:
		body = m.renderStats()
	case screenAbout:
		body = dialogStyle.Render(titleStyle.Render("about") + "\n\n" + aboutText)
	case screenMessage:
		body = dialogStyle.Render(m.message + "\n\n" + mutedStyle.Render("enter: ok"))
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return body + "\n" + footer
	}
	footerHeight := lipgloss.Height(footer)
	bodyHeight := m.height - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body) + "\n" +
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, footer)
}

func (m *Model) updateLayout() {
	w := minInt(editorWidth, maxInt(20, m.width-8))
	m.editor.SetWidth(w)
	m.editor.SetHeight(minInt(editorLines, maxInt(3, m.height-8)))
	m.entryView.Width = m.entryPaneWidth()
	m.entryView.Height = maxInt(5, minInt(20, m.height-8))
	if m.log != nil {
		m.refreshEntry()
	}
}

func (m *Model) entryPaneWidth() int {
	calendarWidth := 7*calendarCellWidth + 4
	return maxInt(24, minInt(64, m.width-calendarWidth-10))
}

// menu

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k", "shift+tab":
		m.menuIndex = (m.menuIndex + len(menuItems) - 1) % len(menuItems)
	case "down", "j", "tab":
		m.menuIndex = (m.menuIndex + 1) % len(menuItems)
	case "q", "esc":
		return m, tea.Quit
	case "enter":
		switch m.menuIndex {
		case menuEntries:
			m.openBrowse()
		case menuNewEntry:
			return m, m.startNewEntry()
		case menuStats:
			key := journal.KeyOf(m.store.Now())
			if m.log != nil {
				key = m.log.Key()
			}
			m.openStats(key, screenMenu)
		case menuAbout:
			m.screen = screenAbout
		case menuQuit:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) renderMenu() string {
	lines := []string{titleStyle.Render("lifelog"), "", welcomeText, ""}
	for i, item := range menuItems {
		if i == m.menuIndex {
			lines = append(lines, selectedStyle.Render("> "+item))
		} else {
			lines = append(lines, mutedStyle.Render("  "+item))
		}
	}
	return dialogStyle.Render(strings.Join(lines, "\n"))
}

// compose and rate

func (m *Model) startNewEntry() tea.Cmd {
	log, err := m.store.Current()
	if err != nil {
		m.showError(err)
		return nil
	}
	today, err := m.store.TodaysEntry(log)
	if err != nil {
		m.showError(err)
		return nil
	}
	if today.IsRecorded() {
		m.showMessage("you already have an entry for today.", screenMenu)
		return nil
	}
	m.log = log
	m.day = m.store.Now().Day()
	return m.startCompose("", model.RatingOkay, screenMenu)
}

func (m *Model) startCompose(text string, rating model.Rating, from screen) tea.Cmd {
	m.editor.SetValue(text)
	m.ratingIndex = ratingIndex(rating)
	m.composeFrom = from
	m.screen = screenCompose
	return m.editor.Focus()
}

func (m *Model) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editor.Blur()
		m.screen = m.composeFrom
		return m, nil
	case "ctrl+s":
		m.draft = m.editor.Value()
		m.editor.Blur()
		m.screen = screenRate
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *Model) renderCompose() string {
	title := titleStyle.Render("how was your day?") + "  " + mutedStyle.Render(m.dayTitle())
	return dialogStyle.Render(title + "\n\n" + m.editor.View())
}

func (m *Model) updateRate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.ratingIndex > 0 {
			m.ratingIndex--
		}
	case "down", "j":
		if m.ratingIndex < len(model.Ratings)-1 {
			m.ratingIndex++
		}
	case "esc":
		m.screen = screenCompose
		return m, m.editor.Focus()
	case "enter":
		m.saveEntry()
	}
	return m, nil
}

func (m *Model) renderRate() string {
	lines := []string{titleStyle.Render("how was your day?"), ""}
	for i, r := range model.Ratings {
		label := r.Label()
		if i == m.ratingIndex {
			lines = append(lines, ratingStyle(r).Bold(true).Render("(*) "+label))
		} else {
			lines = append(lines, mutedStyle.Render("( ) "+label))
		}
	}
	return dialogStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) saveEntry() {
	rating := model.Ratings[m.ratingIndex]
	next := m.log.Clone()
	if err := next.Update(m.day, rating, m.draft); err != nil {
		m.showError(err)
		return
	}
	if err := m.store.Save(next); err != nil {
		m.showError(err)
		return
	}
	m.log = next
	m.draft = ""
	if m.composeFrom == screenBrowse {
		m.refreshBounds()
		m.refreshEntry()
	}
	m.showMessage("entry saved!", m.composeFrom)
}

// browse

func (m *Model) openBrowse() {
	if !m.refreshBounds() {
		return
	}
	if m.log == nil {
		log, err := m.store.Current()
		if err != nil {
			m.showError(err)
			return
		}
		m.log = log
		m.day = m.store.Now().Day()
	}
	m.screen = screenBrowse
	m.refreshEntry()
}

func (m *Model) refreshBounds() bool {
	first, last, err := m.scanner.Bounds()
	if err != nil {
		m.showError(err)
		return false
	}
	m.first, m.last = first, last
	return true
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.moveDay(-1)
	case "right", "l":
		m.moveDay(1)
	case "up", "k":
		m.moveDay(-7)
	case "down", "j":
		m.moveDay(7)
	case "[":
		m.moveMonth(m.log.Key().Prev())
	case "]":
		m.moveMonth(m.log.Key().Next())
	case "t":
		now := m.store.Now()
		if m.loadMonth(journal.KeyOf(now)) {
			m.day = now.Day()
			m.refreshEntry()
		}
	case "enter", "e":
		entry, err := m.log.Entry(m.day)
		if err != nil {
			m.showError(err)
			return m, nil
		}
		rating, ok := entry.Rating()
		if !ok {
			rating = model.RatingOkay
		}
		return m, m.startCompose(entry.Text(), rating, screenBrowse)
	case "d", "delete":
		if entry, err := m.log.Entry(m.day); err == nil && entry.IsRecorded() {
			m.screen = screenConfirmDelete
		}
	case "g":
		m.gotoInput.SetValue("")
		m.screen = screenGoto
		return m, m.gotoInput.Focus()
	case "s":
		m.openStats(m.log.Key(), screenBrowse)
	case "esc", "q":
		m.screen = screenMenu
	default:
		var cmd tea.Cmd
		m.entryView, cmd = m.entryView.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) moveDay(delta int) {
	day := m.day + delta
	switch {
	case day < 1:
		prev := m.log.Key().Prev()
		if prev.Before(m.first) || !m.loadMonth(prev) {
			return
		}
		day += m.log.Days()
	case day > m.log.Days():
		next := m.log.Key().Next()
		overflow := day - m.log.Days()
		if m.last.Before(next) || !m.loadMonth(next) {
			return
		}
		day = overflow
	}
	m.day = day
	m.refreshEntry()
}

func (m *Model) moveMonth(key model.Key) {
	if key.Before(m.first) || m.last.Before(key) {
		return
	}
	if !m.loadMonth(key) {
		return
	}
	m.day = minInt(m.day, m.log.Days())
	m.refreshEntry()
}

func (m *Model) loadMonth(key model.Key) bool {
	log, err := m.store.LoadMonth(key)
	if err != nil {
		m.showError(err)
		return false
	}
	m.log = log
	return true
}

func (m *Model) refreshEntry() {
	m.entryView.SetContent(m.entryText())
	m.entryView.GotoTop()
}

func (m *Model) entryText() string {
	entry, err := m.log.Entry(m.day)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	rating, ok := entry.Rating()
	if !ok {
		if m.cfg.EmptyArt {
			return mutedStyle.Render(strings.Trim(emptyArt, "\n"))
		}
		return mutedStyle.Render(model.UnrecordedText)
	}
	width := maxInt(1, m.entryView.Width)
	return "rating: " + ratingStyle(rating).Render(rating.Label()) + "\n\n" + wrapText(entry.Text(), width)
}

func (m *Model) renderBrowse() string {
	cal := renderCalendar(m.log, m.day, m.store.Now(), m.cfg.WeekStart)
	entry := titleStyle.Render(m.dayTitle()) + "\n\n" + m.entryView.View()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(cal),
		paneStyle.Width(m.entryView.Width+2).Render(entry),
	)
}

func (m *Model) dayTitle() string {
	if m.log == nil {
		return ""
	}
	return fmt.Sprintf("%d %s %d", m.day, m.log.Month, m.log.Year)
}

func (m *Model) updateGoto(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.gotoInput.Blur()
		m.screen = screenBrowse
		return m, nil
	case "enter":
		key, err := model.ParseKey(strings.TrimSpace(m.gotoInput.Value()))
		if err != nil {
			m.showError(err)
			return m, nil
		}
		if key.Before(m.first) || m.last.Before(key) {
			m.errMsg = fmt.Sprintf("%s is outside %s - %s", key, m.first, m.last)
			return m, nil
		}
		m.gotoInput.Blur()
		m.screen = screenBrowse
		m.moveMonth(key)
		return m, nil
	}
	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

func (m *Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		next := m.log.Clone()
		if err := next.Delete(m.day); err != nil {
			m.showError(err)
			return m, nil
		}
		if err := m.store.Save(next); err != nil {
			m.showError(err)
			m.screen = screenBrowse
			return m, nil
		}
		m.log = next
		m.refreshEntry()
		m.showMessage("entry deleted.", screenBrowse)
	case "n", "esc":
		m.screen = screenBrowse
	}
	return m, nil
}

// stats

func (m *Model) openStats(key model.Key, from screen) {
	log, err := m.store.LoadMonth(key)
	if err != nil {
		m.showError(err)
		return
	}
	report, err := stats.BuildReport(m.store, model.StatsConfig{All: true})
	if err != nil {
		m.showError(err)
		return
	}
	var buf bytes.Buffer
	if err := stats.RenderHistogram(&buf, key.String(), log.Statistics(), minInt(60, maxInt(40, m.width-8)), false); err != nil {
		m.showError(err)
		return
	}
	m.statsKey = key
	m.statsText = strings.TrimRight(buf.String(), "\n")
	m.monthTable = buildMonthTable(report.Months, m.tableHeight())
	m.statsFrom = from
	m.screen = screenStats
}

func (m *Model) tableHeight() int {
	if m.height == 0 {
		return 8
	}
	return maxInt(3, m.height-lipgloss.Height(m.statsText)-10)
}

func buildMonthTable(months []model.MonthSummary, height int) table.Model {
	headers, rows := stats.MonthTableData(months)
	widths := stats.ColumnWidths(headers, rows)
	tableRows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		tableRows = append(tableRows, table.Row(row))
	}
	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		columns[i] = table.Column{Title: h, Width: widths[i]}
	}
	styles := table.DefaultStyles()
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#4A4A4A"))
	// Start on the most recent month.
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithHeight(height),
		table.WithFocused(true),
		table.WithStyles(styles),
	)
	t.GotoBottom()
	return t
}

func (m *Model) updateStats(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.screen = m.statsFrom
		return m, nil
	case "[":
		m.openStats(m.statsKey.Prev(), m.statsFrom)
		return m, nil
	case "]":
		m.openStats(m.statsKey.Next(), m.statsFrom)
		return m, nil
	}
	var cmd tea.Cmd
	m.monthTable, cmd = m.monthTable.Update(msg)
	return m, cmd
}

func (m *Model) renderStats() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		paneStyle.Render(m.statsText),
		paneStyle.Render(m.monthTable.View()),
	)
}

// footer and messages

func (m *Model) renderFooter() string {
	var help string
	switch m.screen {
	case screenMenu:
		help = "up/down: select  enter: open  q: quit"
	case screenCompose:
		help = "ctrl+s: continue  esc: cancel"
	case screenRate:
		help = "up/down: rating  enter: save  esc: back"
	case screenBrowse:
		help = "arrows: day  [/]: month  g: go to  t: today  e: edit  d: delete  s: stats  esc: menu"
	case screenGoto:
		help = "enter: go  esc: cancel"
	case screenStats:
		help = "[/]: month  up/down: scroll  esc: back"
	default:
		help = "enter: ok"
	}
	footer := footerStyle.Render(help)
	if m.errMsg != "" {
		footer = errorStyle.Render(m.errMsg) + "\n" + footer
	}
	return footer
}

func (m *Model) showMessage(text string, next screen) {
	m.message = text
	m.messageNext = next
	m.screen = screenMessage
}

func (m *Model) showError(err error) {
	m.errMsg = err.Error()
}

func ratingIndex(r model.Rating) int {
	for i, candidate := range model.Ratings {
		if candidate == r {
			return i
		}
	}
	return ratingIndex(model.RatingOkay)
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
