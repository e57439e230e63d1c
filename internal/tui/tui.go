package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zuo-Peng/tkb/internal/analysis"
	"github.com/Zuo-Peng/tkb/internal/parse"
	"github.com/Zuo-Peng/tkb/internal/render"
)

const debounceDelay = 150 * time.Millisecond

// message types

type debounceTickMsg struct {
	query string
}

// model

type model struct {
	result      *analysis.Result
	opts        render.Options
	query       string
	visible     []parse.ClassSession
	cursor      int
	listOffset  int
	filterInput textinput.Model
	detail      viewport.Model
	detailID    string // session currently shown in the detail panel
	width       int
	height      int
	ready       bool
	quitting    bool
	copied      *parse.ClassSession
}

func initialModel(r *analysis.Result, opts render.Options) model {
	ti := textinput.New()
	ti.Placeholder = "Filter by code, title, room, teacher, week..."
	ti.Focus()
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	m := model{
		result:      r,
		opts:        opts,
		visible:     r.Sessions,
		filterInput: ti,
		detail:      viewport.New(0, 0),
	}
	m.syncDetail()
	return m
}

// Run starts the dashboard and blocks until it exits. If the user selects a
// session, its table row is copied to the clipboard.
func Run(r *analysis.Result, opts render.Options) error {
	m := initialModel(r, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	fm := finalModel.(model)
	if fm.copied != nil {
		return copySession(*fm.copied, opts)
	}
	return nil
}

// copySession writes a session's table row to the clipboard, falling back to stdout.
func copySession(c parse.ClassSession, opts render.Options) error {
	line := strings.TrimSpace(render.TableRow(c, opts.DayNames, opts.WeekLabelTrim))
	if err := clipboard.WriteAll(line); err != nil {
		fmt.Printf("%s\n", line)
		return nil
	}
	fmt.Printf("Copied to clipboard: %s\n", line)
	return nil
}

// Init starts the cursor blink; the data is already loaded.
func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.detail = newViewport(m.detailWidth(), m.panelHeight())
		m.detailID = ""
		m.syncDetail()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Copy):
			if c, ok := m.selected(); ok {
				m.copied = &c
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, keys.Up):
			m.moveCursor(-1)
			return m, nil

		case key.Matches(msg, keys.Down):
			m.moveCursor(1)
			return m, nil

		case key.Matches(msg, keys.First):
			m.moveCursor(-m.cursor)
			return m, nil

		case key.Matches(msg, keys.Last):
			m.moveCursor(len(m.visible))
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.moveCursor(-m.visibleItems())
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.moveCursor(m.visibleItems())
			return m, nil

		case key.Matches(msg, keys.DetailUp):
			m.detail.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.DetailDown):
			m.detail.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.ClearFilter):
			m.filterInput.SetValue("")
			m.query = ""
			m.applyFilter("")
			return m, nil
		}

		// Pass remaining keys to text input
		var tiCmd tea.Cmd
		m.filterInput, tiCmd = m.filterInput.Update(msg)
		cmds = append(cmds, tiCmd)

		newQuery := m.filterInput.Value()
		if newQuery != m.query {
			m.query = newQuery
			cmds = append(cmds, scheduleDebouncedFilter(newQuery))
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if !m.ready || len(m.visible) == 0 {
			return m, nil
		}

		region, itemIdx := m.hitTest(msg.X, msg.Y)
		switch {
		case region == regionList && msg.Button == tea.MouseButtonWheelUp:
			m.moveCursor(-1)
		case region == regionList && msg.Button == tea.MouseButtonWheelDown:
			m.moveCursor(1)
		case region == regionList && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			if itemIdx >= 0 && itemIdx < len(m.visible) {
				m.moveCursor(itemIdx - m.cursor)
			}
		case region == regionDetail:
			var vpCmd tea.Cmd
			m.detail, vpCmd = m.detail.Update(msg)
			return m, vpCmd
		}
		return m, nil

	case debounceTickMsg:
		// Only filter if the query hasn't changed since the tick was scheduled
		if msg.query == m.query {
			m.applyFilter(msg.query)
		}
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

// View renders the full dashboard.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	detailW := m.detailWidth()
	panelH := m.panelHeight()

	header := renderHeader(m.result, m.opts, m.width)
	inputRow := m.filterInput.View()

	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(m.renderList(listW, panelH))

	m.detail.Width = detailW
	m.detail.Height = panelH
	detailPanel := styleActiveBorder.
		Width(detailW).
		Height(panelH).
		Render(m.detail.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, detailPanel)

	return lipgloss.JoinVertical(lipgloss.Left, header, inputRow, panels, m.statusBar())
}

// helper methods

func (m *model) applyFilter(query string) {
	m.visible = filterSessions(m.result.Sessions, query)
	m.cursor = 0
	m.listOffset = 0
	m.syncDetail()
}

func (m *model) moveCursor(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.visible)-1)
	m.adjustListScroll(m.panelHeight())
	m.syncDetail()
}

// syncDetail shows the selected session in the detail panel.
func (m *model) syncDetail() {
	c, ok := m.selected()
	if !ok {
		m.detail.SetContent("")
		m.detailID = ""
		return
	}
	if c.ID == m.detailID {
		return
	}
	m.detail.SetContent(renderDetail(c, m.opts))
	m.detail.GotoTop()
	m.detailID = c.ID
}

func (m model) selected() (parse.ClassSession, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return parse.ClassSession{}, false
	}
	return m.visible[m.cursor], true
}

func (m model) visibleItems() int {
	return max(m.panelHeight()/linesPerItem, 1)
}

func (m model) listWidth() int {
	if m.width <= 0 {
		return 40
	}
	// 50% for list, minus border padding
	return max(m.width*50/100-4, 20)
}

func (m model) detailWidth() int {
	if m.width <= 0 {
		return 40
	}
	return max(m.width*50/100-4, 20)
}

func (m model) headerHeight() int {
	return lipgloss.Height(renderHeader(m.result, m.opts, m.width))
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// Subtract header, input row (1), status bar (1) and borders (2)
	return max(m.height-m.headerHeight()-4, 4)
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionDetail
)

// hitTest maps terminal coordinates to a panel region and list item index.
func (m model) hitTest(x, y int) (mouseRegion, int) {
	contentYStart := m.headerHeight() + 2 // input row (1) + top border (1)
	contentYEnd := contentYStart + m.panelHeight() - 1
	if y < contentYStart || y > contentYEnd {
		return regionNone, -1
	}
	relY := y - contentYStart

	lw := m.listWidth()
	if x >= 1 && x <= lw {
		return regionList, m.listOffset + relY/linesPerItem
	}
	if x > lw+2 {
		return regionDetail, -1
	}
	return regionNone, -1
}

func (m model) statusBar() string {
	parts := []string{fmt.Sprintf("%d/%d sessions", len(m.visible), len(m.result.Sessions))}
	for _, b := range keys.statusHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

func scheduleDebouncedFilter(query string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceTickMsg{query: query}
	})
}
