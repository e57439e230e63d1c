package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/tkb/internal/parse"
	"github.com/Zuo-Peng/tkb/internal/render"
)

// linesPerItem is the number of terminal lines each session occupies.
const linesPerItem = 2

// filterSessions keeps the sessions whose code, title, room, teacher or week
// contain every word of query, case-insensitively.
func filterSessions(sessions []parse.ClassSession, query string) []parse.ClassSession {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return sessions
	}

	var out []parse.ClassSession
	for _, c := range sessions {
		haystack := strings.ToLower(strings.Join([]string{
			c.CourseCode, c.Title, c.Room, c.Teacher, c.WeekRange,
		}, " "))
		match := true
		for _, term := range terms {
			if !strings.Contains(haystack, term) {
				match = false
				break
			}
		}
		if match {
			out = append(out, c)
		}
	}
	return out
}

// renderList renders the left panel: the session list with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.visible) == 0 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No sessions")
	}

	var lines []string
	for i, c := range m.visible {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, m.formatSessionLines(c, width, i == m.cursor)...)
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatSessionLines formats a session as two lines:
//
//	line 1: [>] code  day - session  room
//	line 2:    title (dimmed)
func (m model) formatSessionLines(c parse.ClassSession, width int, selected bool) []string {
	var style lipgloss.Style
	switch c.Session {
	case parse.SessionAfternoon:
		style = styleSessionAfternoon
	case parse.SessionEvening:
		style = styleSessionEvening
	default:
		style = styleSessionMorning
	}

	when := render.DayName(m.opts.DayNames, c.DayOfWeek) + " - " + c.Session.Label()
	code := runewidth.Truncate(c.CourseCode, 10, "")
	rest := fmt.Sprintf(" %s %s", when, c.Room)
	restMax := width - 2 - runewidth.StringWidth(code)
	if restMax < 0 {
		restMax = 0
	}
	rest = runewidth.Truncate(rest, restMax, "")

	line1 := code + style.Render(rest)
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	titleMax := width - 4
	if titleMax < 0 {
		titleMax = 0
	}
	title := runewidth.Truncate(c.Title, titleMax, "")
	line2 := "    " + lipgloss.NewStyle().Foreground(colorDim).Render(title)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
