package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zuo-Peng/tkb/internal/analysis"
	"github.com/Zuo-Peng/tkb/internal/parse"
	"github.com/Zuo-Peng/tkb/internal/render"
)

const chartBarWidth = 20

// renderDetail renders the right panel for one session.
func renderDetail(c parse.ClassSession, opts render.Options) string {
	field := func(label, value string) string {
		return styleTitle.Render(fmt.Sprintf("%-9s", label)) + " " + value
	}
	lines := []string{
		styleCardValue.Render(c.CourseCode),
		c.Title,
		"",
		field("Day", render.DayName(opts.DayNames, c.DayOfWeek)),
		field("Session", c.Session.Label()),
		field("Room", c.Room),
		field("Slots", fmt.Sprintf("%s (%d periods)", c.Slots, c.Periods())),
		field("Teacher", c.Teacher),
		field("Week", render.WeekLabel(c.WeekRange, opts.WeekLabelTrim)),
		"",
		styleTitle.Render("id " + c.ID),
	}
	return strings.Join(lines, "\n")
}

// renderHeader renders the stat cards, the day chart and the room and subject rankings.
func renderHeader(r *analysis.Result, opts render.Options, width int) string {
	st := r.Statistics
	card := func(label string, value int) string {
		return styleCard.Render(styleTitle.Render(label) + "\n" + styleCardValue.Render(strconv.Itoa(value)))
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Sessions", st.TotalClasses),
		card("Periods", st.TotalPeriods),
		card("Subjects", st.UniqueSubjects),
		card("Rooms", len(st.UniqueRooms)),
		card("Weeks", st.WeekCount),
	)

	paintBar := func(s string) string { return styleBar.Render(s) }
	chart := styleTitle.Render("Classes by day") + "\n" +
		strings.Join(render.DayChart(st, opts.DayNames, chartBarWidth, paintBar), "\n")

	rooms := []string{styleTitle.Render("Top rooms")}
	for _, u := range r.TopRooms {
		rooms = append(rooms, fmt.Sprintf("%s %d", render.Fit(u.Name, 12), u.Count))
	}

	subjects := []string{styleTitle.Render("Top subjects")}
	for _, u := range r.TopSubjects {
		subjects = append(subjects, fmt.Sprintf("%s %d", render.Fit(u.Name, 24), u.Count))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		chart, "    ", strings.Join(rooms, "\n"), "    ", strings.Join(subjects, "\n"))
	return lipgloss.NewStyle().MaxWidth(width).Render(lipgloss.JoinVertical(lipgloss.Left, cards, body))
}

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}
