package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/tkb/internal/analysis"
	"github.com/Zuo-Peng/tkb/internal/parse"
	"github.com/Zuo-Peng/tkb/internal/stats"
)

const (
	colorReset   = "\033[0m"
	colorBold    = "\033[1m"
	colorMorning = "\033[33m"   // amber
	colorAfter   = "\033[34m"   // blue
	colorEvening = "\033[35m"   // magenta
	colorDim     = "\033[2m"
	colorBar     = "\033[1;36m" // bold cyan
)

const barWidth = 30

type Options struct {
	DayNames      []string // Monday first
	WeekLabelTrim string   // prefix removed from week labels in the table
	Width         int      // wrap width (0 = no wrap)
	Color         bool
}

type painter struct{ on bool }

func (p painter) paint(color, s string) string {
	if !p.on || s == "" {
		return s
	}
	return color + s + colorReset
}

func sessionColor(s parse.Session) string {
	switch s {
	case parse.SessionAfternoon:
		return colorAfter
	case parse.SessionEvening:
		return colorEvening
	default:
		return colorMorning
	}
}

// DayName returns names[day], or "?" when day is outside the week.
func DayName(names []string, day int) string {
	if day < 0 || day >= len(names) {
		return "?"
	}
	return names[day]
}

// WeekLabel shortens a week header for tables.
func WeekLabel(week, trim string) string {
	if trim != "" {
		week = strings.ReplaceAll(week, trim, "")
	}
	return strings.Join(strings.Fields(week), " ")
}

// Fit truncates or pads s to exactly width terminal columns.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// Bar draws count against peak as a run of block characters at most width long.
func Bar(count, peak, width int) string {
	if count <= 0 || peak <= 0 || width <= 0 {
		return ""
	}
	n := min(count*width/peak, width)
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// Report renders the statistics cards, the day chart, the top rooms and the
// session table as plain text.
func Report(r *analysis.Result, opts Options) string {
	var b strings.Builder
	p := painter{on: opts.Color}
	st := r.Statistics

	writeLine := func(s string) {
		for _, wl := range wrapLine(s, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
		}
	}

	writeLine(p.paint(colorDim, "--- timetable report ---"))
	if r.Empty {
		writeLine("no timetable data found")
		return b.String()
	}

	writeLine(fmt.Sprintf("%s %d   %s %d   %s %d   %s %d   %s %d",
		p.paint(colorBold, "Sessions"), st.TotalClasses,
		p.paint(colorBold, "Periods"), st.TotalPeriods,
		p.paint(colorBold, "Subjects"), st.UniqueSubjects,
		p.paint(colorBold, "Rooms"), len(st.UniqueRooms),
		p.paint(colorBold, "Weeks"), st.WeekCount))
	if day := st.BusiestDay(); day >= 0 {
		writeLine(fmt.Sprintf("%s %s (%d classes)",
			p.paint(colorBold, "Busiest day"), DayName(opts.DayNames, day), st.DayDistribution[day]))
	}
	writeLine("")

	writeLine(p.paint(colorBold, "Classes by day"))
	paintBar := func(s string) string { return p.paint(colorBar, s) }
	for _, line := range DayChart(st, opts.DayNames, barWidth, paintBar) {
		writeLine("  " + line)
	}
	writeLine("")

	writeLine(p.paint(colorBold, "Top rooms"))
	for _, u := range r.TopRooms {
		writeLine(fmt.Sprintf("  %s %d", Fit(u.Name, 16), u.Count))
	}
	writeLine("")

	writeLine(p.paint(colorBold, "Top subjects"))
	for _, u := range r.TopSubjects {
		writeLine(fmt.Sprintf("  %s %d", Fit(u.Name, colTitle), u.Count))
	}
	writeLine("")

	writeLine(p.paint(colorBold, "Sessions"))
	writeLine(p.paint(colorDim, "  "+TableHeader()))
	for _, c := range r.Sessions {
		line := TableRow(c, opts.DayNames, opts.WeekLabelTrim)
		writeLine("  " + p.paint(sessionColor(c.Session), line))
	}
	return b.String()
}

// DayChart returns one line per weekday: name, bar and count. paintBar, if
// set, styles the bar without affecting alignment.
func DayChart(st *stats.Statistics, dayNames []string, width int, paintBar func(string) string) []string {
	peak := 0
	for _, n := range st.DayDistribution {
		peak = max(peak, n)
	}
	lines := make([]string, 0, stats.DaysPerWeek)
	for day, n := range st.DayDistribution {
		bar := Bar(n, peak, width)
		pad := strings.Repeat(" ", width-utf8.RuneCountInString(bar))
		if paintBar != nil {
			bar = paintBar(bar)
		}
		lines = append(lines, fmt.Sprintf("%s %s%s %d", Fit(DayName(dayNames, day), 9), bar, pad, n))
	}
	return lines
}

const (
	colCode  = 10
	colTitle = 28
	colWhen  = 18
	colRoom  = 10
	colSlots = 8
)

func TableHeader() string {
	return strings.Join([]string{
		Fit("CODE", colCode),
		Fit("TITLE", colTitle),
		Fit("WHEN", colWhen),
		Fit("ROOM", colRoom),
		Fit("SLOTS", colSlots),
		"WEEK",
	}, " ")
}

func TableRow(c parse.ClassSession, dayNames []string, weekTrim string) string {
	when := DayName(dayNames, c.DayOfWeek) + " - " + c.Session.Label()
	return strings.Join([]string{
		Fit(c.CourseCode, colCode),
		Fit(c.Title, colTitle),
		Fit(when, colWhen),
		Fit(c.Room, colRoom),
		Fit(c.Slots, colSlots),
		WeekLabel(c.WeekRange, weekTrim),
	}, " ")
}

var tsvReplacer = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

// TSV writes one tab-separated line per session for piping into other tools:
// id, courseCode, title, day, session, room, startSlot, endSlot, teacher, week.
func TSV(w io.Writer, sessions []parse.ClassSession) error {
	for _, c := range sessions {
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%d\t%d\t%s\t%s\n",
			c.ID,
			tsvReplacer.Replace(c.CourseCode),
			tsvReplacer.Replace(c.Title),
			c.DayOfWeek,
			c.Session,
			tsvReplacer.Replace(c.Room),
			c.StartSlot,
			c.EndSlot,
			tsvReplacer.Replace(c.Teacher),
			tsvReplacer.Replace(c.WeekRange),
		)
		if err != nil {
			return fmt.Errorf("write tsv: %w", err)
		}
	}
	return nil
}
