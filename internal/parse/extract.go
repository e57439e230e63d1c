package parse

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/Zuo-Peng/tkb/internal/config"
)

// Options describes the markup conventions of the timetable page.
type Options struct {
	WeekMarker      string // class of the week header cell
	AfternoonMarker string // class on the label cell of an afternoon row
	EveningMarker   string // class on the label cell of an evening row
	MinCells        int    // rows with fewer cells are layout noise
	DayColumnOffset int    // columns before Monday; 1 skips the session label
}

func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		WeekMarker:      cfg.WeekMarker,
		AfternoonMarker: cfg.AfternoonMarker,
		EveningMarker:   cfg.EveningMarker,
		MinCells:        cfg.MinCells,
		DayColumnOffset: cfg.DayColumnOffset,
	}
}

// NewID returns a fresh record identifier.
func NewID() string {
	return gonanoid.Must()
}

type Extractor struct {
	opts   Options
	logger *slog.Logger
	newID  func() string
}

func NewExtractor(opts Options, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{
		opts:   opts,
		logger: logger,
		newID:  NewID,
	}
}

// Extract parses src with the default UMS conventions.
func Extract(src string) []ClassSession {
	return NewExtractor(DefaultOptions(), nil).Extract(src)
}

// scanState is the accumulator carried across rows in document order.
type scanState struct {
	week string
	out  []ClassSession
}

// Extract returns the class sessions of src in row, column, link order.
// It never fails: unusable input yields an empty slice.
func (e *Extractor) Extract(src string) (sessions []ClassSession) {
	if strings.TrimSpace(src) == "" {
		return []ClassSession{}
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("timetable parser panicked", "panic", r)
			sessions = []ClassSession{}
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		e.logger.Warn("parse timetable html", "error", err)
		return []ClassSession{}
	}

	st := scanState{out: []ClassSession{}}
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		st = e.foldRow(st, row)
	})

	e.logger.Debug("timetable extracted", "sessions", len(st.out), "last_week", st.week)
	return st.out
}

// foldRow looks only at the row's own cells. Elements of a table nested in
// a cell belong to the nested rows, which the fold reaches on its own.
func (e *Extractor) foldRow(st scanState, row *goquery.Selection) scanState {
	if headers := ownElements(row, e.isWeekHeader); len(headers) > 0 {
		st.week = strings.TrimSpace(ownText(headers[0]))
		return st
	}

	cells := row.ChildrenFiltered("td")
	if cells.Length() < e.opts.MinCells {
		return st
	}

	session := e.sessionOf(cells.First())
	cells.Each(func(col int, cell *goquery.Selection) {
		for _, link := range ownElements(cell, isElement(atom.A)) {
			st.out = append(st.out, e.record(link, st.week, col-e.opts.DayColumnOffset, session))
		}
	})
	return st
}

func (e *Extractor) isWeekHeader(n *html.Node) bool {
	return goquery.NewDocumentFromNode(n).HasClass(e.opts.WeekMarker)
}

// sessionOf reads the session from the label cell; evening wins over afternoon.
func (e *Extractor) sessionOf(label *goquery.Selection) Session {
	session := SessionMorning
	if e.opts.AfternoonMarker != "" && label.HasClass(e.opts.AfternoonMarker) {
		session = SessionAfternoon
	}
	if e.opts.EveningMarker != "" && label.HasClass(e.opts.EveningMarker) {
		session = SessionEvening
	}
	return session
}

// record builds one session from a link. The title attribute is kept as is.
func (e *Extractor) record(n *html.Node, week string, day int, session Session) ClassSession {
	link := goquery.NewDocumentFromNode(n).Selection
	code := ""
	if strong := ownElements(link, isElement(atom.Strong)); len(strong) > 0 {
		code = strings.TrimSpace(ownText(strong[0]))
	}
	meta := ParseMetadata(link.AttrOr("data-content", ""))
	return ClassSession{
		ID:         e.newID(),
		CourseCode: code,
		Title:      link.AttrOr("title", ""),
		Room:       meta.Room,
		StartSlot:  meta.StartSlot,
		EndSlot:    meta.EndSlot,
		Slots:      fmt.Sprintf("%d - %d", meta.StartSlot, meta.EndSlot),
		Teacher:    meta.Teacher,
		WeekRange:  week,
		DayOfWeek:  day,
		Session:    session,
	}
}

func isElement(a atom.Atom) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.DataAtom == a }
}

// ownElements returns, in document order, the elements below s that match
// and are not inside a nested <tr>. Each node of the document is therefore
// visited by exactly one row, which keeps extraction linear in the input.
func ownElements(s *goquery.Selection, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	walkOwn(s.Nodes, func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
	})
	return out
}

// ownText is the text content of n without the text of nested rows.
func ownText(n *html.Node) string {
	var b strings.Builder
	walkOwn([]*html.Node{n}, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}

func walkOwn(roots []*html.Node, visit func(*html.Node)) {
	stack := make([]*html.Node, 0, 16)
	for i := len(roots) - 1; i >= 0; i-- {
		stack = pushChildren(stack, roots[i])
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			continue
		}
		visit(n)
		stack = pushChildren(stack, n)
	}
}

// pushChildren pushes n's children last-first so they pop in document order.
func pushChildren(stack []*html.Node, n *html.Node) []*html.Node {
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		stack = append(stack, c)
	}
	return stack
}
