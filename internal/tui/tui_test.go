package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zuo-Peng/tkb/internal/analysis"
	"github.com/Zuo-Peng/tkb/internal/config"
	"github.com/Zuo-Peng/tkb/internal/input"
	"github.com/Zuo-Peng/tkb/internal/parse"
	"github.com/Zuo-Peng/tkb/internal/render"
)

func sampleModel(t *testing.T) model {
	t.Helper()
	cfg := config.Default()
	r := analysis.Run(parse.NewExtractor(parse.DefaultOptions(), nil), input.Sample(), cfg.TopRooms)
	m := initialModel(r, render.Options{DayNames: cfg.DayNames, WeekLabelTrim: cfg.WeekLabelTrim})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	return next.(model)
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func TestFilterSessions(t *testing.T) {
	t.Parallel()
	sessions := []parse.ClassSession{
		{CourseCode: "WEB02", Title: "Lập trình Web", Room: ".C.105", Teacher: "ThS. C"},
		{CourseCode: "CSDL01", Title: "Cơ sở dữ liệu", Room: ".B.201", Teacher: "TS. B"},
	}
	if got := filterSessions(sessions, ""); len(got) != 2 {
		t.Fatalf("empty query kept %d", len(got))
	}
	if got := filterSessions(sessions, "web"); len(got) != 1 || got[0].CourseCode != "WEB02" {
		t.Fatalf("filter web = %+v", got)
	}
	if got := filterSessions(sessions, "b.201 ts."); len(got) != 1 || got[0].CourseCode != "CSDL01" {
		t.Fatalf("filter multi-term = %+v", got)
	}
	if got := filterSessions(sessions, "nothing"); len(got) != 0 {
		t.Fatalf("filter miss = %+v", got)
	}
}

func TestModelNavigation(t *testing.T) {
	t.Parallel()
	m := sampleModel(t)
	if !m.ready {
		t.Fatal("model not ready after resize")
	}
	if m.detailID != m.visible[0].ID {
		t.Fatal("detail does not show the first session")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 || m.detailID != m.visible[1].ID {
		t.Fatalf("cursor = %d after down", m.cursor)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, should clamp at 0", m.cursor)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	if m.cursor != len(m.visible)-1 {
		t.Fatalf("cursor = %d after page down, want last", m.cursor)
	}
}

func TestModelFilter(t *testing.T) {
	t.Parallel()
	m := sampleModel(t)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("csdl")})
	if m.query != "csdl" {
		t.Fatalf("query = %q", m.query)
	}
	if cmd == nil {
		t.Fatal("expected a debounce command")
	}
	if len(m.visible) != 6 {
		t.Fatal("filter applied before debounce")
	}

	m, _ = update(t, m, debounceTickMsg{query: "stale"})
	if len(m.visible) != 6 {
		t.Fatal("stale tick applied a filter")
	}

	m, _ = update(t, m, debounceTickMsg{query: "csdl"})
	if len(m.visible) != 2 {
		t.Fatalf("visible = %d, want 2", len(m.visible))
	}
	for _, c := range m.visible {
		if c.CourseCode != "CSDL01" {
			t.Fatalf("unexpected session %q", c.CourseCode)
		}
	}
}

func TestModelEnterCopiesSelection(t *testing.T) {
	t.Parallel()
	m := sampleModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || !m.quitting {
		t.Fatal("enter should quit")
	}
	if m.copied == nil || m.copied.CourseCode != "WEB02" {
		t.Fatalf("copied = %+v", m.copied)
	}
}

func TestModelQuit(t *testing.T) {
	t.Parallel()
	m := sampleModel(t)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || !m.quitting || m.copied != nil {
		t.Fatal("esc should quit without selection")
	}
	if m.View() != "" {
		t.Fatal("view should be empty after quitting")
	}
}

func TestModelView(t *testing.T) {
	t.Parallel()
	m := sampleModel(t)
	view := m.View()
	for _, want := range []string{"Sessions", "Classes by day", "Top rooms", "Top subjects", "CSDL01", "6/6 sessions"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModelEmptyResult(t *testing.T) {
	t.Parallel()
	r := analysis.Run(parse.NewExtractor(parse.DefaultOptions(), nil), "", 6)
	m := initialModel(r, render.Options{DayNames: config.Default().DayNames})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = next.(model)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || m.copied != nil {
		t.Fatal("enter on empty list should do nothing")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 0 {
		t.Fatalf("cursor moved on empty list: %d", m.cursor)
	}
	if !strings.Contains(m.View(), "No sessions") {
		t.Fatal("empty list placeholder missing")
	}
}

func TestRenderDetail(t *testing.T) {
	t.Parallel()
	c := parse.ClassSession{
		ID: "abc", CourseCode: "HDH01", Title: "Hệ điều hành", Room: ".B.201",
		StartSlot: 6, EndSlot: 9, Slots: "6 - 9", Teacher: "TS. E", DayOfWeek: 3,
		Session: parse.SessionAfternoon, WeekRange: "Tuần 35",
	}
	out := renderDetail(c, render.Options{DayNames: config.Default().DayNames})
	for _, want := range []string{"HDH01", "Hệ điều hành", "Thứ 5", "Chiều", "6 - 9 (4 periods)", "TS. E", "Tuần 35", "id abc"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q\n%s", want, out)
		}
	}
}

func TestModelClearFilterAndJumps(t *testing.T) {
	t.Parallel()
	m := sampleModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("web")})
	m, _ = update(t, m, debounceTickMsg{query: "web"})
	if len(m.visible) != 1 {
		t.Fatalf("visible = %d, want 1", len(m.visible))
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if m.query != "" || m.filterInput.Value() != "" || len(m.visible) != 6 {
		t.Fatalf("clear filter left query %q with %d visible", m.query, len(m.visible))
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	if m.cursor != 5 {
		t.Fatalf("cursor = %d after end", m.cursor)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyHome})
	if m.cursor != 0 || m.detailID != m.visible[0].ID {
		t.Fatalf("cursor = %d after home", m.cursor)
	}
}
