package analysis

import (
	"testing"

	"github.com/Zuo-Peng/tkb/internal/input"
	"github.com/Zuo-Peng/tkb/internal/parse"
)

func TestRunSample(t *testing.T) {
	t.Parallel()
	r := Run(parse.NewExtractor(parse.DefaultOptions(), nil), input.Sample(), 2)
	if r.Empty {
		t.Fatal("sample reported empty")
	}
	if len(r.Sessions) != r.Statistics.TotalClasses {
		t.Fatalf("sessions = %d, total = %d", len(r.Sessions), r.Statistics.TotalClasses)
	}
	if len(r.TopRooms) != 2 {
		t.Fatalf("top rooms = %v", r.TopRooms)
	}
	if len(r.TopSubjects) != 2 || r.TopSubjects[0].Name != "Cơ sở dữ liệu - Nhóm 1" || r.TopSubjects[0].Count != 2 {
		t.Fatalf("top subjects = %v", r.TopSubjects)
	}
	if got, want := r.Summary(), "sessions=6 periods=23 subjects=5 rooms=4 weeks=2"; got != want {
		t.Fatalf("Summary = %q, want %q", got, want)
	}
}

func TestRunEmpty(t *testing.T) {
	t.Parallel()
	r := Run(parse.NewExtractor(parse.DefaultOptions(), nil), "<p>nothing here</p>", 6)
	if !r.Empty {
		t.Fatal("expected empty result")
	}
	if r.Sessions == nil || r.TopRooms == nil || r.TopSubjects == nil {
		t.Fatal("empty result should carry empty, non-nil slices")
	}
}
