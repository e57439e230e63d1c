package analysis

import (
	"fmt"

	"github.com/Zuo-Peng/tkb/internal/parse"
	"github.com/Zuo-Peng/tkb/internal/stats"
)

// Result is one analysis of a timetable page.
type Result struct {
	Sessions    []parse.ClassSession `json:"sessions"`
	Statistics  *stats.Statistics    `json:"statistics"`
	TopRooms    []stats.Usage        `json:"topRooms"`
	TopSubjects []stats.Usage        `json:"topSubjects"`
	Empty       bool                 `json:"empty"`
}

// Run extracts and aggregates src. top bounds the room and subject rankings
// (<= 0 for all).
func Run(e *parse.Extractor, src string, top int) *Result {
	sessions := e.Extract(src)
	st := stats.Aggregate(sessions)
	return &Result{
		Sessions:    sessions,
		Statistics:  st,
		TopRooms:    st.TopRooms(top),
		TopSubjects: st.TopSubjects(top),
		Empty:       len(sessions) == 0,
	}
}

// Summary is a one-line description used in logs and status bars.
func (r *Result) Summary() string {
	return fmt.Sprintf("sessions=%d periods=%d subjects=%d rooms=%d weeks=%d",
		r.Statistics.TotalClasses,
		r.Statistics.TotalPeriods,
		r.Statistics.UniqueSubjects,
		len(r.Statistics.UniqueRooms),
		r.Statistics.WeekCount)
}
