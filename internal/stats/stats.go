package stats

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/Zuo-Peng/tkb/internal/parse"
)

// DaysPerWeek is the length of DayDistribution, Monday first.
const DaysPerWeek = 7

// Set is a set of strings, encoded in JSON as a sorted array.
type Set map[string]struct{}

func (s Set) Add(v string) {
	s[v] = struct{}{}
}

func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *Set) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = make(Set, len(values))
	for _, v := range values {
		s.Add(v)
	}
	return nil
}

type Statistics struct {
	TotalClasses        int                     `json:"totalClasses"`
	TotalPeriods        int                     `json:"totalPeriods"`
	UniqueSubjects      int                     `json:"uniqueSubjects"`
	UniqueRooms         Set                     `json:"uniqueRooms"`
	DayDistribution     [DaysPerWeek]int        `json:"dayDistribution"`
	SessionDistribution [parse.SessionCount]int `json:"sessionDistribution"`
	WeekCount           int                     `json:"weekCount"`
	RoomUsage           map[string]int          `json:"roomUsage"`
	SubjectUsage        map[string]int          `json:"subjectUsage"` // keyed by title
}

// Aggregate summarises records in a single pass. Malformed period ranges
// contribute zero or negative periods as they are.
func Aggregate(records []parse.ClassSession) *Statistics {
	s := &Statistics{
		TotalClasses: len(records),
		UniqueRooms:  Set{},
		RoomUsage:    map[string]int{},
		SubjectUsage: map[string]int{},
	}
	subjects := Set{}
	weeks := Set{}

	for _, c := range records {
		s.TotalPeriods += c.Periods()
		subjects.Add(c.CourseCode)
		s.UniqueRooms.Add(c.Room)
		if c.DayOfWeek >= 0 && c.DayOfWeek < DaysPerWeek {
			s.DayDistribution[c.DayOfWeek]++
		}
		if c.Session >= 0 && c.Session < parse.SessionCount {
			s.SessionDistribution[c.Session]++
		}
		if c.WeekRange != "" {
			weeks.Add(c.WeekRange)
		}
		s.RoomUsage[c.Room]++
		s.SubjectUsage[c.Title]++
	}

	s.UniqueSubjects = len(subjects)
	s.WeekCount = len(weeks)
	return s
}

type Usage struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TopRooms returns room usage by count descending, then name. n <= 0 returns all.
func (s *Statistics) TopRooms(n int) []Usage {
	return top(s.RoomUsage, n)
}

// TopSubjects is TopRooms for SubjectUsage.
func (s *Statistics) TopSubjects(n int) []Usage {
	return top(s.SubjectUsage, n)
}

// BusiestDay returns the index of the day with most classes, -1 when there are none.
func (s *Statistics) BusiestDay() int {
	best := -1
	for day, count := range s.DayDistribution {
		if count > 0 && (best < 0 || count > s.DayDistribution[best]) {
			best = day
		}
	}
	return best
}

func top(usage map[string]int, n int) []Usage {
	out := make([]Usage, 0, len(usage))
	for name, count := range usage {
		out = append(out, Usage{Name: name, Count: count})
	}
	slices.SortFunc(out, func(a, b Usage) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Name, b.Name)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
