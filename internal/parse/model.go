package parse

import (
	"encoding/json"
	"fmt"
)

// NotAvailable marks a room or teacher missing from the link metadata.
const NotAvailable = "N/A"

type Session int

const (
	SessionMorning Session = iota
	SessionAfternoon
	SessionEvening

	SessionCount = 3
)

// Sessions lists all sessions in display order.
var Sessions = []Session{SessionMorning, SessionAfternoon, SessionEvening}

func (s Session) String() string {
	switch s {
	case SessionMorning:
		return "Morning"
	case SessionAfternoon:
		return "Afternoon"
	case SessionEvening:
		return "Evening"
	default:
		return fmt.Sprintf("Session(%d)", int(s))
	}
}

// Label returns the session name as printed in the timetable.
func (s Session) Label() string {
	switch s {
	case SessionMorning:
		return "Sáng"
	case SessionAfternoon:
		return "Chiều"
	case SessionEvening:
		return "Tối"
	default:
		return s.String()
	}
}

func (s Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Session) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, candidate := range Sessions {
		if candidate.String() == name {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown session %q", name)
}

type ClassSession struct {
	ID         string  `json:"id"`
	CourseCode string  `json:"courseCode"`
	Title      string  `json:"title"`
	Room       string  `json:"room"`
	StartSlot  int     `json:"startSlot"`
	EndSlot    int     `json:"endSlot"`
	Slots      string  `json:"slots"` // "{start} - {end}"
	Teacher    string  `json:"teacher"`
	WeekRange  string  `json:"weekRange"`
	DayOfWeek  int     `json:"dayOfWeek"` // 0 = Monday
	Session    Session `json:"session"`
}

// Periods is the number of slots taught. Malformed ranges give zero or less.
func (c ClassSession) Periods() int {
	return c.EndSlot - c.StartSlot + 1
}
