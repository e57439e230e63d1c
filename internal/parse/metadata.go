package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// Metadata holds the sub-fields embedded in a link's data-content attribute,
// e.g. "Phòng học: .B.102<br />Tiết: 1 - 4 (Thực dạy <b>0</b> tiết)<br />Giáo viên: ...".
type Metadata struct {
	Room      string
	StartSlot int
	EndSlot   int
	Teacher   string
}

type metadataRule struct {
	pattern *regexp.Regexp
	apply   func(m *Metadata, groups []string)
}

// metadataRules run independently; a rule that does not match leaves its default.
var metadataRules = []metadataRule{
	{
		pattern: regexp.MustCompile(`(?:Phòng học|Room):\s*([^<]*)`),
		apply: func(m *Metadata, g []string) {
			m.Room = strings.TrimSpace(g[1])
		},
	},
	{
		pattern: regexp.MustCompile(`(?:Tiết|Period):\s*(\d+)\s*-\s*(\d+)`),
		apply: func(m *Metadata, g []string) {
			m.StartSlot = atoi(g[1])
			m.EndSlot = atoi(g[2])
		},
	},
	{
		pattern: regexp.MustCompile(`(?:Giáo viên|Teacher):\s*([^<]*)`),
		apply: func(m *Metadata, g []string) {
			m.Teacher = strings.TrimSpace(g[1])
		},
	},
}

// ParseMetadata extracts room, period range and teacher from a metadata string.
// Missing fields default to NotAvailable or 0.
func ParseMetadata(s string) Metadata {
	m := Metadata{Room: NotAvailable, Teacher: NotAvailable}
	for _, rule := range metadataRules {
		if groups := rule.pattern.FindStringSubmatch(s); groups != nil {
			rule.apply(&m, groups)
		}
	}
	return m
}

// atoi returns 0 for anything strconv rejects, including overflow.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
