package input

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Stdin is the argument that selects standard input.
const Stdin = "-"

// ErrEmpty is returned when the input holds nothing but whitespace.
var ErrEmpty = errors.New("input is empty")

//go:embed sample.html
var sample string

// Sample returns a small two-week timetable in UMS markup.
func Sample() string {
	return sample
}

// Read loads the page source named by arg: a file path, or "-" (or "") for r.
func Read(arg string, r io.Reader) (string, error) {
	var data []byte
	var err error
	switch arg {
	case "", Stdin:
		data, err = io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
	default:
		data, err = os.ReadFile(arg)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", arg, err)
		}
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmpty
	}
	return text, nil
}
