package input

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte("<table></table>"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Read(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "<table></table>" {
		t.Fatalf("Read = %q", got)
	}
}

func TestReadStdin(t *testing.T) {
	t.Parallel()
	for _, arg := range []string{"", Stdin} {
		got, err := Read(arg, strings.NewReader("<tr></tr>"))
		if err != nil {
			t.Fatalf("Read(%q): %v", arg, err)
		}
		if got != "<tr></tr>" {
			t.Fatalf("Read(%q) = %q", arg, got)
		}
	}
}

func TestReadEmpty(t *testing.T) {
	t.Parallel()
	_, err := Read(Stdin, strings.NewReader(" \n\t "))
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	t.Parallel()
	_, err := Read(filepath.Join(t.TempDir(), "missing.html"), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestSample(t *testing.T) {
	t.Parallel()
	s := Sample()
	if !strings.Contains(s, "hitec-td-tkbTuan") {
		t.Fatal("sample does not contain week headers")
	}
	if strings.Count(s, "<a ") != 6 {
		t.Fatalf("sample should hold 6 links, got %d", strings.Count(s, "<a "))
	}
}
