package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" {
		t.Fatalf("expected no config path, got %q", cfg.Path)
	}
	if cfg.DayColumnOffset != 1 || cfg.MinCells != 7 || cfg.TopRooms != 6 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFileOverlay(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
day_column_offset = 0
top_rooms = 3
week_marker = "week"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != path {
		t.Fatalf("path = %q, want %q", cfg.Path, path)
	}
	if cfg.DayColumnOffset != 0 || cfg.TopRooms != 3 || cfg.WeekMarker != "week" {
		t.Fatalf("overlay not applied: %+v", cfg)
	}
	if cfg.AfternoonMarker != "hitec-td-tkbChieu" {
		t.Fatalf("untouched key lost its default: %q", cfg.AfternoonMarker)
	}
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"bad toml":      `min_cells = `,
		"no days":       `day_names = ["Mon"]`,
		"zero cells":    `min_cells = 0`,
		"negative skew": `day_column_offset = -1`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFile(path); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestLoadHonoursEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, []byte(`listen_address = ":9999"`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TKB_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddress != ":9999" {
		t.Fatalf("listen address = %q", cfg.ListenAddress)
	}
}

func TestExpandHome(t *testing.T) {
	t.Parallel()
	if got := expandHome("~/x/y.toml", "/home/u"); got != "/home/u/x/y.toml" {
		t.Fatalf("expandHome = %q", got)
	}
	if got := expandHome("/abs.toml", "/home/u"); got != "/abs.toml" {
		t.Fatalf("expandHome = %q", got)
	}
}
