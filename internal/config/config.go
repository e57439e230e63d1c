package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	WeekMarker      string   `toml:"week_marker"`
	AfternoonMarker string   `toml:"afternoon_marker"`
	EveningMarker   string   `toml:"evening_marker"`
	MinCells        int      `toml:"min_cells"`
	DayColumnOffset int      `toml:"day_column_offset"`
	DayNames        []string `toml:"day_names"`
	WeekLabelTrim   string   `toml:"week_label_trim"`
	TopRooms        int      `toml:"top_rooms"`
	ListenAddress   string   `toml:"listen_address"`
	MaxBodyBytes    int      `toml:"max_body_bytes"`

	// Path is the config file that was read, empty when only defaults apply.
	Path string `toml:"-"`
}

// Default returns the configuration matching the UMS timetable markup.
func Default() *Config {
	return &Config{
		WeekMarker:      "hitec-td-tkbTuan",
		AfternoonMarker: "hitec-td-tkbChieu",
		EveningMarker:   "hitec-td-tkbToi",
		MinCells:        7,
		DayColumnOffset: 1,
		DayNames:        []string{"Thứ 2", "Thứ 3", "Thứ 4", "Thứ 5", "Thứ 6", "Thứ 7", "Chủ Nhật"},
		WeekLabelTrim:   "Từ ngày:",
		TopRooms:        6,
		ListenAddress:   ":8080",
		MaxBodyBytes:    8 * 1024 * 1024,
	}
}

// Load reads ~/.config/tkb/config.toml (or $TKB_CONFIG) over the defaults.
// A missing file is not an error.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfgPath := filepath.Join(home, ".config", "tkb", "config.toml")
	if env := os.Getenv("TKB_CONFIG"); env != "" {
		cfgPath = expandHome(env, home)
	}
	return LoadFile(cfgPath)
}

// LoadFile overlays the TOML file at path on the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg.Path = path
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.WeekMarker == "" {
		return fmt.Errorf("week_marker must not be empty")
	}
	if c.MinCells < 1 {
		return fmt.Errorf("min_cells must be positive, got %d", c.MinCells)
	}
	if c.DayColumnOffset < 0 {
		return fmt.Errorf("day_column_offset must not be negative, got %d", c.DayColumnOffset)
	}
	if len(c.DayNames) != 7 {
		return fmt.Errorf("day_names must list 7 days, got %d", len(c.DayNames))
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
