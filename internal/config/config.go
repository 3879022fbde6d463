package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds mindpaper configuration.
type Config struct {
	Canvas  CanvasConfig  `toml:"canvas"`
	Gesture GestureConfig `toml:"gesture"`
	Notes   NotesConfig   `toml:"notes"`
	Server  ServerConfig  `toml:"server"`
}

// CanvasConfig controls the editor window.
type CanvasConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Title      string `toml:"title"`
	ShowFPS    bool   `toml:"show_fps"`
	Background string `toml:"background"` // hex, e.g. "#1f1f21"
	Debug      bool   `toml:"debug"`
}

// GestureConfig holds input thresholds.
type GestureConfig struct {
	DoubleTapMS   int     `toml:"double_tap_ms"`
	LongPressMS   int     `toml:"long_press_ms"`
	MoveThreshold float64 `toml:"move_threshold"`
	DragDeadZone  float64 `toml:"drag_dead_zone"`
	WheelStep     float64 `toml:"wheel_step"`
	MinZoom       float64 `toml:"min_zoom"`
	MaxZoom       float64 `toml:"max_zoom"`
}

// NotesConfig points the note list at a store.
type NotesConfig struct {
	APIURL    string `toml:"api_url"`
	TimeoutMS int    `toml:"timeout_ms"`
}

// ServerConfig controls the reference note server.
type ServerConfig struct {
	Addr   string `toml:"addr"`
	DBPath string `toml:"db_path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Width: 1024, Height: 768,
			Title:      "mindpaper",
			Background: "#1f1f21",
		},
		Gesture: GestureConfig{
			DoubleTapMS:   200,
			LongPressMS:   500,
			MoveThreshold: 10,
			DragDeadZone:  4,
			WheelStep:     1.1,
			MinZoom:       0.05,
			MaxZoom:       20,
		},
		Notes:  NotesConfig{APIURL: "http://localhost:8080", TimeoutMS: 5000},
		Server: ServerConfig{Addr: ":8080", DBPath: filepath.Join(DataDir(), "notes.db")},
	}
}

// DoubleTap returns the double-tap window.
func (g GestureConfig) DoubleTap() time.Duration {
	return time.Duration(g.DoubleTapMS) * time.Millisecond
}

// LongPress returns the long-press delay.
func (g GestureConfig) LongPress() time.Duration {
	return time.Duration(g.LongPressMS) * time.Millisecond
}

// Timeout returns the HTTP timeout for note requests.
func (n NotesConfig) Timeout() time.Duration {
	return time.Duration(n.TimeoutMS) * time.Millisecond
}

// ConfigDir returns the mindpaper config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "mindpaper")
}

// DataDir returns the mindpaper data directory path.
func DataDir() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "mindpaper")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, falling back to defaults if it doesn't exist
// or can't be parsed.
func Load() *Config {
	cfg, err := LoadFile(Path())
	if err != nil {
		return Default()
	}
	return cfg
}

// LoadFile reads a config file over the defaults. Keys missing from the file
// keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func EnsureExists() error {
	if _, err := os.Stat(Path()); err == nil {
		return nil
	}
	return Save(Default())
}
