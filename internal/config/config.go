// Package config loads cubeanim settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/cubeanim"
)

// Config contains every setting the CLI and drivers read.
//
// Thread Safety: Safe to read concurrently. Not safe to modify after creation.
type Config struct {
	// Animation contains frame and speed settings.
	Animation AnimationConfig `yaml:"animation"`

	// Puzzle contains puzzle geometry.
	Puzzle PuzzleConfig `yaml:"puzzle"`

	// Keys maps keyboard keys to commands in the TUI.
	Keys KeyConfig `yaml:"keys"`

	// Storage contains the session journal settings.
	Storage StorageConfig `yaml:"storage"`

	// Log contains logging settings.
	Log LogConfig `yaml:"log"`

	// Server contains the websocket frame server settings.
	Server ServerConfig `yaml:"server"`
}

// AnimationConfig contains frame and speed settings.
type AnimationConfig struct {
	FaceSpeed       float32       `yaml:"face_speed" validate:"gt=0,lte=100"`
	ViewStep        float32       `yaml:"view_step" validate:"gt=0,lte=3.2"`
	FPS             int           `yaml:"fps" validate:"gt=0,lte=240"`
	MaxFrameElapsed time.Duration `yaml:"max_frame_elapsed" validate:"gte=0"`
}

// PuzzleConfig contains puzzle geometry.
type PuzzleConfig struct {
	Spacing  float32    `yaml:"spacing" validate:"gt=0"`
	Position [3]float32 `yaml:"position"`
}

// KeyConfig maps keys (bubbletea key names) to commands.
type KeyConfig struct {
	Front     string `yaml:"front" validate:"required"`
	Back      string `yaml:"back" validate:"required"`
	Right     string `yaml:"right" validate:"required"`
	Left      string `yaml:"left" validate:"required"`
	Up        string `yaml:"up" validate:"required"`
	Down      string `yaml:"down" validate:"required"`
	Toggle    string `yaml:"toggle" validate:"required"`
	ViewLeft  string `yaml:"view_left" validate:"required"`
	ViewRight string `yaml:"view_right" validate:"required"`
	ViewUp    string `yaml:"view_up" validate:"required"`
	ViewDown  string `yaml:"view_down" validate:"required"`
	Reset     string `yaml:"reset" validate:"required"`
	Quit      string `yaml:"quit" validate:"required"`
}

// StorageConfig contains the session journal settings.
type StorageConfig struct {
	Journal bool   `yaml:"journal"`
	DBPath  string `yaml:"db_path"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	File  string `yaml:"file"`
}

// ServerConfig contains the websocket frame server settings.
type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required,hostname_port"`
}

var validate = validator.New()

// Default returns the configuration used when no file exists.
// Key bindings follow the colour of each face's centre.
func Default() Config {
	return Config{
		Animation: AnimationConfig{
			FaceSpeed:       1.5,
			ViewStep:        0.15,
			FPS:             60,
			MaxFrameElapsed: 250 * time.Millisecond,
		},
		Puzzle: PuzzleConfig{
			Spacing:  1.0,
			Position: [3]float32{0, 0, -15},
		},
		Keys: KeyConfig{
			Front:     "r",
			Back:      "o",
			Right:     "g",
			Left:      "b",
			Up:        "y",
			Down:      "w",
			Toggle:    " ",
			ViewLeft:  "left",
			ViewRight: "right",
			ViewUp:    "up",
			ViewDown:  "down",
			Reset:     "ctrl+r",
			Quit:      "q",
		},
		Storage: StorageConfig{
			Journal: true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
	}
}

// Dir returns the cubeanim settings directory, creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".cubeanim")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return dir, nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the YAML file at path over the defaults and validates the
// result. A missing file is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// FrameInterval returns the time between frames at the configured FPS.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Animation.FPS)
}

// PuzzleOptions returns the puzzle options for these settings.
func (c Config) PuzzleOptions() []cubeanim.Option {
	p := c.Puzzle.Position
	return []cubeanim.Option{
		cubeanim.WithFaceSpeed(c.Animation.FaceSpeed),
		cubeanim.WithViewStep(c.Animation.ViewStep),
		cubeanim.WithSpacing(c.Puzzle.Spacing),
		cubeanim.WithPosition(mgl32.Vec3{p[0], p[1], p[2]}),
		cubeanim.WithMaxFrameElapsed(c.Animation.MaxFrameElapsed),
	}
}

// Marshal renders the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
