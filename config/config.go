// Package config loads the YAML configuration of a retain application
package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/retain/audio"
	"github.com/lixenwraith/retain/logging"
	"github.com/lixenwraith/retain/parameter"
)

// Shell kinds
const (
	ShellTerminal = "terminal"
	ShellHeadless = "headless"
	ShellRemote   = "remote"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the whole application configuration
type Config struct {
	App      App            `yaml:"app"`
	Window   Window         `yaml:"window"`
	Shell    Shell          `yaml:"shell"`
	Log      logging.Config `yaml:"log"`
	Audio    audio.Config   `yaml:"audio"`
	Settings Settings       `yaml:"settings"`
}

type App struct {
	Name string `yaml:"name"`
}

// Window is the initial placement and flags of the main window
type Window struct {
	Title           string  `yaml:"title"`
	X               float64 `yaml:"x"`
	Y               float64 `yaml:"y"`
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Borderless      bool    `yaml:"borderless"`
	Resizeable      bool    `yaml:"resizeable"`
	AlwaysOnTop     bool    `yaml:"always_on_top"`
	RestoreGeometry bool    `yaml:"restore_geometry"`
}

// Shell selects and tunes the backend hosting windows
type Shell struct {
	Kind       string  `yaml:"kind"`
	FrameRate  int     `yaml:"frame_rate"`
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
	Listen     string  `yaml:"listen"`
	MaxTicks   int     `yaml:"max_ticks"`
	Mouse      bool    `yaml:"mouse"`
	// Border names the terminal box style: single, double, rounded or heavy
	Border string `yaml:"border"`
}

type Settings struct {
	// Path of the bbolt settings file; empty disables persistence
	Path string `yaml:"path"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		App: App{Name: parameter.DefaultWindowTitle},
		Window: Window{
			Title:      parameter.DefaultWindowTitle,
			Width:      parameter.DefaultWindowWidth,
			Height:     parameter.DefaultWindowHeight,
			Resizeable: true,
		},
		Shell: Shell{
			Kind:       ShellTerminal,
			FrameRate:  parameter.DefaultFrameRate,
			CellWidth:  parameter.CellWidth,
			CellHeight: parameter.CellHeight,
			Listen:     "127.0.0.1:8420",
			Mouse:      true,
		},
		Log:   logging.DefaultConfig(),
		Audio: audio.DefaultConfig(),
	}
}

// Load reads path over the defaults; a missing file yields the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(err, "open config")
	}
	defer f.Close()
	return Decode(f, cfg)
}

// Decode reads YAML from r over base and validates the result
func Decode(r io.Reader, base Config) (Config, error) {
	cfg := base
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return base, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// Validate rejects values the runtime cannot honor
func (c Config) Validate() error {
	switch c.Shell.Kind {
	case ShellTerminal, ShellHeadless, ShellRemote:
	default:
		return errors.Wrapf(ErrInvalid, "shell.kind %q", c.Shell.Kind)
	}
	if c.Shell.FrameRate <= 0 {
		return errors.Wrapf(ErrInvalid, "shell.frame_rate %d", c.Shell.FrameRate)
	}
	if c.Shell.CellWidth <= 0 || c.Shell.CellHeight <= 0 {
		return errors.Wrapf(ErrInvalid, "shell cell size %gx%g", c.Shell.CellWidth, c.Shell.CellHeight)
	}
	if c.Shell.MaxTicks < 0 {
		return errors.Wrapf(ErrInvalid, "shell.max_ticks %d", c.Shell.MaxTicks)
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return errors.Wrapf(ErrInvalid, "window size %gx%g", c.Window.Width, c.Window.Height)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return errors.Wrapf(ErrInvalid, "audio.volume %g", c.Audio.Volume)
	}
	if err := c.Log.Validate(); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	return nil
}

// Encode writes c as YAML
func (c Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, "encode config")
	}
	return enc.Close()
}
