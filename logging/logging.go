// Package logging builds the zap logger shared by every window
package logging

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects level, encoding and sinks
type Config struct {
	Level    string   `yaml:"level"`
	Encoding string   `yaml:"encoding"`
	Outputs  []string `yaml:"outputs"`
}

// DefaultConfig logs warnings and above as JSON to stderr
func DefaultConfig() Config {
	return Config{
		Level:    "warn",
		Encoding: "json",
		Outputs:  []string{"stderr"},
	}
}

// Validate checks level and encoding
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return errors.Wrapf(err, "log level %q", c.Level)
	}
	switch c.Encoding {
	case "json", "console":
	default:
		return errors.Errorf("log encoding %q", c.Encoding)
	}
	return nil
}

// WritesTerminal reports whether any sink is the terminal itself
func (c Config) WritesTerminal() bool {
	for _, out := range c.Outputs {
		if out == "stderr" || out == "stdout" {
			return true
		}
	}
	return false
}

// New builds a logger from cfg
func New(cfg Config) (*zap.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := zapcore.ParseLevel(cfg.Level)
	outputs := cfg.Outputs
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	zcfg := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         cfg.Encoding,
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      outputs,
		ErrorOutputPaths: outputs,
		DisableCaller:    true,
	}
	if cfg.Encoding == "console" {
		zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	logger, err := zcfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return logger, nil
}
