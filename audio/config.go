package audio

import (
	"github.com/lixenwraith/retain/parameter"
)

// Config controls bell synthesis and playback
type Config struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"` // 0.0 - 1.0
	SampleRate int     `yaml:"sample_rate"`
}

// DefaultConfig returns audio settings with playback disabled
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		Volume:     0.5,
		SampleRate: parameter.AudioSampleRate,
	}
}

func (c Config) clampedVolume() float64 {
	return min(max(c.Volume, 0), 1)
}
