package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond
)

// Bell Sound
const (
	BellSoundDuration = 600 * time.Millisecond
	BellSoundAttack   = 5 * time.Millisecond
	BellSoundRelease  = 400 * time.Millisecond
	BellSoundFreq     = 880.0
	BellOvertoneFreq  = 1760.0
)
