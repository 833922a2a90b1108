package audio

import (
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/retain/parameter"
)

// Output is where synthesized streams are played
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Close()
}

// Speaker is the system audio device
type Speaker struct{}

func (Speaker) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (Speaker) Play(s beep.Streamer) { speaker.Play(s) }

func (Speaker) Close() { speaker.Close() }

// Player rings the bell of every window
// Degrades to silence when the output cannot be opened
type Player struct {
	cfg    Config
	out    Output
	logger *zap.Logger

	once     sync.Once
	disabled atomic.Bool
	opened   atomic.Bool
	rung     atomic.Int64
}

// NewPlayer creates a player over out; a nil out selects the system speaker
func NewPlayer(cfg Config, out Output, logger *zap.Logger) *Player {
	if out == nil {
		out = Speaker{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Player{cfg: cfg, out: out, logger: logger}
	p.disabled.Store(!cfg.Enabled)
	return p
}

// Bell plays the bell sound without blocking
func (p *Player) Bell() {
	if p.disabled.Load() {
		return
	}
	p.once.Do(p.start)
	if p.disabled.Load() {
		return
	}
	p.out.Play(NewBell(p.cfg))
	p.rung.Add(1)
}

// Rung returns how many bells were played
func (p *Player) Rung() int64 {
	return p.rung.Load()
}

// Disabled reports whether playback is off
func (p *Player) Disabled() bool {
	return p.disabled.Load()
}

// Close releases the output if it was opened
func (p *Player) Close() {
	p.once.Do(func() {})
	if p.opened.Swap(false) {
		p.out.Close()
	}
}

func (p *Player) start() {
	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := p.out.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		p.logger.Warn("audio unavailable, bell disabled", zap.Error(err))
		p.disabled.Store(true)
		return
	}
	p.opened.Store(true)
}
