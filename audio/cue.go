package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/glyphrain/parameter"
)

// Player synthesizes short tone cues. Speaker init failure is non-fatal:
// the animation runs silent.
type Player struct {
	log        *zap.SugaredLogger
	sampleRate beep.SampleRate
	enabled    bool

	mu   sync.Mutex
	last time.Time
}

// NewPlayer initializes the speaker; on failure the returned player is
// permanently silent
func NewPlayer(log *zap.SugaredLogger) *Player {
	p := &Player{
		log:        log,
		sampleRate: beep.SampleRate(44100),
	}
	if err := speaker.Init(p.sampleRate, p.sampleRate.N(time.Second/10)); err != nil {
		log.Warnw("audio initialization failed, running silent", "error", err)
		return p
	}
	p.enabled = true
	return p
}

// Enabled reports whether the speaker initialized
func (p *Player) Enabled() bool { return p.enabled }

// Tick plays a short sine cue at freq, rate-limited so dense bursts of
// triggers do not stack tones
func (p *Player) Tick(freq float64) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	now := time.Now()
	if now.Sub(p.last) < parameter.CueMinGap {
		p.mu.Unlock()
		return
	}
	p.last = now
	p.mu.Unlock()

	sine, err := generators.SineTone(p.sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(p.sampleRate.N(parameter.CueDuration), sine))
}

// Close shuts the speaker down
func (p *Player) Close() {
	if p.enabled {
		speaker.Close()
	}
}
