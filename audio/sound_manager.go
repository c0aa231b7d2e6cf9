package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/planetfall/parameter"
)

// SoundManager plays game cues through a single speaker mixer
// Every method is safe to call without a working audio device
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	initialized bool
	muted       atomic.Bool

	lastPlayed [CueCount]time.Time
	played     [CueCount]atomic.Int64
	now        func() time.Time
}

// NewSoundManager creates a new sound manager
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Initialize opens the speaker
// A failure leaves the manager silent; the game runs without audio
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and releases the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	sm.initialized = false
}

// SetMuted toggles output without closing the device
func (sm *SoundManager) SetMuted(muted bool) {
	sm.muted.Store(muted)
}

// Muted reports the mute toggle
func (sm *SoundManager) Muted() bool {
	return sm.muted.Load()
}

// Play queues cue on the mixer
// Repeats of one cue inside AudioMinCueGap collapse into one
func (sm *SoundManager) Play(cue Cue) {
	if cue < 0 || cue >= CueCount || sm.muted.Load() {
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := sm.now()
	if last := sm.lastPlayed[cue]; !last.IsZero() && now.Sub(last) < parameter.AudioMinCueGap {
		return
	}
	sm.lastPlayed[cue] = now
	sm.played[cue].Add(1)

	if !sm.initialized {
		return
	}

	s := GetSoundEffect(cue, sm.cfg)
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// PlayedCount returns how many times cue passed the gap filter
func (sm *SoundManager) PlayedCount(cue Cue) int64 {
	if cue < 0 || cue >= CueCount {
		return 0
	}
	return sm.played[cue].Load()
}
