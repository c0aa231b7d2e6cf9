package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/planetfall/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with linear gain vol
// math.Log2(0) is -Inf, so zero volume is made silent instead
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is one shaped oscillator note
func tone(freq float64, wave WaveType, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, duration, wave, rate), duration, attack, release, rate)
}

// sineNote shapes a generator sine; frequencies at or above Nyquist fall back to the oscillator
func sineNote(freq float64, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return tone(freq, WaveSine, duration, attack, release, rate)
	}
	return NewEnvelope(beep.Take(rate.N(duration), sine), duration, attack, release, rate)
}

// --- Cue generators ---

// CreateHitSound generates a short tick for a non-lethal hit
func CreateHitSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	s := tone(parameter.HitSoundFreq, WaveSquare, parameter.HitSoundDuration, parameter.HitSoundAttack, parameter.HitSoundRelease, rate)
	return newVolume(s, cfg.volume(CueHit))
}

// CreateKillSound generates a noise burst over a low thump
func CreateKillSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	noise := tone(0, WaveNoise, parameter.KillSoundDuration, parameter.KillSoundAttack, parameter.KillSoundRelease, rate)
	thump := tone(parameter.KillSoundFreq, WaveSine, parameter.KillSoundDuration, parameter.KillSoundAttack, parameter.KillSoundRelease, rate)

	mixed := beep.Mix(
		newVolume(noise, 0.4),
		newVolume(thump, 0.6),
	)
	return newVolume(mixed, cfg.volume(CueKill))
}

// CreatePickupSound generates a two-note chime
func CreatePickupSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	n1 := tone(parameter.PickupSoundNote1Freq, WaveSquare, parameter.PickupSoundNote1Duration, parameter.PickupSoundAttack, parameter.PickupSoundNote1Release, rate)
	n2 := tone(parameter.PickupSoundNote2Freq, WaveSquare, parameter.PickupSoundNote2Duration, parameter.PickupSoundAttack, parameter.PickupSoundNote2Release, rate)
	return newVolume(beep.Seq(n1, n2), cfg.volume(CuePickup))
}

// CreateDamageSound generates a harsh low buzz
func CreateDamageSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	s := tone(parameter.DamageSoundFreq, WaveSaw, parameter.DamageSoundDuration, parameter.DamageSoundAttack, parameter.DamageSoundRelease, rate)
	return newVolume(s, cfg.volume(CueDamage))
}

// CreateGameOverSound generates a descending jingle
func CreateGameOverSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	notes := make([]beep.Streamer, 0, len(parameter.GameOverNotes))
	for _, f := range parameter.GameOverNotes {
		notes = append(notes, sineNote(f, parameter.GameOverNoteDuration, parameter.GameOverSoundAttack, parameter.GameOverSoundRelease, rate))
	}
	return newVolume(beep.Seq(notes...), cfg.volume(CueGameOver))
}

// GetSoundEffect returns a fresh streamer for cue, nil if unknown
func GetSoundEffect(cue Cue, cfg *AudioConfig) beep.Streamer {
	switch cue {
	case CueHit:
		return CreateHitSound(cfg)
	case CueKill:
		return CreateKillSound(cfg)
	case CuePickup:
		return CreatePickupSound(cfg)
	case CueDamage:
		return CreateDamageSound(cfg)
	case CueGameOver:
		return CreateGameOverSound(cfg)
	default:
		return nil
	}
}
