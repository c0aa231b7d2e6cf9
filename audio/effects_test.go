package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/planetfall/parameter"
)

// drain reads s to exhaustion, returning the sample count and peak amplitude
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("Expected streamer to drain")
	return 0, 0
}

func TestCuesAreFinite(t *testing.T) {
	cfg := DefaultAudioConfig()
	rate := beep.SampleRate(cfg.SampleRate)

	expected := map[Cue]time.Duration{
		CueHit:      parameter.HitSoundDuration,
		CueKill:     parameter.KillSoundDuration,
		CuePickup:   parameter.PickupSoundNote1Duration + parameter.PickupSoundNote2Duration,
		CueDamage:   parameter.DamageSoundDuration,
		CueGameOver: parameter.GameOverNoteDuration * time.Duration(len(parameter.GameOverNotes)),
	}

	for cue := Cue(0); cue < CueCount; cue++ {
		s := GetSoundEffect(cue, cfg)
		if s == nil {
			t.Fatalf("Expected streamer for %s", cue)
		}
		n, peak := drain(t, s)

		want := 0
		switch cue {
		case CuePickup:
			want = rate.N(parameter.PickupSoundNote1Duration) + rate.N(parameter.PickupSoundNote2Duration)
		case CueGameOver:
			want = rate.N(parameter.GameOverNoteDuration) * len(parameter.GameOverNotes)
		default:
			want = rate.N(expected[cue])
		}
		if n != want {
			t.Errorf("%s: expected %d samples, got %d", cue, want, n)
		}
		if peak > 1.0 {
			t.Errorf("%s: expected peak <= 1.0, got %f", cue, peak)
		}
	}

	if GetSoundEffect(CueCount, cfg) != nil {
		t.Error("Expected nil streamer for unknown cue")
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.MasterVolume = 0

	_, peak := drain(t, CreateHitSound(cfg))
	if peak != 0 {
		t.Errorf("Expected silence at zero volume, got peak %f", peak)
	}
}

func TestEnvelopeShapesEdges(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, 100*time.Millisecond, WaveSquare, rate)
	env := NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, rate)

	buf := make([][2]float64, 100)
	n, _ := env.Stream(buf)
	if n != 100 {
		t.Fatalf("Expected 100 samples, got %d", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", buf[0][0])
	}
	if buf[50][0] != 1.0 {
		t.Errorf("Expected full sustain, got %f", buf[50][0])
	}
	if buf[99][0] >= buf[90][0] {
		t.Errorf("Expected release to fade, got %f then %f", buf[90][0], buf[99][0])
	}
}

func TestCueNames(t *testing.T) {
	if CueGameOver.String() != "gameover" {
		t.Errorf("Expected gameover, got %s", CueGameOver)
	}
	if Cue(42).String() != "Cue(42)" {
		t.Errorf("Expected Cue(42), got %s", Cue(42))
	}
}
