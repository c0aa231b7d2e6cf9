package audio

import (
	"github.com/lixenwraith/planetfall/parameter"
)

// AudioConfig holds audio system configuration
type AudioConfig struct {
	Enabled      bool
	MasterVolume float64
	CueVolumes   [CueCount]float64
	SampleRate   int
}

// DefaultAudioConfig returns default audio configuration
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: parameter.AudioMasterVolume,
		CueVolumes: [CueCount]float64{
			CueHit:      0.4,
			CueKill:     0.8,
			CuePickup:   0.6,
			CueDamage:   0.7,
			CueGameOver: 0.9,
		},
		SampleRate: parameter.AudioSampleRate,
	}
}

// volume returns the effective gain of a cue
func (c *AudioConfig) volume(cue Cue) float64 {
	if cue < 0 || cue >= CueCount {
		return 0
	}
	return c.CueVolumes[cue] * c.MasterVolume
}
