package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond

	// AudioMasterVolume scales every cue
	AudioMasterVolume = 0.6

	// AudioMinCueGap suppresses repeats of the same cue closer than this
	AudioMinCueGap = 40 * time.Millisecond
)

// Hit Sound
const (
	HitSoundDuration = 60 * time.Millisecond
	HitSoundAttack   = 2 * time.Millisecond
	HitSoundRelease  = 40 * time.Millisecond
	HitSoundFreq     = 660.0
)

// Kill Sound
const (
	KillSoundDuration = 250 * time.Millisecond
	KillSoundAttack   = 5 * time.Millisecond
	KillSoundRelease  = 200 * time.Millisecond
	KillSoundFreq     = 110.0
)

// Pickup Sound
const (
	PickupSoundNote1Duration = 80 * time.Millisecond
	PickupSoundNote2Duration = 200 * time.Millisecond
	PickupSoundAttack        = 5 * time.Millisecond
	PickupSoundNote1Release  = 40 * time.Millisecond
	PickupSoundNote2Release  = 150 * time.Millisecond
	PickupSoundNote1Freq     = 987.77
	PickupSoundNote2Freq     = 1318.51
)

// Damage Sound
const (
	DamageSoundDuration = 120 * time.Millisecond
	DamageSoundAttack   = 5 * time.Millisecond
	DamageSoundRelease  = 60 * time.Millisecond
	DamageSoundFreq     = 100.0
)

// Game Over Sound
const (
	GameOverNoteDuration = 300 * time.Millisecond
	GameOverSoundAttack  = 10 * time.Millisecond
	GameOverSoundRelease = 200 * time.Millisecond
)

// GameOverNotes is the descending jingle played on game over
var GameOverNotes = []float64{392.0, 311.13, 261.63}
