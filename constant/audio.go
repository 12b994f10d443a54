package constant

import "time"

// Audio
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 48000

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// VolumeBase is the exponential base for beep volume control
	VolumeBase = 2.0

	// DefaultMasterVolume is the linear master gain before any saved setting
	DefaultMasterVolume = 0.8

	// DefaultMusicVolume is the linear music bus gain
	DefaultMusicVolume = 0.5

	// DefaultSFXVolume is the linear effects bus gain
	DefaultSFXVolume = 0.8
)

// Cue durations
const (
	TickCueDuration    = 25 * time.Millisecond
	AppearCueDuration  = 180 * time.Millisecond
	PickCueDuration    = 60 * time.Millisecond
	PlaceCueDuration   = 90 * time.Millisecond
	RejectCueDuration  = 150 * time.Millisecond
	LeverCueDuration   = 220 * time.Millisecond
	CurtainCueDuration = 900 * time.Millisecond
	ChimeNoteDuration  = 160 * time.Millisecond

	CueAttack  = 5 * time.Millisecond
	CueRelease = 40 * time.Millisecond
)
