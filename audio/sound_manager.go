package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/once-upon-a-lever/constant"
)

// SoundManager owns the speaker and the music and effects buses
// Every method is a no-op until Initialize succeeds
type SoundManager struct {
	mu sync.Mutex

	sfx      *beep.Mixer
	music    *beep.Mixer
	sfxBus   *effects.Volume
	musicBus *effects.Volume
	master   *effects.Volume
	musicOn  *beep.Ctrl

	volumes     Volumes
	muted       bool
	initialized bool
	played      uint64
}

// NewSoundManager creates an uninitialized manager with default volumes
func NewSoundManager() *SoundManager {
	sm := &SoundManager{
		sfx:   &beep.Mixer{},
		music: &beep.Mixer{},
		volumes: Volumes{
			Master: constant.DefaultMasterVolume,
			Music:  constant.DefaultMusicVolume,
			SFX:    constant.DefaultSFXVolume,
		},
	}
	sm.sfxBus = newVolume(sm.sfx, sm.volumes.SFX)
	sm.musicBus = newVolume(sm.music, sm.volumes.Music)
	sm.master = newVolume(beep.Mix(sm.sfxBus, sm.musicBus), sm.volumes.Master)
	return sm
}

// Initialize opens the speaker and starts the bus mix
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(constant.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(sm.master)
	sm.initialized = true
	return nil
}

// Initialized reports whether the speaker is open
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Cleanup silences both buses
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.sfx.Clear()
	sm.music.Clear()
	speaker.Unlock()
	sm.musicOn = nil
	speaker.Clear()
	sm.initialized = false
}

// Play starts a cue on the effects bus
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	s := cueStreamer(c)
	if s == nil {
		return
	}
	speaker.Lock()
	sm.sfx.Add(s)
	speaker.Unlock()
	sm.played++
}

// Played returns how many cues were started
func (sm *SoundManager) Played() uint64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}

// StartMusic loops the background pad; already playing is a no-op
func (sm *SoundManager) StartMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || (sm.musicOn != nil && !sm.musicOn.Paused) {
		return
	}
	ctrl := &beep.Ctrl{Streamer: &drone{}}
	speaker.Lock()
	sm.music.Add(ctrl)
	speaker.Unlock()
	sm.musicOn = ctrl
}

// StopMusic pauses the background pad
func (sm *SoundManager) StopMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.musicOn == nil {
		return
	}
	speaker.Lock()
	sm.musicOn.Paused = true
	speaker.Unlock()
	sm.musicOn = nil
}

// SetVolumes applies bus gains, clamped to [0,1]
func (sm *SoundManager) SetVolumes(v Volumes) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.volumes = v.Clamped()
	sm.applyGains()
}

// Volumes returns the current bus gains
func (sm *SoundManager) Volumes() Volumes {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.volumes
}

// SetMuted silences the master bus without losing the gains
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = muted
	sm.applyGains()
}

// applyGains pushes volumes to the bus effects, under the speaker lock once playing
func (sm *SoundManager) applyGains() {
	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	setGain(sm.sfxBus, sm.volumes.SFX)
	setGain(sm.musicBus, sm.volumes.Music)
	master := sm.volumes.Master
	if sm.muted {
		master = 0
	}
	setGain(sm.master, master)
}
