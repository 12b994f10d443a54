package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/once-upon-a-lever/constant"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

const sampleRate = beep.SampleRate(constant.AudioSampleRate)

// oscillator generates a finite raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a streamer of the given wave lasting duration
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
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain
// math.Log2(0) is -Inf, so zero gain is expressed as Silent
func newVolume(s beep.Streamer, gain float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: constant.VolumeBase}
	setGain(v, gain)
	return v
}

func setGain(v *effects.Volume, gain float64) {
	if gain <= 0 {
		v.Volume, v.Silent = 0, true
		return
	}
	v.Volume, v.Silent = math.Log(gain)/math.Log(constant.VolumeBase), false
}

// tone is one enveloped oscillator note
func tone(freq float64, d time.Duration, wave WaveType) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, sampleRate), d, constant.CueAttack, constant.CueRelease, sampleRate)
}

// cueStreamer synthesizes a cue at unity gain
func cueStreamer(c Cue) beep.Streamer {
	switch c {
	case CueTick:
		return newVolume(tone(1800, constant.TickCueDuration, WaveSquare), 0.15)
	case CueAppear:
		return beep.Seq(
			newVolume(tone(660, constant.AppearCueDuration/2, WaveSine), 0.5),
			newVolume(tone(990, constant.AppearCueDuration/2, WaveSine), 0.5),
		)
	case CuePick:
		return newVolume(tone(520, constant.PickCueDuration, WaveSine), 0.4)
	case CuePlace:
		return newVolume(tone(330, constant.PlaceCueDuration, WaveSine), 0.6)
	case CueReject:
		return newVolume(tone(110, constant.RejectCueDuration, WaveSaw), 0.4)
	case CueLever:
		return beep.Mix(
			newVolume(tone(0, constant.LeverCueDuration, WaveNoise), 0.2),
			newVolume(tone(140, constant.LeverCueDuration, WaveSquare), 0.25),
		)
	case CueRetract:
		return newVolume(tone(90, constant.LeverCueDuration, WaveSquare), 0.25)
	case CueCurtain:
		return newVolume(tone(0, constant.CurtainCueDuration, WaveNoise), 0.12)
	case CuePass:
		return beep.Seq(
			newVolume(tone(523.25, constant.ChimeNoteDuration, WaveSine), 0.5),
			newVolume(tone(659.25, constant.ChimeNoteDuration, WaveSine), 0.5),
			newVolume(tone(783.99, constant.ChimeNoteDuration*2, WaveSine), 0.5),
		)
	case CueFail:
		return beep.Seq(
			newVolume(tone(392, constant.ChimeNoteDuration, WaveSaw), 0.3),
			newVolume(tone(311.13, constant.ChimeNoteDuration*2, WaveSaw), 0.3),
		)
	case CueEnd:
		return beep.Mix(
			newVolume(tone(261.63, constant.ChimeNoteDuration*6, WaveSine), 0.4),
			newVolume(tone(392, constant.ChimeNoteDuration*6, WaveSine), 0.3),
			newVolume(tone(523.25, constant.ChimeNoteDuration*6, WaveSine), 0.2),
		)
	}
	return nil
}

// drone is an endless low pad for the music bus
type drone struct {
	pos int
}

func (d *drone) Stream(samples [][2]float64) (n int, ok bool) {
	cycle := sampleRate.N(8 * time.Second)
	for i := range samples {
		t := float64(d.pos) / float64(sampleRate)
		swell := 0.5 + 0.5*math.Sin(2*math.Pi*float64(d.pos%cycle)/float64(cycle))
		val := 0.08 * swell * (math.Sin(2*math.Pi*110*t) + 0.5*math.Sin(2*math.Pi*164.81*t))
		samples[i][0] = val
		samples[i][1] = val
		d.pos++
	}
	return len(samples), true
}

func (d *drone) Err() error { return nil }
