package audio

import (
	"errors"
	"math"
)

// Cue is a short sound effect keyed to a game moment
type Cue int

const (
	CueTick    Cue = iota // Typewriter character
	CueAppear             // Item revealed
	CuePick               // Item lifted
	CuePlace              // Item landed in a slot
	CueReject             // Drop refused
	CueLever              // Gate fired
	CueRetract            // Gate reversed
	CueCurtain            // Curtains moving
	CuePass               // Attempt accepted
	CueFail               // Attempt refused
	CueEnd                // Story finished
	cueCount
)

var cueNames = [cueCount]string{
	"tick", "appear", "pick", "place", "reject", "lever", "retract", "curtain", "pass", "fail", "end",
}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// Volumes are linear bus gains in [0,1]
type Volumes struct {
	Master float64
	Music  float64
	SFX    float64
}

// Clamped returns v with every gain limited to [0,1]
func (v Volumes) Clamped() Volumes {
	clamp := func(x float64) float64 {
		if math.IsNaN(x) {
			return 0
		}
		return math.Max(0, math.Min(1, x))
	}
	return Volumes{Master: clamp(v.Master), Music: clamp(v.Music), SFX: clamp(v.SFX)}
}

// ErrNotInitialized is returned by operations that need the speaker
var ErrNotInitialized = errors.New("audio not initialized")
