package constant

import "time"

// Typewriter
const (
	// TypewriterCharsPerSecond is the base reveal rate
	TypewriterCharsPerSecond = 20.0

	// TypewriterPunctuationDelay is the pause after . , ! ? ; :
	TypewriterPunctuationDelay = 500 * time.Millisecond
)

// Curtains
const (
	// CurtainMoveDuration is the wipe time for each curtain
	CurtainMoveDuration = time.Second

	// CurtainLeftClosedX is the left curtain's closed position
	CurtainLeftClosedX = -3.0

	// CurtainRightClosedX is the right curtain's closed position
	CurtainRightClosedX = 4.0

	// CurtainLeftOpenX is the left curtain's open position
	CurtainLeftOpenX = -17.0

	// CurtainRightOpenX is the right curtain's open position
	CurtainRightOpenX = 18.0
)

// Fader
const (
	// FadeDuration is the full fade time in either direction
	FadeDuration = time.Second
)
