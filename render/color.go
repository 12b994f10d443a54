package render

import "github.com/gdamore/tcell/v2"

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Color converts to a tcell true color
func (c RGB) Color() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Blend performs alpha blending: result = src*alpha + c*(1-alpha)
func (c RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// Scale multiplies every channel by factor in [0,1]
func (c RGB) Scale(factor float64) RGB {
	return RGBBlack.Blend(c, factor)
}

// BlendMode defines compositing operations
type BlendMode uint8

const (
	BlendReplace BlendMode = iota // Dst = Src (opaque overwrite)
	BlendAlpha                    // Dst = Src*α + Dst*(1-α)
)

// Stage palette
var (
	RGBBlack      = RGB{0, 0, 0}
	RGBBackground = RGB{26, 27, 38}  // Tokyo Night background
	RGBStage      = RGB{36, 40, 59}  // Stage floor behind the scene
	RGBSlot       = RGB{86, 95, 137} // Empty drop slot marker
	RGBSlotGate   = RGB{122, 162, 247}

	RGBItem       = RGB{224, 175, 104}
	RGBItemHeld   = RGB{255, 220, 140}
	RGBItemLocked = RGB{158, 206, 106}
	RGBFigure     = RGB{187, 154, 247}

	RGBLever       = RGB{169, 177, 214}
	RGBLeverActive = RGB{158, 206, 106}
	RGBRope        = RGB{192, 160, 100}
	RGBArrow       = RGB{169, 177, 214}
	RGBArrowOff    = RGB{65, 72, 104}

	RGBCurtain     = RGB{140, 30, 40}
	RGBCurtainFold = RGB{110, 20, 30}

	RGBText       = RGB{192, 202, 245}
	RGBStatusText = RGB{0, 0, 0}
	RGBStatusBg   = RGB{135, 206, 250}
	RGBPausedBg   = RGB{255, 165, 0}
)
