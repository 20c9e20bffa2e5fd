package views

import (
	"image/color"
	"math"
)

var (
	ColorIdle     = color.NRGBA{R: 0x00, G: 0x7A, B: 0xFF, A: 0xFF}
	ColorHalfway  = color.NRGBA{R: 0xFF, G: 0x6B, B: 0x35, A: 0xFF}
	ColorComplete = color.NRGBA{R: 0x00, G: 0xC8, B: 0x51, A: 0xFF}

	ColorMuted       = color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xFF}
	ColorOnButton    = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	ColorTrack       = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x4D}
	ColorProgressBar = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xCC}
)

// ButtonColor maps hold progress onto the button fill: blue at rest,
// orange halfway, green when complete.
func ButtonColor(progress float32) color.NRGBA {
	switch {
	case progress <= 0:
		return ColorIdle
	case progress >= 1:
		return ColorComplete
	case progress <= 0.5:
		return mix(ColorIdle, ColorHalfway, progress/0.5)
	default:
		return mix(ColorHalfway, ColorComplete, (progress-0.5)/0.5)
	}
}

func mix(a, b color.NRGBA, f float32) color.NRGBA {
	channel := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(float32(x) + (float32(y)-float32(x))*f)))
	}
	return color.NRGBA{
		R: channel(a.R, b.R),
		G: channel(a.G, b.G),
		B: channel(a.B, b.B),
		A: channel(a.A, b.A),
	}
}
