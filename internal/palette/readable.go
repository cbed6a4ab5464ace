package palette

import (
	"github.com/ironsheep/garment-palette-mcp/internal/colorspace"
)

const (
	// DefaultTargetLightness and DefaultMinSaturation are the EnsureReadable
	// defaults used for UI accent swatches.
	DefaultTargetLightness = 0.55
	DefaultMinSaturation   = 0.5

	// Lightness is kept within readableLightnessSpan of the target and never
	// outside [readableMinLightness, readableMaxLightness].
	readableLightnessSpan = 0.2
	readableMinLightness  = 0.35
	readableMaxLightness  = 0.75

	// readableStep is the HSL nudge applied when 8-bit rounding lands a
	// clamped colour just outside the bounds.
	readableStep     = 0.004
	readableMaxSteps = 32
)

// EnsureReadable raises saturation to at least minSaturation and clamps
// lightness into a band around targetLightness so the colour stays legible on
// light and dark UI backgrounds. Saturation is never lowered. Malformed input
// is returned unchanged.
//
// The clamped colour is re-checked after rounding to 8 bits and nudged back
// inside the bounds, so a colour it produced is returned as-is.
func EnsureReadable(hex string, targetLightness, minSaturation float64) string {
	norm, err := colorspace.NormalizeHex(hex)
	if err != nil {
		return hex
	}
	rgb, _ := colorspace.ParseHex(norm)
	hsl := rgb.HSL()

	lo, hi := ReadableLightnessBand(targetLightness)
	minSaturation = colorspace.Clamp(minSaturation, 0, 1)

	if readableWithin(hsl, lo, hi, minSaturation) {
		return norm
	}

	s := max(hsl.S, minSaturation)
	l := colorspace.Clamp(hsl.L, lo, hi)
	out := colorspace.HSLToHex(hsl.H, s, l)
	for i := 0; i < readableMaxSteps; i++ {
		got, _ := colorspace.ParseHex(out)
		check := got.HSL()
		if readableWithin(check, lo, hi, minSaturation) {
			break
		}
		if check.S < minSaturation {
			s = min(1, s+readableStep)
		}
		if check.L < lo {
			l += readableStep
		} else if check.L > hi {
			l -= readableStep
		}
		out = colorspace.HSLToHex(hsl.H, s, l)
	}
	return out
}

func readableWithin(hsl colorspace.HSL, lo, hi, minSaturation float64) bool {
	return hsl.S >= minSaturation && hsl.L >= lo && hsl.L <= hi
}

// EnsureReadableDefault is EnsureReadable with the default target and
// minimum saturation.
func EnsureReadableDefault(hex string) string {
	return EnsureReadable(hex, DefaultTargetLightness, DefaultMinSaturation)
}

// ReadableLightnessBand returns the lightness bounds EnsureReadable clamps to
// for a target.
func ReadableLightnessBand(target float64) (lo, hi float64) {
	target = colorspace.Clamp(target, readableMinLightness, readableMaxLightness)
	lo = max(readableMinLightness, target-readableLightnessSpan)
	hi = min(readableMaxLightness, target+readableLightnessSpan)
	return lo, hi
}
