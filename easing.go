package sketch

import (
	"math"

	"golang.org/x/text/cases"
)

// EasingMode selects an easing curve for Easing.
type EasingMode int

// Easing curves. The Power and Exp variants use EasingRange.Param.
const (
	EaseLinear EasingMode = iota
	EaseQuadIn
	EaseQuadOut
	EaseQuadInOut
	EaseCubicIn
	EaseCubicOut
	EaseCubicInOut
	EasePowerIn
	EasePowerOut
	EasePowerInOut
	EaseSinIn
	EaseSinOut
	EaseSinInOut
	EaseExpIn
	EaseExpOut
	EaseExpInOut
	EaseCircIn
	EaseCircOut
	EaseCircInOut
	easeCount
)

var easingNames = [easeCount]string{
	"linear",
	"quad_in", "quad_out", "quad_inout",
	"cubic_in", "cubic_out", "cubic_inout",
	"power_in", "power_out", "power_inout",
	"sin_in", "sin_out", "sin_inout",
	"exp_in", "exp_out", "exp_inout",
	"circ_in", "circ_out", "circ_inout",
}

// String returns the easing name, such as "quad_inout".
func (m EasingMode) String() string {
	if m < 0 || m >= easeCount {
		return "unknown"
	}
	return easingNames[m]
}

// ParseEasing looks up an easing mode by name, ignoring case.
func ParseEasing(name string) (EasingMode, error) {
	key := cases.Fold().String(name)
	for i, n := range easingNames {
		if n == key {
			return EasingMode(i), nil
		}
	}
	return 0, argError("ParseEasing", "unknown easing function %q", name)
}

// EasingRange describes the input and output ranges of Easing. LowDead
// and HighDead shrink the input range by a fraction of its span at either
// end.
type EasingRange struct {
	Start1, Stop1     float64
	Start2, Stop2     float64
	LowDead, HighDead float64
	Param             float64
}

// DefaultEasingRange maps [0, 1] to [0, 1] with no dead zones and Param 10.
func DefaultEasingRange() EasingRange {
	return EasingRange{Stop1: 1, Stop2: 1, Param: 10}
}

// Easing maps value from the input range to the output range through the
// easing curve. The input is clamped to the (dead zone adjusted) input range.
func Easing(value float64, mode EasingMode, r EasingRange) (float64, error) {
	if mode < 0 || mode >= easeCount {
		return 0, argError("Easing", "unknown easing mode %d", int(mode))
	}
	low := r.Start1 + r.LowDead*(r.Stop1-r.Start1)
	high := r.Stop1 - r.HighDead*(r.Stop1-r.Start1)
	if low == high {
		return 0, argError("Easing", "empty input range")
	}
	v := min(1, max(0, (value-low)/(high-low)))
	return r.Start2 + ease(mode, v, r.Param)*(r.Stop2-r.Start2), nil
}

func ease(mode EasingMode, v, a float64) float64 {
	switch mode {
	case EaseQuadIn:
		return v * v
	case EaseQuadOut:
		return -v * (v - 2)
	case EaseQuadInOut:
		if v < 0.5 {
			return 2 * v * v
		}
		return -2*v*(v-2) - 1
	case EaseCubicIn:
		return v * v * v
	case EaseCubicOut:
		return math.Pow(v-1, 3) + 1
	case EaseCubicInOut:
		if v < 0.5 {
			return 4 * v * v * v
		}
		return 4*math.Pow(v-1, 3) + 1
	case EasePowerIn:
		return math.Pow(v, a)
	case EasePowerOut:
		return 1 - math.Pow(1-v, a)
	case EasePowerInOut:
		if v < 0.5 {
			return math.Pow(2*v, a) / 2
		}
		return 1 - 0.5*math.Pow(2-2*v, a)
	case EaseSinIn:
		return 1 - math.Cos(v*math.Pi/2)
	case EaseSinOut:
		return math.Sin(v * math.Pi / 2)
	case EaseSinInOut:
		return 0.5 * (1 - math.Cos(v*math.Pi))
	case EaseExpIn:
		return math.Pow(2, a*(v-1))
	case EaseExpOut:
		return 1 - math.Pow(2, -a*v)
	case EaseExpInOut:
		if v < 0.5 {
			return math.Pow(2, a*(2*v-1)) / 2
		}
		return 1 - math.Pow(2, a*(1-2*v)-1)
	case EaseCircIn:
		return -(math.Sqrt(1-v*v) - 1)
	case EaseCircOut:
		return math.Sqrt(-v * (v - 2))
	case EaseCircInOut:
		if v < 0.5 {
			return -0.5 * (math.Sqrt(1-4*v*v) - 1)
		}
		return math.Sqrt(-(v-1.5)*(v-0.5)) + 0.5
	default:
		return v
	}
}
