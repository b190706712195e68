package ft2pently

import "slices"

const (
	minDecayLevel = 2
	maxDecayLevel = 15
	maxDecayRate  = 16
)

// decayCurves[level][rate] is the volume sequence Pently plays when a note
// held at level decays by rate sixteenths per frame. Pently keeps the volume
// in sixteenths starting from (level+1)*16 and subtracts before each frame.
// Every curve ends in zero.
var decayCurves = func() (ret [maxDecayLevel + 1][maxDecayRate + 1][]int8) {
	for level := minDecayLevel; level <= maxDecayLevel; level++ {
		for rate := 1; rate <= maxDecayRate; rate++ {
			var curve []int8
			for v := (level+1)*16 - rate; v >= 0; v -= rate {
				curve = append(curve, int8((v+8)/16))
			}
			if len(curve) == 0 || curve[len(curve)-1] != 0 {
				curve = append(curve, 0)
			}
			ret[level][rate] = curve
		}
	}
	return
}()

// DecayCurve returns the decay curve for a starting level and rate.
func DecayCurve(level, rate int) []int8 {
	if level < minDecayLevel || level > maxDecayLevel || rate < 1 || rate > maxDecayRate {
		return nil
	}
	return decayCurves[level][rate]
}

// DetectDecay matches the tail of a volume macro against the decay curves
// and records the first match on the macro. Higher levels are tried first,
// then lower rates. Looping macros and macros not ending in zero never match.
func DetectDecay(m *Macro) Decay {
	m.Decay = Decay{}
	n := len(m.Values)
	if m.Type != MacroVolume || m.HasLoop() || n == 0 || m.Values[n-1] != 0 {
		return m.Decay
	}
	for level := maxDecayLevel; level >= minDecayLevel; level-- {
		for rate := 1; rate <= maxDecayRate; rate++ {
			curve := decayCurves[level][rate]
			if len(curve) > n || !slices.Equal(m.Values[n-len(curve):], curve) {
				continue
			}
			m.Decay = Decay{Valid: true, Level: level, Rate: rate, Truncate: n - len(curve)}
			return m.Decay
		}
	}
	return m.Decay
}
