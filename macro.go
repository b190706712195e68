package ft2pently

import "strconv"

// MacroType is the envelope kind of a macro, in the order INST2A03 lists
// them.
type MacroType int

const (
	MacroVolume MacroType = iota
	MacroArpeggio
	MacroPitch
	MacroHiPitch
	MacroDuty
	MacroTypeCount int = iota
)

var macroTypeNames = [MacroTypeCount]string{"volume", "arpeggio", "pitch", "hipitch", "duty"}

func (t MacroType) String() string {
	if t < 0 || int(t) >= MacroTypeCount {
		return "macro?"
	}
	return macroTypeNames[t]
}

// ArpeggioMode is how the values of an arpeggio macro are interpreted.
type ArpeggioMode int

const (
	ArpeggioAbsolute ArpeggioMode = iota
	ArpeggioFixed
	ArpeggioRelative
)

const (
	MaxMacros      = 128
	MaxMacroLength = 252
	NoLoopPoint    = -1
)

type (
	// Macro is one envelope: a sequence of per-frame values with optional
	// loop and release points.
	Macro struct {
		Type    MacroType    `yaml:"type"`
		ID      int          `yaml:"id"`
		Loop    int          `yaml:"loop"`
		Release int          `yaml:"release"`
		Mode    ArpeggioMode `yaml:"mode,omitempty"`
		Values  []int8       `yaml:"values,flow"`
		Decay   Decay        `yaml:"decay,omitempty"`
	}

	// Decay describes a volume envelope whose tail can be replaced by
	// Pently's decay: Values[:Truncate+1] followed by a decrease of Rate
	// sixteenths per frame.
	Decay struct {
		Valid    bool `yaml:"valid,omitempty"`
		Level    int  `yaml:"level,omitempty"`
		Rate     int  `yaml:"rate,omitempty"`
		Truncate int  `yaml:"truncate,omitempty"`
	}
)

// HasLoop reports whether the macro loops.
func (m *Macro) HasLoop() bool {
	return m.Loop >= 0 && m.Loop < len(m.Values)
}

// Copy returns a deep copy of the macro, so that derived envelopes can be
// edited without touching the original.
func (m *Macro) Copy() *Macro {
	ret := *m
	ret.Values = make([]int8, len(m.Values))
	copy(ret.Values, m.Values)
	return &ret
}

// Absolute returns the arpeggio values as offsets from the base note; a
// relative arpeggio is accumulated.
func (m *Macro) Absolute() []int {
	ret := make([]int, len(m.Values))
	sum := 0
	for i, v := range m.Values {
		if m.Mode == ArpeggioRelative {
			sum += int(v)
			ret[i] = sum
		} else {
			ret[i] = int(v)
		}
	}
	return ret
}

// Body renders values as an envelope line body: every value followed by a
// space, and "| " in front of the loop point.
func Body(values []int, loop int) string {
	var b []byte
	for i, v := range values {
		if i == loop {
			b = append(b, "| "...)
		}
		b = strconv.AppendInt(b, int64(v), 10)
		b = append(b, ' ')
	}
	return string(b)
}

// Ints widens macro values.
func Ints(values []int8) []int {
	ret := make([]int, len(values))
	for i, v := range values {
		ret[i] = int(v)
	}
	return ret
}
