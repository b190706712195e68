package ft2pently

import "github.com/pkg/errors"

// PitchKind tells what a Note cell does to its channel.
type PitchKind int

const (
	PitchNone PitchKind = iota // nothing new; the previous note continues
	PitchNote                  // a new sounding note
	PitchRest                  // "---" note cut
	PitchCut                   // release or delayed cut, silenced at emission
)

// VolumeLevel is the coarse channel volume a note sets. VolumeUnchanged means
// the note does not touch the volume.
type VolumeLevel int

const (
	VolumeUnchanged VolumeLevel = iota
	Volume25
	Volume50
	Volume75
	Volume100
)

// LevelFromDigit maps a tracker volume column digit (0-15) to a coarse level.
func LevelFromDigit(v int) VolumeLevel {
	switch {
	case v <= 6:
		return Volume25
	case v <= 9:
		return Volume50
	case v <= 12:
		return Volume75
	}
	return Volume100
}

const (
	NoInstrument = -1
	MaxEffects   = 4
	NumOctaves   = 7
)

// Effect is one effect column: the effect letter and its parameter byte. A
// zero Kind means the slot is empty or was disabled.
type Effect struct {
	Kind  byte `yaml:"kind"`
	Param byte `yaml:"param"`
}

// Effect letters understood by the converter.
const (
	FxArpeggio    = '0'
	FxSlur        = '3'
	FxVibrato     = '4'
	FxLoop        = 'B'
	FxFine        = 'C'
	FxPatternCut  = 'D'
	FxSpeed       = 'F'
	FxDelay       = 'G'
	FxAttack      = 'H'
	FxSlurUp      = 'Q'
	FxSlurDown    = 'R'
	FxDelayedCut  = 'S'
	speedTempoCut = 0x20 // Fxx below this sets speed, otherwise tempo
)

// SupportedEffect reports whether the effect letter has a translation.
func SupportedEffect(kind byte) bool {
	switch kind {
	case FxArpeggio, FxSlur, FxVibrato, FxLoop, FxFine, FxPatternCut, FxSpeed,
		FxDelay, FxAttack, FxSlurUp, FxSlurDown, FxDelayedCut:
		return true
	}
	return false
}

// SpeedOrTempo splits an Fxx parameter into either a speed or a tempo; the
// other return value is zero.
func SpeedOrTempo(param byte) (speed, tempo int) {
	if param < speedTempoCut {
		return int(param), 0
	}
	return 0, int(param)
}

// Note is one cell of a pattern grid.
type Note struct {
	Kind PitchKind `yaml:"kind"`
	// Letter is the note letter 'A'..'G' on pitched and DPCM channels and the
	// frequency digit '0'..'F' on the noise channel.
	Letter     byte        `yaml:"letter,omitempty"`
	Sharp      bool        `yaml:"sharp,omitempty"`
	Octave     int         `yaml:"octave,omitempty"`
	Instrument int         `yaml:"instrument"`
	Volume     VolumeLevel `yaml:"volume,omitempty"`
	Effects    []Effect    `yaml:"effects,omitempty,flow"`
	Slur       bool        `yaml:"slur,omitempty"`
}

// Blank returns an empty cell.
func Blank() Note {
	return Note{Instrument: NoInstrument}
}

// Sounding reports whether the note starts a new sound.
func (n *Note) Sounding() bool {
	return n.Kind == PitchNote
}

// Effect returns the first effect of the given kind on the note.
func (n *Note) Effect(kind byte) (Effect, bool) {
	for _, e := range n.Effects {
		if e.Kind == kind {
			return e, true
		}
	}
	return Effect{}, false
}

// Scale lists the twelve semitones from C. Lowercase letters are naturals,
// uppercase the sharp of the same letter.
const Scale = "cCdDefFgGaAb"

// Semitone returns the absolute semitone number (octave*12 + index in Scale).
func (n *Note) Semitone() (int, error) {
	idx := -1
	for i := 0; i < len(Scale); i++ {
		if lower(Scale[i]) == lower(n.Letter) && (Scale[i] < 'a') == n.Sharp {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, errors.Errorf("note %q has no semitone", n.Name())
	}
	return n.Octave*12 + idx, nil
}

// SetSemitone sets letter, sharp and octave from an absolute semitone number.
func (n *Note) SetSemitone(semitone int) error {
	if semitone < 0 || semitone >= NumOctaves*12 {
		return errors.Errorf("semitone %d outside octaves 0-%d", semitone, NumOctaves-1)
	}
	s := Scale[semitone%12]
	n.Letter = upper(s)
	n.Sharp = s < 'a'
	n.Octave = semitone / 12
	return nil
}

// Shift transposes the note by the given number of semitones.
func (n *Note) Shift(semitones int) error {
	s, err := n.Semitone()
	if err != nil {
		return err
	}
	return n.SetSemitone(s + semitones)
}

// NoiseFrequency returns the 4-bit frequency of a noise channel note.
func (n *Note) NoiseFrequency() (int, bool) {
	return hexDigit(n.Letter)
}

// Name returns the note as the tracker spells it, e.g. "C#4".
func (n *Note) Name() string {
	switch n.Kind {
	case PitchRest:
		return "---"
	case PitchCut:
		return "==="
	case PitchNone:
		return "..."
	}
	sharp := byte('-')
	if n.Sharp {
		sharp = '#'
	}
	return string([]byte{n.Letter, sharp, byte('0' + n.Octave)})
}

func hexDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	}
	return 0, false
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// AttackRole is what an Hxx effect means on a channel.
type AttackRole int

const (
	// AttackConductor switches the channel the attack track plays on, at the
	// song time of the effect.
	AttackConductor AttackRole = iota
	// AttackPattern switches the attack channel from inside an attack track
	// pattern.
	AttackPattern
	// AttackDrumPair names the triangle instrument played with a noise drum.
	AttackDrumPair
)

// AttackRoleOf returns the meaning of Hxx on a channel.
func AttackRoleOf(c Channel) AttackRole {
	switch c {
	case Noise:
		return AttackDrumPair
	case Attack:
		return AttackPattern
	}
	return AttackConductor
}

// AttackTarget returns the channel an Hxx parameter moves the attack track
// to: 0 pulse1, 1 pulse2, 2 triangle.
func AttackTarget(param byte) (Channel, bool) {
	if param > byte(Triangle) {
		return 0, false
	}
	return Channel(param), true
}
