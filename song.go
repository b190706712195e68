package ft2pently

// Limits of the export format that the converter enforces.
const (
	MaxRows     = 256
	MaxFrames   = 128
	MaxPatterns = 128
)

// NoLoop is the LoopTo value of a song that ends instead of looping.
const NoLoop = -1

type (
	// Song is one TRACK of the export: its timing, its pattern grids per
	// channel and its order list. Songs loop back to the first frame unless a
	// loop or fine effect says otherwise.
	Song struct {
		Name          string                 `yaml:"name"`
		Label         string                 `yaml:"label"`
		Number        int                    `yaml:"number"`
		Rows          int                    `yaml:"rows"`
		Speed         int                    `yaml:"speed"`
		Tempo         int                    `yaml:"tempo"`
		Channels      int                    `yaml:"channels"`
		EffectColumns [ChannelCount]int      `yaml:"effectColumns,flow"`
		Patterns      [ChannelCount]Patterns `yaml:"patterns"`
		Order         Order                  `yaml:"order,flow"`
		LoopTo        int                    `yaml:"loopTo"`
	}

	// Patterns maps a pattern id to its grid for one channel.
	Patterns map[int]*Pattern

	// JumpKind enumerates the effects that end a pattern early.
	JumpKind int

	// Jump is a resolved loop, fine or pattern cut effect.
	Jump struct {
		Kind   JumpKind
		Target int // frame index, for JumpLoop only
	}
)

const (
	JumpNone JumpKind = iota
	JumpLoop
	JumpFine
	JumpCut
)

// JumpFor maps an effect to the jump it causes, JumpNone for other effects.
func JumpFor(e Effect) Jump {
	switch e.Kind {
	case FxLoop:
		return Jump{Kind: JumpLoop, Target: int(e.Param)}
	case FxFine:
		return Jump{Kind: JumpFine}
	case FxPatternCut:
		return Jump{Kind: JumpCut}
	}
	return Jump{}
}

// NewSong returns an empty song with the default timing of a new tracker
// module.
func NewSong(number int, name string) *Song {
	s := &Song{Name: name, Number: number, Rows: 64, Speed: 6, Tempo: 150, Channels: 5}
	for i := range s.EffectColumns {
		s.EffectColumns[i] = 1
	}
	return s
}

// Pattern returns the grid of a channel's pattern, or nil if the song has
// no such pattern.
func (s *Song) Pattern(c Channel, id int) *Pattern {
	if c < 0 || int(c) >= ChannelCount || s.Patterns[c] == nil {
		return nil
	}
	return s.Patterns[c][id]
}

// EnsurePattern returns the grid of a channel's pattern, creating it with the
// song's row count if needed.
func (s *Song) EnsurePattern(c Channel, id int) *Pattern {
	if s.Patterns[c] == nil {
		s.Patterns[c] = Patterns{}
	}
	p, ok := s.Patterns[c][id]
	if !ok {
		p = NewPattern(s.Rows)
		s.Patterns[c][id] = p
	}
	return p
}

// PatternLength returns the effective length of a channel's pattern; a
// missing pattern plays for the full row count.
func (s *Song) PatternLength(c Channel, id int) int {
	if p := s.Pattern(c, id); p != nil {
		return min(p.Length, s.Rows)
	}
	return s.Rows
}

// ApplyJump truncates the pattern after row and records the loop target the
// jump implies.
func (s *Song) ApplyJump(p *Pattern, row int, j Jump) {
	if j.Kind == JumpNone {
		return
	}
	p.Truncate(row)
	switch j.Kind {
	case JumpLoop:
		s.LoopTo = j.Target
	case JumpFine:
		s.LoopTo = NoLoop
	}
}

// Finalize clamps the effective lengths and refreshes the used flags of
// every pattern. It is called once the whole song has been read.
func (s *Song) Finalize() {
	for c := range s.Patterns {
		for _, p := range s.Patterns[c] {
			if p.Length > s.Rows {
				p.Length = s.Rows
			}
			p.UpdateUsed()
		}
	}
}

// Tempo returns the Pently tempo for a speed and tracker tempo.
func Tempo(speed, tempo int) float64 {
	return 6 / float64(speed) * float64(tempo)
}
