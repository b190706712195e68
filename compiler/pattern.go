package compiler

import (
	"fmt"
	"strings"

	"github.com/ft2pently/ft2pently"
)

// PatternBlock is one pattern of a song as the song template lays it out.
type PatternBlock struct {
	Name       string
	Instrument string // bound instrument label, empty on the drum track
	Track      string
	Lines      []string
}

// patternName is the label of a channel's pattern within a song.
func patternName(song *ft2pently.Song, ch ft2pently.Channel, id int) string {
	return fmt.Sprintf("pat_%d_%d_%d", song.Number, ch, id)
}

// pitchName spells a note for Pently: lowercase letter, '#' if sharp, then
// one ' per octave above 2 or one , per octave below it.
func pitchName(n *ft2pently.Note) string {
	var b strings.Builder
	b.WriteByte(n.Letter | 0x20)
	if n.Sharp {
		b.WriteByte('#')
	}
	for o := n.Octave; o > 2; o-- {
		b.WriteByte('\'')
	}
	for o := n.Octave; o < 2; o++ {
		b.WriteByte(',')
	}
	return b.String()
}

var volumeTokens = [...]string{
	ft2pently.Volume25:  "pp",
	ft2pently.Volume50:  "mp",
	ft2pently.Volume75:  "mf",
	ft2pently.Volume100: "ff",
}

func vibratoToken(param byte) string {
	switch depth := param & 0xF; {
	case depth == 0:
		return "MPOF"
	case depth <= 3:
		return "MP1"
	case depth <= 7:
		return "MP2"
	case depth <= 11:
		return "MP3"
	}
	return "MP4"
}

func arpeggioToken(param byte) string {
	if param == 0 {
		return "ENOF"
	}
	return fmt.Sprintf("EN%02X", param)
}

// startsRun reports whether a note ends the run of the notes before it.
func startsRun(n *ft2pently.Note) bool {
	return n.Kind != ft2pently.PitchNone || n.Volume != ft2pently.VolumeUnchanged
}

// pattern renders the body of a used pattern. Every run of rows that starts
// with a note or a volume change becomes one group of tokens; a new line is
// started by the first run of each measure.
func (com *Compiler) pattern(song *ft2pently.Song, ch ft2pently.Channel, id int, pat *ft2pently.Pattern) (*PatternBlock, error) {
	where := ft2pently.Position{Song: song.Number, SongName: song.Name, Pattern: id, Channel: ch, Row: -1}
	block := &PatternBlock{Name: patternName(song, ch, id), Track: ch.Track()}
	length := min(pat.Length, song.Rows)
	var current *ft2pently.Instrument
	if ch.Pitched() {
		for row := 0; row < length; row++ {
			n := pat.Get(row)
			if !n.Sounding() {
				continue
			}
			where.Row = row
			if current = com.Tables.Instrument(n.Instrument); current == nil {
				return nil, com.Diag.Errorf(where, "note %s has no instrument", n.Name())
			}
			block.Instrument = current.Label
			break
		}
	}
	var line []string
	measure := 0
	for row := 0; row < length; {
		if row/rowsPerMeasure != measure && len(line) > 0 {
			block.Lines = append(block.Lines, strings.Join(line, " ")+" ")
			line = line[:0]
		}
		measure = row / rowsPerMeasure
		n := pat.Get(row)
		next := row + 1
		for next < length {
			if m := pat.Get(next); startsRun(&m) {
				break
			}
			next++
		}
		where.Row = row
		if ch.Pitched() && n.Sounding() {
			inst := com.Tables.Instrument(n.Instrument)
			if inst == nil {
				return nil, com.Diag.Errorf(where, "note %s has no instrument", n.Name())
			}
			if inst != current {
				line = append(line, "@"+inst.Label)
				current = inst
			}
		}
		tokens, err := com.note(ch, row, &n, where)
		if err != nil {
			return nil, err
		}
		dur := duration(next-row, com.Options.Dotted, n.Slur && ch.Pitched())
		tokens[len(tokens)-1] += dur[0]
		line = append(line, tokens...)
		line = append(line, dur[1:]...)
		row = next
	}
	if len(line) > 0 {
		block.Lines = append(block.Lines, strings.Join(line, " ")+" ")
	}
	return block, nil
}

// note returns the tokens of one note, the last one being the pitch that the
// duration is appended to.
func (com *Compiler) note(ch ft2pently.Channel, row int, n *ft2pently.Note, where ft2pently.Position) ([]string, error) {
	var tokens []string
	pitch := "w"
	switch {
	case n.Kind == ft2pently.PitchRest, n.Kind == ft2pently.PitchCut, row == 0 && n.Kind == ft2pently.PitchNone:
		pitch = "r"
	case n.Kind == ft2pently.PitchNote && ch.Pitched():
		pitch = pitchName(n)
	case n.Kind == ft2pently.PitchNote:
		name, ok := com.drums().DrumName(ch, n)
		if !ok {
			if err := com.Diag.Warnf(where, "no drum for %s %s, playing a rest", ch, n.Name()); err != nil {
				return nil, err
			}
			name = "r"
		}
		pitch = name
	}
	if !ch.Pitched() {
		return []string{pitch}, nil
	}
	if n.Volume != ft2pently.VolumeUnchanged {
		tokens = append(tokens, volumeTokens[n.Volume])
	}
	if e, ok := n.Effect(ft2pently.FxArpeggio); ok {
		tokens = append(tokens, arpeggioToken(e.Param))
	}
	if e, ok := n.Effect(ft2pently.FxVibrato); ok {
		tokens = append(tokens, vibratoToken(e.Param))
	}
	if e, ok := n.Effect(ft2pently.FxDelay); ok && e.Param > 0 {
		tokens = append(tokens, fmt.Sprintf("r%dg", e.Param))
	}
	if e, ok := n.Effect(ft2pently.FxDelayedCut); ok && e.Param > 0 {
		grace := pitch
		if n.Kind != ft2pently.PitchNote {
			grace = "w"
		}
		tokens = append(tokens, fmt.Sprintf("%s%dg", grace, e.Param))
		pitch = "r"
	}
	if e, ok := n.Effect(ft2pently.FxAttack); ok && ft2pently.AttackRoleOf(ch) == ft2pently.AttackPattern {
		if target, ok := ft2pently.AttackTarget(e.Param); ok {
			tokens = append(tokens, "attack on "+target.Track())
		}
	}
	return append(tokens, pitch), nil
}
