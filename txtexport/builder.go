package txtexport

import (
	"strconv"

	"github.com/ft2pently/ft2pently"
)

// buildCell turns one split cell into a note of the pattern. A cell that a
// slur of the previous row already filled is left alone.
func (p *Parser) buildCell(song *ft2pently.Song, pat *ft2pently.Pattern, ch ft2pently.Channel, row int, cell Cell) error {
	if pat.Occupied(row) {
		return nil
	}
	note := ft2pently.Blank()
	if ok, err := p.decodePitch(&note, ch, row, cell.Note); !ok || err != nil {
		return err
	}
	ignored := false
	if cell.Instrument != ".." {
		id, err := strconv.ParseUint(cell.Instrument, 16, 8)
		inst := p.Tables.Instrument(int(id))
		if err != nil || inst == nil {
			return p.Diag.Warnf(p.pos(ch, row), "instrument %s out of range, note dropped", cell.Instrument)
		}
		if inst.Ignore.Has(ch) {
			ignored = true
		} else {
			note.Instrument = inst.ID
			inst.Used = true
			inst.Played = inst.Played.With(ch)
		}
	} else if note.Sounding() {
		note.Instrument = pat.InheritedInstrument(row)
	}
	if cell.Volume != '.' {
		v, err := strconv.ParseUint(string(cell.Volume), 16, 8)
		if err != nil {
			if err := p.Diag.Warnf(p.pos(ch, row), "invalid volume %q", cell.Volume); err != nil {
				return err
			}
		} else if level := ft2pently.LevelFromDigit(int(v)); level != pat.PrevVolume(row) {
			note.Volume = level
		}
	}
	for _, text := range cell.Effects {
		if text[0] == '.' {
			continue
		}
		param, err := strconv.ParseUint(text[1:], 16, 8)
		if err != nil {
			if err := p.Diag.Warnf(p.pos(ch, row), "invalid effect %s", text); err != nil {
				return err
			}
			continue
		}
		e := ft2pently.Effect{Kind: text[0], Param: byte(param)}
		if ignored {
			// the note is dropped but the song still ends the pattern here
			song.ApplyJump(pat, row, ft2pently.JumpFor(e))
			continue
		}
		keep, err := p.applyEffect(song, pat, ch, row, &note, e)
		if err != nil {
			return err
		}
		if keep {
			note.Effects = append(note.Effects, e)
		}
	}
	if ignored {
		return nil
	}
	pat.Set(row, note)
	return nil
}

// decodePitch fills in the pitch of the note from the note field. It returns
// false if the cell has to be dropped.
func (p *Parser) decodePitch(note *ft2pently.Note, ch ft2pently.Channel, row int, text string) (bool, error) {
	switch text[0] {
	case '.':
		return true, nil
	case '-':
		note.Kind = ft2pently.PitchRest
		return true, nil
	case '=':
		if ch.Pitched() {
			note.Kind = ft2pently.PitchCut
		}
		return true, nil
	}
	if ch == ft2pently.Noise {
		if _, ok := hexValue(text[0]); !ok {
			return false, p.Diag.Warnf(p.pos(ch, row), "invalid noise note %s", text)
		}
		note.Kind = ft2pently.PitchNote
		note.Letter = text[0]
		return true, nil
	}
	if text[0] < 'A' || text[0] > 'G' {
		return false, p.Diag.Warnf(p.pos(ch, row), "unsupported note %s", text)
	}
	octave := int(text[2] - '0')
	if octave < 0 || octave >= ft2pently.NumOctaves {
		return false, p.Diag.Warnf(p.pos(ch, row), "octave of %s out of range", text)
	}
	note.Kind = ft2pently.PitchNote
	note.Letter = text[0]
	note.Sharp = text[1] == '#'
	note.Octave = octave
	return true, nil
}

// applyEffect resolves the parts of an effect that reach beyond the cell. It
// returns whether the effect stays on the note.
func (p *Parser) applyEffect(song *ft2pently.Song, pat *ft2pently.Pattern, ch ft2pently.Channel, row int, note *ft2pently.Note, e ft2pently.Effect) (bool, error) {
	if !ft2pently.SupportedEffect(e.Kind) {
		if err := p.Diag.Warnf(p.pos(ch, row), "unsupported effect %c%02X", e.Kind, e.Param); err != nil {
			return false, err
		}
		return true, nil
	}
	switch e.Kind {
	case ft2pently.FxDelayedCut:
		if e.Param == 0 || p.forceCut.Has(ch) {
			note.Kind = ft2pently.PitchCut
			return false, nil
		}
		if note.Kind == ft2pently.PitchNone {
			note.Kind = ft2pently.PitchCut
		}
	case ft2pently.FxSlur:
		if e.Param != 0 {
			if prev := pat.PrevSounding(row); prev >= 0 {
				pat.Rows[prev].Slur = true
			}
		}
	case ft2pently.FxSlurUp, ft2pently.FxSlurDown:
		return true, p.slurShift(song, pat, ch, row, note, e)
	case ft2pently.FxLoop, ft2pently.FxFine, ft2pently.FxPatternCut:
		j := ft2pently.JumpFor(e)
		if j.Kind == ft2pently.JumpLoop && j.Target >= ft2pently.MaxFrames {
			return false, p.Diag.Warnf(p.pos(ch, row), "loop target %02X out of range", e.Param)
		}
		song.ApplyJump(pat, row, j)
	case ft2pently.FxSpeed:
		if e.Param == 0 {
			return false, p.Diag.Warnf(p.pos(ch, row), "F00 ignored")
		}
	case ft2pently.FxAttack:
		if ft2pently.AttackRoleOf(ch) == ft2pently.AttackDrumPair {
			if p.Tables.Instrument(int(e.Param)) == nil {
				return false, p.Diag.Warnf(p.pos(ch, row), "paired triangle instrument %02X out of range", e.Param)
			}
		} else if _, ok := ft2pently.AttackTarget(e.Param); !ok {
			return false, p.Diag.Warnf(p.pos(ch, row), "attack target %02X out of range", e.Param)
		}
	}
	return true, nil
}

// slurShift marks the note as slurring into a copy of itself shifted by the
// low nibble of the parameter, written to the next row.
func (p *Parser) slurShift(song *ft2pently.Song, pat *ft2pently.Pattern, ch ft2pently.Channel, row int, note *ft2pently.Note, e ft2pently.Effect) error {
	if !ch.Pitched() || !note.Sounding() {
		return nil
	}
	shift := int(e.Param & 0xF)
	if e.Kind == ft2pently.FxSlurDown {
		shift = -shift
	}
	note.Slur = true
	if row+1 >= song.Rows || pat.Occupied(row+1) {
		return nil
	}
	target := ft2pently.Blank()
	target.Kind = ft2pently.PitchNote
	target.Letter, target.Sharp, target.Octave = note.Letter, note.Sharp, note.Octave
	target.Instrument = note.Instrument
	if err := target.Shift(shift); err != nil {
		return p.Diag.Warnf(p.pos(ch, row), "slur target: %v", err)
	}
	pat.Set(row+1, target)
	return nil
}

func hexValue(c byte) (int, bool) {
	v, err := strconv.ParseUint(string(c), 16, 8)
	return int(v), err == nil
}
