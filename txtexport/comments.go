package txtexport

import (
	"strconv"
	"strings"

	"github.com/ft2pently/ft2pently"
)

// COMMENT "text"
//
// Comment lines carry directives for the converter; any other comment text
// is ignored.
func (p *Parser) comment(rest string) error {
	_, text := splitQuoted(rest)
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	switch words[0] {
	case "include":
		name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "include"))
		if name == "" {
			return p.Diag.Warnf(p.here(), "include without a file name")
		}
		p.Tables.Includes = append(p.Tables.Includes, name)
		return p.handler.Include(name)
	case "drum":
		return p.drumDirective(words[1:])
	case "sfx":
		return p.sfxDirective(words[1:])
	case "ignore":
		return p.ignoreDirective(words[1:])
	}
	return nil
}

// drum <note><octave> <name> [<sfx> [<sfx>]]
func (p *Parser) drumDirective(args []string) error {
	if len(args) < 2 || len(args[0]) != 2 {
		return p.Diag.Warnf(p.here(), "drum needs a note like c3 and a name")
	}
	idx := strings.IndexByte(ft2pently.Scale, args[0][0])
	octave := int(args[0][1] - '0')
	if idx < 0 || octave < 0 || octave >= ft2pently.NumOctaves {
		return p.Diag.Warnf(p.here(), "drum note %q out of range", args[0])
	}
	name := ft2pently.Sanitize(args[1])
	p.Tables.SetDrumName(octave*12+idx, name)
	effects := args[2:]
	if len(effects) == 0 {
		return nil
	}
	if len(effects) > 2 {
		if err := p.Diag.Warnf(p.here(), "drum %s can only play two sound effects", name); err != nil {
			return err
		}
		effects = effects[:2]
	}
	d := ft2pently.Drum{Name: name}
	for _, e := range effects {
		d.Effects = append(d.Effects, ft2pently.Sanitize(e))
	}
	p.Tables.Drums = append(p.Tables.Drums, d)
	return nil
}

// sfx <name> <instrument> <channel>
func (p *Parser) sfxDirective(args []string) error {
	if len(args) != 3 {
		return p.Diag.Warnf(p.here(), "sfx needs a name, an instrument and a channel")
	}
	id, err := strconv.ParseUint(args[1], 16, 8)
	if err != nil || id >= ft2pently.MaxInstruments {
		return p.Diag.Warnf(p.here(), "sfx instrument %q out of range", args[1])
	}
	ch, err := ft2pently.ParseChannel(args[2])
	if err != nil || ch == ft2pently.DPCM || ch == ft2pently.Attack {
		return p.Diag.Warnf(p.here(), "sfx cannot be played on %q", args[2])
	}
	p.Tables.SoundEffects = append(p.Tables.SoundEffects, ft2pently.SoundEffect{
		Name:       ft2pently.Sanitize(args[0]),
		Instrument: int(id),
		Channel:    ch,
	})
	return nil
}

// ignore <instrument> <channel>...
func (p *Parser) ignoreDirective(args []string) error {
	if len(args) < 2 {
		return p.Diag.Warnf(p.here(), "ignore needs an instrument and channels")
	}
	id, err := strconv.ParseUint(args[0], 16, 8)
	if err != nil || id >= ft2pently.MaxInstruments {
		return p.Diag.Warnf(p.here(), "ignored instrument %q out of range", args[0])
	}
	mask, err := ft2pently.ParseChannelMask(args[1:])
	if err != nil {
		return p.Diag.Warnf(p.here(), "%v", err)
	}
	p.Tables.Ignore(int(id), mask)
	return nil
}
