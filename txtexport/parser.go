// Package txtexport reads FamiTracker text exports into songs and the
// instrument tables shared by them.
package txtexport

import (
	"strconv"
	"strings"

	"github.com/ft2pently/ft2pently"
)

// Handler receives what the parser produces as it goes.
type Handler interface {
	// Song is called with every song once it has been read completely.
	Song(song *ft2pently.Song) error
	// Include is called for every include directive, in input order.
	Include(name string) error
}

// Parser reads an export line by line. Instruments, macros and declarations
// go to Tables; songs are handed to the Handler one by one.
type Parser struct {
	Tables *ft2pently.Tables
	Diag   *ft2pently.Diag

	handler   Handler
	forceCut  ft2pently.ChannelMask
	seq       sequencer
	pattern   int
	line      int
	songNames ft2pently.NameSet
	songCount int
}

// New returns a parser that fills tables and reports to diag.
func New(tables *ft2pently.Tables, diag *ft2pently.Diag, opts ft2pently.Options, handler Handler) (*Parser, error) {
	forceCut, err := opts.ForceCutMask()
	if err != nil {
		return nil, err
	}
	return &Parser{
		Tables:    tables,
		Diag:      diag,
		handler:   handler,
		forceCut:  forceCut,
		seq:       sequencer{handler: handler},
		pattern:   -1,
		songNames: ft2pently.NameSet{},
	}, nil
}

// Line parses one line of the export.
func (p *Parser) Line(text string) error {
	p.line++
	text = strings.TrimSpace(text)
	if text == "" || text[0] == '#' {
		return nil
	}
	directive, rest, _ := strings.Cut(text, " ")
	rest = strings.TrimSpace(rest)
	switch directive {
	case "TRACK":
		return p.track(rest)
	case "COLUMNS":
		return p.columns(rest)
	case "ORDER":
		return p.order(rest)
	case "PATTERN":
		return p.patternStart(rest)
	case "ROW":
		return p.row(text)
	case "MACRO":
		return p.macro(rest)
	case "INST2A03":
		return p.instrument(rest)
	case "COMMENT":
		return p.comment(rest)
	}
	return nil
}

// Close ends the input, handing on the last song.
func (p *Parser) Close() error {
	return p.flush()
}

// pos returns the position of the current line, with channel and row when
// they apply (-1 otherwise).
func (p *Parser) pos(ch ft2pently.Channel, row int) ft2pently.Position {
	ret := ft2pently.Nowhere
	ret.Line = p.line
	ret.Channel = ch
	ret.Row = row
	if s := p.seq.current; s != nil {
		ret.Song = s.Number
		ret.SongName = s.Name
		ret.Pattern = p.pattern
	}
	return ret
}

func (p *Parser) here() ft2pently.Position {
	return p.pos(-1, -1)
}

// TRACK rows speed tempo "name"
func (p *Parser) track(rest string) error {
	fields, name := splitQuoted(rest)
	if len(fields) < 3 {
		return p.Diag.Warnf(p.here(), "TRACK needs rows, speed and tempo")
	}
	nums, err := atois(fields[:3], 10)
	if err != nil {
		return p.Diag.Warnf(p.here(), "invalid TRACK: %v", err)
	}
	p.songCount++
	song := ft2pently.NewSong(p.songCount, name)
	if err := p.flush(); err != nil {
		return err
	}
	p.seq.start(song)
	p.pattern = -1
	switch {
	case nums[0] < 1 || nums[0] > ft2pently.MaxRows:
		if err := p.Diag.Warnf(p.here(), "row count %d out of range, using %d", nums[0], song.Rows); err != nil {
			return err
		}
	default:
		song.Rows = nums[0]
	}
	if nums[1] < 1 {
		if err := p.Diag.Warnf(p.here(), "speed %d out of range, using %d", nums[1], song.Speed); err != nil {
			return err
		}
	} else {
		song.Speed = nums[1]
	}
	if nums[2] > 0 {
		song.Tempo = nums[2]
	}
	var renamed bool
	song.Label, renamed = p.songNames.Unique(ft2pently.Sanitize(name))
	if renamed {
		return p.Diag.Warnf(p.here(), "duplicate song name %q renamed to %s", name, song.Label)
	}
	return nil
}

// COLUMNS : 1 1 1 1 1
func (p *Parser) columns(rest string) error {
	song := p.seq.current
	if song == nil {
		return p.Diag.Warnf(p.here(), "COLUMNS outside of a track")
	}
	_, list, _ := strings.Cut(rest, ":")
	counts, err := atois(strings.Fields(list), 10)
	if err != nil {
		return p.Diag.Warnf(p.here(), "invalid COLUMNS: %v", err)
	}
	song.Channels = min(len(counts), ft2pently.ChannelCount)
	for i := 0; i < song.Channels; i++ {
		c := counts[i]
		if c < 1 || c > ft2pently.MaxEffects {
			if err := p.Diag.Warnf(p.pos(ft2pently.Channel(i), -1), "%d effect columns out of range", c); err != nil {
				return err
			}
			c = max(1, min(c, ft2pently.MaxEffects))
		}
		song.EffectColumns[i] = c
	}
	return nil
}

// ORDER 00 : 00 00 00 00 00
func (p *Parser) order(rest string) error {
	song := p.seq.current
	if song == nil {
		return p.Diag.Warnf(p.here(), "ORDER outside of a track")
	}
	idText, list, _ := strings.Cut(rest, ":")
	frame, err := strconv.ParseUint(strings.TrimSpace(idText), 16, 16)
	if err != nil || frame >= ft2pently.MaxFrames {
		return p.Diag.Warnf(p.here(), "frame %q out of range", strings.TrimSpace(idText))
	}
	f := ft2pently.EmptyFrame()
	for i, text := range strings.Fields(list) {
		if i >= ft2pently.ChannelCount {
			break
		}
		id, err := strconv.ParseUint(text, 16, 16)
		if err != nil || id >= ft2pently.MaxPatterns {
			if err := p.Diag.Warnf(p.pos(ft2pently.Channel(i), -1), "pattern %q out of range", text); err != nil {
				return err
			}
			continue
		}
		f[i] = int(id)
	}
	song.Order.Set(int(frame), f)
	return nil
}

// PATTERN 00
func (p *Parser) patternStart(rest string) error {
	p.pattern = -1
	if p.seq.current == nil {
		return p.Diag.Warnf(p.here(), "PATTERN outside of a track")
	}
	id, err := strconv.ParseUint(rest, 16, 16)
	if err != nil || id >= ft2pently.MaxPatterns {
		return p.Diag.Warnf(p.here(), "pattern %q out of range", rest)
	}
	p.pattern = int(id)
	return nil
}

func (p *Parser) row(text string) error {
	song := p.seq.current
	if song == nil || p.pattern < 0 {
		return nil
	}
	row, cells, splitErr := SplitRow(text, song.EffectColumns[:song.Channels])
	if splitErr != nil && len(cells) == 0 {
		if _, ok := splitErr.(*MalformedRowError); !ok {
			return p.Diag.Warnf(p.here(), "%v", splitErr)
		}
	}
	if row >= song.Rows {
		return p.Diag.Warnf(p.pos(-1, row), "row out of range for a %d row track", song.Rows)
	}
	for i, cell := range cells {
		ch := ft2pently.Channel(i)
		if err := p.buildCell(song, song.EnsurePattern(ch, p.pattern), ch, row, cell); err != nil {
			return err
		}
	}
	if splitErr != nil {
		return p.Diag.Warnf(p.pos(-1, row), "%v; rest of the row skipped", splitErr)
	}
	return nil
}

func (p *Parser) flush() error {
	if s := p.seq.current; s != nil && s.LoopTo >= len(s.Order) {
		if err := p.Diag.Warnf(p.here(), "loop target frame %02X out of range, looping to the start", s.LoopTo); err != nil {
			return err
		}
		s.LoopTo = 0
	}
	return p.seq.flush()
}

// splitQuoted splits `a b c "some name"` into its plain fields and the
// quoted name.
func splitQuoted(s string) ([]string, string) {
	q := strings.IndexByte(s, '"')
	if q < 0 {
		return strings.Fields(s), ""
	}
	name := s[q+1:]
	if end := strings.LastIndexByte(name, '"'); end >= 0 {
		name = name[:end]
	}
	return strings.Fields(s[:q]), strings.ReplaceAll(name, `\"`, `"`)
}

func atois(fields []string, base int) ([]int, error) {
	ret := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, base, 32)
		if err != nil {
			return nil, err
		}
		ret[i] = int(v)
	}
	return ret, nil
}
