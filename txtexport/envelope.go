package txtexport

import (
	"strconv"
	"strings"

	"github.com/ft2pently/ft2pently"
)

// MACRO type id loop release setting : values
func (p *Parser) macro(rest string) error {
	head, list, found := strings.Cut(rest, ":")
	fields, err := atois(strings.Fields(head), 10)
	if !found || err != nil || len(fields) < 5 {
		return p.Diag.Warnf(p.here(), "invalid MACRO")
	}
	mt, id := ft2pently.MacroType(fields[0]), fields[1]
	if fields[0] < 0 || fields[0] >= ft2pently.MacroTypeCount {
		return p.Diag.Warnf(p.here(), "macro type %d out of range", fields[0])
	}
	if id < 0 || id >= ft2pently.MaxMacros {
		return p.Diag.Warnf(p.here(), "%v macro %d out of range", mt, id)
	}
	m := &ft2pently.Macro{Type: mt, ID: id, Loop: fields[2], Release: fields[3]}
	if mt == ft2pently.MacroArpeggio {
		switch mode := ft2pently.ArpeggioMode(fields[4]); mode {
		case ft2pently.ArpeggioAbsolute, ft2pently.ArpeggioFixed, ft2pently.ArpeggioRelative:
			m.Mode = mode
		default:
			if err := p.Diag.Warnf(p.here(), "arpeggio mode %d not supported, using absolute", mode); err != nil {
				return err
			}
		}
	}
	values := strings.Fields(list)
	if len(values) > ft2pently.MaxMacroLength {
		return p.Diag.Errorf(p.here(), "%v macro %d has %d values, at most %d are supported", mt, id, len(values), ft2pently.MaxMacroLength)
	}
	m.Values = make([]int8, len(values))
	for i, text := range values {
		v, err := strconv.ParseInt(text, 10, 8)
		if err != nil {
			return p.Diag.Warnf(p.here(), "%v macro %d: value %q out of range", mt, id, text)
		}
		m.Values[i] = int8(v)
	}
	if m.Loop >= len(m.Values) || m.Loop < 0 {
		m.Loop = ft2pently.NoLoopPoint
	}
	if mt == ft2pently.MacroVolume {
		ft2pently.DetectDecay(m)
	}
	p.Tables.Macros[mt][id] = m
	return nil
}

// INST2A03 id volume arpeggio pitch hipitch duty "name"
func (p *Parser) instrument(rest string) error {
	fields, name := splitQuoted(rest)
	nums, err := atois(fields, 10)
	if err != nil || len(nums) < 1+ft2pently.MacroTypeCount {
		return p.Diag.Warnf(p.here(), "invalid INST2A03")
	}
	if nums[0] < 0 || nums[0] >= ft2pently.MaxInstruments {
		return p.Diag.Warnf(p.here(), "instrument %d out of range", nums[0])
	}
	inst := ft2pently.NewInstrument(nums[0], name)
	for t := range inst.Macros {
		if id := nums[1+t]; id >= 0 && id < ft2pently.MaxMacros {
			inst.Macros[t] = id
		}
	}
	if p.Tables.DefineInstrument(inst) {
		return p.Diag.Warnf(p.here(), "duplicate instrument name %q renamed to %s", name, inst.Label)
	}
	return nil
}
