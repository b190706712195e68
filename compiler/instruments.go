package compiler

import (
	"github.com/ft2pently/ft2pently"
)

// Envelopes are the envelope line bodies of an instrument or sound effect;
// empty bodies are left out.
type Envelopes struct {
	Decay  int
	Volume string
	Timbre string
	Pitch  string
}

// InstrumentBlock is an instrument or sound effect as the templates lay it
// out. Track is only set on sound effects.
type InstrumentBlock struct {
	Name  string
	Track string
	Envelopes
}

func body(m *ft2pently.Macro) string {
	if m == nil || len(m.Values) == 0 {
		return ""
	}
	loop := ft2pently.NoLoopPoint
	if m.HasLoop() {
		loop = m.Loop
	}
	if m.Type == ft2pently.MacroArpeggio {
		return ft2pently.Body(m.Absolute(), loop)
	}
	return ft2pently.Body(ft2pently.Ints(m.Values), loop)
}

// instrument renders a used instrument. A volume envelope with a decay tail
// is cut after the truncation point and played on with Pently's decay.
func (com *Compiler) instrument(inst *ft2pently.Instrument) (*InstrumentBlock, error) {
	block := &InstrumentBlock{Name: inst.Label}
	vol := com.Tables.Envelope(inst, ft2pently.MacroVolume)
	if d, ok := com.Tables.DecayFor(inst); ok && com.Options.Decay {
		block.Decay = d.Rate
		block.Volume = ft2pently.Body(ft2pently.Ints(vol.Values[:d.Truncate+1]), ft2pently.NoLoopPoint)
	} else {
		block.Volume = body(vol)
	}
	block.Timbre = body(com.Tables.Envelope(inst, ft2pently.MacroDuty))
	arp := com.Tables.Envelope(inst, ft2pently.MacroArpeggio)
	if arp != nil && arp.Mode == ft2pently.ArpeggioFixed {
		if err := com.Diag.Warnf(ft2pently.Nowhere, "instrument %s: fixed arpeggio played as absolute", inst.Label); err != nil {
			return nil, err
		}
	}
	block.Pitch = body(arp)
	return block, nil
}

// sfxTrack names the channel a sound effect plays on.
func sfxTrack(ch ft2pently.Channel) string {
	switch ch {
	case ft2pently.Pulse1, ft2pently.Pulse2:
		return "pulse"
	}
	return ch.String()
}

func soundEffect(sfx *ft2pently.SoundEffect) *InstrumentBlock {
	return &InstrumentBlock{
		Name:  sfx.Name,
		Track: sfxTrack(sfx.Channel),
		Envelopes: Envelopes{
			Volume: body(sfx.Volume),
			Timbre: body(sfx.Timbre),
			Pitch:  body(sfx.Pitch),
		},
	}
}
