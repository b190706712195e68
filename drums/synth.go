package drums

import (
	"fmt"

	"github.com/ft2pently/ft2pently"
)

// Kit is the resolved set of sound effects and drums to write out.
type Kit struct {
	SoundEffects []ft2pently.SoundEffect
	Drums        []ft2pently.Drum
}

// Synthesize resolves the declared sound effects and, in the auto drum modes,
// builds a sound effect and a drum for everything the registry observed. The
// macros in the tables are only ever copied, never changed.
func (r *Registry) Synthesize(diag *ft2pently.Diag) (*Kit, error) {
	kit := &Kit{Drums: append([]ft2pently.Drum(nil), r.tables.Drums...)}
	for _, decl := range r.tables.SoundEffects {
		inst := r.tables.Instrument(decl.Instrument)
		if inst == nil {
			if err := diag.Warnf(ft2pently.Nowhere, "sfx %s: instrument %02X not defined", decl.Name, decl.Instrument); err != nil {
				return nil, err
			}
			continue
		}
		sfx := r.fromInstrument(decl.Name, inst, decl.Channel)
		kit.SoundEffects = append(kit.SoundEffects, sfx)
	}
	switch {
	case r.opts.AutoNoise:
		r.synthesizeNoise(kit)
	case r.opts.AutoDrum:
		r.synthesizePairs(kit)
	}
	return kit, nil
}

// fromInstrument copies the envelopes of an instrument into a sound effect.
func (r *Registry) fromInstrument(name string, inst *ft2pently.Instrument, ch ft2pently.Channel) ft2pently.SoundEffect {
	sfx := ft2pently.SoundEffect{Name: name, Instrument: inst.ID, Channel: ch}
	if m := r.tables.Envelope(inst, ft2pently.MacroVolume); m != nil {
		sfx.Volume = m.Copy()
	}
	if m := r.tables.Envelope(inst, ft2pently.MacroArpeggio); m != nil {
		sfx.Pitch = m.Copy()
	}
	if m := r.tables.Envelope(inst, ft2pently.MacroDuty); m != nil && ch != ft2pently.Triangle {
		sfx.Timbre = m.Copy()
	}
	return sfx
}

// synthesizeNoise makes one sound effect and drum per instrument and noise
// frequency: the arpeggio is moved to the frequency and the duty reduced to
// the noise mode bit.
func (r *Registry) synthesizeNoise(kit *Kit) {
	for _, id := range r.instruments {
		inst := r.tables.Instrument(id)
		if inst == nil {
			continue
		}
		for _, freq := range r.frequencies[id] {
			sfx := r.fromInstrument(noiseSfxName(inst, freq), inst, ft2pently.Noise)
			if sfx.Pitch == nil {
				sfx.Pitch = &ft2pently.Macro{Type: ft2pently.MacroArpeggio, ID: -1, Loop: ft2pently.NoLoopPoint, Release: -1}
				sfx.Pitch.Values = []int8{0}
			}
			for i, v := range sfx.Pitch.Absolute() {
				sfx.Pitch.Values[i] = int8(((freq+v)%16 + 16) % 16)
			}
			sfx.Pitch.Mode = ft2pently.ArpeggioAbsolute
			if sfx.Timbre != nil {
				for i, v := range sfx.Timbre.Values {
					sfx.Timbre.Values[i] = v & 1
				}
			}
			kit.SoundEffects = append(kit.SoundEffects, sfx)
			kit.Drums = append(kit.Drums, ft2pently.Drum{Name: noiseDrumName(inst, freq), Effects: []string{sfx.Name}})
		}
	}
}

// synthesizePairs makes a sound effect per noise and per triangle instrument
// used in a pair, and a drum per pair.
func (r *Registry) synthesizePairs(kit *Kit) {
	noise := map[int]string{}
	triangle := map[int]string{}
	add := func(names map[int]string, id int, prefix string, ch ft2pently.Channel) (string, bool) {
		if name, ok := names[id]; ok {
			return name, true
		}
		inst := r.tables.Instrument(id)
		if inst == nil {
			return "", false
		}
		name := fmt.Sprintf("%s_%s", prefix, inst.Label)
		names[id] = name
		kit.SoundEffects = append(kit.SoundEffects, r.fromInstrument(name, inst, ch))
		return name, true
	}
	for id, p := range r.pairs {
		d := ft2pently.Drum{Name: pairDrumName(id)}
		if name, ok := add(noise, p.Noise, "nsfx", ft2pently.Noise); ok {
			d.Effects = append(d.Effects, name)
		}
		if p.Triangle != ft2pently.NoInstrument {
			if name, ok := add(triangle, p.Triangle, "tsfx", ft2pently.Triangle); ok {
				d.Effects = append(d.Effects, name)
			}
		}
		kit.Drums = append(kit.Drums, d)
	}
}
