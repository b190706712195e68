package ft2pently

// Tables hold everything that is shared by all songs of an export:
// instruments, macros and the drum and sound effect declarations. They are
// filled while reading and never reset between songs.
type Tables struct {
	Instruments  [MaxInstruments]*Instrument    `yaml:"instruments,omitempty"`
	Macros       [MacroTypeCount]map[int]*Macro `yaml:"macros"`
	DrumNames    [NumOctaves][len(Scale)]string `yaml:"drumNames"`
	SoundEffects []SoundEffect                  `yaml:"soundEffects,omitempty"`
	Drums        []Drum                         `yaml:"drums,omitempty"`
	Includes     []string                       `yaml:"includes,omitempty"`
	ignore       [MaxInstruments]ChannelMask
	labels       NameSet
}

// NewTables returns empty tables.
func NewTables() *Tables {
	t := &Tables{labels: NameSet{}}
	for i := range t.Macros {
		t.Macros[i] = map[int]*Macro{}
	}
	return t
}

// Instrument returns the instrument with the id, or nil.
func (t *Tables) Instrument(id int) *Instrument {
	if id < 0 || id >= MaxInstruments {
		return nil
	}
	return t.Instruments[id]
}

// DefineInstrument stores an instrument, giving it a unique label. It
// reports whether the label had to be renamed.
func (t *Tables) DefineInstrument(inst *Instrument) (renamed bool) {
	inst.Label, renamed = t.labels.Unique(Sanitize(inst.Name))
	inst.Ignore |= t.ignore[inst.ID]
	t.Instruments[inst.ID] = inst
	return renamed
}

// Ignore drops notes of an instrument on the given channels. Rules may be
// given before the instrument is defined.
func (t *Tables) Ignore(id int, channels ChannelMask) {
	t.ignore[id] |= channels
	if inst := t.Instruments[id]; inst != nil {
		inst.Ignore |= channels
	}
}

// Macro returns the macro of a type and id, or nil.
func (t *Tables) Macro(mt MacroType, id int) *Macro {
	if id < 0 {
		return nil
	}
	return t.Macros[mt][id]
}

// Envelope returns the macro an instrument uses for an envelope type, or
// nil.
func (t *Tables) Envelope(inst *Instrument, mt MacroType) *Macro {
	if inst == nil {
		return nil
	}
	return t.Macro(mt, inst.Macros[mt])
}

// DecayFor returns the decay to use for an instrument's volume envelope. An
// arpeggio or duty envelope without loop that runs past the truncation
// point would be cut short, so it prevents the decay.
func (t *Tables) DecayFor(inst *Instrument) (Decay, bool) {
	vol := t.Envelope(inst, MacroVolume)
	if vol == nil || !vol.Decay.Valid {
		return Decay{}, false
	}
	for _, mt := range []MacroType{MacroArpeggio, MacroDuty} {
		m := t.Envelope(inst, mt)
		if m != nil && !m.HasLoop() && len(m.Values) > vol.Decay.Truncate+1 {
			return Decay{}, false
		}
	}
	return vol.Decay, true
}

// SetDrumName binds a DPCM note to a drum name.
func (t *Tables) SetDrumName(semitone int, name string) {
	t.DrumNames[semitone/12][semitone%12] = name
}

// DrumName returns the drum bound to a DPCM note.
func (t *Tables) DrumName(n *Note) (string, bool) {
	s, err := n.Semitone()
	if err != nil || s < 0 || s >= NumOctaves*12 {
		return "", false
	}
	name := t.DrumNames[s/12][s%12]
	return name, name != ""
}

// UsedInstruments returns the instruments played on a pitched channel, in id
// order. Instruments only played on noise or DPCM reach the score through
// sound effects instead.
func (t *Tables) UsedInstruments() []*Instrument {
	var ret []*Instrument
	for _, inst := range t.Instruments {
		if inst != nil && inst.Used && inst.Played.Pitched() {
			ret = append(ret, inst)
		}
	}
	return ret
}
