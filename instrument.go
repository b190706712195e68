package ft2pently

// MaxInstruments is the number of instrument slots of the export format.
const MaxInstruments = 64

// Instrument is an INST2A03 instrument: a macro id per envelope type (-1 when
// the envelope is not used), its names and where it is played.
type Instrument struct {
	ID     int                 `yaml:"id"`
	Name   string              `yaml:"name"`
	Label  string              `yaml:"label"`
	Macros [MacroTypeCount]int `yaml:"macros,flow"`
	Used   bool                `yaml:"used,omitempty"`
	// Played lists the channels the instrument was played on.
	Played ChannelMask `yaml:"played,omitempty"`
	// Ignore lists the channels on which notes of this instrument are
	// dropped.
	Ignore ChannelMask `yaml:"ignore,omitempty"`
}

// NewInstrument returns an instrument with no envelopes.
func NewInstrument(id int, name string) *Instrument {
	i := &Instrument{ID: id, Name: name}
	for t := range i.Macros {
		i.Macros[t] = -1
	}
	return i
}
