package ft2pently

type (
	// SoundEffect is a Pently sfx: an instrument's envelopes played on a
	// fixed channel. Declared effects get their envelopes copied from the
	// instrument when the tables are resolved; synthesized ones carry derived
	// envelopes of their own.
	SoundEffect struct {
		Name       string  `yaml:"name"`
		Instrument int     `yaml:"instrument"`
		Channel    Channel `yaml:"channel"`
		Volume     *Macro  `yaml:"volume,omitempty"`
		Pitch      *Macro  `yaml:"pitch,omitempty"`
		Timbre     *Macro  `yaml:"timbre,omitempty"`
	}

	// Drum is a Pently drum: one or two sound effects started together.
	Drum struct {
		Name    string   `yaml:"name"`
		Effects []string `yaml:"effects,flow"`
	}
)

// Resolved reports whether the envelopes of the sound effect have been
// filled in.
func (s *SoundEffect) Resolved() bool {
	return s.Volume != nil || s.Pitch != nil || s.Timbre != nil
}
