package ft2pently

import "github.com/pkg/errors"

// Options are the conversion settings. They can be loaded from a YAML file
// and overridden from the command line.
type Options struct {
	// Strict turns every warning into an error.
	Strict bool `yaml:"strict,omitempty"`
	// HexRows prints row numbers of diagnostics in hexadecimal, the way the
	// tracker shows them.
	HexRows bool `yaml:"hexRows,omitempty"`
	// Dotted uses dotted note lengths where a duration allows it.
	Dotted bool `yaml:"dotted,omitempty"`
	// AutoNoise makes a drum of every instrument and frequency played on the
	// noise channel.
	AutoNoise bool `yaml:"autoNoise,omitempty"`
	// AutoDrum makes a drum of every noise instrument and the triangle
	// instrument paired with it by an Hxx effect.
	AutoDrum bool `yaml:"autoDrum,omitempty"`
	// Decay replaces volume envelope tails with Pently's decay where they
	// match.
	Decay bool `yaml:"decay"`
	// ForceCut lists channels on which Sxx cuts immediately.
	ForceCut []string `yaml:"forceCut,omitempty,flow"`
	// Encoding is the character set of the input file.
	Encoding string `yaml:"encoding,omitempty"`
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{Decay: true, Encoding: "windows-1252"}
}

// AutoDrums reports whether the noise channel is turned into drums.
func (o *Options) AutoDrums() bool {
	return o.AutoNoise || o.AutoDrum
}

// ForceCutMask returns the ForceCut channels as a mask.
func (o *Options) ForceCutMask() (ChannelMask, error) {
	return ParseChannelMask(o.ForceCut)
}

// Validate checks that the options can be used together.
func (o *Options) Validate() error {
	if o.AutoNoise && o.AutoDrum {
		return errors.New("autoNoise and autoDrum cannot be used together")
	}
	if _, err := o.ForceCutMask(); err != nil {
		return errors.Wrap(err, "invalid forceCut")
	}
	return nil
}
