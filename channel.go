package ft2pently

import (
	"strings"

	"github.com/pkg/errors"
)

// Channel identifies one column group of a FamiTracker export. The first five
// are the 2A03 channels in export order; Attack is the first expansion column,
// which is played on Pently's attack track.
type Channel int

const (
	Pulse1 Channel = iota
	Pulse2
	Triangle
	Noise
	DPCM
	Attack
	ChannelCount int = iota
)

var channelNames = [ChannelCount]string{"pulse1", "pulse2", "triangle", "noise", "dpcm", "attack"}

func (c Channel) String() string {
	if c < 0 || int(c) >= ChannelCount {
		return "channel?"
	}
	return channelNames[c]
}

// Pitched reports whether notes on the channel carry a letter and an octave
// that map to a melodic pitch.
func (c Channel) Pitched() bool {
	return c == Pulse1 || c == Pulse2 || c == Triangle || c == Attack
}

// Track returns the Pently track name the channel plays on. Noise and DPCM
// both feed the drum track.
func (c Channel) Track() string {
	switch c {
	case Noise, DPCM:
		return "drum"
	}
	return c.String()
}

// ParseChannel accepts both the channel names above and the Pently track
// names "drum" (DPCM) and "noise".
func ParseChannel(name string) (Channel, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "drum" {
		return DPCM, nil
	}
	for i, n := range channelNames {
		if n == name {
			return Channel(i), nil
		}
	}
	return 0, errors.Errorf("unknown channel %q", name)
}

// ChannelMask is a set of channels, one bit per channel.
type ChannelMask uint8

func (m ChannelMask) Has(c Channel) bool {
	return m&(1<<uint(c)) != 0
}

func (m ChannelMask) With(c Channel) ChannelMask {
	return m | 1<<uint(c)
}

// Pitched reports whether the mask holds a pitched channel.
func (m ChannelMask) Pitched() bool {
	for c := Channel(0); int(c) < ChannelCount; c++ {
		if c.Pitched() && m.Has(c) {
			return true
		}
	}
	return false
}

// ParseChannelMask parses a list of channel names into a mask.
func ParseChannelMask(names []string) (ChannelMask, error) {
	var m ChannelMask
	for _, n := range names {
		c, err := ParseChannel(n)
		if err != nil {
			return 0, err
		}
		m = m.With(c)
	}
	return m, nil
}
