// Package preview renders songs as standard MIDI files, so that a conversion
// can be listened to without building a ROM.
package preview

import (
	"io"

	"github.com/ft2pently/ft2pently"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	ticksPerQuarter = 96
	ticksPerRow     = ticksPerQuarter / 4
	drumChannel     = 9
	noiseKey        = 35
)

var midiChannels = [ft2pently.ChannelCount]uint8{
	ft2pently.Pulse1:   0,
	ft2pently.Pulse2:   1,
	ft2pently.Triangle: 2,
	ft2pently.Noise:    drumChannel,
	ft2pently.DPCM:     drumChannel,
	ft2pently.Attack:   3,
}

var velocities = [...]uint8{
	ft2pently.Volume25:  40,
	ft2pently.Volume50:  70,
	ft2pently.Volume75:  100,
	ft2pently.Volume100: 127,
}

// track keeps absolute tick positions so events can be added in song time.
type track struct {
	smf.Track
	name     string
	last     uint32
	key      int // sounding key, -1 if none
	velocity uint8
	used     bool
}

func (t *track) add(at uint32, msg []byte) {
	t.Add(at-t.last, msg)
	t.last = at
}

func (t *track) off(at uint32, ch uint8) {
	if t.key >= 0 {
		t.add(at, midi.NoteOff(ch, uint8(t.key)))
		t.key = -1
	}
}

// Song builds a MIDI file of a song: a conductor track with the meter and
// tempo changes, then one track per channel that plays notes. Noise notes go
// to the drum channel; DPCM is used instead unless drums are made from the
// noise channel.
func Song(song *ft2pently.Song, opts ft2pently.Options) (*smf.SMF, error) {
	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(ticksPerQuarter)
	var conductor track
	conductor.add(0, smf.MetaTrackSequenceName(song.Name))
	conductor.add(0, smf.MetaMeter(4, 4))
	conductor.add(0, smf.MetaTempo(ft2pently.Tempo(song.Speed, song.Tempo)))
	drum := ft2pently.DPCM
	if opts.AutoDrums() {
		drum = ft2pently.Noise
	}
	var tracks [ft2pently.ChannelCount]*track
	for c := range tracks {
		if ch := ft2pently.Channel(c); c < song.Channels && (ch.Pitched() || ch == drum) {
			tracks[c] = &track{name: ch.String(), key: -1, velocity: velocities[ft2pently.Volume100]}
			tracks[c].add(0, smf.MetaTrackSequenceName(ch.String()))
		}
	}
	speed, tempo := song.Speed, song.Tempo
	now := 0
	for _, f := range song.Order {
		length := song.Rows
		for c := 0; c < min(song.Channels, ft2pently.ChannelCount); c++ {
			if f[c] >= 0 {
				length = min(length, song.PatternLength(ft2pently.Channel(c), f[c]))
			}
		}
		for row := 0; row < length; row++ {
			at := uint32((now + row) * ticksPerRow)
			changed := false
			for c, t := range tracks {
				if t == nil {
					continue
				}
				pat := song.Pattern(ft2pently.Channel(c), f[c])
				if pat == nil || !pat.Used {
					t.off(at, midiChannels[c])
					continue
				}
				n := pat.Get(row)
				play(t, ft2pently.Channel(c), &n, at)
			}
			for c := 0; c < min(song.Channels, ft2pently.ChannelCount); c++ {
				pat := song.Pattern(ft2pently.Channel(c), f[c])
				if pat == nil {
					continue
				}
				n := pat.Get(row)
				if e, ok := n.Effect(ft2pently.FxSpeed); ok {
					if s, t := ft2pently.SpeedOrTempo(e.Param); s > 0 {
						speed = s
					} else {
						tempo = t
					}
					changed = true
				}
			}
			if changed {
				conductor.add(at, smf.MetaTempo(ft2pently.Tempo(speed, tempo)))
			}
		}
		now += length
	}
	end := uint32(now * ticksPerRow)
	conductor.Close(end - conductor.last)
	if err := sm.Add(conductor.Track); err != nil {
		return nil, errors.Wrap(err, "could not add conductor track")
	}
	for c, t := range tracks {
		if t == nil || !t.used {
			continue
		}
		t.off(end, midiChannels[c])
		t.Close(end - t.last)
		if err := sm.Add(t.Track); err != nil {
			return nil, errors.Wrapf(err, "could not add %s track", t.name)
		}
	}
	return sm, nil
}

// play turns one cell into note on and off events.
func play(t *track, ch ft2pently.Channel, n *ft2pently.Note, at uint32) {
	mc := midiChannels[ch]
	if n.Volume != ft2pently.VolumeUnchanged {
		t.velocity = velocities[n.Volume]
	}
	switch n.Kind {
	case ft2pently.PitchRest, ft2pently.PitchCut:
		t.off(at, mc)
	case ft2pently.PitchNote:
		key, ok := noteKey(ch, n)
		if !ok {
			return
		}
		t.off(at, mc)
		t.add(at, midi.NoteOn(mc, uint8(key), t.velocity))
		t.key = key
		t.used = true
	}
}

func noteKey(ch ft2pently.Channel, n *ft2pently.Note) (int, bool) {
	if ch == ft2pently.Noise {
		f, ok := n.NoiseFrequency()
		return noiseKey + f, ok
	}
	s, err := n.Semitone()
	if err != nil {
		return 0, false
	}
	return s + 12, true
}

// Write writes the MIDI file of a song.
func Write(w io.Writer, song *ft2pently.Song, opts ft2pently.Options) error {
	sm, err := Song(song, opts)
	if err != nil {
		return err
	}
	if _, err := sm.WriteTo(w); err != nil {
		return errors.Wrapf(err, "could not write MIDI file of %q", song.Name)
	}
	return nil
}
