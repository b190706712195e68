package compiler

import (
	"fmt"

	"github.com/ft2pently/ft2pently"
)

// Event is a group of conductor and track commands at one time of a song.
type Event struct {
	Time     string
	Commands []string
}

type sequencer struct {
	song   *ft2pently.Song
	events []Event
	bpm    float64
	speed  int
	tempo  int
}

func (s *sequencer) at(row int, command string) {
	t := songTime(row)
	if len(s.events) == 0 || s.events[len(s.events)-1].Time != t {
		s.events = append(s.events, Event{Time: t})
	}
	e := &s.events[len(s.events)-1]
	e.Commands = append(e.Commands, command)
}

// frameLength returns the length of a frame: the shortest pattern of the
// channels present in it.
func frameLength(song *ft2pently.Song, f ft2pently.Frame) int {
	length := song.Rows
	for c := 0; c < min(song.Channels, ft2pently.ChannelCount); c++ {
		if id := f[c]; id >= 0 {
			length = min(length, song.PatternLength(ft2pently.Channel(c), id))
		}
	}
	return length
}

// sequence walks the order list of a song and returns the timed commands
// that play its patterns on the emitted channels. A pattern is (re)started
// when its channel was silent, when it differs from the one playing, when
// the previous frame cut the playing one short, and at the loop target.
func sequence(song *ft2pently.Song, channels []ft2pently.Channel) []Event {
	s := &sequencer{song: song, speed: song.Speed, tempo: song.Tempo}
	s.bpm = ft2pently.Tempo(s.speed, s.tempo)
	var playing [ft2pently.ChannelCount]int
	var cut [ft2pently.ChannelCount]bool
	for c := range playing {
		playing[c] = -1
	}
	now := 0
	for i, f := range song.Order {
		restart := i == song.LoopTo
		if restart && i > 0 {
			s.at(now, "segno")
		}
		length := frameLength(song, f)
		for _, c := range channels {
			id := f.Pattern(c)
			pat := song.Pattern(c, id)
			if id < 0 || pat == nil || !pat.Used {
				if playing[c] >= 0 {
					s.at(now, "stop "+c.Track())
					playing[c] = -1
				}
				continue
			}
			if playing[c] != id || cut[c] || restart {
				if c.Pitched() {
					s.at(now, "play "+patternName(song, c, id))
				} else {
					s.at(now, fmt.Sprintf("play %s on %s", patternName(song, c, id), c.Track()))
				}
				playing[c] = id
			}
			cut[c] = length < song.PatternLength(c, id)
		}
		s.conduct(f, now, length)
		now += length
	}
	if song.LoopTo == ft2pently.NoLoop {
		s.at(now, "fine")
	} else {
		s.at(now, "dal segno")
	}
	return s.events
}

// conduct adds the tempo and attack channel changes that the patterns of a
// frame make, at the rows they occur.
func (s *sequencer) conduct(f ft2pently.Frame, start, length int) {
	for row := 0; row < length; row++ {
		bpm := s.bpm
		for c := 0; c < min(s.song.Channels, ft2pently.ChannelCount); c++ {
			ch := ft2pently.Channel(c)
			pat := s.song.Pattern(ch, f[c])
			if pat == nil {
				continue
			}
			n := pat.Get(row)
			for _, e := range n.Effects {
				switch e.Kind {
				case ft2pently.FxSpeed:
					speed, tempo := ft2pently.SpeedOrTempo(e.Param)
					if speed > 0 {
						s.speed = speed
					} else {
						s.tempo = tempo
					}
					bpm = ft2pently.Tempo(s.speed, s.tempo)
				case ft2pently.FxAttack:
					if ft2pently.AttackRoleOf(ch) != ft2pently.AttackConductor {
						continue
					}
					if target, ok := ft2pently.AttackTarget(e.Param); ok {
						s.at(start+row, "attack on "+target.Track())
					}
				}
			}
		}
		if bpm != s.bpm {
			s.bpm = bpm
			s.at(start+row, fmt.Sprintf("tempo %.2f", bpm))
		}
	}
}
