package txtexport

import "github.com/ft2pently/ft2pently"

// sequencer holds the song being read. A song is only complete when the next
// TRACK or the end of the input is reached, so it is handed on then.
type sequencer struct {
	current *ft2pently.Song
	handler Handler
}

func (s *sequencer) start(next *ft2pently.Song) {
	s.current = next
}

func (s *sequencer) flush() error {
	song := s.current
	if song == nil {
		return nil
	}
	s.current = nil
	song.Finalize()
	return s.handler.Song(song)
}
