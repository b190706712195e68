package preview_test

import (
	"bytes"
	"testing"

	"github.com/ft2pently/ft2pently"
	"github.com/ft2pently/ft2pently/preview"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func testSong() *ft2pently.Song {
	song := ft2pently.NewSong(1, "Intro")
	song.Rows = 4
	lead := song.EnsurePattern(ft2pently.Pulse1, 0)
	n := lead.At(0)
	n.Kind, n.Letter, n.Octave, n.Instrument = ft2pently.PitchNote, 'C', 4, 0
	lead.At(2).Effects = []ft2pently.Effect{{Kind: ft2pently.FxSpeed, Param: 3}}
	kick := song.EnsurePattern(ft2pently.DPCM, 0)
	n = kick.At(1)
	n.Kind, n.Letter, n.Octave = ft2pently.PitchNote, 'C', 3
	song.EnsurePattern(ft2pently.Triangle, 0)
	f := ft2pently.EmptyFrame()
	f[ft2pently.Pulse1], f[ft2pently.Triangle], f[ft2pently.DPCM] = 0, 0, 0
	song.Order = ft2pently.Order{f}
	song.Finalize()
	return song
}

func contains(tr smf.Track, msg midi.Message) bool {
	for _, ev := range tr {
		if bytes.Equal(ev.Message, msg) {
			return true
		}
	}
	return false
}

func TestTracks(t *testing.T) {
	sm, err := preview.Song(testSong(), ft2pently.DefaultOptions())
	if err != nil {
		t.Fatalf("Song returned error: %v", err)
	}
	// conductor, pulse1 and DPCM; the triangle pattern plays nothing
	if len(sm.Tracks) != 3 {
		t.Fatalf("got %d tracks expected 3", len(sm.Tracks))
	}
	if !contains(sm.Tracks[0], midi.Message(smf.MetaTempo(300))) {
		t.Fatalf("conductor track has no tempo change to 300 bpm")
	}
	if !contains(sm.Tracks[1], midi.NoteOn(0, 60, 127)) {
		t.Fatalf("pulse1 track does not play middle C")
	}
	if !contains(sm.Tracks[2], midi.NoteOn(9, 48, 127)) {
		t.Fatalf("DPCM track does not play on the drum channel")
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := preview.Write(&buf, testSong(), ft2pently.DefaultOptions()); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("MThd")) {
		t.Fatalf("output is not a MIDI file")
	}
}
