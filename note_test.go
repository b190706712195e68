package ft2pently_test

import (
	"reflect"
	"testing"

	"github.com/ft2pently/ft2pently"
)

func TestSlurRoundTrip(t *testing.T) {
	for semitone := 0; semitone < ft2pently.NumOctaves*12; semitone++ {
		var n ft2pently.Note
		if err := n.SetSemitone(semitone); err != nil {
			t.Fatalf("could not set semitone %v: %v", semitone, err)
		}
		orig := n
		for shift := 1; shift <= 15; shift++ {
			if semitone+shift >= ft2pently.NumOctaves*12 {
				break
			}
			n := orig
			if err := n.Shift(shift); err != nil {
				t.Fatalf("could not shift %v up by %v: %v", orig.Name(), shift, err)
			}
			if err := n.Shift(-shift); err != nil {
				t.Fatalf("could not shift %v back by %v: %v", orig.Name(), shift, err)
			}
			if !reflect.DeepEqual(n, orig) {
				t.Fatalf("shifting %v by +-%v gave %v", orig.Name(), shift, n.Name())
			}
		}
	}
}

func TestShift(t *testing.T) {
	n := ft2pently.Note{Kind: ft2pently.PitchNote, Letter: 'A', Sharp: true, Octave: 3}
	if err := n.Shift(3); err != nil {
		t.Fatalf("shift failed: %v", err)
	}
	if n.Letter != 'C' || !n.Sharp || n.Octave != 4 {
		t.Fatalf("got %v expected C#4", n.Name())
	}
	if err := n.Shift(-50); err == nil {
		t.Fatalf("shifting below octave 0 should fail")
	}
}

func TestLevelFromDigit(t *testing.T) {
	expected := []ft2pently.VolumeLevel{1, 1, 1, 1, 1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4, 4}
	for digit, level := range expected {
		if got := ft2pently.LevelFromDigit(digit); got != level {
			t.Fatalf("digit %v: got level %v expected %v", digit, got, level)
		}
	}
}

func TestSpeedOrTempo(t *testing.T) {
	if speed, tempo := ft2pently.SpeedOrTempo(0x1F); speed != 31 || tempo != 0 {
		t.Fatalf("F1F: got speed %v tempo %v", speed, tempo)
	}
	if speed, tempo := ft2pently.SpeedOrTempo(0x96); speed != 0 || tempo != 150 {
		t.Fatalf("F96: got speed %v tempo %v", speed, tempo)
	}
}
