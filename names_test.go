package ft2pently_test

import (
	"testing"

	"github.com/ft2pently/ft2pently"
)

func TestSanitize(t *testing.T) {
	tests := map[string]string{
		"Lead":        "Lead",
		"bass drum":   "bass_drum",
		"hi-hat":      "hi_hat",
		"808":         "_808",
		"a+b":         "a2bb",
		"":            "_",
		"Café":        "Cafe",
		"_underscore": "_underscore",
	}
	for name, expected := range tests {
		if got := ft2pently.Sanitize(name); got != expected {
			t.Fatalf("sanitizing %q: got %q expected %q", name, got, expected)
		}
	}
}

func TestNameSet(t *testing.T) {
	s := ft2pently.NameSet{}
	expected := []struct {
		label   string
		renamed bool
	}{{"lead", false}, {"lead_2", true}, {"lead_3", true}}
	for _, e := range expected {
		got, renamed := s.Unique("lead")
		if got != e.label || renamed != e.renamed {
			t.Fatalf("got %v %v expected %v %v", got, renamed, e.label, e.renamed)
		}
	}
}
