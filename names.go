package ft2pently

import (
	"fmt"
	"strings"

	"github.com/kennygrant/sanitize"
)

// Sanitize turns a display name into a Pently identifier: accents are
// folded, spaces and dashes become underscores, other punctuation is
// hex-escaped and a leading underscore is added if the name does not start
// with a letter.
func Sanitize(name string) string {
	name = sanitize.Accents(name)
	var b strings.Builder
	if name == "" || !(isLetter(name[0]) || name[0] == '_') {
		b.WriteByte('_')
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case isLetter(c) || (c >= '0' && c <= '9') || c == '_':
			b.WriteByte(c)
		case c == ' ' || c == '-':
			b.WriteByte('_')
		default:
			fmt.Fprintf(&b, "%02x", c)
		}
	}
	return b.String()
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// NameSet hands out unique labels.
type NameSet map[string]bool

// Unique returns label if it is still free, otherwise label with the
// smallest free numeric suffix starting from _2. The returned label is
// marked taken; renamed tells whether a suffix was added.
func (s NameSet) Unique(label string) (unique string, renamed bool) {
	unique = label
	for n := 2; s[unique]; n++ {
		unique = fmt.Sprintf("%s_%d", label, n)
		renamed = true
	}
	s[unique] = true
	return unique, renamed
}
