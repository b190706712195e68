package ft2pently

import (
	"fmt"
	"strings"
)

// Severity of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

type (
	// Position locates a diagnostic in the input. Fields that do not apply
	// are zero (Line, Song) or -1 (Pattern, Channel, Row).
	Position struct {
		Line     int
		Song     int
		SongName string
		Pattern  int
		Channel  Channel
		Row      int
	}

	// Diagnostic is a warning or error found while converting.
	Diagnostic struct {
		Severity Severity
		Where    string
		Message  string
	}

	// Reporter receives diagnostics.
	Reporter interface {
		Report(d Diagnostic)
	}

	// ReporterFunc adapts a function to Reporter.
	ReporterFunc func(d Diagnostic)

	// Error is a fatal conversion error.
	Error struct {
		Where   string
		Message string
	}

	// Diag formats and routes the diagnostics of one conversion.
	Diag struct {
		Reporter Reporter
		Strict   bool
		HexRows  bool
		Warnings int
	}
)

// Nowhere is the position of diagnostics not tied to the input.
var Nowhere = Position{Pattern: -1, Channel: -1, Row: -1}

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

func (d Diagnostic) String() string {
	if d.Where == "" {
		return fmt.Sprintf("%v: %v", d.Severity, d.Message)
	}
	return fmt.Sprintf("%v: %v: %v", d.Severity, d.Where, d.Message)
}

func (e *Error) Error() string {
	if e.Where == "" {
		return e.Message
	}
	return e.Where + ": " + e.Message
}

// Format renders a position, e.g. `line 40: song 1 "Intro", pattern 02,
// pulse1, row 12`.
func (d *Diag) Format(p Position) string {
	var parts []string
	if p.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", p.Line))
	}
	var song []string
	if p.Song > 0 {
		song = append(song, fmt.Sprintf("song %d %q", p.Song, p.SongName))
	}
	if p.Pattern >= 0 {
		song = append(song, fmt.Sprintf("pattern %02X", p.Pattern))
	}
	if p.Channel >= 0 {
		song = append(song, p.Channel.String())
	}
	if p.Row >= 0 {
		if d.HexRows {
			song = append(song, fmt.Sprintf("row %02X", p.Row))
		} else {
			song = append(song, fmt.Sprintf("row %d", p.Row))
		}
	}
	if len(song) > 0 {
		parts = append(parts, strings.Join(song, ", "))
	}
	return strings.Join(parts, ": ")
}

// Warnf reports a warning. In strict mode the warning is returned as an
// error instead and the caller must stop.
func (d *Diag) Warnf(p Position, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if d.Strict {
		return &Error{Where: d.Format(p), Message: msg}
	}
	d.Warnings++
	if d.Reporter != nil {
		d.Reporter.Report(Diagnostic{Severity: SeverityWarning, Where: d.Format(p), Message: msg})
	}
	return nil
}

// Errorf returns a fatal error at a position.
func (d *Diag) Errorf(p Position, format string, args ...interface{}) error {
	return &Error{Where: d.Format(p), Message: fmt.Sprintf(format, args...)}
}
