package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/ft2pently/ft2pently"
	"github.com/pkg/errors"
)

var (
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
	whereStyle   = lipgloss.NewStyle().Faint(true)
)

// reporter prints diagnostics to a terminal.
type reporter struct {
	w io.Writer
}

func newReporter(w io.Writer) *reporter {
	return &reporter{w: w}
}

func (r *reporter) Report(d ft2pently.Diagnostic) {
	r.print(d.Severity, d.Where, d.Message)
}

func (r *reporter) print(s ft2pently.Severity, where, message string) {
	style := warningStyle
	if s == ft2pently.SeverityError {
		style = errorStyle
	}
	if where == "" {
		fmt.Fprintf(r.w, "%s %s\n", style.Render(s.String()+":"), message)
		return
	}
	fmt.Fprintf(r.w, "%s %s %s\n", style.Render(s.String()+":"), whereStyle.Render(where+":"), message)
}

// fatal prints an error that stopped the conversion.
func (r *reporter) fatal(err error) {
	var e *ft2pently.Error
	if errors.As(err, &e) {
		r.print(ft2pently.SeverityError, e.Where, e.Message)
		return
	}
	r.print(ft2pently.SeverityError, "", err.Error())
}
