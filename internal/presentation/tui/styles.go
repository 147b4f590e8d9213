package tui

import (
	"os"
	"regexp"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Styler decorates trace and diagnostic lines for terminal output. On a
// non-terminal or monochrome profile every method is a pass-through.
type Styler struct {
	profile termenv.Profile
}

// NewStyler detects the terminal's color profile. Output that is not a TTY
// gets the ASCII (no-op) profile.
func NewStyler() *Styler {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return &Styler{profile: termenv.Ascii}
	}
	return &Styler{profile: termenv.ColorProfile()}
}

// State styles a state name.
func (s *Styler) State(text string) string {
	return termenv.String(text).Foreground(s.profile.Color("#818cf8")).Bold().String()
}

// Tag styles a rule tag.
func (s *Styler) Tag(text string) string {
	return termenv.String(text).Foreground(s.profile.Color("#34d399")).String()
}

// Error styles a failure message.
func (s *Styler) Error(text string) string {
	return termenv.String(text).Foreground(s.profile.Color("#fb7185")).Bold().String()
}

// Faint styles secondary detail such as trace plumbing lines.
func (s *Styler) Faint(text string) string {
	return termenv.String(text).Faint().String()
}

var traceArrow = regexp.MustCompile(`-->|==>|<--`)

// TraceLine decorates one line of verbose trace output, dimming plumbing
// and leaving tested values readable.
func (s *Styler) TraceLine(line string) string {
	if traceArrow.MatchString(line) {
		return s.Faint(line)
	}
	return line
}
