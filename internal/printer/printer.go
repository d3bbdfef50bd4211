package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/models"
	"github.com/julianstephens/whosfree/internal/timetable"
)

var (
	// Output receives everything the printer writes to stdout
	Output io.Writer = color.Output
	// ErrOutput receives error reports
	ErrOutput io.Writer = color.Error

	// Color definitions
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
	bold   = color.New(color.Bold)
	muted  = color.New(color.FgHiBlack)

	// colorTags maps a person's color tag to a terminal color. The "dark"
	// variants share a hue with their light counterpart and are drawn bold.
	colorTags = map[string]color.Attribute{
		"blue":   color.FgBlue,
		"green":  color.FgGreen,
		"red":    color.FgRed,
		"yellow": color.FgYellow,
		"orange": color.FgHiYellow,
		"purple": color.FgMagenta,
		"pink":   color.FgHiMagenta,
		"teal":   color.FgCyan,
		"grey":   color.FgHiBlack,
		"gray":   color.FgHiBlack,
	}
)

func init() {
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
}

// ColorFor returns the terminal color for a color tag. Unknown tags print
// in the default color.
func ColorFor(tag string) *color.Color {
	tag = strings.ToLower(strings.TrimSpace(tag))
	base, dark := strings.CutPrefix(tag, "dark")
	attr, ok := colorTags[base]
	if !ok {
		return color.New(color.Reset)
	}
	if dark {
		return color.New(attr, color.Bold)
	}
	return color.New(attr)
}

// Swatch returns a colored block followed by the person's name.
func Swatch(p models.Person) string {
	return ColorFor(p.Color).Sprint("■") + " " + p.DisplayName()
}

// Success prints a success message in green with a checkmark prefix
func Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		msg = "✓ " + msg
	}
	green.Fprintln(Output, msg)
}

// Warning prints a warning message in yellow
func Warning(format string, a ...any) {
	yellow.Fprintln(Output, "! "+fmt.Sprintf(format, a...))
}

// Step prints a step message with emphasis (used in multi-step operations)
func Step(format string, a ...any) {
	cyan.Fprintln(Output, "→ "+fmt.Sprintf(format, a...))
}

// Muted prints secondary text such as empty-state messages
func Muted(format string, a ...any) {
	muted.Fprintln(Output, fmt.Sprintf(format, a...))
}

// Printf prints a plain formatted message
func Printf(format string, a ...any) {
	fmt.Fprintf(Output, format, a...)
}

// Println prints a plain message
func Println(a ...any) {
	fmt.Fprintln(Output, a...)
}

// Error prints a titled error with optional suggestions to ErrOutput and
// returns an error carrying only the title.
func Error(title string, explanation string, suggestions []string) error {
	red.Fprintf(ErrOutput, "%s\n", title)
	if explanation != "" {
		fmt.Fprintf(ErrOutput, "\n%s\n", explanation)
	}

	if len(suggestions) > 0 {
		fmt.Fprintf(ErrOutput, "\n")
		if len(suggestions) == 1 {
			fmt.Fprintf(ErrOutput, "%s\n", suggestions[0])
		} else {
			fmt.Fprintf(ErrOutput, "Either:\n")
			for i, suggestion := range suggestions {
				fmt.Fprintf(ErrOutput, "  %d. %s\n", i+1, suggestion)
			}
		}
	}

	return fmt.Errorf("%s", title)
}

// Free prints the free half of an availability result.
func Free(a timetable.Availability) {
	if len(a.Free) == 0 {
		Muted("No one free right now.")
		return
	}
	Println("Free right now:")
	for _, p := range a.Free {
		Println("  " + Swatch(p))
	}
}

// Lessons prints the busy half of an availability result, one block per
// subject.
func Lessons(a timetable.Availability) {
	if len(a.Busy) == 0 {
		Muted("No one is in a lesson right now.")
		return
	}
	for i, bucket := range a.Busy {
		if i > 0 {
			Println()
		}
		bold.Fprintln(Output, bucket.Subject)
		for _, p := range bucket.People {
			Println("  " + Swatch(p))
		}
	}
}

// Missing lists people left out of an availability result.
func Missing(a timetable.Availability) {
	for _, ex := range a.Missing {
		Muted("%s: no entry for this slot (%s)", ex.Person.DisplayName(), ex.Outcome)
	}
}

// Day prints a day view. Busy subjects are drawn in the person's color.
func Day(p models.Person, view timetable.DayView) {
	if !view.Found() {
		Muted("No schedule found for %s on %s.", p.DisplayName(), view.Day)
		return
	}

	bold.Fprintf(Output, "%s's Schedule for %s, %s\n", p.DisplayName(), view.Week, view.Day)
	if view.Len() == 0 {
		Muted("No periods recorded.")
		return
	}

	c := ColorFor(p.Color)
	for _, entry := range view.Entries() {
		if entry.Free {
			Printf("  %-10s %s\n", entry.Label, muted.Sprint(constants.FreeDisplay))
			continue
		}
		Printf("  %-10s %s\n", entry.Label, c.Sprint(entry.Display()))
	}
}

// Matches prints subject search results.
func Matches(needle string, matches []timetable.SubjectMatch) {
	if len(matches) == 0 {
		Muted("No lessons match %q.", needle)
		return
	}
	for _, m := range matches {
		Printf("  %-10s %s  %s\n", m.Label, Swatch(m.Person), m.Subject)
	}
}

// Phrase prints a catchphrase as a tag line.
func Phrase(phrase string) {
	if phrase == "" {
		Muted("No catchphrases yet.")
		return
	}
	cyan.Fprintf(Output, "“%s”\n", phrase)
}
