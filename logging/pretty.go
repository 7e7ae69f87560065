package logging

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

var (
	prettySuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	prettyInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	prettyWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	prettyLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	prettyValue   = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	prettyPath    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Italic(true)
)

// PrettyLogger prints the human-facing results of one-shot verbs such as
// stop and config validate. Daemon diagnostics go through NewLogger instead.
type PrettyLogger struct {
	w io.Writer
}

// NewPrettyLogger writes to stdout until WithWriter redirects it.
func NewPrettyLogger() *PrettyLogger {
	return &PrettyLogger{w: os.Stdout}
}

func (p *PrettyLogger) WithWriter(w io.Writer) *PrettyLogger {
	p.w = w
	return p
}

func (p *PrettyLogger) Success(message string) {
	fmt.Fprintf(p.w, "%s %s\n", prettySuccess.Render("✓"), prettySuccess.Render(message))
}

func (p *PrettyLogger) Info(message string) {
	fmt.Fprintln(p.w, prettyInfo.Render(message))
}

func (p *PrettyLogger) Warn(message string) {
	fmt.Fprintf(p.w, "%s %s\n", prettyWarn.Render("⚠"), prettyWarn.Render(message))
}

// Field prints "label: value".
func (p *PrettyLogger) Field(label string, value interface{}) {
	fmt.Fprintf(p.w, "%s: %s\n", prettyLabel.Render(label), prettyValue.Render(fmt.Sprint(value)))
}

// Path prints "label: path". A path that is not valid UTF-8 is shown quoted.
func (p *PrettyLogger) Path(label, path string) {
	fmt.Fprintf(p.w, "%s: %s\n", prettyLabel.Render(label), prettyPath.Render(displayPath(path)))
}

func displayPath(path string) string {
	if !utf8.ValidString(path) {
		return strconv.Quote(path)
	}
	return path
}
