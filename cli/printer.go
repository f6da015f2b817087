package cli

import (
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"io"
	"os"
)

// Printer writes user-facing messages, STDERR by default.
// Status messages are colored unless color is disabled, or the output doesn't support it.
type Printer struct {
	out     io.Writer
	noColor bool
}

func NewPrinter() *Printer {
	return &Printer{out: os.Stderr}
}

// Redirect sends all further output to writer.
func (p *Printer) Redirect(writer io.Writer) {
	p.out = writer
}

// Write sends data directly to the current output, so a Printer can be used as an [io.Writer].
func (p *Printer) Write(data []byte) (int, error) {
	return p.out.Write(data)
}

// DisableColor turns off styling for status messages.
func (p *Printer) DisableColor() {
	p.noColor = true
}

func (p *Printer) Print(msg ...any) {
	_, _ = fmt.Fprint(p.out, msg...)
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *Printer) Println(msg ...any) {
	_, _ = fmt.Fprintln(p.out, msg...)
}

// Successf prints a green status line.
func (p *Printer) Successf(format string, args ...any) {
	p.status("2", format, args...)
}

// Warnf prints a yellow status line.
func (p *Printer) Warnf(format string, args ...any) {
	p.status("3", format, args...)
}

// Failf prints a red status line.
func (p *Printer) Failf(format string, args ...any) {
	p.status("1", format, args...)
}

// Colorize renders text in the given ANSI color, if this Printer's output supports it.
func (p *Printer) Colorize(color lipgloss.Color, text string) string {
	if p.noColor {
		return text
	}
	return lipgloss.NewRenderer(p.out).NewStyle().Foreground(color).Render(text)
}

func (p *Printer) status(color lipgloss.Color, format string, args ...any) {
	_, _ = fmt.Fprintln(p.out, p.Colorize(color, fmt.Sprintf(format, args...)))
}
