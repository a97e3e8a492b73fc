package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sofmeright/pipewright/src/pipeline"
)

// Colors for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// Printer formats and writes pipeline results.
type Printer struct {
	Writer  io.Writer
	Color   bool
	Verbose bool
}

// NewPrinter creates a printer writing to stdout with color auto-detection.
func NewPrinter() *Printer {
	return &Printer{
		Writer: os.Stdout,
		Color:  UseColor(),
	}
}

// UnitLine writes one completed unit's status line. In verbose mode (or on
// failure) the captured tool output follows, indented.
func (p *Printer) UnitLine(r pipeline.Result) {
	fmt.Fprintf(p.Writer, "  %s %s %s%s\n",
		p.statusTag(r),
		p.colorize(r.Label(), colorBold),
		p.colorize(r.Duration.Round(time.Millisecond).String(), colorGray),
		p.advisoryNote(r),
	)

	if p.Verbose || r.Status == pipeline.StatusFailed {
		for _, line := range strings.Split(strings.TrimRight(r.Output, "\n"), "\n") {
			if line == "" {
				continue
			}
			fmt.Fprintf(p.Writer, "      %s\n", p.colorize(line, colorGray))
		}
	}
}

// Summary writes the per-job rollup table and the final run status line.
func (p *Printer) Summary(results []pipeline.Result, elapsed time.Duration) {
	fmt.Fprintln(p.Writer)
	for _, s := range pipeline.Summarize(results) {
		gate := "blocking"
		if s.Advisory {
			gate = p.colorize("advisory", colorCyan)
		}
		cells := ""
		if s.Units > 1 {
			cells = fmt.Sprintf(" (%d/%d units passed)", s.Units-s.Failed, s.Units)
		}
		fmt.Fprintf(p.Writer, "  %-10s %s %s%s\n", s.Job, p.summaryTag(s.Status), gate, cells)
	}

	status := pipeline.Aggregate(results)
	line := fmt.Sprintf("pipeline %s in %s", status, elapsed.Round(time.Millisecond))
	if status == pipeline.StatusFailed {
		line = p.colorize(line, colorRed)
	} else {
		line = p.colorize(line, colorGreen)
	}
	fmt.Fprintf(p.Writer, "\n%s\n", line)
}

func (p *Printer) statusTag(r pipeline.Result) string {
	switch r.Status {
	case pipeline.StatusSucceeded:
		return p.colorize("PASS", colorGreen)
	case pipeline.StatusFailed:
		if r.Advisory {
			return p.colorize("WARN", colorYellow)
		}
		return p.colorize("FAIL", colorRed)
	default:
		return r.Status.String()
	}
}

func (p *Printer) summaryTag(s pipeline.Status) string {
	if s == pipeline.StatusFailed {
		return p.colorize("failed   ", colorRed)
	}
	return p.colorize("succeeded", colorGreen)
}

// advisoryNote marks failed advisory units so nobody mistakes the WARN tag
// for a gating failure.
func (p *Printer) advisoryNote(r pipeline.Result) string {
	if r.Advisory && r.Status == pipeline.StatusFailed {
		return p.colorize("  [advisory — does not gate]", colorGray)
	}
	return ""
}

func (p *Printer) colorize(text, color string) string {
	if !p.Color {
		return text
	}
	return color + text + colorReset
}

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// UseColor returns true if colored output should be used.
// Respects NO_COLOR env, TERM=dumb, and terminal detection.
func UseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal() || IsCI()
}
