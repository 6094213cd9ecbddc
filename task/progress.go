// Package task reports the progress of long-running generation jobs on the terminal
package task

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/flanksource/commons/logger"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

type styleSet struct {
	success lipgloss.Style
	failed  lipgloss.Style
	bar     lipgloss.Style
	pending lipgloss.Style
	info    lipgloss.Style
}

// Progress draws a single-line progress bar on an interactive terminal, and logs every
// 25% otherwise
type Progress struct {
	name        string
	out         io.Writer
	output      *termenv.Output
	interactive bool
	width       int
	started     time.Time
	log         logger.Logger
	styles      styleSet

	mu        sync.Mutex
	last      int
	milestone int
	done      bool
}

// ProgressOption configures a Progress
type ProgressOption func(*Progress)

// WithInteractive overrides terminal detection
func WithInteractive(interactive bool) ProgressOption {
	return func(p *Progress) { p.interactive = interactive }
}

// WithWidth overrides the detected terminal width
func WithWidth(width int) ProgressOption {
	return func(p *Progress) { p.width = width }
}

// NewProgress returns a progress display for the job called name, writing to out
// (os.Stderr when nil)
func NewProgress(name string, out io.Writer, opts ...ProgressOption) *Progress {
	if out == nil {
		out = os.Stderr
	}

	width, interactive := 80, false
	if f, ok := out.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	renderer := lipgloss.NewRenderer(out)
	p := &Progress{
		name:        name,
		out:         out,
		output:      termenv.NewOutput(out),
		interactive: interactive,
		width:       width,
		started:     time.Now(),
		log:         logger.GetLogger("task"),
		last:        -1,
		styles: styleSet{
			success: renderer.NewStyle().Foreground(lipgloss.Color("10")),
			failed:  renderer.NewStyle().Foreground(lipgloss.Color("9")),
			bar:     renderer.NewStyle().Foreground(lipgloss.Color("12")),
			pending: renderer.NewStyle().Foreground(lipgloss.Color("7")),
			info:    renderer.NewStyle().Foreground(lipgloss.Color("8")),
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Update records a completion percentage. Values are clamped to 0-100 and never go
// backwards.
func (p *Progress) Update(pct int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done {
		return
	}
	pct = max(0, min(100, pct))
	if pct <= p.last {
		return
	}
	p.last = pct

	if p.interactive {
		p.output.ClearLine()
		fmt.Fprintf(p.out, "\r%s", p.line(pct))
		return
	}
	for pct >= p.milestone+25 {
		p.milestone += 25
		p.log.Infof("%s: %d%%", p.name, p.milestone)
	}
}

// Func adapts Update to a plain callback
func (p *Progress) Func() func(int) {
	return p.Update
}

// Done ends the display with a success or failure line
func (p *Progress) Done(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done {
		return
	}
	p.done = true
	elapsed := time.Since(p.started).Round(10 * time.Millisecond)

	if !p.interactive {
		if err != nil {
			p.log.Errorf("%s failed after %s: %v", p.name, elapsed, err)
		} else {
			p.log.Infof("%s finished in %s", p.name, elapsed)
		}
		return
	}

	p.output.ClearLine()
	if err != nil {
		fmt.Fprintf(p.out, "\r%s %s: %v\n", p.styles.failed.Render("✗"), p.name, err)
		return
	}
	fmt.Fprintf(p.out, "\r%s %s %s\n", p.styles.success.Render("✓"), p.name, p.styles.info.Render(elapsed.String()))
}

func (p *Progress) line(pct int) string {
	return fmt.Sprintf("%s %s %3d%%", p.name, p.bar(pct), pct)
}

// bar renders the bar cells, sized to leave room for the name and percentage
func (p *Progress) bar(pct int) string {
	cells := max(10, min(40, p.width-len([]rune(p.name))-8))
	filled := cells * pct / 100
	return p.styles.bar.Render(strings.Repeat("█", filled)) +
		p.styles.pending.Render(strings.Repeat("░", cells-filled))
}
