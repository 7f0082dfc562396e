package sinks

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"rockcoast/internal/core"
)

var (
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
)

// Progress draws a single-line progress bar for the simulation clock.
type Progress struct {
	mu       sync.Mutex
	w        io.Writer
	start    float64
	end      float64
	width    int
	throttle *core.Throttle
	last     float64
}

// NewProgress returns a bar spanning [start, end]. A nil throttle redraws on
// every call.
func NewProgress(w io.Writer, start, end float64, throttle *core.Throttle) *Progress {
	return &Progress{w: w, start: start, end: end, width: 30, throttle: throttle, last: start}
}

// Fraction returns how far time lies between start and end, clamped to [0,1].
func (p *Progress) Fraction(time float64) float64 {
	span := p.end - p.start
	if span <= 0 {
		return 1
	}
	return math.Max(0, math.Min(1, (time-p.start)/span))
}

// Progress satisfies rockcoast.ProgressSink.
func (p *Progress) Progress(time float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = time
	if time <= p.end && p.throttle != nil && !p.throttle.Allow() {
		return
	}
	fmt.Fprintf(p.w, "\r%s", p.line(time))
}

// Finish redraws the final state and ends the line.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "\r%s\n", p.line(p.last))
}

func (p *Progress) line(time float64) string {
	frac := p.Fraction(time)
	filled := int(math.Round(frac * float64(p.width)))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render("t "),
		valueStyle.Render(fmt.Sprintf("%8.1f", time)),
		labelStyle.Render(" "),
		barStyle.Render(bar),
		valueStyle.Render(fmt.Sprintf(" %3.0f%%", 100*frac)),
	)
}
