package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/yuchen/rootdrill/internal/ui/theme"
)

// ProgressBar is a horizontal fill bar used for the daily review goal
// and the mastery ratio.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a progress bar. Percent is clamped to [0, 1].
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the bar as filled and empty block glyphs.
func (p ProgressBar) View() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	suffix := ""
	if p.ShowPercent {
		suffix = fmt.Sprintf("  %d%%", int(p.Percent*100))
	}

	barWidth := p.Width - lipgloss.Width(b.String()) - lipgloss.Width(suffix)
	if barWidth < 4 {
		barWidth = 4
	}
	filled := int(float64(barWidth)*p.Percent + 0.5)
	if filled > barWidth {
		filled = barWidth
	}

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Render(strings.Repeat("█", filled)))
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Border).
		Render(strings.Repeat("░", barWidth-filled)))

	if suffix != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix))
	}

	return b.String()
}
