// Package layout renders the frame chrome shared by every screen: the
// header bar with learning counters, the key-hint footer, and the
// minimum-size gate.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/yuchen/rootdrill/internal/ui/theme"
)

const (
	MinWidth  = 70
	MinHeight = 20
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// barStyle is the bordered bar shared by the header and footer.
func barStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// spread lays three rendered segments across innerWidth: left flush,
// center centered, right flush. Gaps never collapse below one space.
func spread(left, center, right string, innerWidth int) string {
	leftGap := (innerWidth-lipgloss.Width(center))/2 - lipgloss.Width(left)
	if leftGap < 1 {
		leftGap = 1
	}
	rightGap := innerWidth - lipgloss.Width(left) - leftGap -
		lipgloss.Width(center) - lipgloss.Width(right)
	if rightGap < 1 {
		rightGap = 1
	}
	return left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
}

// RenderHeader renders the header bar: app name, active screen title,
// mastered count, and today's reviews against the daily goal.
func RenderHeader(title string, mastered, reviewed, goal int, width int) string {
	brand := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  Rootdrill")

	screenTitle := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(title)

	counters := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Render(fmt.Sprintf("● %d mastered", mastered)) +
		"   " +
		lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Render(fmt.Sprintf("▸ %d/%d today", reviewed, goal))

	inner := width - 4
	if inner < 0 {
		inner = 0
	}
	return barStyle(width).Render(spread(brand, screenTitle, counters, inner))
}

// RenderFooter renders the key-hint footer.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)
		desc := lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
		parts = append(parts, key+" "+desc)
	}
	return barStyle(width).Render("  " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, content, and footer, stretching the
// content region to fill the remaining height.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
