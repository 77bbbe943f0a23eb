package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/ui/theme"
)

// ProgressBar displays a horizontal fill bar, used for domain fit.
type ProgressBar struct {
	Label     string
	Percent   float64
	ShowRatio string
	Width     int
}

// NewProgressBar creates a new progress bar. ratio, when non-empty, is
// printed after the bar (e.g. "2/3").
func NewProgressBar(label string, percent float64, ratio string, width int) ProgressBar {
	return ProgressBar{
		Label:     label,
		Percent:   percent,
		ShowRatio: ratio,
		Width:     width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	suffix := ""
	if p.ShowRatio != "" {
		suffix = fmt.Sprintf("  %s", p.ShowRatio)
	}

	barWidth := p.Width - labelWidth - len(suffix)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)
	empty := barWidth - filled

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	if suffix != "" {
		result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix)
	}
	return result
}
