package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/ui/theme"
)

// Panel wraps content in a titled rounded card of the given outer width.
func Panel(title, content string, width int) string {
	body := content
	if title != "" {
		body = theme.Title.Render(title) + "\n" + content
	}
	return theme.Card.
		Width(max(width, 10)).
		Render(body)
}

// SplitWidths divides width into two columns for side-by-side panels. The
// left column gets the remainder.
func SplitWidths(width int) (left, right int) {
	right = width / 2
	left = width - right
	return left, right
}

// SideBySide joins two rendered blocks horizontally, top-aligned.
func SideBySide(left, right string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}
