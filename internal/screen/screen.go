// Package screen defines what the router stacks: a full-window view with
// its own update loop.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careerpath/internal/ui/layout"
)

// Screen is one routed view. View renders only the content area; the app
// draws the header and footer around it.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens whose footer hints depend on
// their state, e.g. a reset key that only exists after a submission.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// HintsFor returns s's own key hints, or nil when it has none.
func HintsFor(s Screen) []layout.KeyHint {
	if p, ok := s.(KeyHintProvider); ok {
		return p.KeyHints()
	}
	return nil
}
