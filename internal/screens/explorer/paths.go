package explorer

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careerpath/internal/advice"
	"github.com/abhisek/careerpath/internal/screen"
	"github.com/abhisek/careerpath/internal/ui/components"
	"github.com/abhisek/careerpath/internal/ui/layout"
	"github.com/abhisek/careerpath/internal/ui/theme"
)

// PathsScreen lists career paths on the left and the steps of the selected
// one on the right.
type PathsScreen struct {
	paths []advice.CareerPath
	menu  components.Menu
}

var _ screen.Screen = (*PathsScreen)(nil)
var _ screen.KeyHintProvider = (*PathsScreen)(nil)

// NewPathsScreen creates a detail screen for paths.
func NewPathsScreen(paths []advice.CareerPath) *PathsScreen {
	items := make([]components.MenuItem, len(paths))
	for i, p := range paths {
		label := p.Title
		if label == "" {
			label = "Untitled path"
		}
		items[i] = components.MenuItem{Label: label}
	}
	return &PathsScreen{paths: paths, menu: components.NewMenu(items)}
}

func (p *PathsScreen) Init() tea.Cmd { return nil }

func (p *PathsScreen) Title() string { return "Career Paths" }

func (p *PathsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (p *PathsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

// Selected returns the highlighted path.
func (p *PathsScreen) Selected() (advice.CareerPath, bool) {
	if p.menu.Selected < 0 || p.menu.Selected >= len(p.paths) {
		return advice.CareerPath{}, false
	}
	return p.paths[p.menu.Selected], true
}

func (p *PathsScreen) View(width, height int) string {
	if len(p.paths) == 0 {
		return theme.Hint.Render("  No career paths to show.")
	}
	lw := max(width/3, 24)
	rw := max(width-lw-2, 20)

	detail := ""
	if sel, ok := p.Selected(); ok {
		detail = renderPath(sel)
	}
	return components.SideBySide(
		components.Panel("Paths", p.menu.View(), lw),
		components.Panel("Steps", detail, rw),
	)
}
